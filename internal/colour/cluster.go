package colour

import "sort"

// cluster accumulates the pixels assigned to one palette colour.
type cluster struct {
	sumR, sumG, sumB uint64
	count            uint64
	// first is the index of the earliest source pixel in the cluster and gives
	// equally sized clusters a stable rank.
	first int
}

func (c *cluster) add(rgb RGB, n uint64, index int) {
	if c.count == 0 || index < c.first {
		c.first = index
	}
	c.sumR += uint64(rgb.R) * n
	c.sumG += uint64(rgb.G) * n
	c.sumB += uint64(rgb.B) * n
	c.count += n
}

func (c *cluster) merge(other cluster) {
	if other.count == 0 {
		return
	}
	if c.count == 0 || other.first < c.first {
		c.first = other.first
	}
	c.sumR += other.sumR
	c.sumG += other.sumG
	c.sumB += other.sumB
	c.count += other.count
}

// mean returns the rounded average colour of the cluster.
func (c cluster) mean() RGB {
	half := c.count / 2
	return RGB{
		R: uint8((c.sumR + half) / c.count),
		G: uint8((c.sumG + half) / c.count),
		B: uint8((c.sumB + half) / c.count),
	}
}

// rankClusters turns clusters into a palette: empty clusters and clusters
// below minFraction of total are dropped, the rest are ordered by pixel count
// (ties by first appearance) and truncated to limit entries. Proportions are
// always relative to total.
func rankClusters(clusters []cluster, total, limit int, minFraction float64) *Palette {
	kept := make([]cluster, 0, len(clusters))
	for _, c := range clusters {
		if c.count == 0 {
			continue
		}
		if minFraction > 0 && float64(c.count)/float64(total) < minFraction {
			continue
		}
		kept = append(kept, c)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].count != kept[j].count {
			return kept[i].count > kept[j].count
		}
		return kept[i].first < kept[j].first
	})

	if len(kept) > limit {
		kept = kept[:limit]
	}

	entries := make([]Entry, len(kept))
	for i, c := range kept {
		entries[i] = Entry{
			Colour:     c.mean(),
			Proportion: float64(c.count) / float64(total),
		}
	}
	return NewPalette(entries)
}

// colourCount is a distinct colour with its population and first position.
type colourCount struct {
	rgb   RGB
	count uint64
	first int
}

// packed returns the colour as a 24-bit integer.
func (rgb RGB) packed() uint32 {
	return uint32(rgb.R)<<16 | uint32(rgb.G)<<8 | uint32(rgb.B)
}

// countColours collapses the buffer into its distinct colours, ordered by
// first appearance.
func countColours(pixels PixelBuffer) []colourCount {
	index := make(map[uint32]int)
	var out []colourCount
	n := pixels.PixelCount()
	for i := range n {
		rgb := pixels.At(i)
		key := rgb.packed()
		if at, ok := index[key]; ok {
			out[at].count++
			continue
		}
		index[key] = len(out)
		out = append(out, colourCount{rgb: rgb, count: 1, first: i})
	}
	return out
}
