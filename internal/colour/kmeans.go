// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"
)

// KMeansExtractor implements color extraction using k-means clustering.
// Clustering runs over the distinct colours of the image weighted by their
// pixel counts. The random source is seeded from the pixel content unless a
// seed is set explicitly, so results are reproducible.
type KMeansExtractor struct {
	maxIterations int
	convergence   float64
	// mergeDistance is the CIE Lab distance under which two final clusters
	// are folded into one.
	mergeDistance float64
	minFraction   float64
	seed          *int64
}

// NewKMeansExtractor creates a new KMeansExtractor with default settings.
func NewKMeansExtractor() *KMeansExtractor {
	return &KMeansExtractor{
		maxIterations: 20,
		convergence:   2.0,
		mergeDistance: 0.02,
	}
}

// WithSeed fixes the seed used for centroid initialisation.
func (e *KMeansExtractor) WithSeed(seed int64) *KMeansExtractor {
	e.seed = &seed
	return e
}

// Extract extracts colors from pixels using k-means clustering.
// Returns colors with their proportions of the total pixel count.
func (e *KMeansExtractor) Extract(pixels PixelBuffer, count int) (*Palette, error) {
	if err := validateInput(pixels, count); err != nil {
		return nil, err
	}

	colours := countColours(pixels)
	total := pixels.PixelCount()

	// If we want at least as many colors as exist, every colour is its own cluster.
	if count >= len(colours) {
		clusters := make([]cluster, len(colours))
		for i, c := range colours {
			clusters[i].add(c.rgb, c.count, c.first)
		}
		return rankClusters(clusters, total, count, e.minFraction), nil
	}

	seed := ContentSeed(pixels)
	if e.seed != nil {
		seed = *e.seed
	}
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- deterministic clustering, not security sensitive

	points := make([][]float64, len(colours))
	weights := make([]float64, len(colours))
	for i, c := range colours {
		points[i] = []float64{float64(c.rgb.R), float64(c.rgb.G), float64(c.rgb.B)}
		weights[i] = float64(c.count)
	}

	assignments := e.kmeans(points, weights, count, rng)

	clusters := make([]cluster, count)
	for i, c := range colours {
		clusters[assignments[i]].add(c.rgb, c.count, c.first)
	}

	return rankClusters(e.mergeSimilar(clusters), total, count, e.minFraction), nil
}

// kmeans performs weighted k-means clustering and returns the cluster index
// of every point.
func (e *KMeansExtractor) kmeans(points [][]float64, weights []float64, k int, rng *rand.Rand) []int {
	centroids := initialiseCentroids(points, weights, k, rng)

	assignments := make([]int, len(points))
	for i := range assignments {
		assignments[i] = -1
	}

	for range e.maxIterations {
		changed := 0
		for i, p := range points {
			nearest := nearestCentroid(p, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}
		if changed == 0 {
			break
		}

		next := recalculateCentroids(points, weights, assignments, centroids)

		movement := 0.0
		for i := range centroids {
			movement += floats.Distance(centroids[i], next[i], 2)
		}
		centroids = next

		if movement/float64(k) < e.convergence {
			break
		}
	}

	// Final assignment against the last centroids.
	for i, p := range points {
		assignments[i] = nearestCentroid(p, centroids)
	}
	return assignments
}

// initialiseCentroids picks k starting centroids with weighted k-means++.
func initialiseCentroids(points [][]float64, weights []float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, points[pickWeighted(weights, floats.Sum(weights), rng)])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			minDist := math.MaxFloat64
			for _, c := range centroids {
				minDist = min(minDist, floats.Distance(p, c, 2))
			}
			distances[i] = minDist * minDist * weights[i]
			total += distances[i]
		}
		if total == 0 {
			break
		}
		centroids = append(centroids, points[pickWeighted(distances, total, rng)])
	}

	out := make([][]float64, len(centroids))
	for i, c := range centroids {
		out[i] = append([]float64(nil), c...)
	}
	return out
}

// pickWeighted returns an index with probability proportional to its weight.
func pickWeighted(weights []float64, total float64, rng *rand.Rand) int {
	target := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if w > 0 && cumulative >= target {
			return i
		}
	}
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return 0
}

// nearestCentroid finds the index of the nearest centroid to a point.
// Equidistant centroids resolve to the lower index.
func nearestCentroid(p []float64, centroids [][]float64) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, c := range centroids {
		if d := floats.Distance(p, c, 2); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

// recalculateCentroids moves each centroid to the weighted mean of its points.
// A centroid with no points keeps its previous position.
func recalculateCentroids(points [][]float64, weights []float64, assignments []int, previous [][]float64) [][]float64 {
	k := len(previous)
	sums := make([][]float64, k)
	totals := make([]float64, k)
	for i := range sums {
		sums[i] = make([]float64, Channels)
	}

	for i, p := range points {
		c := assignments[i]
		floats.AddScaled(sums[c], weights[i], p)
		totals[c] += weights[i]
	}

	centroids := make([][]float64, k)
	for i := range k {
		if totals[i] == 0 {
			centroids[i] = append([]float64(nil), previous[i]...)
			continue
		}
		floats.Scale(1/totals[i], sums[i])
		centroids[i] = sums[i]
	}
	return centroids
}

// mergeSimilar folds clusters whose mean colours are perceptually
// indistinguishable into the earlier cluster.
func (e *KMeansExtractor) mergeSimilar(clusters []cluster) []cluster {
	for i := range clusters {
		if clusters[i].count == 0 {
			continue
		}
		for j := i + 1; j < len(clusters); j++ {
			if clusters[j].count == 0 {
				continue
			}
			if labDistance(clusters[i].mean(), clusters[j].mean()) < e.mergeDistance {
				clusters[i].merge(clusters[j])
				clusters[j] = cluster{}
			}
		}
	}
	return clusters
}

func labDistance(a, b RGB) float64 {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	return ca.DistanceLab(cb)
}
