package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/swatch/internal/media"
)

// RunBatch runs the pipeline for every source with at most jobs images in
// flight. Results are returned in source order; a failing image records its
// error in its Result and does not stop the others. Sources that are not
// images are skipped. Output paths are assigned up front so two sources never
// write the same swatch.
func RunBatch(ctx context.Context, sources []string, jobs int, opts Options) []Result {
	opts = opts.withDefaults()
	results := make([]Result, len(sources))
	outputs := claimOutputs(sources, opts)

	var g errgroup.Group
	g.SetLimit(max(jobs, 1))

	for i, source := range sources {
		results[i].Source = source

		if !media.IsImage(source) {
			opts.Logger.Warn("skipping non-image input", "source", source)
			results[i].Skipped = true
			continue
		}

		g.Go(func() error {
			res, err := run(ctx, source, outputs[i], opts)
			if err != nil {
				opts.Logger.Error("palette generation failed", "source", source, "error", err)
				results[i].Err = err
				return nil
			}
			results[i] = *res
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// claimOutputs assigns each source a distinct output path. Every source is
// claimed first, so a swatch never lands on an input image. When a swatch path
// is already taken, it gets a numeric suffix.
func claimOutputs(sources []string, opts Options) []string {
	claimed := make(map[string]bool, 2*len(sources))
	for _, source := range sources {
		claimed[pathKey(source)] = true
	}

	out := make([]string, len(sources))
	for i, source := range sources {
		path := OutputPath(source, opts)
		if claimed[pathKey(path)] {
			ext := filepath.Ext(path)
			stem := strings.TrimSuffix(path, ext)
			for n := 2; ; n++ {
				candidate := fmt.Sprintf("%s-%d%s", stem, n, ext)
				if !claimed[pathKey(candidate)] {
					path = candidate
					break
				}
			}
		}
		claimed[pathKey(path)] = true
		out[i] = path
	}
	return out
}

// pathKey normalises path so relative and absolute spellings of the same file
// compare equal.
func pathKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
