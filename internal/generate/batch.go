// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package generate

import (
	"context"
	"runtime"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"github.com/api2spec/zodgen/internal/openapi"
)

// Result is the outcome of converting one file of a batch.
type Result struct {
	Path   string
	Output *Output
	Err    error

	index int
}

// Batch loads and converts several documents concurrently, each with its own
// resolver, graph and registry. Results come back in input order; a failing
// document does not stop the others. Documents not yet started when ctx is
// cancelled report the context error.
func Batch(ctx context.Context, paths []string, opts Options, concurrency int) []Result {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	p := pool.NewWithResults[Result]().WithMaxGoroutines(concurrency)
	for i, path := range paths {
		p.Go(func() Result {
			res := Result{Path: path, index: i}
			if err := ctx.Err(); err != nil {
				res.Err = err
				return res
			}
			doc, err := openapi.Load(path)
			if err != nil {
				res.Err = err
				return res
			}
			res.Output, res.Err = Run(doc, opts)
			return res
		})
	}

	results := p.Wait()
	sort.Slice(results, func(i, j int) bool { return results[i].index < results[j].index })
	return results
}
