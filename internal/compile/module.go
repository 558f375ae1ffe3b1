package compile

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"weft/internal/cfg"
	"weft/internal/trace"
	"weft/internal/types"
)

// CompileModule compiles a set of functions in parallel. Results keep
// the input order. The first hard error cancels outstanding work;
// typing rejections are not hard errors when fallback is enabled.
func CompileModule(ctx context.Context, fns []*cfg.Func, in *types.Interner, opts Options) ([]*Compiled, error) {
	tr := opts.tracer()
	trace.Point(tr, trace.ScopePipeline, "compile", "%d functions", len(fns))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]*Compiled, len(fns))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for idx, fn := range fns {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := Compile(fn, in, opts)
			if err != nil {
				return err
			}
			results[idx] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
