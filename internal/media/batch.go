package media

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Decoded is the outcome of decoding one path in a batch.
type Decoded struct {
	Index int
	Path  string
	Frame *Frame
	Err   error
}

// DecodeAll decodes paths with up to limit concurrent workers (GOMAXPROCS
// when limit <= 0). report is called once per path, from worker goroutines,
// in completion order. A failed slide does not stop the batch; only ctx
// cancellation does, in which case ctx's error is returned.
func DecodeAll(ctx context.Context, paths []string, maxW, maxH, limit int, report func(Decoded)) error {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := Decode(path, maxW, maxH)
			report(Decoded{Index: i, Path: path, Frame: f, Err: err})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
