package assetforge

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// RecolorJob is one input of RecolorAll.
type RecolorJob struct {
	Source  []byte
	Color   ColorSpec
	Options RecolorOptions
}

// RecolorAll recolors jobs concurrently with at most workers in flight
// (unbounded when workers <= 0). out[i] is the result of jobs[i]. The first
// failure cancels the jobs that have not started yet.
func RecolorAll(ctx context.Context, jobs []RecolorJob, workers int) ([][]byte, error) {
	return fanOut(ctx, len(jobs), workers, func(i int) ([]byte, error) {
		return Recolor(jobs[i].Source, jobs[i].Color, jobs[i].Options)
	})
}

// DeriveJob is one input of DeriveAll.
type DeriveJob struct {
	GIF             []byte
	SilhouetteIndex int
}

// DeriveAll runs d.Derive over jobs concurrently; out[i] matches jobs[i].
func (d *Deriver) DeriveAll(ctx context.Context, jobs []DeriveJob, workers int) ([]*CollectibleAssets, error) {
	return fanOut(ctx, len(jobs), workers, func(i int) (*CollectibleAssets, error) {
		return d.Derive(jobs[i].GIF, jobs[i].SilhouetteIndex)
	})
}

func fanOut[T any](ctx context.Context, n, workers int, fn func(i int) (T, error)) ([]T, error) {
	out := make([]T, n)
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i := range n {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := fn(i)
			if err != nil {
				return errors.Wrapf(err, "job %d", i)
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
