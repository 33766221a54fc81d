package mesh

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/philipparndt/meshedge/pkg/geometry"
)

// minChunk is the smallest number of faces handed to one worker
const minChunk = 1024

// Options controls Compute
type Options struct {
	// Squared selects squared lengths instead of lengths.
	Squared bool

	// Workers is the maximum number of goroutines. Values below 2 compute
	// sequentially on the calling goroutine.
	Workers int
}

// Compute is EdgeLengths or EdgeLengthsSquared spread over opts.Workers
// goroutines. Each worker fills a contiguous block of rows, so row f of the
// result always belongs to face f. Cancelling ctx stops workers that have
// not started yet; the returned error is then ctx.Err().
func Compute(ctx context.Context, vertices []geometry.Vector3, faces []Face, opts Options) (Table, error) {
	if err := Validate(len(vertices), faces); err != nil {
		return nil, err
	}

	fill := fillLengths
	if opts.Squared {
		fill = fillSquared
	}

	out := make(Table, len(faces))
	if opts.Workers < 2 || len(faces) <= minChunk {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fill(vertices, faces, out)
		return out, nil
	}

	chunk := (len(faces) + opts.Workers - 1) / opts.Workers
	chunk = max(chunk, minChunk)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for start := 0; start < len(faces); start += chunk {
		end := min(start+chunk, len(faces))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fill(vertices, faces[start:end], out[start:end])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
