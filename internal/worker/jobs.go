package worker

import (
	"context"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"rendervault/internal/domain"
	"rendervault/internal/ports"
)

// ThumbnailJob generates a thumbnail for each asset that lacks one
type ThumbnailJob struct {
	Assets    []domain.Asset
	Generator ports.ThumbnailGenerator
	Size      int
	Workers   int // concurrent generations, at least 1
}

// Name implements Job
func (j *ThumbnailJob) Name() string { return "thumbnails" }

// Total implements Job
func (j *ThumbnailJob) Total() int { return len(j.Assets) }

// Run implements Job. Cancellation is checked before each item starts;
// items already generating run to completion.
func (j *ThumbnailJob) Run(ctx context.Context, progress func(string, error)) error {
	workers := j.Workers
	if workers < 1 {
		workers = 1
	}

	var g errgroup.Group
	g.SetLimit(workers)

	for _, asset := range j.Assets {
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			err := j.Generator.Generate(asset.Path, domain.ThumbnailPath(asset.Path), j.Size)
			progress(filepath.Base(asset.Path), err)
			return nil
		})
	}

	g.Wait()
	return ctx.Err()
}

// ScriptJob runs one out-of-process script invocation
type ScriptJob struct {
	Label  string
	Runner ports.ScriptRunner
	Args   []string
}

// Name implements Job
func (j *ScriptJob) Name() string {
	if j.Label == "" {
		return "script"
	}
	return j.Label
}

// Total implements Job
func (j *ScriptJob) Total() int { return 1 }

// Run implements Job
func (j *ScriptJob) Run(ctx context.Context, progress func(string, error)) error {
	err := j.Runner.Run(ctx, j.Args)
	progress(j.Name(), err)
	return err
}
