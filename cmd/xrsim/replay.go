package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tphakala/go-xr-interact/internal/loader"
	"github.com/tphakala/go-xr-interact/internal/scene"
)

// replayFile loads and runs one scenario.
func replayFile(ctx context.Context, path string, logger *zap.Logger) (*scene.Report, error) {
	sc, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	s, err := scene.New(sc, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	start := time.Now()
	r, err := s.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Info("replayed",
		zap.String("path", path),
		zap.Int("frames", r.Frames),
		zap.Duration("elapsed", time.Since(start)))
	return r, nil
}

// replayAll runs the scenarios on a pool of workers goroutines and returns
// their reports in input order. The first failure cancels the rest.
func replayAll(ctx context.Context, paths []string, workers int, logger *zap.Logger) ([]*scene.Report, error) {
	if workers < 1 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create replay pool: %w", err)
	}
	defer pool.Release()

	reports := make([]*scene.Report, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			done := make(chan error, 1)
			task := func() {
				defer func() {
					if p := recover(); p != nil {
						done <- fmt.Errorf("%s: replay panicked: %v", path, p)
					}
				}()
				r, err := replayFile(ctx, path, logger)
				reports[i] = r
				done <- err
			}
			if err := pool.Submit(task); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			return <-done
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// writeReport prints a replay summary.
func writeReport(w io.Writer, path string, r *scene.Report, digest bool) error {
	ew := &errWriter{w: w}

	ew.printf("%s (%s): %d frames, %.3fs\n", r.Scenario, path, r.Frames, r.Duration)
	for _, rel := range r.Releases {
		how := "released"
		if rel.Cancelled {
			how = "dropped"
		}
		v, a := rel.Velocity, rel.AngularVelocity
		ew.printf("  %s %s at %.3fs: velocity (%.3f %.3f %.3f) m/s, spin (%.3f %.3f %.3f) rad/s\n",
			how, rel.Object, rel.Time, v.X(), v.Y(), v.Z(), a.X(), a.Y(), a.Z())
	}
	for _, o := range r.Objects {
		switch o.Kind {
		case loader.KindSlider:
			ew.printf("  %s: slider at %.3f\n", o.Name, o.Value)
		case loader.KindFixedSlider:
			ew.printf("  %s: slider at %.3f, stop %d\n", o.Name, o.Value, o.Index)
		case loader.KindHinge:
			ew.printf("  %s: door at %.1f°\n", o.Name, o.Value)
		default:
			p := o.Pose.Position
			ew.printf("  %s: at (%.3f %.3f %.3f)\n", o.Name, p.X(), p.Y(), p.Z())
		}
	}
	if r.Cancellations > 0 {
		ew.printf("  cancellations: %d\n", r.Cancellations)
	}
	for _, s := range r.Skipped {
		ew.printf("  skipped %s %s at %.3fs: %s\n", s.Event.Action, s.Event.Object, s.Event.Time, s.Reason)
	}
	if digest {
		ew.printf("  digest: %s\n", r.Digest)
	}
	return ew.err
}

// errWriter keeps the first write error.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
