package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ARTM2000/sole"
	"github.com/ARTM2000/sole/internal/config"
	"github.com/ARTM2000/sole/internal/demo"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run every demo scenario",
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := newLogger()
			if err != nil {
				return err
			}
			defer l.Sync()

			return runScenarios(cmd.Context(), newRegistry(l))
		},
	}
}

func runScenarios(ctx context.Context, r *sole.Registry) error {
	scenarios := []struct {
		name string
		run  func(context.Context, *sole.Registry) error
	}{
		{"shared logger (heap/standard/mutex)", sharedLogger},
		{"settings store (shared/immortal/spin)", settingsStore},
		{"per-goroutine loggers (heap/standard/thread-local)", localLoggers},
		{"resurrected logger (raw-buffer/resurrection/spin)", resurrectedLogger},
	}

	for _, s := range scenarios {
		fmt.Fprintf(demo.Output, "== %s\n", s.name)
		if err := s.run(ctx, r); err != nil {
			return errors.Wrap(err, s.name)
		}
	}

	fmt.Fprintln(demo.Output, "== holders")
	for _, c := range r.Compositions() {
		fmt.Fprintln(demo.Output, c)
	}
	return nil
}

// fanOut runs fn on config.Workers() goroutines.
func fanOut(ctx context.Context, fn func(ctx context.Context, worker int) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := range config.Workers() {
		g.Go(func() error { return fn(ctx, i) })
	}
	return g.Wait()
}

func sharedLogger(ctx context.Context, r *sole.Registry) error {
	return fanOut(ctx, func(_ context.Context, worker int) error {
		l, err := sole.Get[demo.MessageLogger](r)
		if err != nil {
			return err
		}
		for n := range config.Messages() {
			l.Log(fmt.Sprintf("worker %d message %d", worker, n))
		}
		return nil
	})
}

func settingsStore(ctx context.Context, r *sole.Registry) error {
	opts := []sole.Option{
		sole.WithAllocation(sole.Shared),
		sole.WithDisposal(sole.Immortal),
		sole.WithSync(sole.Spin),
	}

	err := fanOut(ctx, func(_ context.Context, worker int) error {
		s, err := sole.Get[demo.SettingsStore](r, opts...)
		if err != nil {
			return err
		}
		s.Set(fmt.Sprintf("worker.%d", worker), "seen")
		return nil
	})
	if err != nil {
		return err
	}

	s, err := sole.Get[demo.SettingsStore](r, opts...)
	if err != nil {
		return err
	}
	s.Dump()
	return nil
}

func localLoggers(ctx context.Context, r *sole.Registry) error {
	return fanOut(ctx, func(_ context.Context, worker int) error {
		l, err := sole.Get[demo.MessageLogger](r, sole.WithSync(sole.ThreadLocal))
		if err != nil {
			return err
		}
		l.Log(fmt.Sprintf("worker %d has its own logger", worker))
		return nil
	})
}

// resurrectedLogger tears down a private registry and shows the holder
// building a fresh instance afterwards.
func resurrectedLogger(ctx context.Context, _ *sole.Registry) error {
	phoenix := sole.NewRegistry()
	h, err := sole.Of[demo.MessageLogger](phoenix,
		sole.WithAllocation(sole.RawBuffer),
		sole.WithDisposal(sole.Resurrection),
		sole.WithSync(sole.Spin),
	)
	if err != nil {
		return err
	}

	first, err := h.Get()
	if err != nil {
		return err
	}
	first.Log("before teardown")
	before := h.Generation()

	if err := phoenix.Shutdown(ctx); err != nil {
		return err
	}
	fmt.Fprintf(demo.Output, "state after teardown: %s\n", h.State())

	again, err := h.Get()
	if err != nil {
		return err
	}
	again.Log("after teardown")
	fmt.Fprintf(demo.Output, "generation %s -> %s\n", before, h.Generation())
	return nil
}
