package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"rendervault/internal/worker"
)

// runJob runs job on the vault's worker and prints its progress.
// Interrupting the process cancels the job after the current item.
func runJob(job worker.Job) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	events, err := vault.Worker.Start(ctx, job)
	if err != nil {
		return err
	}

	last := worker.Drain(events, func(ev worker.Event) {
		if ev.Kind != worker.EventProgress {
			return
		}
		status := "ok"
		if ev.Err != nil {
			status = ev.Err.Error()
		}
		fmt.Printf("[%d/%d] %s: %s\n", ev.Index, ev.Total, ev.Item, status)
	})

	if last.Err != nil {
		return fmt.Errorf("%s: %w", job.Name(), last.Err)
	}
	if last.Completed < last.Total {
		return fmt.Errorf("%s: %d of %d items failed", job.Name(), last.Total-last.Completed, last.Total)
	}
	return nil
}
