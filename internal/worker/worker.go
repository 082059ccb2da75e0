// Package worker runs long batch jobs off the caller's goroutine and
// reports their progress as a stream of events.
package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"rendervault/internal/logging"
)

// ErrBusy is returned when a job is started while another is running
var ErrBusy = errors.New("worker busy")

// EventKind identifies the stage an event reports
type EventKind int

const (
	EventStarted EventKind = iota
	EventProgress
	EventFinished
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventProgress:
		return "progress"
	case EventFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Event is one notification from a running job.
// Finished is always the last event sent before the channel closes.
type Event struct {
	Kind      EventKind
	Job       string
	Index     int    // 1-based position of the item, progress only
	Total     int    // number of items the job planned
	Item      string // item label, progress only
	Err       error  // item error for progress, job error for finished
	Completed int    // items without error, finished only
}

// Job is a unit of batch work.
// Run calls progress once per item and returns when every item is done or ctx is canceled.
type Job interface {
	Name() string
	Total() int
	Run(ctx context.Context, progress func(item string, err error)) error
}

// Worker runs at most one job at a time
type Worker struct {
	log     zerolog.Logger
	running atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New creates an idle worker
func New(log zerolog.Logger) *Worker {
	return &Worker{log: logging.Component(log, "worker")}
}

// Running reports whether a job is in flight
func (w *Worker) Running() bool {
	return w.running.Load()
}

// Start runs job on its own goroutine and returns its event stream.
// It returns ErrBusy if a job is already running.
func (w *Worker) Start(ctx context.Context, job Job) (<-chan Event, error) {
	if !w.running.CompareAndSwap(false, true) {
		w.log.Warn().Str("job", job.Name()).Msg("worker busy, job rejected")
		return nil, ErrBusy
	}

	ctx, cancel := context.WithCancel(ctx)
	w.mu.Lock()
	w.cancel = cancel
	w.mu.Unlock()

	total := job.Total()
	// Room for every event so an absent reader never blocks the job
	events := make(chan Event, total+2)

	go func() {
		defer func() {
			cancel()
			w.mu.Lock()
			w.cancel = nil
			w.mu.Unlock()
			w.running.Store(false)
			close(events)
		}()

		name := job.Name()
		w.log.Info().Str("job", name).Int("total", total).Msg("job started")
		events <- Event{Kind: EventStarted, Job: name, Total: total}

		var (
			mu        sync.Mutex
			index     int
			completed int
		)
		progress := func(item string, err error) {
			mu.Lock()
			defer mu.Unlock()

			index++
			if err == nil {
				completed++
			} else {
				w.log.Error().Err(err).Str("job", name).Str("item", item).Msg("job item failed")
			}
			if index <= total {
				events <- Event{Kind: EventProgress, Job: name, Index: index, Total: total, Item: item, Err: err}
			}
		}

		err := job.Run(ctx, progress)

		mu.Lock()
		done := completed
		mu.Unlock()

		w.log.Info().Err(err).Str("job", name).Int("completed", done).Int("total", total).Msg("job finished")
		events <- Event{Kind: EventFinished, Job: name, Total: total, Completed: done, Err: err}
	}()

	return events, nil
}

// Cancel asks the running job to stop after its current items
func (w *Worker) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		w.cancel()
	}
}

// Drain reads events until the stream closes and returns the finished event
func Drain(events <-chan Event, onEvent func(Event)) Event {
	var last Event
	for ev := range events {
		if onEvent != nil {
			onEvent(ev)
		}
		last = ev
	}
	return last
}
