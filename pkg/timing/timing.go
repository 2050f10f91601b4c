// Package timing measures wall and process CPU time of named scopes and
// collects the measurements on a timeline for later reporting.
//
// The timeline is an injected collector, passed explicitly or carried on a
// context.Context. There is no process-global timeline.
package timing

import (
	"context"
	"log"
	"sync"
	"syscall"
	"time"
)

// Record is one completed timing scope.
type Record struct {
	Name        string
	Start       time.Time
	Finish      time.Time
	WallTime    time.Duration
	ProcessTime time.Duration
}

// Timeline is an append-only collection of Records.
//
// A nil *Timeline is valid and discards everything appended to it,
// so scopes are safe to start without wiring a collector.
type Timeline struct {
	mu      sync.Mutex
	records []Record
}

func NewTimeline() *Timeline {
	return &Timeline{}
}

func (tl *Timeline) Append(r Record) {
	if tl == nil {
		return
	}
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.records = append(tl.records, r)
}

// Records returns a snapshot of the collected records, in append order.
func (tl *Timeline) Records() []Record {
	if tl == nil {
		return nil
	}
	tl.mu.Lock()
	defer tl.mu.Unlock()
	snapshot := make([]Record, len(tl.records))
	copy(snapshot, tl.records)
	return snapshot
}

type ctxKey struct{}

// WithTimeline binds tl to ctx.
func WithTimeline(ctx context.Context, tl *Timeline) context.Context {
	return context.WithValue(ctx, ctxKey{}, tl)
}

// From extracts the Timeline bound to ctx.
// When none is bound it returns nil, which discards appended records.
func From(ctx context.Context) *Timeline {
	tl, _ := ctx.Value(ctxKey{}).(*Timeline)
	return tl
}

// Watch is a running timing scope.
type Watch struct {
	name     string
	timeline *Timeline
	logger   *log.Logger

	start    time.Time
	startCPU time.Duration
	done     bool
}

// Start opens a timing scope named name.
//
// Close it with (a deferred) Stop; the record is appended even when the code
// under measurement fails, and whatever error it returns propagates
// untouched. A nil logger falls back to log.Default().
func Start(name string, tl *Timeline, logger *log.Logger) *Watch {
	if logger == nil {
		logger = log.Default()
	}
	return &Watch{
		name:     name,
		timeline: tl,
		logger:   logger,
		start:    time.Now(),
		startCPU: processTime(),
	}
}

// Stop closes the scope: appends exactly one Record to the timeline and
// logs the elapsed wall time. Second and later calls are no-ops.
func (w *Watch) Stop() {
	if w.done {
		return
	}
	w.done = true

	finish := time.Now()
	wall := finish.Sub(w.start)

	w.timeline.Append(Record{
		Name:        w.name,
		Start:       w.start,
		Finish:      finish,
		WallTime:    wall,
		ProcessTime: processTime() - w.startCPU,
	})

	w.logger.Printf("%s. [Time: %fs]", w.name, wall.Seconds())
}

// Do measures f as a scope named name. The error of f is returned unchanged;
// the record is appended either way.
func Do(name string, tl *Timeline, logger *log.Logger, f func() error) error {
	w := Start(name, tl, logger)
	defer w.Stop()
	return f()
}

// processTime is the CPU time (user + system) consumed by this process.
func processTime() time.Duration {
	var ru syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &ru); err != nil {
		return 0
	}
	return durationOf(ru.Utime) + durationOf(ru.Stime)
}

func durationOf(tv syscall.Timeval) time.Duration {
	return time.Duration(tv.Sec)*time.Second + time.Duration(tv.Usec)*time.Microsecond
}
