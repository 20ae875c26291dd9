package lab

import (
	"context"
	"time"

	"github.com/dshills/chemlab-mcp/pkg/types"
)

// DefaultExperimentDelay is the simulated duration of an experiment
const DefaultExperimentDelay = 2 * time.Second

// Experiment is a scheduled match bound to the selection version it was
// started for. Its result is applied only if that version is still current
// when the delay elapses.
type Experiment struct {
	session *Session
	version uint64
	symbols []string
	cancel  context.CancelCauseFunc
	done    chan struct{}

	// Set before done is closed
	record types.ExperimentRecord
	err    error
}

// StartExperiment schedules a match of the current selection after delay.
// Only one experiment may be pending per session.
func (s *Session) StartExperiment(ctx context.Context, m Matcher, delay time.Duration) (*Experiment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.selection) == 0 {
		return nil, ErrEmptySelection
	}
	if s.pending != nil {
		return nil, ErrExperimentRunning
	}

	ctx, cancel := context.WithCancelCause(ctx)
	e := &Experiment{
		session: s,
		version: s.version,
		symbols: s.symbolsLocked(),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	s.pending = e

	go e.run(ctx, m, delay)
	return e, nil
}

func (e *Experiment) run(ctx context.Context, m Matcher, delay time.Duration) {
	defer close(e.done)
	defer e.cancel(nil)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		e.err = context.Cause(ctx)
		e.session.release(e)
		return
	case <-timer.C:
	}

	result := matchWith(ctx, m, e.symbols)
	e.record, e.err = e.session.apply(ctx, e, result)
}

// apply records result if e is still the pending experiment for the
// current selection version
func (s *Session) apply(ctx context.Context, e *Experiment, result types.MatchResult) (types.ExperimentRecord, error) {
	s.mu.Lock()
	if s.pending != e || s.version != e.version {
		s.mu.Unlock()
		return types.ExperimentRecord{}, ErrStaleExperiment
	}
	rec := s.recordLocked(result)
	s.pending = nil
	s.mu.Unlock()

	s.forward(ctx, &rec)
	return rec, nil
}

func (s *Session) release(e *Experiment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == e {
		s.pending = nil
	}
}

// Wait blocks until the experiment completes or ctx is done. A completed
// experiment whose selection changed returns ErrStaleExperiment.
func (e *Experiment) Wait(ctx context.Context) (types.ExperimentRecord, error) {
	select {
	case <-e.done:
		return e.record, e.err
	case <-ctx.Done():
		return types.ExperimentRecord{}, ctx.Err()
	}
}

// Done is closed when the experiment has finished, applied or not
func (e *Experiment) Done() <-chan struct{} {
	return e.done
}

// Cancel abandons the experiment without touching the selection
func (e *Experiment) Cancel() {
	e.cancel(context.Canceled)
}

// Version returns the selection version the experiment was started for
func (e *Experiment) Version() uint64 {
	return e.version
}

// Symbols returns the selection snapshot being matched
func (e *Experiment) Symbols() []string {
	out := make([]string, len(e.symbols))
	copy(out, e.symbols)
	return out
}
