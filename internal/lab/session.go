package lab

import (
	"context"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/chemlab-mcp/pkg/types"
)

const (
	// MaxSelection is the number of elements a session can stage at once
	MaxSelection = 5
	// MaxHistory is the number of experiment records a session retains
	MaxHistory = 10
)

// Matcher resolves element symbols to a reaction outcome
type Matcher interface {
	Match(symbols []string) types.MatchResult
}

// MatchFunc adapts a function to the Matcher interface
type MatchFunc func(symbols []string) types.MatchResult

// Match calls f(symbols)
func (f MatchFunc) Match(symbols []string) types.MatchResult {
	return f(symbols)
}

// ContextMatcher is a Matcher whose lookup can be cancelled. Experiments
// hand it their own context, which is cancelled when the selection changes.
type ContextMatcher interface {
	MatchContext(ctx context.Context, symbols []string) types.MatchResult
}

// ContextMatchFunc adapts a function to both Matcher and ContextMatcher
type ContextMatchFunc func(ctx context.Context, symbols []string) types.MatchResult

// Match calls f with a background context
func (f ContextMatchFunc) Match(symbols []string) types.MatchResult {
	return f(context.Background(), symbols)
}

// MatchContext calls f(ctx, symbols)
func (f ContextMatchFunc) MatchContext(ctx context.Context, symbols []string) types.MatchResult {
	return f(ctx, symbols)
}

func matchWith(ctx context.Context, m Matcher, symbols []string) types.MatchResult {
	if cm, ok := m.(ContextMatcher); ok {
		return cm.MatchContext(ctx, symbols)
	}
	return m.Match(symbols)
}

// Recorder receives every experiment record a session produces
type Recorder interface {
	RecordExperiment(ctx context.Context, rec *types.ExperimentRecord) error
}

// Session is one independent lab: the staged selection, the match result
// for that exact selection, and a bounded experiment history.
//
// Every mutation of the selection bumps the version, drops the current
// match result and cancels a pending experiment.
type Session struct {
	id       string
	recorder Recorder
	now      func() time.Time

	mu        sync.Mutex
	selection []types.Element
	version   uint64
	result    *types.MatchResult // Nil when unknown for the current selection
	history   []types.ExperimentRecord
	pending   *Experiment
	updatedAt time.Time
}

// NewSession creates an empty session. recorder may be nil.
func NewSession(id string, recorder Recorder) *Session {
	if id == "" {
		id = uuid.NewString()
	}
	return &Session{
		id:        id,
		recorder:  recorder,
		now:       time.Now,
		updatedAt: time.Now(),
	}
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Add appends an element when the selection holds fewer than MaxSelection
// elements. It reports whether the selection changed.
func (s *Session) Add(el types.Element) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.selection) >= MaxSelection {
		return false
	}
	s.selection = append(s.selection, el)
	s.mutatedLocked()
	return true
}

// Remove drops the first occurrence of symbol. It reports whether the
// selection changed; removing an absent symbol leaves state untouched.
func (s *Session) Remove(symbol string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.selection, func(el types.Element) bool { return el.Symbol == symbol })
	if i < 0 {
		return false
	}
	s.selection = slices.Delete(s.selection, i, i+1)
	s.mutatedLocked()
	return true
}

// Clear empties the selection and cancels any pending experiment
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selection = nil
	s.mutatedLocked()
}

// mutatedLocked invalidates everything derived from the previous selection
func (s *Session) mutatedLocked() {
	s.version++
	s.result = nil
	s.updatedAt = s.now()
	if s.pending != nil {
		s.pending.cancel(ErrStaleExperiment)
		s.pending = nil
	}
}

// RecordMatch stores result as the outcome for the current selection and
// prepends an entry to the history. The caller vouches that result belongs
// to the current selection; MatchNow does the match under the same lock.
func (s *Session) RecordMatch(ctx context.Context, result types.MatchResult) types.ExperimentRecord {
	s.mu.Lock()
	rec := s.recordLocked(result)
	s.mu.Unlock()

	s.forward(ctx, &rec)
	return rec
}

// MatchNow matches the current selection and records the outcome in one
// step, so no mutation can land between reading the selection and storing
// its result. m runs with the session locked and should not block.
// It returns ErrEmptySelection when nothing is staged.
func (s *Session) MatchNow(ctx context.Context, m Matcher) (types.ExperimentRecord, error) {
	s.mu.Lock()
	if len(s.selection) == 0 {
		s.mu.Unlock()
		return types.ExperimentRecord{}, ErrEmptySelection
	}
	rec := s.recordLocked(matchWith(ctx, m, s.symbolsLocked()))
	s.mu.Unlock()

	s.forward(ctx, &rec)
	return rec, nil
}

func (s *Session) recordLocked(result types.MatchResult) types.ExperimentRecord {
	rec := types.ExperimentRecord{
		ID:        uuid.NewString(),
		SessionID: s.id,
		Timestamp: s.now(),
		Elements:  slices.Clone(s.selection),
		Result:    result,
		Summary:   result.Summary(),
	}

	s.result = &result
	s.history = slices.Insert(s.history, 0, rec)
	if len(s.history) > MaxHistory {
		s.history = s.history[:MaxHistory]
	}
	s.updatedAt = rec.Timestamp
	return rec
}

func (s *Session) forward(ctx context.Context, rec *types.ExperimentRecord) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordExperiment(context.WithoutCancel(ctx), rec); err != nil {
		log.Printf("lab: failed to archive experiment %s for session %s: %v", rec.ID, s.id, err)
	}
}

// Selection returns a copy of the staged elements in order
func (s *Session) Selection() []types.Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.selection)
}

// Symbols returns the staged symbols in order
func (s *Session) Symbols() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.symbolsLocked()
}

func (s *Session) symbolsLocked() []string {
	out := make([]string, len(s.selection))
	for i := range s.selection {
		out[i] = s.selection[i].Symbol
	}
	return out
}

// Result returns the match result for the current selection. ok is false
// when the selection changed since the last match.
func (s *Session) Result() (result types.MatchResult, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return types.NoMatch, false
	}
	return *s.result, true
}

// History returns the retained experiment records, most recent first
func (s *Session) History() []types.ExperimentRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history)
}

// Version returns the selection version
func (s *Session) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Experimenting reports whether an experiment is pending
func (s *Session) Experimenting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// UpdatedAt returns the time of the last selection change or record
func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// Snapshot is a consistent view of a session
type Snapshot struct {
	ID            string                   `json:"id"`
	Version       uint64                   `json:"version"`
	Selection     []types.Element          `json:"selection"`
	Result        *types.MatchResult       `json:"result,omitempty"`
	Experimenting bool                     `json:"experimenting"`
	History       []types.ExperimentRecord `json:"history"`
}

// Snapshot captures the whole session state under one lock
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:            s.id,
		Version:       s.version,
		Selection:     slices.Clone(s.selection),
		Experimenting: s.pending != nil,
		History:       slices.Clone(s.history),
	}
	if s.result != nil {
		r := *s.result
		snap.Result = &r
	}
	return snap
}

// Close cancels a pending experiment. The session stays usable.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		s.pending.cancel(ErrSessionClosed)
		s.pending = nil
	}
}
