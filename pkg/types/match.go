package types

import "time"

// NoReactionSummary is the history text recorded for a NoMatch outcome
const NoReactionSummary = "No reaction found for these elements"

// MatchResult is the outcome of matching a set of symbols: either a
// reaction or the NoMatch sentinel.
type MatchResult struct {
	Reaction *Reaction `json:"reaction"`
}

// NoMatch is the explicit no-match outcome
var NoMatch = MatchResult{}

// Matched returns a MatchResult wrapping r
func Matched(r *Reaction) MatchResult {
	return MatchResult{Reaction: r}
}

// Found reports whether a reaction matched
func (m MatchResult) Found() bool {
	return m.Reaction != nil
}

// Summary renders the history text for the outcome
func (m MatchResult) Summary() string {
	if m.Reaction == nil {
		return NoReactionSummary
	}
	return m.Reaction.Summary()
}

// ExperimentRecord is one entry of a lab session's experiment history
type ExperimentRecord struct {
	ID        string      `json:"id"`
	SessionID string      `json:"session_id"`
	Timestamp time.Time   `json:"timestamp"`
	Elements  []Element   `json:"elements"` // Selection snapshot at match time
	Result    MatchResult `json:"result"`
	Summary   string      `json:"summary"`
}

// Symbols returns the symbols of the selection snapshot in order
func (r *ExperimentRecord) Symbols() []string {
	out := make([]string, len(r.Elements))
	for i := range r.Elements {
		out[i] = r.Elements[i].Symbol
	}
	return out
}
