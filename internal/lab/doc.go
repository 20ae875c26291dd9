// Package lab implements lab sessions: the staged element selection, the
// match result for that selection, and the experiment history.
//
// # Sessions
//
// A Session is an explicitly owned state object. Any number of sessions can
// coexist; a Registry hands them out by id and bounds how many stay live.
//
//	reg := lab.NewRegistry(64, archive)
//	s := reg.Get("alice")
//	s.Add(sodium)
//	s.Add(chlorine)
//
// The selection holds at most MaxSelection elements; Add beyond that is a
// no-op. Every mutation (Add, Remove, Clear) bumps the session version and
// drops the stored match result, so a result is only ever reported for the
// exact selection that produced it.
//
// # Experiments
//
// StartExperiment schedules a match after a simulated delay. The experiment
// remembers the selection version; if the selection changes before the delay
// elapses the experiment is cancelled and Wait returns ErrStaleExperiment.
//
//	exp, err := s.StartExperiment(ctx, reaction.Default(), lab.DefaultExperimentDelay)
//	if err != nil {
//	    return err
//	}
//	rec, err := exp.Wait(ctx)
//
// Completed experiments are prepended to the session history, which keeps
// the MaxHistory most recent records, and forwarded to the Recorder.
package lab
