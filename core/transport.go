package core

import (
	"context"
	"time"

	"github.com/looplab/fsm"

	"github.com/signalsfoundry/satlink-planner/model"
)

// TransportEvaluator computes one transport's availability intervals
// for a leg. The three transports are independent implementations of
// this interface rather than one function branching on transport type,
// so none of them can grow hidden coupling to another's rules.
type TransportEvaluator interface {
	// Transport identifies which link this evaluator covers.
	Transport() model.Transport

	// ComputeIntervals walks the route and returns the transport's
	// disjoint, contiguous, time-ordered interval list plus any
	// configuration warnings. Fatal input problems (unknown satellite
	// IDs, empty catalog) return an *InputError.
	ComputeIntervals(in ComputeInput) ([]model.TransportInterval, []string, error)
}

// Availability state machine vocabulary shared by the three walkers.
const (
	stateAvailable   = "available"
	stateUnavailable = "unavailable"

	eventAcquire = "acquire"
	eventLose    = "lose"
)

// sampleState is the instantaneous availability of a transport at one
// route sample.
type sampleState struct {
	Timestamp time.Time
	Available bool
	Reason    model.AvailabilityReason
}

// walkAvailability run-length encodes a per-sample availability signal
// into the unavailable runs it contains. A two-state machine carries
// the current availability; its transitions are exactly the interval
// boundaries, so two adjacent runs with the same value can never be
// emitted. Runs are anchored to sample timestamps; a leading
// unavailable run starts at the leg start and a trailing one ends at
// the leg end.
func walkAvailability(samples []sampleState, leg TimeRange) []reasonedRange {
	if len(samples) == 0 || leg.IsEmpty() {
		return nil
	}

	var (
		runs      []reasonedRange
		runStart  time.Time
		runReason model.AvailabilityReason
	)

	initial := stateAvailable
	if !samples[0].Available {
		initial = stateUnavailable
		runStart = leg.Start
		runReason = samples[0].Reason
	}

	machine := fsm.NewFSM(initial, fsm.Events{
		{Name: eventLose, Src: []string{stateAvailable}, Dst: stateUnavailable},
		{Name: eventAcquire, Src: []string{stateUnavailable}, Dst: stateAvailable},
	}, fsm.Callbacks{
		"enter_" + stateUnavailable: func(_ context.Context, e *fsm.Event) {
			s := e.Args[0].(sampleState)
			runStart = s.Timestamp
			runReason = s.Reason
		},
		"enter_" + stateAvailable: func(_ context.Context, e *fsm.Event) {
			s := e.Args[0].(sampleState)
			runs = append(runs, reasonedRange{
				TimeRange: TimeRange{Start: runStart, End: s.Timestamp},
				Reason:    runReason,
			})
		},
	})

	ctx := context.Background()
	for _, s := range samples[1:] {
		switch {
		case s.Available && machine.Current() == stateUnavailable:
			_ = machine.Event(ctx, eventAcquire, s)
		case !s.Available && machine.Current() == stateAvailable:
			_ = machine.Event(ctx, eventLose, s)
		}
	}

	if machine.Current() == stateUnavailable {
		runs = append(runs, reasonedRange{
			TimeRange: TimeRange{Start: runStart, End: leg.End},
			Reason:    runReason,
		})
	}
	return runs
}

// expandInteriorRuns widens unavailable runs by the transition buffer,
// leaving boundaries that already sit on a leg edge in place. A run
// that begins at takeoff or ends at landing has no transition to guard
// on that side.
func expandInteriorRuns(runs []reasonedRange, leg TimeRange, buffer time.Duration) []reasonedRange {
	out := make([]reasonedRange, 0, len(runs))
	for _, run := range runs {
		expanded := run.TimeRange
		if run.Start.After(leg.Start) {
			expanded = ExpandWithBuffers(expanded, buffer, 0)
		}
		if run.End.Before(leg.End) {
			expanded = ExpandWithBuffers(expanded, 0, buffer)
		}
		out = append(out, reasonedRange{
			TimeRange: expanded.Clamp(leg),
			Reason:    run.Reason,
		})
	}
	return out
}

// handoverWindow is the ±buffer guard carved around a transition
// instant.
func handoverWindow(at time.Time, buffer time.Duration) reasonedRange {
	return reasonedRange{
		TimeRange: ExpandWithBuffers(TimeRange{Start: at, End: at}, buffer, buffer),
		Reason:    model.ReasonSatelliteHandover,
	}
}
