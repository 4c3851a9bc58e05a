package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/signalsfoundry/satlink-planner/model"
)

// XEvaluator computes availability for the fixed-satellite X link. X is
// available while the currently-assigned satellite is active and the
// route point's azimuth to it is not excluded by the window kind in
// force; every assignment change carves a ±buffer handover guard.
type XEvaluator struct {
	// Buffer is the transition guard applied around interior
	// availability transitions and handovers. Zero disables the guard;
	// callers wanting the standard one set DefaultTransitionBuffer.
	Buffer time.Duration
}

func (e *XEvaluator) Transport() model.Transport { return model.TransportX }

func (e *XEvaluator) ComputeIntervals(in ComputeInput) ([]model.TransportInterval, []string, error) {
	leg := legRange(in.Route)
	buffer := e.Buffer

	assignments := sortedAssignments(in.Config.X.Assignments)
	if len(assignments) > 0 && in.Catalog.Size() == 0 {
		return nil, nil, inputErr("transport_config.x", ErrEmptyCatalog)
	}

	subModels := make(map[string]SubPointModel, len(assignments))
	for _, a := range assignments {
		if _, ok := subModels[a.SatelliteID]; ok {
			continue
		}
		def, ok := in.Catalog.Satellite(a.SatelliteID)
		if !ok {
			return nil, nil, inputErr("transport_config.x",
				fmt.Errorf("%w: %q", ErrUnknownSatellite, a.SatelliteID))
		}
		subModels[a.SatelliteID] = NewSubPointModel(def)
	}

	warnings := neverActiveWarnings(assignments, leg)

	samples := make([]sampleState, 0, len(in.Route))
	for _, rs := range in.Route {
		state := sampleState{Timestamp: rs.Timestamp, Available: true, Reason: model.ReasonNominal}

		a := activeAssignment(assignments, rs.Timestamp)
		if a == nil {
			state.Available = false
			state.Reason = model.ReasonNotScheduled
			samples = append(samples, state)
			continue
		}

		sub := subModels[a.SatelliteID].SubSatellitePoint(rs.Timestamp)
		_, azimuth, err := LookAngle(rs.Point(), sub)
		if err != nil {
			return nil, nil, inputErr("route", err)
		}

		if w := windowAt(in.ExclusionWindows, rs.Timestamp); w != nil {
			if IsAzimuthExcluded(azimuth, w.Kind) {
				state.Available = false
				state.Reason = model.ReasonAzimuthExcluded
			}
		}
		samples = append(samples, state)
	}

	outages := expandInteriorRuns(walkAvailability(samples, leg), leg, buffer)

	for i := 1; i < len(assignments); i++ {
		if assignments[i].SatelliteID == assignments[i-1].SatelliteID {
			continue
		}
		at := assignments[i].ActiveFrom
		if at.After(leg.Start) && at.Before(leg.End) {
			outages = append(outages, handoverWindow(at, buffer))
		}
	}

	outages = append(outages, overrideWindows(model.TransportX, in.Overrides)...)

	return buildIntervals(model.TransportX, leg, outages), warnings, nil
}

// sortedAssignments returns the transition list ordered by ActiveFrom
// without mutating the input.
func sortedAssignments(assignments []model.SatelliteAssignment) []model.SatelliteAssignment {
	out := make([]model.SatelliteAssignment, len(assignments))
	copy(out, assignments)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ActiveFrom.Before(out[j].ActiveFrom)
	})
	return out
}

// activeAssignment returns the assignment in force at t: the latest
// entry whose ActiveFrom is not after t, or nil when none is active yet.
func activeAssignment(assignments []model.SatelliteAssignment, t time.Time) *model.SatelliteAssignment {
	var active *model.SatelliteAssignment
	for i := range assignments {
		if assignments[i].ActiveFrom.After(t) {
			break
		}
		active = &assignments[i]
	}
	return active
}

// windowAt returns the first exclusion window containing t, or nil.
func windowAt(windows []model.ExclusionWindow, t time.Time) *model.ExclusionWindow {
	for i := range windows {
		if windows[i].Contains(t) {
			return &windows[i]
		}
	}
	return nil
}

// neverActiveWarnings flags assignments whose effective range inside
// the leg is empty: the satellite is referenced but never scheduled
// active. Computation proceeds; the reference is just dead config.
func neverActiveWarnings(assignments []model.SatelliteAssignment, leg TimeRange) []string {
	var warnings []string
	for i, a := range assignments {
		start := a.ActiveFrom
		if start.Before(leg.Start) {
			start = leg.Start
		}
		end := leg.End
		if i+1 < len(assignments) && assignments[i+1].ActiveFrom.Before(end) {
			end = assignments[i+1].ActiveFrom
		}
		if !end.After(start) {
			warnings = append(warnings,
				fmt.Sprintf("satellite %q is referenced by an X assignment but never active during the leg", a.SatelliteID))
		}
	}
	return warnings
}

// legRange returns the [first, last] timestamp range of a route.
func legRange(route []model.RouteSample) TimeRange {
	return TimeRange{Start: model.RouteStart(route), End: model.RouteEnd(route)}
}
