package core

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/signalsfoundry/satlink-planner/model"
)

// MergeTransportIntervals folds the three per-transport interval lists
// into one ordered sequence of non-overlapping segments. The segment
// boundaries are the union of every interval boundary across the three
// lists, so a segment edge always coincides with some transport's state
// change and each transport's state is constant inside a segment.
func MergeTransportIntervals(x, ka, ku []model.TransportInterval) []model.TimelineSegment {
	boundaries := boundaryUnion(x, ka, ku)
	if len(boundaries) < 2 {
		return nil
	}

	segments := make([]model.TimelineSegment, 0, len(boundaries)-1)
	for i := 0; i+1 < len(boundaries); i++ {
		seg := model.TimelineSegment{
			StartTime: boundaries[i],
			EndTime:   boundaries[i+1],
			XState:    stateIn(x, boundaries[i]),
			KaState:   stateIn(ka, boundaries[i]),
			KuState:   stateIn(ku, boundaries[i]),
		}
		seg.Status = ClassifySegment(seg)
		segments = append(segments, seg)
	}
	return segments
}

// ClassifySegment derives the mission status purely from the number of
// unavailable transports: 0 Nominal, 1 Degraded, 2 or more Critical.
func ClassifySegment(seg model.TimelineSegment) model.MissionStatus {
	switch seg.UnavailableCount() {
	case 0:
		return model.StatusNominal
	case 1:
		return model.StatusDegraded
	default:
		return model.StatusCritical
	}
}

// EmitAdvisories scans the segments in order and emits one advisory per
// status transition, plus one manual-action advisory per X azimuth
// exclusion (X cannot disable itself, so the operator has to). At equal
// timestamps the status-transition advisory sorts first.
func EmitAdvisories(segments []model.TimelineSegment, xIntervals []model.TransportInterval) []model.TimelineAdvisory {
	var advisories []model.TimelineAdvisory

	prev := model.StatusNominal
	for _, seg := range segments {
		if seg.Status == prev {
			continue
		}
		advisories = append(advisories, statusAdvisory(seg))
		prev = seg.Status
	}

	for _, iv := range xIntervals {
		if iv.Available || iv.Reason != model.ReasonAzimuthExcluded {
			continue
		}
		advisories = append(advisories, model.TimelineAdvisory{
			Timestamp: iv.StartTime,
			Severity:  model.AdvisoryWarning,
			Kind:      model.AdvisoryManualAction,
			Message: fmt.Sprintf("operator must disable the X transport from %s to %s (azimuth exclusion)",
				iv.StartTime.UTC().Format(time.RFC3339), iv.EndTime.UTC().Format(time.RFC3339)),
		})
	}

	sort.SliceStable(advisories, func(i, j int) bool {
		return advisories[i].Timestamp.Before(advisories[j].Timestamp)
	})
	return advisories
}

// BuildTransitionMarkers projects every status transition onto the
// route point nearest in time, for map display by the visualization
// layer.
func BuildTransitionMarkers(segments []model.TimelineSegment, route []model.RouteSample) []model.TransitionMarker {
	if len(route) == 0 {
		return nil
	}

	var markers []model.TransitionMarker
	prev := model.StatusNominal
	for _, seg := range segments {
		if seg.Status == prev {
			continue
		}
		rs := nearestSample(route, seg.StartTime)
		markers = append(markers, model.TransitionMarker{
			Timestamp: seg.StartTime,
			Latitude:  rs.Latitude,
			Longitude: rs.Longitude,
			Status:    seg.Status,
		})
		prev = seg.Status
	}
	return markers
}

// ComputeSummary derives the statistics the metrics publisher consumes.
func ComputeSummary(segments []model.TimelineSegment, perTransport map[model.Transport][]model.TransportInterval) model.TimelineSummary {
	summary := model.TimelineSummary{
		UnavailableByTransport: make(map[model.Transport]time.Duration, len(perTransport)),
	}

	for _, seg := range segments {
		switch seg.Status {
		case model.StatusDegraded:
			summary.DegradedTotal += seg.Duration()
		case model.StatusCritical:
			summary.CriticalTotal += seg.Duration()
		}
		if seg.Status != model.StatusNominal && summary.NextConflict.IsZero() {
			summary.NextConflict = seg.StartTime
		}
	}

	for tr, intervals := range perTransport {
		var total time.Duration
		for _, iv := range intervals {
			if !iv.Available {
				total += iv.Duration()
			}
		}
		summary.UnavailableByTransport[tr] = total
	}
	return summary
}

func statusAdvisory(seg model.TimelineSegment) model.TimelineAdvisory {
	adv := model.TimelineAdvisory{
		Timestamp: seg.StartTime,
		Kind:      model.AdvisoryStatusChange,
	}
	switch seg.Status {
	case model.StatusNominal:
		adv.Severity = model.AdvisoryInfo
		adv.Message = "recovered to NOMINAL"
	case model.StatusDegraded:
		adv.Severity = model.AdvisoryWarning
		adv.Message = "entering DEGRADED: " + unavailableSummary(seg)
	case model.StatusCritical:
		adv.Severity = model.AdvisoryCritical
		adv.Message = "entering CRITICAL: " + unavailableSummary(seg)
	}
	return adv
}

func unavailableSummary(seg model.TimelineSegment) string {
	states := []struct {
		tr model.Transport
		st model.TransportState
	}{
		{model.TransportX, seg.XState},
		{model.TransportKa, seg.KaState},
		{model.TransportKu, seg.KuState},
	}

	parts := make([]string, 0, 3)
	for _, s := range states {
		if !s.st.Available {
			parts = append(parts, fmt.Sprintf("%s unavailable (%s)", s.tr, s.st.Reason))
		}
	}
	return strings.Join(parts, ", ")
}

// boundaryUnion collects the sorted, de-duplicated boundary timestamps
// of the given interval lists.
func boundaryUnion(lists ...[]model.TransportInterval) []time.Time {
	var all []time.Time
	for _, list := range lists {
		for _, iv := range list {
			all = append(all, iv.StartTime, iv.EndTime)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Before(all[j]) })

	out := all[:0]
	for _, t := range all {
		if len(out) == 0 || !t.Equal(out[len(out)-1]) {
			out = append(out, t)
		}
	}
	return out
}

// stateIn returns the transport state in force at t. The last interval
// additionally owns its end instant.
func stateIn(intervals []model.TransportInterval, t time.Time) model.TransportState {
	for i, iv := range intervals {
		if iv.Contains(t) || (i == len(intervals)-1 && t.Equal(iv.EndTime)) {
			return model.TransportState{Available: iv.Available, Reason: iv.Reason}
		}
	}
	return model.TransportState{Available: true, Reason: model.ReasonNominal}
}

func nearestSample(route []model.RouteSample, t time.Time) model.RouteSample {
	best := route[0]
	bestDelta := absDuration(t.Sub(best.Timestamp))
	for _, rs := range route[1:] {
		if d := absDuration(t.Sub(rs.Timestamp)); d < bestDelta {
			best, bestDelta = rs, d
		}
	}
	return best
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
