package model

import "time"

// MissionStatus classifies a timeline segment by how many transports
// are unavailable: 0 is Nominal, 1 Degraded, 2 or 3 Critical.
type MissionStatus int

const (
	StatusNominal MissionStatus = iota
	StatusDegraded
	StatusCritical
)

// String returns a display name for the status.
func (s MissionStatus) String() string {
	switch s {
	case StatusNominal:
		return "NOMINAL"
	case StatusDegraded:
		return "DEGRADED"
	case StatusCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// TransportState is one transport's state inside a timeline segment.
type TransportState struct {
	Available bool
	Reason    AvailabilityReason
}

// TimelineSegment is one run of the merged mission timeline. Segments
// are disjoint and contiguous over the leg, and every segment boundary
// coincides with some transport's interval boundary.
type TimelineSegment struct {
	StartTime time.Time
	EndTime   time.Time

	XState  TransportState
	KaState TransportState
	KuState TransportState

	Status MissionStatus
}

// Duration returns the segment's length.
func (s TimelineSegment) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// UnavailableCount returns how many of the three transports are down
// in this segment.
func (s TimelineSegment) UnavailableCount() int {
	n := 0
	for _, st := range []TransportState{s.XState, s.KaState, s.KuState} {
		if !st.Available {
			n++
		}
	}
	return n
}

// AdvisorySeverity grades a TimelineAdvisory.
type AdvisorySeverity int

const (
	AdvisoryInfo AdvisorySeverity = iota
	AdvisoryWarning
	AdvisoryCritical
)

// String returns a display name for the severity.
func (s AdvisorySeverity) String() string {
	switch s {
	case AdvisoryInfo:
		return "INFO"
	case AdvisoryWarning:
		return "WARNING"
	case AdvisoryCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// AdvisoryKind distinguishes automatic status-transition advisories
// from ones that require a manual operator action (the X link cannot
// disable itself during an azimuth exclusion).
type AdvisoryKind int

const (
	AdvisoryStatusChange AdvisoryKind = iota
	AdvisoryManualAction
)

// TimelineAdvisory is a generated notice attached to the timeline.
type TimelineAdvisory struct {
	Timestamp time.Time
	Severity  AdvisorySeverity
	Kind      AdvisoryKind
	Message   string
}

// TransitionMarker is a display artifact: the route point nearest a
// segment boundary, tagged with the status entered there.
type TransitionMarker struct {
	Timestamp time.Time
	Latitude  float64
	Longitude float64
	Status    MissionStatus
}

// TimelineSummary carries the derived statistics the metrics publisher
// consumes.
type TimelineSummary struct {
	// NextConflict is the start of the first non-Nominal segment, or
	// the zero time when the whole leg is Nominal.
	NextConflict time.Time

	DegradedTotal time.Duration
	CriticalTotal time.Duration

	// UnavailableByTransport is each transport's total unavailable
	// duration over the leg.
	UnavailableByTransport map[Transport]time.Duration
}

// MissionTimeline is the computed availability plan for one mission
// leg. It is rebuilt from scratch on every computation; the engine
// hands it to the caller and keeps no reference.
type MissionTimeline struct {
	Segments   []TimelineSegment
	Advisories []TimelineAdvisory
	Markers    []TransitionMarker
	Summary    TimelineSummary

	// Warnings records non-fatal configuration findings (zero-polygon
	// coverage sources, satellites never scheduled active).
	Warnings []string
}

// ActivePhase returns the mission status at the given instant, or
// StatusNominal when the instant falls outside every segment.
func (mt *MissionTimeline) ActivePhase(at time.Time) MissionStatus {
	for i, seg := range mt.Segments {
		if !at.Before(seg.StartTime) && at.Before(seg.EndTime) {
			return seg.Status
		}
		// The last segment owns its end instant.
		if i == len(mt.Segments)-1 && at.Equal(seg.EndTime) {
			return seg.Status
		}
	}
	return StatusNominal
}
