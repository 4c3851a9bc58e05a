package core

import (
	"time"

	"github.com/signalsfoundry/satlink-planner/model"
)

// Azimuth-exclusion arcs, degrees. Under a normal window the aft arc
// applies; during air refueling the arc is inverted to the nose arc.
// Both arcs always exist, and the window kind at the current timestamp
// selects which one is in force.
const (
	normalArcStartDeg = 135.0
	normalArcEndDeg   = 225.0

	refuelArcStartDeg = 315.0 // [315, 360)
	refuelArcEndDeg   = 45.0  // ∪ [0, 45]
)

// DefaultTransitionBuffer is the standard guard interval around every
// availability transition and satellite handover: the affected
// transport is treated as degraded for ±15 minutes regardless of raw
// geometric or coverage availability.
const DefaultTransitionBuffer = 15 * time.Minute

// IsAzimuthExcluded reports whether an aircraft-to-satellite azimuth
// falls inside the exclusion arc selected by the window kind. The
// evaluation is pure: same inputs always produce the same answer.
func IsAzimuthExcluded(azimuthDeg float64, kind model.WindowKind) bool {
	az := NormalizeAzimuth(azimuthDeg)
	switch kind {
	case model.WindowNormal:
		return az >= normalArcStartDeg && az <= normalArcEndDeg
	case model.WindowAirRefueling:
		return az >= refuelArcStartDeg || az <= refuelArcEndDeg
	default:
		// Unknown kinds never reach here via the loader; fail closed
		// with the normal arc.
		return az >= normalArcStartDeg && az <= normalArcEndDeg
	}
}

// ExpandWithBuffers widens a time range by the pre and post buffers.
// The transport state machines apply this to unavailable windows before
// finalizing interval boundaries, so a 20-minute exclusion with the
// default buffers becomes a 50-minute degraded window.
func ExpandWithBuffers(r TimeRange, preBuffer, postBuffer time.Duration) TimeRange {
	return TimeRange{
		Start: r.Start.Add(-preBuffer),
		End:   r.End.Add(postBuffer),
	}
}
