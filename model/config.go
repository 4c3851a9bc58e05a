package model

import "time"

// SatelliteAssignment is one entry of the X-band transition list: the
// named satellite is the active X target from ActiveFrom until the next
// assignment's ActiveFrom (or the end of the leg).
type SatelliteAssignment struct {
	SatelliteID string
	ActiveFrom  time.Time
}

// XConfig configures the fixed-satellite X link for one leg.
type XConfig struct {
	// Assignments is the time-ordered transition list. An empty list
	// means X is never scheduled for the leg.
	Assignments []SatelliteAssignment
}

// KaConfig configures the wide-coverage Ka link for one leg.
type KaConfig struct {
	// CoverageSatellites names the catalog satellites whose footprints
	// are sampled, in preference order.
	CoverageSatellites []string

	// HandoverBias shifts the handover instant inside the coverage
	// overlap window: 0 is the midpoint, -1 the start, +1 the end.
	HandoverBias float64
}

// KuConfig configures the always-on Ku link. Ku is nominal everywhere
// unless an OutageOverride says otherwise, so there is nothing to
// configure yet; the type exists so the per-transport configuration
// stays an explicit, exhaustive set of fields.
type KuConfig struct{}

// TransportConfig carries the per-leg configuration of all three
// transports as a tagged set of explicit variants.
type TransportConfig struct {
	X  XConfig
	Ka KaConfig
	Ku KuConfig
}

// WindowKind is the closed set of exclusion-window kinds.
type WindowKind int

const (
	// WindowNormal applies the standard aft azimuth-exclusion arc.
	WindowNormal WindowKind = iota
	// WindowAirRefueling inverts the arc for the duration of an
	// air-to-air refueling track.
	WindowAirRefueling
)

// String returns the wire name of the kind.
func (k WindowKind) String() string {
	switch k {
	case WindowNormal:
		return "normal"
	case WindowAirRefueling:
		return "air_refueling"
	default:
		return "unknown"
	}
}

// ExclusionWindow is a time window during which azimuth-exclusion rules
// apply to the X link, with the arc selected by Kind.
type ExclusionWindow struct {
	StartTime time.Time
	EndTime   time.Time
	Kind      WindowKind
}

// Contains reports whether t falls inside [StartTime, EndTime].
func (w ExclusionWindow) Contains(t time.Time) bool {
	return !t.Before(w.StartTime) && !t.After(w.EndTime)
}

// OutageOverride is a manual degrade/failure injection for one
// transport, primarily used for Ku (which has no geometry of its own)
// and occasionally Ka.
type OutageOverride struct {
	Transport Transport
	StartTime time.Time
	EndTime   time.Time
	Reason    string
}
