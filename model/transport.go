package model

import "time"

// Transport identifies one of the three independent mission links.
type Transport string

const (
	TransportX  Transport = "X"
	TransportKa Transport = "Ka"
	TransportKu Transport = "Ku"
)

// AllTransports lists the transports in their canonical order.
func AllTransports() []Transport {
	return []Transport{TransportX, TransportKa, TransportKu}
}

// AvailabilityReason is a coarse reason code attached to a
// TransportInterval. Available intervals carry ReasonNominal; the other
// codes explain why an interval is unavailable.
type AvailabilityReason string

const (
	ReasonNominal           AvailabilityReason = "nominal"
	ReasonAzimuthExcluded   AvailabilityReason = "azimuth_excluded"
	ReasonNoCoverage        AvailabilityReason = "no_coverage"
	ReasonSatelliteHandover AvailabilityReason = "satellite_handover"
	ReasonManualOutage      AvailabilityReason = "manual_outage"
	ReasonNotScheduled      AvailabilityReason = "not_scheduled"
)

// TransportInterval is one run of constant availability for a single
// transport. A transport's interval list is time-ordered, disjoint, and
// contiguous over the whole leg: "unavailable" is itself an interval,
// never a gap.
type TransportInterval struct {
	Transport Transport
	StartTime time.Time
	EndTime   time.Time
	Available bool
	Reason    AvailabilityReason
}

// Duration returns the interval's length.
func (ti TransportInterval) Duration() time.Duration {
	return ti.EndTime.Sub(ti.StartTime)
}

// Contains reports whether t falls inside the half-open range
// [StartTime, EndTime). The final interval of a leg additionally owns
// its end instant; callers resolve that boundary case themselves.
func (ti TransportInterval) Contains(t time.Time) bool {
	return !t.Before(ti.StartTime) && t.Before(ti.EndTime)
}
