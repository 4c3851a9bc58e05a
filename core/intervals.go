package core

import (
	"time"

	"github.com/signalsfoundry/satlink-planner/model"
)

// TimeRange is a half-open time window [Start, End).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Duration returns the range's length.
func (r TimeRange) Duration() time.Duration { return r.End.Sub(r.Start) }

// IsEmpty reports whether the range covers no time at all.
func (r TimeRange) IsEmpty() bool { return !r.End.After(r.Start) }

// Clamp restricts the range to the given bounds.
func (r TimeRange) Clamp(bounds TimeRange) TimeRange {
	out := r
	if out.Start.Before(bounds.Start) {
		out.Start = bounds.Start
	}
	if out.End.After(bounds.End) {
		out.End = bounds.End
	}
	return out
}

// Intersect returns the overlap of two ranges; the result is empty when
// they do not overlap.
func (r TimeRange) Intersect(other TimeRange) TimeRange {
	out := r
	if other.Start.After(out.Start) {
		out.Start = other.Start
	}
	if other.End.Before(out.End) {
		out.End = other.End
	}
	return out
}

// reasonedRange is a time window tagged with the reason it is
// unavailable.
type reasonedRange struct {
	TimeRange
	Reason model.AvailabilityReason
}

// fullLegIntervals is the starting point of every transport's interval
// construction: one available interval spanning the whole leg.
func fullLegIntervals(tr model.Transport, leg TimeRange) []model.TransportInterval {
	if leg.IsEmpty() {
		return nil
	}
	return []model.TransportInterval{{
		Transport: tr,
		StartTime: leg.Start,
		EndTime:   leg.End,
		Available: true,
		Reason:    model.ReasonNominal,
	}}
}

// carveUnavailable forces the window w to be unavailable inside an
// otherwise contiguous interval list, splitting intervals at the exact
// window boundaries. Intervals that are already unavailable keep their
// original reason: the first cause wins.
func carveUnavailable(intervals []model.TransportInterval, w TimeRange, reason model.AvailabilityReason) []model.TransportInterval {
	if w.IsEmpty() {
		return intervals
	}

	out := make([]model.TransportInterval, 0, len(intervals)+2)
	for _, iv := range intervals {
		ivRange := TimeRange{Start: iv.StartTime, End: iv.EndTime}
		overlap := ivRange.Intersect(w)
		if overlap.IsEmpty() || !iv.Available {
			out = append(out, iv)
			continue
		}

		if overlap.Start.After(iv.StartTime) {
			left := iv
			left.EndTime = overlap.Start
			out = append(out, left)
		}
		out = append(out, model.TransportInterval{
			Transport: iv.Transport,
			StartTime: overlap.Start,
			EndTime:   overlap.End,
			Available: false,
			Reason:    reason,
		})
		if iv.EndTime.After(overlap.End) {
			right := iv
			right.StartTime = overlap.End
			out = append(out, right)
		}
	}
	return out
}

// normalizeIntervals merges adjacent intervals with the same
// availability, enforcing the per-transport output invariant: two
// adjacent intervals with identical available values are never both
// emitted. The earlier interval's reason survives a merge.
func normalizeIntervals(intervals []model.TransportInterval) []model.TransportInterval {
	if len(intervals) == 0 {
		return nil
	}

	out := make([]model.TransportInterval, 0, len(intervals))
	out = append(out, intervals[0])
	for _, iv := range intervals[1:] {
		last := &out[len(out)-1]
		if iv.Available == last.Available {
			last.EndTime = iv.EndTime
			continue
		}
		out = append(out, iv)
	}
	return out
}

// buildIntervals assembles a transport's final interval list from the
// leg range and a set of unavailable windows: start fully available,
// carve each window, then normalize. The windows must already carry any
// buffer expansion; they are clamped to the leg here.
func buildIntervals(tr model.Transport, leg TimeRange, outages []reasonedRange) []model.TransportInterval {
	intervals := fullLegIntervals(tr, leg)
	for _, o := range outages {
		intervals = carveUnavailable(intervals, o.Clamp(leg), o.Reason)
	}
	return normalizeIntervals(intervals)
}

// overrideWindows extracts the manual outage windows that apply to one
// transport.
func overrideWindows(tr model.Transport, overrides []model.OutageOverride) []reasonedRange {
	var out []reasonedRange
	for _, o := range overrides {
		if o.Transport != tr {
			continue
		}
		out = append(out, reasonedRange{
			TimeRange: TimeRange{Start: o.StartTime, End: o.EndTime},
			Reason:    model.ReasonManualOutage,
		})
	}
	return out
}
