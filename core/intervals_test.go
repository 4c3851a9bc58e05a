package core

import (
	"testing"
	"time"

	"github.com/signalsfoundry/satlink-planner/model"
)

var intervalsT0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func minutes(m int) time.Time { return intervalsT0.Add(time.Duration(m) * time.Minute) }

// assertContiguous checks the per-transport output invariant: ordered,
// gapless, and never two adjacent intervals with the same availability.
func assertContiguous(t *testing.T, intervals []model.TransportInterval, leg TimeRange) {
	t.Helper()

	if len(intervals) == 0 {
		t.Fatal("no intervals emitted")
	}
	if !intervals[0].StartTime.Equal(leg.Start) {
		t.Errorf("first interval starts at %v, want %v", intervals[0].StartTime, leg.Start)
	}
	if !intervals[len(intervals)-1].EndTime.Equal(leg.End) {
		t.Errorf("last interval ends at %v, want %v", intervals[len(intervals)-1].EndTime, leg.End)
	}
	for i, iv := range intervals {
		if !iv.EndTime.After(iv.StartTime) {
			t.Errorf("interval %d is empty: [%v, %v)", i, iv.StartTime, iv.EndTime)
		}
		if i == 0 {
			continue
		}
		if !iv.StartTime.Equal(intervals[i-1].EndTime) {
			t.Errorf("gap before interval %d: %v != %v", i, intervals[i-1].EndTime, iv.StartTime)
		}
		if iv.Available == intervals[i-1].Available {
			t.Errorf("intervals %d and %d have the same availability", i-1, i)
		}
	}
}

func TestCarveUnavailableSplitsAtExactBoundaries(t *testing.T) {
	leg := TimeRange{Start: minutes(0), End: minutes(120)}
	intervals := fullLegIntervals(model.TransportKu, leg)

	out := carveUnavailable(intervals, TimeRange{Start: minutes(30), End: minutes(50)}, model.ReasonManualOutage)

	if len(out) != 3 {
		t.Fatalf("got %d intervals, want 3", len(out))
	}
	mid := out[1]
	if mid.Available {
		t.Error("carved interval still available")
	}
	if mid.Reason != model.ReasonManualOutage {
		t.Errorf("carved reason = %v, want manual_outage", mid.Reason)
	}
	if !mid.StartTime.Equal(minutes(30)) || !mid.EndTime.Equal(minutes(50)) {
		t.Errorf("carved range = [%v, %v), want [30m, 50m)", mid.StartTime, mid.EndTime)
	}
}

func TestCarveUnavailableFirstCauseWins(t *testing.T) {
	leg := TimeRange{Start: minutes(0), End: minutes(120)}
	intervals := fullLegIntervals(model.TransportX, leg)

	intervals = carveUnavailable(intervals, TimeRange{Start: minutes(30), End: minutes(60)}, model.ReasonAzimuthExcluded)
	intervals = carveUnavailable(intervals, TimeRange{Start: minutes(40), End: minutes(50)}, model.ReasonManualOutage)

	for _, iv := range intervals {
		if !iv.Available && iv.Reason != model.ReasonAzimuthExcluded {
			t.Errorf("interval [%v, %v) reason = %v, want azimuth_excluded", iv.StartTime, iv.EndTime, iv.Reason)
		}
	}
}

func TestCarveUnavailableIgnoresEmptyAndOutsideWindows(t *testing.T) {
	leg := TimeRange{Start: minutes(0), End: minutes(60)}
	intervals := fullLegIntervals(model.TransportKa, leg)

	out := carveUnavailable(intervals, TimeRange{Start: minutes(10), End: minutes(10)}, model.ReasonNoCoverage)
	if len(out) != 1 {
		t.Fatalf("empty window carved: got %d intervals, want 1", len(out))
	}

	out = carveUnavailable(intervals, TimeRange{Start: minutes(70), End: minutes(90)}.Clamp(leg), model.ReasonNoCoverage)
	if len(out) != 1 || !out[0].Available {
		t.Fatalf("window outside the leg carved the timeline: %+v", out)
	}
}

func TestNormalizeIntervalsMergesAdjacentRuns(t *testing.T) {
	in := []model.TransportInterval{
		{Transport: model.TransportKa, StartTime: minutes(0), EndTime: minutes(10), Available: false, Reason: model.ReasonNoCoverage},
		{Transport: model.TransportKa, StartTime: minutes(10), EndTime: minutes(20), Available: false, Reason: model.ReasonSatelliteHandover},
		{Transport: model.TransportKa, StartTime: minutes(20), EndTime: minutes(60), Available: true, Reason: model.ReasonNominal},
	}

	out := normalizeIntervals(in)

	if len(out) != 2 {
		t.Fatalf("got %d intervals, want 2", len(out))
	}
	if !out[0].EndTime.Equal(minutes(20)) {
		t.Errorf("merged end = %v, want 20m", out[0].EndTime)
	}
	// The earlier reason survives.
	if out[0].Reason != model.ReasonNoCoverage {
		t.Errorf("merged reason = %v, want no_coverage", out[0].Reason)
	}
}

func TestBuildIntervalsContiguity(t *testing.T) {
	leg := TimeRange{Start: minutes(0), End: minutes(120)}
	outages := []reasonedRange{
		{TimeRange: TimeRange{Start: minutes(20), End: minutes(40)}, Reason: model.ReasonNoCoverage},
		{TimeRange: TimeRange{Start: minutes(35), End: minutes(55)}, Reason: model.ReasonSatelliteHandover},
		{TimeRange: TimeRange{Start: minutes(-10), End: minutes(5)}, Reason: model.ReasonManualOutage},
	}

	out := buildIntervals(model.TransportKa, leg, outages)
	assertContiguous(t, out, leg)

	// The overlapping windows collapse into one unavailable run.
	var downRuns int
	for _, iv := range out {
		if !iv.Available {
			downRuns++
		}
	}
	if downRuns != 2 {
		t.Errorf("got %d unavailable runs, want 2", downRuns)
	}
}

func TestOverrideWindowsFiltersByTransport(t *testing.T) {
	overrides := []model.OutageOverride{
		{Transport: model.TransportKu, StartTime: minutes(0), EndTime: minutes(10)},
		{Transport: model.TransportX, StartTime: minutes(20), EndTime: minutes(30)},
	}

	out := overrideWindows(model.TransportKu, overrides)

	if len(out) != 1 {
		t.Fatalf("got %d windows, want 1", len(out))
	}
	if out[0].Reason != model.ReasonManualOutage {
		t.Errorf("reason = %v, want manual_outage", out[0].Reason)
	}
}

func TestTimeRangeIntersectAndClamp(t *testing.T) {
	a := TimeRange{Start: minutes(0), End: minutes(60)}
	b := TimeRange{Start: minutes(40), End: minutes(90)}

	got := a.Intersect(b)
	if !got.Start.Equal(minutes(40)) || !got.End.Equal(minutes(60)) {
		t.Errorf("Intersect = [%v, %v), want [40m, 60m)", got.Start, got.End)
	}

	disjoint := a.Intersect(TimeRange{Start: minutes(70), End: minutes(80)})
	if !disjoint.IsEmpty() {
		t.Errorf("disjoint Intersect not empty: [%v, %v)", disjoint.Start, disjoint.End)
	}

	clamped := TimeRange{Start: minutes(-20), End: minutes(200)}.Clamp(a)
	if !clamped.Start.Equal(a.Start) || !clamped.End.Equal(a.End) {
		t.Errorf("Clamp = [%v, %v), want [%v, %v)", clamped.Start, clamped.End, a.Start, a.End)
	}
}
