package core

import (
	"testing"
	"time"

	"github.com/signalsfoundry/satlink-planner/model"
)

// The two arcs invert under an air-refueling window: a nose azimuth of
// 0° is fine normally and excluded while refueling.
func TestAzimuthExclusionInverts(t *testing.T) {
	if IsAzimuthExcluded(0, model.WindowNormal) {
		t.Error("IsAzimuthExcluded(0, normal) = true, want false")
	}
	if !IsAzimuthExcluded(0, model.WindowAirRefueling) {
		t.Error("IsAzimuthExcluded(0, air_refueling) = false, want true")
	}
	if !IsAzimuthExcluded(180, model.WindowNormal) {
		t.Error("IsAzimuthExcluded(180, normal) = false, want true")
	}
	if IsAzimuthExcluded(180, model.WindowAirRefueling) {
		t.Error("IsAzimuthExcluded(180, air_refueling) = true, want false")
	}
}

func TestAzimuthExclusionArcBoundaries(t *testing.T) {
	cases := []struct {
		azimuth float64
		kind    model.WindowKind
		want    bool
	}{
		{135, model.WindowNormal, true},
		{225, model.WindowNormal, true},
		{134.9, model.WindowNormal, false},
		{225.1, model.WindowNormal, false},
		{315, model.WindowAirRefueling, true},
		{45, model.WindowAirRefueling, true},
		{314.9, model.WindowAirRefueling, false},
		{45.1, model.WindowAirRefueling, false},
	}
	for _, c := range cases {
		if got := IsAzimuthExcluded(c.azimuth, c.kind); got != c.want {
			t.Errorf("IsAzimuthExcluded(%v, %v) = %v, want %v", c.azimuth, c.kind, got, c.want)
		}
	}
}

func TestAzimuthExclusionNormalizesInput(t *testing.T) {
	// -180 normalizes onto the aft arc.
	if !IsAzimuthExcluded(-180, model.WindowNormal) {
		t.Error("IsAzimuthExcluded(-180, normal) = false, want true")
	}
	if !IsAzimuthExcluded(360, model.WindowAirRefueling) {
		t.Error("IsAzimuthExcluded(360, air_refueling) = false, want true")
	}
}

func TestExpandWithBuffers(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := TimeRange{Start: start, End: start.Add(20 * time.Minute)}

	out := ExpandWithBuffers(r, 15*time.Minute, 15*time.Minute)

	if got, want := out.Start, start.Add(-15*time.Minute); !got.Equal(want) {
		t.Errorf("Start = %v, want %v", got, want)
	}
	if got, want := out.End, start.Add(35*time.Minute); !got.Equal(want) {
		t.Errorf("End = %v, want %v", got, want)
	}
	if got, want := out.Duration(), 50*time.Minute; got != want {
		t.Errorf("Duration = %v, want %v", got, want)
	}
}
