package core

import (
	"testing"
	"time"

	"github.com/signalsfoundry/satlink-planner/model"
)

func boxRegion(latMin, latMax, lonMin, lonMax float64) model.CoverageRegion {
	return model.CoverageRegion{Vertices: []model.GeoPoint{
		{Latitude: latMin, Longitude: lonMin},
		{Latitude: latMin, Longitude: lonMax},
		{Latitude: latMax, Longitude: lonMax},
		{Latitude: latMax, Longitude: lonMin},
	}}
}

func TestIsCoveredInsideBox(t *testing.T) {
	coverage := []model.CoverageRegion{boxRegion(10, 50, -20, 20)}

	if !IsCovered(model.GeoPoint{Latitude: 30, Longitude: 0}, coverage) {
		t.Error("point inside box reported uncovered")
	}
	if IsCovered(model.GeoPoint{Latitude: 60, Longitude: 0}, coverage) {
		t.Error("point north of box reported covered")
	}
	if IsCovered(model.GeoPoint{Latitude: 30, Longitude: 40}, coverage) {
		t.Error("point east of box reported covered")
	}
}

func TestIsCoveredAcrossAntimeridian(t *testing.T) {
	// A footprint straddling ±180°: from 160°E across to 160°W.
	coverage := []model.CoverageRegion{{Vertices: []model.GeoPoint{
		{Latitude: 10, Longitude: 160},
		{Latitude: 10, Longitude: -160},
		{Latitude: 30, Longitude: -160},
		{Latitude: 30, Longitude: 160},
	}}}

	cases := []struct {
		lon  float64
		want bool
	}{
		{170, true},
		{180, true},
		{-175, true},
		{-165, true},
		{150, false},
		{-150, false},
		{0, false},
	}
	for _, c := range cases {
		p := model.GeoPoint{Latitude: 20, Longitude: c.lon}
		if got := IsCovered(p, coverage); got != c.want {
			t.Errorf("IsCovered(lon=%v) = %v, want %v", c.lon, got, c.want)
		}
	}
}

func TestIsCoveredIncludesRingBoundary(t *testing.T) {
	coverage := []model.CoverageRegion{boxRegion(10, 50, -20, 20)}

	cases := []struct {
		name     string
		lat, lon float64
	}{
		{"east edge", 30, 20},
		{"west edge", 30, -20},
		{"north edge", 50, 0},
		{"corner", 10, -20},
	}
	for _, c := range cases {
		if !IsCovered(model.GeoPoint{Latitude: c.lat, Longitude: c.lon}, coverage) {
			t.Errorf("%s (%v, %v) reported uncovered", c.name, c.lat, c.lon)
		}
	}

	// The eastern edge of a footprint that straddles ±180°: a sample at
	// 160°W sits exactly on the unwrapped ring boundary and must still
	// count as covered.
	straddling := []model.CoverageRegion{{Vertices: []model.GeoPoint{
		{Latitude: 10, Longitude: 160},
		{Latitude: 10, Longitude: -160},
		{Latitude: 30, Longitude: -160},
		{Latitude: 30, Longitude: 160},
	}}}
	if !IsCovered(model.GeoPoint{Latitude: 20, Longitude: -160}, straddling) {
		t.Error("point on the straddling ring's eastern edge reported uncovered")
	}
}

func TestIsCoveredIgnoresDegenerateRings(t *testing.T) {
	coverage := []model.CoverageRegion{
		{Vertices: []model.GeoPoint{{Latitude: 0, Longitude: 0}, {Latitude: 10, Longitude: 10}}},
	}
	if IsCovered(model.GeoPoint{Latitude: 5, Longitude: 5}, coverage) {
		t.Error("two-vertex ring must cover nothing")
	}
	if IsCovered(model.GeoPoint{Latitude: 5, Longitude: 5}, nil) {
		t.Error("empty coverage must cover nothing")
	}
}

func TestIsCoveredAnyRegionSuffices(t *testing.T) {
	coverage := []model.CoverageRegion{
		boxRegion(0, 10, 0, 10),
		boxRegion(40, 50, 40, 50),
	}
	if !IsCovered(model.GeoPoint{Latitude: 45, Longitude: 45}, coverage) {
		t.Error("point inside the second region reported uncovered")
	}
}

func TestSampleCoverageAlongRoute(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	route := []model.RouteSample{
		{Timestamp: start, Latitude: 30, Longitude: 0},
		{Timestamp: start.Add(10 * time.Minute), Latitude: 60, Longitude: 0},
		{Timestamp: start.Add(20 * time.Minute), Latitude: 30, Longitude: 5},
	}
	coverage := []model.CoverageRegion{boxRegion(10, 50, -20, 20)}

	samples := SampleCoverageAlongRoute(route, coverage)

	if len(samples) != len(route) {
		t.Fatalf("got %d samples, want %d", len(samples), len(route))
	}
	want := []bool{true, false, true}
	for i, w := range want {
		if samples[i].Covered != w {
			t.Errorf("samples[%d].Covered = %v, want %v", i, samples[i].Covered, w)
		}
		if !samples[i].Timestamp.Equal(route[i].Timestamp) {
			t.Errorf("samples[%d].Timestamp = %v, want %v", i, samples[i].Timestamp, route[i].Timestamp)
		}
	}
}
