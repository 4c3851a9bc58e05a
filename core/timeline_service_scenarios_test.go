package core

import (
	"context"
	"testing"
	"time"

	"github.com/signalsfoundry/satlink-planner/model"
)

// End-to-end runs of the full service over small mission legs.

func twoHourInput() ComputeInput {
	return ComputeInput{
		Route: levelRoute(minutes(0), 40, 0, 0, 13, 10*time.Minute),
		Config: model.TransportConfig{
			X:  model.XConfig{Assignments: []model.SatelliteAssignment{{SatelliteID: "geo-1", ActiveFrom: minutes(0)}}},
			Ka: model.KaConfig{CoverageSatellites: []string{"ka-1"}},
		},
		Catalog: mapCatalog{
			"geo-1": geoSat("geo-1", 0),
			"ka-1":  coverageSat("ka-1", boxRegion(0, 60, -40, 40)),
		},
	}
}

func TestScenarioQuietLegIsSingleNominalSegment(t *testing.T) {
	svc := NewTimelineService(nil)

	mt, err := svc.ComputeTimeline(context.Background(), twoHourInput())
	if err != nil {
		t.Fatalf("ComputeTimeline failed: %v", err)
	}

	if len(mt.Segments) != 1 {
		t.Fatalf("got %d segments, want 1: %+v", len(mt.Segments), mt.Segments)
	}
	seg := mt.Segments[0]
	if seg.Status != model.StatusNominal {
		t.Errorf("status = %v, want NOMINAL", seg.Status)
	}
	if !seg.StartTime.Equal(minutes(0)) || !seg.EndTime.Equal(minutes(120)) {
		t.Errorf("segment = [%v, %v), want the whole leg", seg.StartTime, seg.EndTime)
	}
	if len(mt.Advisories) != 0 || len(mt.Markers) != 0 {
		t.Errorf("quiet leg produced advisories %v, markers %v", mt.Advisories, mt.Markers)
	}
	if !mt.Summary.NextConflict.IsZero() {
		t.Errorf("NextConflict = %v, want zero", mt.Summary.NextConflict)
	}
}

func TestScenarioAzimuthExclusionDegradesMiddleOfLeg(t *testing.T) {
	svc := NewTimelineService(nil)
	in := twoHourInput()
	// The route looks due south at the satellite (azimuth 180), inside
	// the normal aft arc for the duration of the window.
	in.ExclusionWindows = []model.ExclusionWindow{
		{StartTime: minutes(50), EndTime: minutes(70), Kind: model.WindowNormal},
	}

	mt, err := svc.ComputeTimeline(context.Background(), in)
	if err != nil {
		t.Fatalf("ComputeTimeline failed: %v", err)
	}

	if len(mt.Segments) != 3 {
		t.Fatalf("got %d segments, want 3: %+v", len(mt.Segments), mt.Segments)
	}
	wantStatus := []model.MissionStatus{model.StatusNominal, model.StatusDegraded, model.StatusNominal}
	for i, want := range wantStatus {
		if mt.Segments[i].Status != want {
			t.Errorf("segments[%d].Status = %v, want %v", i, mt.Segments[i].Status, want)
		}
	}

	degraded := mt.Segments[1]
	if !degraded.StartTime.Equal(minutes(35)) || !degraded.EndTime.Equal(minutes(95)) {
		t.Errorf("degraded segment = [%v, %v), want [35m, 95m)", degraded.StartTime, degraded.EndTime)
	}
	if degraded.XState.Available || degraded.XState.Reason != model.ReasonAzimuthExcluded {
		t.Errorf("X state = %+v, want down (azimuth_excluded)", degraded.XState)
	}

	// Status change, manual action, recovery.
	if len(mt.Advisories) != 3 {
		t.Fatalf("got %d advisories, want 3: %+v", len(mt.Advisories), mt.Advisories)
	}
	if mt.Advisories[1].Kind != model.AdvisoryManualAction {
		t.Errorf("advisories[1].Kind = %v, want manual action", mt.Advisories[1].Kind)
	}
	if len(mt.Markers) != 2 {
		t.Errorf("got %d markers, want 2", len(mt.Markers))
	}
}

func TestScenarioOverlappingKuOutageGoesCritical(t *testing.T) {
	svc := NewTimelineService(nil)
	in := twoHourInput()
	in.ExclusionWindows = []model.ExclusionWindow{
		{StartTime: minutes(50), EndTime: minutes(70), Kind: model.WindowNormal},
	}
	in.Overrides = []model.OutageOverride{
		{Transport: model.TransportKu, StartTime: minutes(40), EndTime: minutes(90), Reason: "modem swap"},
	}

	mt, err := svc.ComputeTimeline(context.Background(), in)
	if err != nil {
		t.Fatalf("ComputeTimeline failed: %v", err)
	}

	// X is down [35m, 95m) and Ku [40m, 90m): their overlap is
	// Critical, its shoulders Degraded.
	wantStatus := []model.MissionStatus{
		model.StatusNominal,
		model.StatusDegraded,
		model.StatusCritical,
		model.StatusDegraded,
		model.StatusNominal,
	}
	if len(mt.Segments) != len(wantStatus) {
		t.Fatalf("got %d segments, want %d: %+v", len(mt.Segments), len(wantStatus), mt.Segments)
	}
	for i, want := range wantStatus {
		if mt.Segments[i].Status != want {
			t.Errorf("segments[%d].Status = %v, want %v", i, mt.Segments[i].Status, want)
		}
	}

	critical := mt.Segments[2]
	if !critical.StartTime.Equal(minutes(40)) || !critical.EndTime.Equal(minutes(90)) {
		t.Errorf("critical segment = [%v, %v), want [40m, 90m)", critical.StartTime, critical.EndTime)
	}
	if mt.ActivePhase(minutes(60)) != model.StatusCritical {
		t.Errorf("ActivePhase(60m) = %v, want CRITICAL", mt.ActivePhase(minutes(60)))
	}
	if !mt.Summary.NextConflict.Equal(minutes(35)) {
		t.Errorf("NextConflict = %v, want 35m", mt.Summary.NextConflict)
	}
}

func TestScenarioAntimeridianCrossingHasNoSpuriousGap(t *testing.T) {
	svc := NewTimelineService(nil)
	in := ComputeInput{
		// Eastbound across ±180°: 170°E to 170°W.
		Route: levelRoute(minutes(0), 20, 170, 2.5, 13, 10*time.Minute),
		Config: model.TransportConfig{
			X:  model.XConfig{Assignments: []model.SatelliteAssignment{{SatelliteID: "geo-pac", ActiveFrom: minutes(0)}}},
			Ka: model.KaConfig{CoverageSatellites: []string{"ka-pac"}},
		},
		Catalog: mapCatalog{
			"geo-pac": geoSat("geo-pac", 180),
			"ka-pac": coverageSat("ka-pac", model.CoverageRegion{Vertices: []model.GeoPoint{
				{Latitude: 0, Longitude: 160},
				{Latitude: 0, Longitude: -160},
				{Latitude: 40, Longitude: -160},
				{Latitude: 40, Longitude: 160},
			}}),
		},
	}

	// Longitudes past 180 wrap back into range before the engine sees
	// them.
	for i := range in.Route {
		if in.Route[i].Longitude > 180 {
			in.Route[i].Longitude -= 360
		}
	}

	mt, err := svc.ComputeTimeline(context.Background(), in)
	if err != nil {
		t.Fatalf("ComputeTimeline failed: %v", err)
	}

	if len(mt.Segments) != 1 {
		t.Fatalf("got %d segments, want 1: %+v", len(mt.Segments), mt.Segments)
	}
	if mt.Segments[0].Status != model.StatusNominal {
		t.Errorf("status = %v, want NOMINAL: crossing the date line is not a coverage gap", mt.Segments[0].Status)
	}
}

func TestScenarioAirRefuelingInvertsExclusion(t *testing.T) {
	svc := NewTimelineService(nil)

	// Southern-hemisphere route looking due north (azimuth 0) at the
	// satellite.
	base := ComputeInput{
		Route: levelRoute(minutes(0), -40, 0, 0, 13, 10*time.Minute),
		Config: model.TransportConfig{
			X:  model.XConfig{Assignments: []model.SatelliteAssignment{{SatelliteID: "geo-1", ActiveFrom: minutes(0)}}},
			Ka: model.KaConfig{CoverageSatellites: []string{"ka-1"}},
		},
		Catalog: mapCatalog{
			"geo-1": geoSat("geo-1", 0),
			"ka-1":  coverageSat("ka-1", boxRegion(-60, 0, -40, 40)),
		},
	}

	// Under a normal window, azimuth 0 is not excluded.
	normal := base
	normal.ExclusionWindows = []model.ExclusionWindow{
		{StartTime: minutes(50), EndTime: minutes(70), Kind: model.WindowNormal},
	}
	mt, err := svc.ComputeTimeline(context.Background(), normal)
	if err != nil {
		t.Fatalf("ComputeTimeline(normal) failed: %v", err)
	}
	if len(mt.Segments) != 1 || mt.Segments[0].Status != model.StatusNominal {
		t.Fatalf("normal window at azimuth 0: got %+v, want one NOMINAL segment", mt.Segments)
	}

	// The same window during air refueling inverts the arc and takes
	// X down.
	refueling := base
	refueling.ExclusionWindows = []model.ExclusionWindow{
		{StartTime: minutes(50), EndTime: minutes(70), Kind: model.WindowAirRefueling},
	}
	mt, err = svc.ComputeTimeline(context.Background(), refueling)
	if err != nil {
		t.Fatalf("ComputeTimeline(air_refueling) failed: %v", err)
	}
	if len(mt.Segments) != 3 {
		t.Fatalf("air-refueling window at azimuth 0: got %d segments, want 3", len(mt.Segments))
	}
	degraded := mt.Segments[1]
	if degraded.Status != model.StatusDegraded || degraded.XState.Reason != model.ReasonAzimuthExcluded {
		t.Errorf("middle segment = %+v, want DEGRADED with X azimuth_excluded", degraded)
	}
}
