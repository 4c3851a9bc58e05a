package core

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/signalsfoundry/satlink-planner/model"
)

// MissionScenario is everything one leg's computation needs, as loaded
// from a scenario document: the timed route, the satellite catalog
// entries, the transport configuration, and the operational windows.
type MissionScenario struct {
	Route            []model.RouteSample
	Satellites       []model.SatelliteDefinition
	Config           model.TransportConfig
	ExclusionWindows []model.ExclusionWindow
	Overrides        []model.OutageOverride
}

// Summary is a small count overview of a loaded scenario, mainly useful
// for logging from main().
func (sc *MissionScenario) Summary() string {
	return fmt.Sprintf("%d route samples, %d satellites, %d exclusion windows, %d overrides",
		len(sc.Route), len(sc.Satellites), len(sc.ExclusionWindows), len(sc.Overrides))
}

// internal JSON shapes – kept unexported so we're free to evolve them.
type missionScenarioJSON struct {
	Route            []routeSampleJSON     `json:"route"`
	Satellites       []satelliteJSON       `json:"satellites"`
	Transports       transportConfigJSON   `json:"transports"`
	ExclusionWindows []exclusionWindowJSON `json:"exclusion_windows"`
	Overrides        []outageOverrideJSON  `json:"outage_overrides"`
}

type routeSampleJSON struct {
	Timestamp time.Time `json:"timestamp"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	AltitudeM float64   `json:"altitude_m"`
	CourseDeg float64   `json:"course_deg"`
}

type satelliteJSON struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	SubLongitude *float64         `json:"sub_longitude_deg"` // geostationary when set
	TLELine1     string           `json:"tle_line1"`
	TLELine2     string           `json:"tle_line2"`
	Coverage     [][]geoPointJSON `json:"coverage"` // one ring per region
}

type geoPointJSON struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

type transportConfigJSON struct {
	X struct {
		Assignments []struct {
			SatelliteID string    `json:"satellite_id"`
			ActiveFrom  time.Time `json:"active_from"`
		} `json:"assignments"`
	} `json:"x"`
	Ka struct {
		CoverageSatellites []string `json:"coverage_satellites"`
		HandoverBias       float64  `json:"handover_bias"`
	} `json:"ka"`
}

type exclusionWindowJSON struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Kind      string    `json:"kind"` // "normal" | "air_refueling"
}

type outageOverrideJSON struct {
	Transport string    `json:"transport"` // "X" | "Ka" | "Ku"
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Reason    string    `json:"reason"`
}

// LoadMissionScenario reads a JSON mission scenario from r. It fails on
// JSON/structural errors and on values outside their closed enumerations
// (window kinds, transport names); semantic validation (route timing,
// unknown satellite references) is the engine's job at compute time.
func LoadMissionScenario(r io.Reader) (*MissionScenario, error) {
	var payload missionScenarioJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("LoadMissionScenario: decode failed: %w", err)
	}

	out := &MissionScenario{}

	for _, js := range payload.Route {
		out.Route = append(out.Route, model.RouteSample{
			Timestamp: js.Timestamp,
			Latitude:  js.Latitude,
			Longitude: js.Longitude,
			AltitudeM: js.AltitudeM,
			CourseDeg: js.CourseDeg,
		})
	}

	for _, js := range payload.Satellites {
		if js.ID == "" {
			return nil, fmt.Errorf("LoadMissionScenario: satellite with empty id")
		}
		def := model.SatelliteDefinition{
			ID:       js.ID,
			Name:     js.Name,
			TLELine1: js.TLELine1,
			TLELine2: js.TLELine2,
		}
		switch {
		case js.SubLongitude != nil:
			def.Orbit = model.OrbitGeostationary
			def.SubLongitudeDeg = *js.SubLongitude
		case js.TLELine1 != "" && js.TLELine2 != "":
			def.Orbit = model.OrbitPropagated
		default:
			return nil, fmt.Errorf("LoadMissionScenario: satellite %q has neither sub_longitude_deg nor a TLE", js.ID)
		}
		for _, ring := range js.Coverage {
			region := model.CoverageRegion{}
			for _, p := range ring {
				region.Vertices = append(region.Vertices, model.GeoPoint{
					Latitude:  p.Latitude,
					Longitude: p.Longitude,
				})
			}
			def.Coverage = append(def.Coverage, region)
		}
		out.Satellites = append(out.Satellites, def)
	}

	for _, a := range payload.Transports.X.Assignments {
		out.Config.X.Assignments = append(out.Config.X.Assignments, model.SatelliteAssignment{
			SatelliteID: a.SatelliteID,
			ActiveFrom:  a.ActiveFrom,
		})
	}
	out.Config.Ka.CoverageSatellites = payload.Transports.Ka.CoverageSatellites
	out.Config.Ka.HandoverBias = payload.Transports.Ka.HandoverBias

	for _, js := range payload.ExclusionWindows {
		kind, err := windowKindFromString(js.Kind)
		if err != nil {
			return nil, fmt.Errorf("LoadMissionScenario: %w", err)
		}
		out.ExclusionWindows = append(out.ExclusionWindows, model.ExclusionWindow{
			StartTime: js.StartTime,
			EndTime:   js.EndTime,
			Kind:      kind,
		})
	}

	for _, js := range payload.Overrides {
		tr, err := transportFromString(js.Transport)
		if err != nil {
			return nil, fmt.Errorf("LoadMissionScenario: %w", err)
		}
		out.Overrides = append(out.Overrides, model.OutageOverride{
			Transport: tr,
			StartTime: js.StartTime,
			EndTime:   js.EndTime,
			Reason:    js.Reason,
		})
	}

	return out, nil
}

// windowKindFromString maps the wire name onto the closed WindowKind
// enumeration, rejecting anything outside it.
func windowKindFromString(s string) (model.WindowKind, error) {
	switch s {
	case "normal":
		return model.WindowNormal, nil
	case "air_refueling":
		return model.WindowAirRefueling, nil
	default:
		return 0, fmt.Errorf("unknown exclusion window kind %q", s)
	}
}

func transportFromString(s string) (model.Transport, error) {
	switch s {
	case "X":
		return model.TransportX, nil
	case "Ka":
		return model.TransportKa, nil
	case "Ku":
		return model.TransportKu, nil
	default:
		return "", fmt.Errorf("unknown transport %q", s)
	}
}
