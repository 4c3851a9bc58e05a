package core

import (
	"math"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/signalsfoundry/satlink-planner/model"
)

// SubPointModel yields a satellite's sub-satellite point for a given
// instant.
type SubPointModel interface {
	SubSatellitePoint(at time.Time) model.GeoPoint
}

// FixedSubPointModel pins the sub-satellite point to a longitude on the
// equator, as for a geostationary satellite.
type FixedSubPointModel struct {
	LongitudeDeg float64
}

// SubSatellitePoint returns the fixed equatorial sub-point.
func (m *FixedSubPointModel) SubSatellitePoint(at time.Time) model.GeoPoint {
	return model.GeoPoint{Latitude: 0, Longitude: m.LongitudeDeg}
}

// PropagatedSubPointModel derives the sub-satellite point from SGP4
// propagation of a TLE.
type PropagatedSubPointModel struct {
	sat satellite.Satellite
}

// NewPropagatedSubPointModel constructs a propagated model from TLE lines.
func NewPropagatedSubPointModel(line1, line2 string) *PropagatedSubPointModel {
	sat := satellite.TLEToSat(line1, line2, satellite.GravityWGS72)
	return &PropagatedSubPointModel{sat: sat}
}

// SubSatellitePoint propagates the satellite to the given instant and
// projects the ECEF position down to a geodetic sub-point.
func (m *PropagatedSubPointModel) SubSatellitePoint(at time.Time) model.GeoPoint {
	year, month, day := at.Date()
	hour, min, sec := at.Clock()

	posECI, _ := satellite.Propagate(m.sat, year, int(month), day, hour, min, sec)
	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	gmst := satellite.ThetaG_JD(jd)
	posECEF := satellite.ECIToECEF(posECI, gmst)

	r := math.Sqrt(posECEF.X*posECEF.X + posECEF.Y*posECEF.Y + posECEF.Z*posECEF.Z)
	if r == 0 {
		return model.GeoPoint{}
	}

	lat := math.Asin(posECEF.Z/r) * radToDeg
	lon := math.Atan2(posECEF.Y, posECEF.X) * radToDeg

	return model.GeoPoint{Latitude: lat, Longitude: lon}
}

// NewSubPointModel chooses the appropriate model for the satellite:
// SGP4 when the definition carries a TLE, a fixed equatorial sub-point
// otherwise.
func NewSubPointModel(def model.SatelliteDefinition) SubPointModel {
	if def.Orbit == model.OrbitPropagated && def.TLELine1 != "" && def.TLELine2 != "" {
		return NewPropagatedSubPointModel(def.TLELine1, def.TLELine2)
	}
	return &FixedSubPointModel{LongitudeDeg: def.SubLongitudeDeg}
}
