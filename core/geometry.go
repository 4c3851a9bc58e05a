package core

import (
	"math"

	"github.com/signalsfoundry/satlink-planner/model"
)

// EarthRadiusM is the mean Earth radius used for all great-circle
// calculations in the planning layer (metres).
const EarthRadiusM = 6371000.0

// GeostationaryAltitudeM is the altitude of the geostationary belt
// above the mean Earth surface (metres).
const GeostationaryAltitudeM = 35786000.0

const (
	degToRad = math.Pi / 180.0
	radToDeg = 180.0 / math.Pi
)

// BearingAndDistance returns the initial great-circle bearing (degrees,
// [0,360)) and Haversine distance (metres) from a to b. Coincident
// points are a defined degenerate case and return (0, 0) rather than an
// error, since they occur naturally at route endpoints.
func BearingAndDistance(a, b model.GeoPoint) (bearingDeg, distanceM float64, err error) {
	if err := ValidateGeoPoint(a); err != nil {
		return 0, 0, err
	}
	if err := ValidateGeoPoint(b); err != nil {
		return 0, 0, err
	}

	if a.Latitude == b.Latitude && a.Longitude == b.Longitude {
		return 0, 0, nil
	}

	lat1 := a.Latitude * degToRad
	lat2 := b.Latitude * degToRad
	dLat := (b.Latitude - a.Latitude) * degToRad
	dLon := (b.Longitude - a.Longitude) * degToRad

	// Haversine distance.
	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	if h > 1 {
		h = 1
	}
	distanceM = 2 * EarthRadiusM * math.Asin(math.Sqrt(h))

	// Initial bearing.
	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	bearingDeg = NormalizeAzimuth(math.Atan2(y, x) * radToDeg)

	return bearingDeg, distanceM, nil
}

// LookAngle returns the elevation and azimuth (degrees) from a ground
// point to a satellite identified by its sub-satellite point. The
// elevation uses the standard geostationary construction (satellite at
// the geostationary radius above the sub-point); azimuth is the
// great-circle bearing toward the sub-point, normalized to [0,360).
//
// A ground point sitting exactly on the sub-point returns (90, 0).
func LookAngle(ground, subPoint model.GeoPoint) (elevationDeg, azimuthDeg float64, err error) {
	if err := ValidateGeoPoint(ground); err != nil {
		return 0, 0, err
	}
	if err := ValidateGeoPoint(subPoint); err != nil {
		return 0, 0, err
	}

	lat1 := ground.Latitude * degToRad
	lat2 := subPoint.Latitude * degToRad
	dLon := (subPoint.Longitude - ground.Longitude) * degToRad

	// Central angle between the ground point and the sub-point.
	cosGamma := math.Sin(lat1)*math.Sin(lat2) + math.Cos(lat1)*math.Cos(lat2)*math.Cos(dLon)
	if cosGamma > 1 {
		cosGamma = 1
	} else if cosGamma < -1 {
		cosGamma = -1
	}
	gamma := math.Acos(cosGamma)

	if gamma == 0 {
		return 90, 0, nil
	}

	// Elevation above the local horizon for a satellite at radius
	// R + h above the sub-point.
	ratio := EarthRadiusM / (EarthRadiusM + GeostationaryAltitudeM)
	elevationDeg = math.Atan2(cosGamma-ratio, math.Sin(gamma)) * radToDeg

	azimuthDeg, _, err = BearingAndDistance(ground, subPoint)
	if err != nil {
		return 0, 0, err
	}

	return elevationDeg, azimuthDeg, nil
}

// NormalizeLongitudeForCrossing rewrites a point sequence whose
// consecutive longitude delta exceeds 180° into a continuous
// representation (longitudes may leave [-180,180]) so downstream
// interval and polygon math never sees a spurious antimeridian jump.
// The input is never mutated; the first point's longitude anchors the
// unwrapped sequence.
func NormalizeLongitudeForCrossing(points []model.GeoPoint) []model.GeoPoint {
	if len(points) == 0 {
		return nil
	}

	out := make([]model.GeoPoint, len(points))
	out[0] = points[0]
	for i := 1; i < len(points); i++ {
		out[i] = points[i]
		out[i].Longitude = unwrapLongitude(out[i-1].Longitude, points[i].Longitude)
	}
	return out
}

// unwrapLongitude shifts lon by whole turns until it is within 180° of
// prev, yielding the continuous representation of a sequence that may
// cross the antimeridian.
func unwrapLongitude(prev, lon float64) float64 {
	for lon-prev > 180 {
		lon -= 360
	}
	for prev-lon > 180 {
		lon += 360
	}
	return lon
}

// NormalizeAzimuth maps an angle in degrees onto [0, 360).
func NormalizeAzimuth(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
