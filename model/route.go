package model

import "time"

// GeoPoint is a geodetic position in degrees. Latitude is positive
// north, longitude positive east in [-180, 180].
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// RouteSample is one timed point of a mission leg's route. Samples are
// produced externally from a timed route plan; the engine treats them
// as immutable and never reorders or rewrites them.
type RouteSample struct {
	Timestamp time.Time
	Latitude  float64 // degrees, positive north
	Longitude float64 // degrees, positive east
	AltitudeM float64 // metres above MSL
	CourseDeg float64 // true course over ground, [0, 360)
}

// Point returns the sample's position as a GeoPoint.
func (s RouteSample) Point() GeoPoint {
	return GeoPoint{Latitude: s.Latitude, Longitude: s.Longitude}
}

// RouteStart returns the timestamp of the first sample, or the zero
// time for an empty route.
func RouteStart(route []RouteSample) time.Time {
	if len(route) == 0 {
		return time.Time{}
	}
	return route[0].Timestamp
}

// RouteEnd returns the timestamp of the last sample, or the zero time
// for an empty route.
func RouteEnd(route []RouteSample) time.Time {
	if len(route) == 0 {
		return time.Time{}
	}
	return route[len(route)-1].Timestamp
}
