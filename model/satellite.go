package model

// OrbitKind indicates how a satellite's sub-satellite point is
// determined.
type OrbitKind int

const (
	// OrbitGeostationary uses a fixed sub-satellite longitude on the
	// equator.
	OrbitGeostationary OrbitKind = iota
	// OrbitPropagated uses SGP4 propagation from a TLE.
	OrbitPropagated
)

// CoverageRegion is one footprint polygon of a satellite, expressed as
// a closed ring of vertices in degrees. Rings that straddle the
// antimeridian are stored as-is; the coverage model unwraps longitudes
// before any containment test.
type CoverageRegion struct {
	Name     string
	Vertices []GeoPoint
}

// SatelliteDefinition describes one candidate communication satellite.
// Geostationary satellites carry SubLongitudeDeg; propagated satellites
// carry both TLE lines. Coverage holds zero or more footprint regions;
// a satellite with no valid regions covers nothing (the engine records
// a configuration warning rather than failing).
type SatelliteDefinition struct {
	ID   string
	Name string

	Orbit           OrbitKind
	SubLongitudeDeg float64 // used when Orbit == OrbitGeostationary
	TLELine1        string  // used when Orbit == OrbitPropagated
	TLELine2        string

	Coverage []CoverageRegion
}
