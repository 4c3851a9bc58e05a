package core

import (
	"math"
	"time"

	"github.com/signalsfoundry/satlink-planner/model"
)

// CoverageSample is the raw per-route-point coverage classification.
// Adjacent samples with identical Covered values are deliberately not
// merged here; run-length encoding is the transport state machine's
// job.
type CoverageSample struct {
	Timestamp time.Time
	Covered   bool
}

// IsCovered reports whether the point lies inside any of the given
// coverage regions. Regions with fewer than three vertices are ignored;
// a coverage set with no valid region therefore covers nothing, which
// is the conservative default for a misconfigured source.
//
// Ring longitudes are unwrapped before the containment test so
// footprints that straddle the antimeridian behave the same as any
// other polygon.
func IsCovered(point model.GeoPoint, coverage []model.CoverageRegion) bool {
	for _, region := range coverage {
		if len(region.Vertices) < 3 {
			continue
		}
		ring := NormalizeLongitudeForCrossing(region.Vertices)
		if pointInRing(point, ring) {
			return true
		}
	}
	return false
}

// SampleCoverageAlongRoute classifies every route sample against the
// coverage set. The result has exactly one entry per route sample, in
// route order.
func SampleCoverageAlongRoute(route []model.RouteSample, coverage []model.CoverageRegion) []CoverageSample {
	out := make([]CoverageSample, 0, len(route))
	for _, s := range route {
		out = append(out, CoverageSample{
			Timestamp: s.Timestamp,
			Covered:   IsCovered(s.Point(), coverage),
		})
	}
	return out
}

// pointInRing runs an even-odd ray cast against a ring whose longitudes
// are already unwrapped into a continuous representation. The test
// point is tried at its own longitude and shifted by ±360° so a point
// on either side of the antimeridian still matches an unwrapped ring.
func pointInRing(p model.GeoPoint, ring []model.GeoPoint) bool {
	for _, shift := range []float64{0, 360, -360} {
		if rayCast(p.Latitude, p.Longitude+shift, ring) {
			return true
		}
	}
	return false
}

// edgeEps is the tolerance, in degrees, for classifying a point as
// lying on a ring edge. Boundary points count as covered.
const edgeEps = 1e-7

func rayCast(lat, lon float64, ring []model.GeoPoint) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		yi, xi := ring[i].Latitude, ring[i].Longitude
		yj, xj := ring[j].Latitude, ring[j].Longitude
		if onEdge(lat, lon, yi, xi, yj, xj) {
			return true
		}
		if (yi > lat) == (yj > lat) {
			continue
		}
		// Longitude of the edge crossing at this latitude.
		xCross := xi + (lat-yi)/(yj-yi)*(xj-xi)
		if lon < xCross {
			inside = !inside
		}
	}
	return inside
}

// onEdge reports whether (lat, lon) lies on the segment between the two
// vertices, within edgeEps.
func onEdge(lat, lon, y1, x1, y2, x2 float64) bool {
	cross := (x2-x1)*(lat-y1) - (y2-y1)*(lon-x1)
	if math.Abs(cross) > edgeEps {
		return false
	}
	return lon >= math.Min(x1, x2)-edgeEps && lon <= math.Max(x1, x2)+edgeEps &&
		lat >= math.Min(y1, y2)-edgeEps && lat <= math.Max(y1, y2)+edgeEps
}
