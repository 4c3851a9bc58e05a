package core

import (
	"errors"
	"fmt"

	"github.com/signalsfoundry/satlink-planner/model"
)

// Sentinel errors for the fatal input failures of a computation. These
// abort the call with no partial timeline; callers re-invoke after
// fixing the input data.
var (
	// ErrInvalidCoordinate indicates a latitude outside [-90,90] or a
	// longitude outside [-180,180] on an input point.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	// ErrRouteNotTimed indicates a route sample without a timestamp.
	ErrRouteNotTimed = errors.New("route sample has no timestamp")
	// ErrRouteNotMonotonic indicates route timestamps that go backwards.
	ErrRouteNotMonotonic = errors.New("route timestamps are not monotonically non-decreasing")
	// ErrUnknownSatellite indicates a transport config referencing a
	// satellite ID absent from the catalog.
	ErrUnknownSatellite = errors.New("unknown satellite")
	// ErrEmptyCatalog indicates an X or Ka assignment against an empty
	// satellite catalog.
	ErrEmptyCatalog = errors.New("satellite catalog is empty")
)

// InputError wraps one of the sentinel errors above with the input
// field it concerns. It is the typed failure surfaced for malformed
// inputs.
type InputError struct {
	Field string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input %s: %v", e.Field, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

func inputErr(field string, err error) *InputError {
	return &InputError{Field: field, Err: err}
}

// ValidateGeoPoint checks that a point's coordinates are within the
// geodetic ranges the geometry functions assume.
func ValidateGeoPoint(p model.GeoPoint) error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v", ErrInvalidCoordinate, p.Latitude)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v", ErrInvalidCoordinate, p.Longitude)
	}
	return nil
}
