package core

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/satlink-planner/internal/logging"
	"github.com/signalsfoundry/satlink-planner/model"
)

// SatelliteCatalog is the read-only satellite/coverage catalog view the
// engine computes against. Implementations must be immutable for the
// duration of a computation; swapping in updated catalogs is the
// caller's concern.
type SatelliteCatalog interface {
	// Satellite returns the definition for an ID.
	Satellite(id string) (model.SatelliteDefinition, bool)
	// Size returns the number of catalog entries.
	Size() int
}

// emptyCatalog stands in for an absent ComputeInput.Catalog.
type emptyCatalog struct{}

func (emptyCatalog) Satellite(string) (model.SatelliteDefinition, bool) {
	return model.SatelliteDefinition{}, false
}
func (emptyCatalog) Size() int { return 0 }

// ComputeInput bundles everything one timeline computation reads. The
// engine never mutates any of it.
type ComputeInput struct {
	Route            []model.RouteSample
	Config           model.TransportConfig
	ExclusionWindows []model.ExclusionWindow
	Overrides        []model.OutageOverride
	Catalog          SatelliteCatalog
}

// TimelineService is the single public entry point of the planning
// engine. ComputeTimeline is a pure function of its inputs: every call
// discards prior results and rebuilds the full timeline, so two calls
// with identical inputs yield identical output.
type TimelineService struct {
	// Buffer is the transition guard handed to the transport
	// evaluators. NewTimelineService sets DefaultTransitionBuffer;
	// callers may override it afterwards, and zero disables the guard.
	Buffer time.Duration

	log logging.Logger
}

// NewTimelineService constructs a service with the default transition
// buffer. A nil logger is replaced by a no-op one.
func NewTimelineService(log logging.Logger) *TimelineService {
	if log == nil {
		log = logging.Noop()
	}
	return &TimelineService{Buffer: DefaultTransitionBuffer, log: log}
}

// ComputeTimeline validates the inputs, runs the three transport
// evaluators, and assembles the merged, classified mission timeline
// with advisories, transition markers, and summary statistics.
//
// Malformed input returns a typed *InputError and no partial timeline.
// A route with no samples or zero duration yields an empty timeline,
// not an error. Configuration warnings are attached to the result.
func (s *TimelineService) ComputeTimeline(ctx context.Context, in ComputeInput) (*model.MissionTimeline, error) {
	ctx, span := otel.Tracer("satlink-planner/core").Start(ctx, "TimelineService.ComputeTimeline",
		trace.WithAttributes(attribute.Int("route.samples", len(in.Route))))
	defer span.End()

	if err := validateRoute(in.Route); err != nil {
		span.RecordError(err)
		return nil, err
	}

	// A zero-value input carries no catalog; treat it as an empty one so
	// satellite references fail with ErrEmptyCatalog instead of a panic.
	if in.Catalog == nil {
		in.Catalog = emptyCatalog{}
	}

	leg := legRange(in.Route)
	if leg.IsEmpty() {
		s.log.Info(ctx, "route has no duration; returning empty timeline",
			logging.Int("route_samples", len(in.Route)))
		return &model.MissionTimeline{
			Summary: model.TimelineSummary{
				UnavailableByTransport: map[model.Transport]time.Duration{},
			},
		}, nil
	}

	evaluators := []TransportEvaluator{
		&XEvaluator{Buffer: s.Buffer},
		&KaEvaluator{Buffer: s.Buffer},
		&KuEvaluator{},
	}

	perTransport := make(map[model.Transport][]model.TransportInterval, len(evaluators))
	var warnings []string
	for _, ev := range evaluators {
		intervals, evWarnings, err := ev.ComputeIntervals(in)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		perTransport[ev.Transport()] = intervals
		warnings = append(warnings, evWarnings...)
	}

	for _, w := range warnings {
		s.log.Warn(ctx, "configuration warning", logging.String("warning", w))
	}

	segments := MergeTransportIntervals(
		perTransport[model.TransportX],
		perTransport[model.TransportKa],
		perTransport[model.TransportKu],
	)

	timeline := &model.MissionTimeline{
		Segments:   segments,
		Advisories: EmitAdvisories(segments, perTransport[model.TransportX]),
		Markers:    BuildTransitionMarkers(segments, in.Route),
		Summary:    ComputeSummary(segments, perTransport),
		Warnings:   warnings,
	}

	span.SetAttributes(
		attribute.Int("timeline.segments", len(timeline.Segments)),
		attribute.Int("timeline.advisories", len(timeline.Advisories)),
	)
	s.log.Info(ctx, "computed mission timeline",
		logging.Int("segments", len(timeline.Segments)),
		logging.Int("advisories", len(timeline.Advisories)),
		logging.Int("warnings", len(warnings)),
	)

	return timeline, nil
}

// validateRoute enforces the route preconditions: every sample carries
// a timestamp, timestamps never go backwards, and coordinates are in
// range.
func validateRoute(route []model.RouteSample) error {
	for i, rs := range route {
		if rs.Timestamp.IsZero() {
			return inputErr("route", ErrRouteNotTimed)
		}
		if i > 0 && rs.Timestamp.Before(route[i-1].Timestamp) {
			return inputErr("route", ErrRouteNotMonotonic)
		}
		if err := ValidateGeoPoint(rs.Point()); err != nil {
			return inputErr("route", err)
		}
	}
	return nil
}
