package core

import (
	"fmt"
	"time"

	"github.com/signalsfoundry/satlink-planner/model"
)

// KaEvaluator computes availability for the wide-coverage Ka link. Ka
// is available while any configured coverage source covers the route
// point; transition buffers apply at coverage boundaries, and a
// satellite handover is placed at the midpoint of the coverage overlap
// window (hysteresis keeps the current satellite while it still covers,
// minimizing transition count).
type KaEvaluator struct {
	// Buffer is the transition guard applied around coverage boundaries
	// and handovers. Zero disables the guard; callers wanting the
	// standard one set DefaultTransitionBuffer.
	Buffer time.Duration
}

func (e *KaEvaluator) Transport() model.Transport { return model.TransportKa }

func (e *KaEvaluator) ComputeIntervals(in ComputeInput) ([]model.TransportInterval, []string, error) {
	leg := legRange(in.Route)
	buffer := e.Buffer

	ids := in.Config.Ka.CoverageSatellites
	if len(ids) == 0 {
		warning := "Ka has no coverage source configured; treating as no coverage anywhere"
		outages := []reasonedRange{{TimeRange: leg, Reason: model.ReasonNoCoverage}}
		outages = append(outages, overrideWindows(model.TransportKa, in.Overrides)...)
		return buildIntervals(model.TransportKa, leg, outages), []string{warning}, nil
	}

	if in.Catalog.Size() == 0 {
		return nil, nil, inputErr("transport_config.ka", ErrEmptyCatalog)
	}

	var warnings []string
	coverages := make([][]model.CoverageRegion, len(ids))
	for i, id := range ids {
		def, ok := in.Catalog.Satellite(id)
		if !ok {
			return nil, nil, inputErr("transport_config.ka",
				fmt.Errorf("%w: %q", ErrUnknownSatellite, id))
		}
		coverages[i] = def.Coverage
		if countValidRegions(def.Coverage) == 0 {
			warnings = append(warnings,
				fmt.Sprintf("coverage source %q has no valid polygons; treated as no coverage anywhere", id))
		}
	}

	// Per-satellite, per-sample coverage matrix. This is the raw
	// point classification; merging belongs to the walker below.
	covered := make([][]bool, len(ids))
	for i := range ids {
		covered[i] = make([]bool, len(in.Route))
		for j, rs := range in.Route {
			covered[i][j] = IsCovered(rs.Point(), coverages[i])
		}
	}

	samples := make([]sampleState, len(in.Route))
	for j, rs := range in.Route {
		any := false
		for i := range ids {
			if covered[i][j] {
				any = true
				break
			}
		}
		samples[j] = sampleState{Timestamp: rs.Timestamp, Available: any, Reason: model.ReasonNoCoverage}
	}

	outages := expandInteriorRuns(walkAvailability(samples, leg), leg, buffer)

	for _, at := range kaHandovers(in.Route, covered, in.Config.Ka.HandoverBias) {
		outages = append(outages, handoverWindow(at, buffer))
	}

	outages = append(outages, overrideWindows(model.TransportKa, in.Overrides)...)

	return buildIntervals(model.TransportKa, leg, outages), warnings, nil
}

// kaHandovers walks the coverage matrix and returns the handover
// instants. The current satellite is kept as long as it covers the
// point; when it drops out and another configured satellite covers, the
// handover lands inside the window where both covered, at the midpoint
// shifted by bias (-1 start, 0 midpoint, +1 end). Initial acquisition
// and total coverage loss are not handovers.
func kaHandovers(route []model.RouteSample, covered [][]bool, bias float64) []time.Time {
	if bias < -1 {
		bias = -1
	} else if bias > 1 {
		bias = 1
	}

	var handovers []time.Time
	current := -1
	for j := range route {
		if current >= 0 && covered[current][j] {
			continue
		}

		next := -1
		for i := range covered {
			if covered[i][j] {
				next = i
				break
			}
		}
		if next == -1 {
			current = -1
			continue
		}

		if current >= 0 && j > 0 {
			// The previous satellite just dropped out at sample j.
			// Scan back over the run where both satellites covered.
			a := j - 1
			for a > 0 && covered[current][a-1] && covered[next][a-1] {
				a--
			}
			window := TimeRange{Start: route[a].Timestamp, End: route[j-1].Timestamp}
			if !covered[current][j-1] || !covered[next][j-1] {
				// No shared sample: the overlap collapses to the
				// boundary between the last two samples.
				window = TimeRange{Start: route[j-1].Timestamp, End: route[j].Timestamp}
			}
			handovers = append(handovers, biasedMidpoint(window, bias))
		}
		current = next
	}
	return handovers
}

// biasedMidpoint returns the midpoint of the window shifted by bias
// toward either edge.
func biasedMidpoint(w TimeRange, bias float64) time.Time {
	half := w.Duration() / 2
	offset := half + time.Duration(float64(half)*bias)
	return w.Start.Add(offset)
}

func countValidRegions(coverage []model.CoverageRegion) int {
	n := 0
	for _, r := range coverage {
		if len(r.Vertices) >= 3 {
			n++
		}
	}
	return n
}
