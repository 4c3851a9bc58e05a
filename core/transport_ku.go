package core

import (
	"github.com/signalsfoundry/satlink-planner/model"
)

// KuEvaluator computes availability for the always-on Ku link: nominal
// everywhere, forced down only by manual outage overrides. No geometry
// is evaluated.
type KuEvaluator struct{}

func (e *KuEvaluator) Transport() model.Transport { return model.TransportKu }

func (e *KuEvaluator) ComputeIntervals(in ComputeInput) ([]model.TransportInterval, []string, error) {
	leg := legRange(in.Route)
	outages := overrideWindows(model.TransportKu, in.Overrides)
	return buildIntervals(model.TransportKu, leg, outages), nil, nil
}
