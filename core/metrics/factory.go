package metrics

import "github.com/kilianp07/cropplan/core/factory"

var sinkRegistry = factory.NewRegistry[Sink]()

// RegisterSink adds a sink constructor identified by name.
func RegisterSink(name string, c factory.Constructor[Sink]) error {
	return sinkRegistry.Register(name, c)
}

// NewSink creates the configured sinks. No configuration yields a NopSink,
// several yield a MultiSink.
func NewSink(cfgs []factory.ModuleConfig) (Sink, error) {
	if len(cfgs) == 0 {
		return NopSink{}, nil
	}
	if len(cfgs) == 1 {
		return sinkRegistry.Create(cfgs[0])
	}
	sinks := make([]Sink, len(cfgs))
	for i, c := range cfgs {
		s, err := sinkRegistry.Create(c)
		if err != nil {
			return nil, err
		}
		sinks[i] = s
	}
	return NewMultiSink(sinks...), nil
}
