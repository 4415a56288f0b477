// Package metrics defines the events the planner emits for observability and
// the sinks that record them. PromSink and InfluxSink live in infra/metrics
// and register themselves with the factory; several configured sinks are
// combined in a MultiSink.
package metrics
