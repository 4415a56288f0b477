// Package infra contains technical adapters such as temperature readers,
// metrics exporters, the plan publisher and the run stores. These packages
// should depend only on the interfaces defined in the core packages.
package infra
