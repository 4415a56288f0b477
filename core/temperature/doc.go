// Package temperature defines how daily mean temperatures reach the planner.
// Forecasting is someone else's job: a Provider returns whatever per-day
// values it has for a location and year, and LoadLocations turns them into
// dense series, filling unknown days with 0.0 and remembering which ones.
package temperature
