// Package export writes plans and benchmark results as CSV, JSON and console
// tables.
package export
