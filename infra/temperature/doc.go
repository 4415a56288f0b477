// Package temperature holds the temperature providers selectable from the
// configuration: "csv" reads a delimited file of daily means and "static"
// serves series written inline in the config.
package temperature
