// Package store persists plans and benchmark rows in SQLite so runs can be
// compared after the fact.
package store
