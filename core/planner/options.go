package planner

import "github.com/kilianp07/cropplan/core/logger"

// Option customises a Search call.
type Option func(*options)

type options struct {
	maxExpansions int
	maxFrontier   int
	progressEvery int
	log           logger.Logger
}

func defaultOptions() options {
	return options{progressEvery: 10000, log: logger.Nop{}}
}

// WithMaxExpansions stops the search with ErrCapacityExceeded once n states
// have been expanded without reaching a goal. n <= 0 means unlimited.
func WithMaxExpansions(n int) Option {
	return func(o *options) { o.maxExpansions = n }
}

// WithMaxFrontier stops the search with ErrCapacityExceeded when the frontier
// holds more than n nodes. n <= 0 means unlimited.
func WithMaxFrontier(n int) Option {
	return func(o *options) { o.maxFrontier = n }
}

// WithLogger sets the logger used for progress and summary lines.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithProgressEvery logs a debug progress line every n expansions.
func WithProgressEvery(n int) Option {
	return func(o *options) { o.progressEvery = n }
}
