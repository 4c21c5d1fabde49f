package aggregate

import "github.com/opptrack/pocsift/internal/domain/normalize"

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithNormalizer sets a custom name normalizer.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(a *Aggregator) {
		if n != nil {
			a.normalizer = n
		}
	}
}

// WithFieldPolicy sets how contact fields merge on repeat sightings.
func WithFieldPolicy(p FieldPolicy) Option {
	return func(a *Aggregator) {
		if p == FirstWins || p == LastWins {
			a.policy = p
		}
	}
}

// WithTitleDedupe controls whether identical opportunity titles collapse
// per POC. Enabled by default.
func WithTitleDedupe(enabled bool) Option {
	return func(a *Aggregator) {
		a.dedupeTitles = enabled
	}
}
