package normalize

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithMaxTokens sets the maximum word count accepted as a name.
// Values <= 0 are ignored.
func WithMaxTokens(n int) Option {
	return func(nz *Normalizer) {
		if n > 0 {
			nz.maxTokens = n
		}
	}
}

// WithPlaceholders replaces the placeholder token set. Matching is
// case-insensitive and ignores trailing periods.
func WithPlaceholders(tokens ...string) Option {
	return func(nz *Normalizer) {
		if len(tokens) > 0 {
			nz.placeholders = tokenSet(tokens)
		}
	}
}
