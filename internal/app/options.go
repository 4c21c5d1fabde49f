package app

import (
	"github.com/opptrack/pocsift/internal/adapters/csvio"
	"github.com/opptrack/pocsift/internal/domain/aggregate"
	"github.com/opptrack/pocsift/internal/domain/rank"
	"github.com/opptrack/pocsift/pkg/logger"
	"github.com/opptrack/pocsift/pkg/metrics"
)

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithInput sets the input CSV path.
func WithInput(path string) Option {
	return func(p *Pipeline) {
		if path != "" {
			p.input = path
		}
	}
}

// WithOutput sets the output CSV path.
func WithOutput(path string) Option {
	return func(p *Pipeline) {
		if path != "" {
			p.output = path
		}
	}
}

// WithSortKey sets the output order.
func WithSortKey(key rank.Key) Option {
	return func(p *Pipeline) {
		if key != "" {
			p.sortKey = key
		}
	}
}

// WithFieldPolicy sets how duplicate contact fields merge.
func WithFieldPolicy(policy aggregate.FieldPolicy) Option {
	return func(p *Pipeline) {
		if policy != "" {
			p.fieldPolicy = policy
		}
	}
}

// WithTitleDedupe controls opportunity title deduplication per POC.
func WithTitleDedupe(enabled bool) Option {
	return func(p *Pipeline) {
		p.dedupeTitles = enabled
	}
}

// WithMaxNameTokens bounds accepted name length in words; 0 keeps the default.
func WithMaxNameTokens(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxNameTokens = n
		}
	}
}

// WithListDelimiter sets the separator for multi-valued output fields.
func WithListDelimiter(delim string) Option {
	return func(p *Pipeline) {
		if delim != "" {
			p.listDelim = delim
		}
	}
}

// WithReader sets a custom input reader adapter.
func WithReader(r *csvio.Reader) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.reader = r
		}
	}
}

// WithLogger sets a custom logger for the pipeline.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithMetricsManager sets a custom metrics manager.
func WithMetricsManager(m *metrics.Manager) Option {
	return func(p *Pipeline) {
		if m != nil {
			p.metrics = m
		}
	}
}
