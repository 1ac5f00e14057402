package extract

import (
	"github.com/leofalp/llmjson/core/correct"
	"github.com/leofalp/llmjson/core/schema"
	"github.com/leofalp/llmjson/providers/observability"
)

// Option configures an Engine.
type Option func(*config)

type config struct {
	correction bool
	fallback   bool
	rules      []correct.Rule
	schemas    []schema.Def
	observer   observability.Provider
}

func defaultConfig() *config {
	return &config{correction: true}
}

// WithCorrection enables or disables correction of malformed candidates.
// Enabled by default; when disabled only strictly valid JSON is recovered.
func WithCorrection(enabled bool) Option {
	return func(c *config) {
		c.correction = enabled
	}
}

// WithRepairFallback enables the general-purpose repair pass that runs after
// every correction rule has failed. Disabled by default.
func WithRepairFallback(enabled bool) Option {
	return func(c *config) {
		c.fallback = enabled
	}
}

// WithRules replaces the correction rule list.
func WithRules(rules ...correct.Rule) Option {
	return func(c *config) {
		c.rules = rules
	}
}

// WithSchemas classifies every recovered value against defs, in priority
// order. Repeated use appends.
func WithSchemas(defs ...schema.Def) Option {
	return func(c *config) {
		c.schemas = append(c.schemas, defs...)
	}
}

// WithObserver reports spans, metrics and debug logs to observer.
func WithObserver(observer observability.Provider) Option {
	return func(c *config) {
		c.observer = observer
	}
}
