package correct

import (
	"github.com/kaptinlin/jsonrepair"

	"github.com/leofalp/llmjson/core/parse"
)

// Outcome is the result of correcting one candidate.
type Outcome struct {
	// Value is the decoded JSON value; meaningful only when OK is true.
	Value any
	// OK reports that the candidate, possibly rewritten, parsed strictly.
	OK bool
	// Corrected reports that at least one rewrite was needed.
	Corrected bool
	// Text is the strict JSON text that produced Value, or the input when
	// nothing parsed.
	Text string
	// Rules lists the rewrites that changed the text, in application order.
	Rules []string
	// ParseErr is the strict parse error of the untouched input, if any.
	ParseErr error
}

// Corrector applies a fixed rule list to candidate text. It holds no
// per-call state and is safe for concurrent use.
type Corrector struct {
	rules    []Rule
	fallback bool
}

// Option configures a Corrector.
type Option func(*Corrector)

// WithRules replaces the default rule list. Order is priority order.
func WithRules(rules ...Rule) Option {
	return func(c *Corrector) {
		c.rules = append([]Rule(nil), rules...)
	}
}

// WithRepairFallback enables github.com/kaptinlin/jsonrepair as the last
// attempt once every declared rule has failed.
func WithRepairFallback(enabled bool) Option {
	return func(c *Corrector) {
		c.fallback = enabled
	}
}

// New returns a Corrector using Rules unless overridden.
func New(opts ...Option) *Corrector {
	c := &Corrector{rules: Rules()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RuleNames returns the configured rule names in order.
func (c *Corrector) RuleNames() []string {
	names := make([]string, len(c.rules))
	for i, r := range c.rules {
		names[i] = r.Name
	}
	return names
}

// Parse parses text strictly without any rewrite.
func (c *Corrector) Parse(text string) Outcome {
	value, err := parse.Strict(text)
	if err != nil {
		return Outcome{Text: text, ParseErr: err}
	}
	return Outcome{Value: value, OK: true, Text: text}
}

// Correct parses text, rewriting it when strict parsing fails. The order is
// the combined pipeline, then each rule alone, then the pipeline repeated to
// a fixed point, then the optional repair fallback.
func (c *Corrector) Correct(text string) Outcome {
	out := c.Parse(text)
	if out.OK {
		return out
	}
	parseErr := out.ParseErr

	res, current, applied := c.pipeline(text, nil)
	if res.OK {
		res.ParseErr = parseErr
		return res
	}

	for _, r := range c.rules {
		fixed := r.Apply(text)
		if fixed == text {
			continue
		}
		if value, err := parse.Strict(fixed); err == nil {
			return Outcome{Value: value, OK: true, Corrected: true, Text: fixed, Rules: []string{r.Name}, ParseErr: parseErr}
		}
	}

	for pass := 1; pass < len(c.rules); pass++ {
		before := current
		res, current, applied = c.pipeline(current, applied)
		if res.OK {
			res.ParseErr = parseErr
			return res
		}
		if current == before {
			break
		}
	}

	if c.fallback {
		if repaired, err := jsonrepair.JSONRepair(text); err == nil {
			if value, err := parse.Strict(repaired); err == nil {
				return Outcome{Value: value, OK: true, Corrected: true, Text: repaired, Rules: []string{RuleRepair}, ParseErr: parseErr}
			}
		}
	}

	return Outcome{Text: text, ParseErr: parseErr}
}

// pipeline applies every rule in order to text, parsing after each rule that
// changed it. It returns the first successful outcome, or the final text and
// the accumulated rule names when nothing parsed.
func (c *Corrector) pipeline(text string, applied []string) (Outcome, string, []string) {
	current := text
	for _, r := range c.rules {
		next := r.Apply(current)
		if next == current {
			continue
		}
		current = next
		applied = append(applied, r.Name)
		if value, err := parse.Strict(current); err == nil {
			return Outcome{Value: value, OK: true, Corrected: true, Text: current, Rules: applied}, current, applied
		}
	}
	return Outcome{}, current, applied
}
