// Package scan segments free-form text into an ordered sequence of spans.
//
// A span is either prose ([Text]) or a region that looks like it holds one
// JSON value ([Candidate]): the outermost balanced {...} or [...] region, or
// the content of a ```json fenced block. Spans never overlap, leave no gaps
// and concatenate back to the original input byte for byte.
//
// Scanning does not decide whether a candidate is valid JSON; that is left to
// the parse and correct packages.
package scan
