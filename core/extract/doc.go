// Package extract pulls JSON values out of free-form model output.
//
// An [Engine] scans the input into prose and candidate spans, parses every
// candidate strictly, falls back to the corrector when that fails, and
// assembles a [Result]: the recovered values in input order, the prose
// between them, and optionally a schema classification of each value.
//
//	engine, err := extract.New(extract.WithSchemas(defs...))
//	if err != nil {
//	    return err
//	}
//	res := engine.Extract(reply)
//
// Extraction itself never fails. Candidates that cannot be recovered are
// folded back into the surrounding text, and a candidate that runs to the end
// of the input without closing gives up only its opening byte so that values
// after it are still found.
//
// Engines are immutable and safe for concurrent use.
package extract
