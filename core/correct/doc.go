// Package correct repairs almost-valid JSON produced by language models.
//
// Repairs are plain text-to-text [Rule] values applied in a declared order.
// A [Corrector] first tries the whole rule list as one pipeline, parsing
// after every stage, then each rule on its own, then repeats the pipeline
// until the text stops changing. An optional fallback hands the text to
// github.com/kaptinlin/jsonrepair. Correction never fails loudly: an
// unrecoverable candidate is reported through [Outcome.OK].
package correct
