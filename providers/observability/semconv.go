package observability

// Attribute keys, span, event and metric names recorded by the engine.

// --- Extraction Attributes ---

const (
	// AttrMode is the extraction mode: "objects" or "all".
	AttrMode = "llmjson.mode"

	// AttrInputLength is the length of the input text in bytes.
	AttrInputLength = "llmjson.input.length"

	// AttrCorrection reports whether correction was enabled.
	AttrCorrection = "llmjson.correction"

	// AttrTextFragments is the number of text fragments returned.
	AttrTextFragments = "llmjson.result.text"

	// AttrValues is the number of JSON values returned.
	AttrValues = "llmjson.result.values"
)

// --- Candidate Attributes ---

const (
	// AttrCandidateStart is the byte offset where a candidate begins.
	AttrCandidateStart = "llmjson.candidate.start"

	// AttrCandidateEnd is the byte offset just past a candidate.
	AttrCandidateEnd = "llmjson.candidate.end"

	// AttrCandidateFenced reports whether the candidate came from a code fence.
	AttrCandidateFenced = "llmjson.candidate.fenced"

	// AttrCandidateTruncated reports whether the candidate ran to end of input.
	AttrCandidateTruncated = "llmjson.candidate.truncated"

	// AttrCandidateSnippet is a shortened copy of the candidate text.
	AttrCandidateSnippet = "llmjson.candidate.snippet"

	// AttrCorrectionRules lists the correction rules that were applied.
	AttrCorrectionRules = "llmjson.correction.rules"
)

// --- Schema Attributes ---

const (
	// AttrSchemaName is the name of the matched schema.
	AttrSchemaName = "llmjson.schema.name"

	// AttrSchemaValid reports whether the value satisfied the matched schema.
	AttrSchemaValid = "llmjson.schema.valid"

	// AttrSchemaCount is the number of configured schemas.
	AttrSchemaCount = "llmjson.schema.count"
)

// --- General Attributes ---

const (
	// AttrError is the error message
	AttrError = "error"

	// AttrDuration is the operation duration
	AttrDuration = "duration"

	// AttrStatus is the operation status
	AttrStatus = "status"

	// AttrStatusDescription is the status description
	AttrStatusDescription = "status_description"
)

// --- Span Names ---

const (
	// SpanExtract covers one Extract or ExtractAll call.
	SpanExtract = "llmjson.extract"
)

// --- Event Names ---

const (
	// EventCandidateCorrected marks a candidate recovered by correction.
	EventCandidateCorrected = "llmjson.candidate.corrected"

	// EventCandidateUnrecoverable marks a candidate folded back into text.
	EventCandidateUnrecoverable = "llmjson.candidate.unrecoverable"

	// EventCandidateRescanned marks a truncated candidate whose tail was scanned again.
	EventCandidateRescanned = "llmjson.candidate.rescanned"
)

// --- Metric Names ---

const (
	// MetricCandidates counts candidate spans found by the scanner.
	MetricCandidates = "llmjson.candidates"

	// MetricCandidatesCorrected counts candidates that needed correction.
	MetricCandidatesCorrected = "llmjson.candidates.corrected"

	// MetricCandidatesUnrecoverable counts candidates folded back into text.
	MetricCandidatesUnrecoverable = "llmjson.candidates.unrecoverable"

	// MetricSchemaMatched counts values matched to a schema.
	MetricSchemaMatched = "llmjson.schema.matched"

	// MetricExtractDuration is the histogram of extraction duration in seconds.
	MetricExtractDuration = "llmjson.extract.duration"
)
