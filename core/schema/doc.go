// Package schema classifies recovered JSON values against named schemas.
//
// A [Matcher] is built once from an ordered list of [Def]s. For every object
// it selects the first definition whose type admits objects and whose
// required keys are all present, then validates the object against that
// definition in full. Definitions should therefore be listed in priority
// order: when two of them fit, the earlier one wins.
//
// Values that are not objects are never matched and are reported valid.
// Objects that fit no definition are reported invalid with no errors.
//
// Definitions can be written in Go, derived from a Go type with [DefFor], or
// loaded from JSON and YAML files with [LoadFS].
package schema
