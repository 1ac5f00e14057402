// Package utils holds small helpers shared by the engine and the CLI:
// log-safe text snippets and an elapsed-time timer.
package utils
