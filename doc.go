// Package llmjson extracts JSON values from the free-form text that language
// models produce.
//
// Model replies mix prose with JSON that is often slightly broken: unquoted
// keys, single quotes, trailing commas, Python literals, missing closing
// brackets. llmjson finds every candidate value in such text, repairs what it
// can, keeps the prose around it, and can classify each object against a set
// of named schemas.
//
// The quickest path uses the shared default engine:
//
//	res := llmjson.Extract(reply)
//	for _, obj := range res.JSON {
//	    fmt.Println(obj)
//	}
//
// Typed decoding goes through ExtractAs:
//
//	type Person struct {
//	    Name string `json:"name"`
//	    Age  int    `json:"age"`
//	}
//	people, err := llmjson.ExtractAs[Person](reply)
//
// Engines with their own settings are built with New. The building blocks
// live in the core packages: core/scan splits text into spans, core/correct
// repairs candidates, core/schema matches and validates, and core/extract
// ties them together.
package llmjson
