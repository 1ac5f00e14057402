package schema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/leofalp/llmjson/pkg/jsonschema"
	"gopkg.in/yaml.v3"
)

var definitionExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// LoadFS reads every .json, .yaml and .yml file in fsys, in lexical path
// order. A file holds either one definition or a list of them:
//
//	name: person
//	schema:
//	  type: object
//	  required: [name, age]
func LoadFS(fsys fs.FS) ([]Def, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && definitionExtensions[strings.ToLower(path.Ext(p))] {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("schema: walk definitions: %w", err)
	}
	sort.Strings(files)

	var defs []Def
	for _, file := range files {
		loaded, err := loadFile(fsys, file)
		if err != nil {
			return nil, err
		}
		defs = append(defs, loaded...)
	}
	return defs, nil
}

func loadFile(fsys fs.FS, file string) ([]Def, error) {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", file, err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schema: parse %s: %w", file, err)
	}
	if doc == nil {
		return nil, nil
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("schema: convert %s: %w", file, err)
	}

	if _, isList := doc.([]any); isList {
		var defs []Def
		if err := json.Unmarshal(raw, &defs); err != nil {
			return nil, fmt.Errorf("schema: decode %s: %w", file, err)
		}
		return defs, nil
	}

	var def Def
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("schema: decode %s: %w", file, err)
	}
	return []Def{def}, nil
}

// DefFor builds a definition named name from the Go type T.
func DefFor[T any](name string) (Def, error) {
	s, err := jsonschema.Generate[T]()
	if err != nil {
		return Def{}, fmt.Errorf("schema: generate %q: %w", name, err)
	}
	return Def{Name: name, Schema: s}, nil
}
