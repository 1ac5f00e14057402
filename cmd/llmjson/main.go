// Command llmjson reads model output from a file or stdin and prints the
// extracted JSON values and surrounding text as a JSON document.
//
// Usage:
//
//	llmjson [-all] [-no-correct] [-repair] [-schemas DIR] [-env FILE] [-pretty] [FILE]
//
// Settings not given as flags come from LLMJSON_* environment variables and
// the .env file.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/leofalp/llmjson/core/extract"
	"github.com/leofalp/llmjson/internal/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.SetFlags(0)
		log.Fatalf("llmjson: %v", err)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("llmjson", flag.ContinueOnError)
	fs.SetOutput(stderr)
	all := fs.Bool("all", false, "extract arrays as well as objects")
	noCorrect := fs.Bool("no-correct", false, "disable correction of malformed JSON")
	repair := fs.Bool("repair", false, "enable the general repair fallback")
	schemaDir := fs.String("schemas", "", "directory of schema definition files")
	envFile := fs.String("env", config.DefaultEnvFile, "env file to load")
	pretty := fs.Bool("pretty", false, "indent the output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("at most one input file, got %d", fs.NArg())
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		return err
	}
	if *noCorrect {
		cfg.Correction = false
	}
	if *repair {
		cfg.RepairFallback = true
	}
	if *schemaDir != "" {
		cfg.SchemaDir = *schemaDir
	}

	opts, err := cfg.EngineOptions()
	if err != nil {
		return err
	}
	engine, err := extract.New(append(opts, extract.WithObserver(cfg.Observer(stderr)))...)
	if err != nil {
		return err
	}

	input, err := readInput(fs.Arg(0), stdin)
	if err != nil {
		return err
	}

	var res *extract.Result
	if *all {
		res = engine.ExtractAll(input)
	} else {
		res = engine.Extract(input)
	}

	enc := json.NewEncoder(stdout)
	enc.SetEscapeHTML(false)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(res)
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}
