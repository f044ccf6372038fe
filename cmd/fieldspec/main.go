package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/fieldspec/fieldspec"
	"github.com/fieldspec/fieldspec/jsonschema"
	"github.com/fieldspec/fieldspec/parser"
	jsonsrc "github.com/fieldspec/fieldspec/source/json"
	yamlsrc "github.com/fieldspec/fieldspec/source/yaml"
	"github.com/fieldspec/fieldspec/validator"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "check":
		checkCmd(os.Args[2:])
	case "export":
		exportCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "fieldspec CLI\n\nUsage:\n  fieldspec check -schema rules.fs -in doc.json [-format json|yaml] [-print]\n  fieldspec export -schema rules.fs\n\nNotes:\n  - check validates a JSON or YAML document against a DSL schema and exits non-zero on failure.\n  - export prints the JSON Schema projection of a DSL schema.")
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var schemaPath, inPath, format string
	var printDoc bool
	fs.StringVar(&schemaPath, "schema", "", "path to the DSL schema file")
	fs.StringVar(&inPath, "in", "-", "path to the document to validate ('-' for stdin)")
	fs.StringVar(&format, "format", "", "document format: json or yaml (default: by extension)")
	fs.BoolVar(&printDoc, "print", false, "print the validated document (with defaults filled) on success")
	_ = fs.Parse(args)
	if schemaPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	rules, err := parseSchemaFile(schemaPath)
	if err != nil {
		fatalf("parse schema: %v", err)
	}

	data, err := readInput(inPath)
	if err != nil {
		fatalf("read input: %v", err)
	}

	if format == "" {
		format = detectFormat(inPath)
	}
	value, err := decodeDocument(data, format)
	if err != nil {
		fatalf("decode input: %v", err)
	}

	if err := validator.ValidateObject(value, rules); err != nil {
		fatalf("validation failed: %v", err)
	}

	if printDoc {
		out, err := jsonsrc.EncodeIndent(value)
		if err != nil {
			fatalf("encode result: %v", err)
		}
		fmt.Println(string(out))
	}
}

func exportCmd(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	var schemaPath string
	fs.StringVar(&schemaPath, "schema", "", "path to the DSL schema file")
	_ = fs.Parse(args)
	if schemaPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	rules, err := parseSchemaFile(schemaPath)
	if err != nil {
		fatalf("parse schema: %v", err)
	}

	out, err := gojson.MarshalIndent(jsonschema.Export(rules), "", "  ")
	if err != nil {
		fatalf("encode schema: %v", err)
	}
	fmt.Println(string(out))
}

func parseSchemaFile(path string) ([]fieldspec.FieldRule, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parser.ParseRules(string(src))
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func detectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

func decodeDocument(data []byte, format string) (fieldspec.Value, error) {
	switch format {
	case "yaml":
		return yamlsrc.Decode(data)
	default:
		return jsonsrc.Decode(data)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
