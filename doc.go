package fieldspec

// Package fieldspec provides:
//
// - A compact textual DSL for describing structured records (fields, types,
//   nesting, constraints, defaults)
// - A rule tree (FieldRule) produced once by the parser, immutable after
//   construction and safe to share across concurrent validations
// - A tagged value tree (Value) for decoded data, validated and default-filled
//   in place by the validator
// - A stable error model via Issues (path, code, message); the rendered
//   message string is the canonical error surface
//
// Design policy:
// - Keep the shared AST and the error model in the root package; put the
//   pipeline stages under token/, parser/, and validator/.
// - Place decoders for concrete wire formats under source/, the JSON Schema
//   projection under jsonschema/, and the CLI under cmd/fieldspec.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	rules, err := parser.ParseRules(`(age:int[0,150]=30)`)
//	doc, err := json.Decode(data)
//	err = validator.ValidateObject(doc, rules)
//
// The regular-expression engine is Go's regexp package (RE2). Patterns in the
// DSL and the built-in format patterns are written against RE2 syntax;
// constructs RE2 rejects (backreferences, lookarounds) fail validation with
// an invalid-regex error.
