package fieldspec

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// Lexer
	CodeUnexpectedChar  = "unexpected_char"
	CodeMalformedNumber = "malformed_number"
	// Parser
	CodeUnexpectedToken = "unexpected_token"
	CodeUnknownType     = "unknown_type"
	CodeInvalidDefault  = "invalid_default"
	// Validator
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeInvalidEnum   = "invalid_enum"
	CodeOutOfRange    = "out_of_range"
	CodePattern       = "pattern"
	CodeInvalidRegex  = "invalid_regex"
	CodeInvalidFormat = "invalid_format"
	CodeNotObject     = "not_object"
	// Sources
	CodeParseError = "parse_error"
)

// Issue represents a single validation or parse failure.
type Issue struct {
	Path    string // Field path where the issue occurred; empty for positional (lex/parse) errors.
	Code    string // One of the codes listed above.
	Message string // Canonical human-readable message.
}

// Issues is a collection of issues that implements error. Both stages fail
// fast, so an Issues value carries exactly one entry in practice and Error()
// renders the canonical message string.
type Issues []Issue

func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	if len(iss) == 1 {
		return iss[0].Message
	}
	b := &strings.Builder{}
	for i, it := range iss {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(it.Message)
	}
	return b.String()
}

// Errorf builds a single-issue error with a formatted canonical message.
func Errorf(code, path, format string, args ...any) Issues {
	return Issues{{Path: path, Code: code, Message: fmt.Sprintf(format, args...)}}
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
