package fieldspec_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fieldspec/fieldspec"
)

func TestIssuesError(t *testing.T) {
	err := fieldspec.Errorf(fieldspec.CodeRequired, "name", "Missing required field %s", "name")
	if err.Error() != "Missing required field name" {
		t.Fatalf("single issue must render its message verbatim, got %q", err.Error())
	}

	multi := fieldspec.Issues{
		{Path: "a", Code: fieldspec.CodeRequired, Message: "first"},
		{Path: "b", Code: fieldspec.CodeOutOfRange, Message: "second"},
	}
	if multi.Error() != "first; second" {
		t.Fatalf("unexpected joined message: %q", multi.Error())
	}
}

func TestAsIssues(t *testing.T) {
	err := fieldspec.Errorf(fieldspec.CodeOutOfRange, "age", "age value Int(200) out of range [Int(0), Int(150)]")

	issues, ok := fieldspec.AsIssues(err)
	if !ok || len(issues) != 1 {
		t.Fatalf("expected one issue, got: %v", err)
	}
	if issues[0].Code != fieldspec.CodeOutOfRange || issues[0].Path != "age" {
		t.Fatalf("unexpected issue: %+v", issues[0])
	}

	wrapped := fmt.Errorf("validate: %w", err)
	if _, ok := fieldspec.AsIssues(wrapped); !ok {
		t.Fatalf("AsIssues should unwrap")
	}

	if _, ok := fieldspec.AsIssues(errors.New("plain")); ok {
		t.Fatalf("plain errors are not issues")
	}
}
