package validator_test

import (
	"strings"
	"testing"

	"github.com/fieldspec/fieldspec"
	"github.com/fieldspec/fieldspec/validator"
)

func checkOne(t *testing.T, dsl string, val fieldspec.Value) error {
	t.Helper()
	rules := mustParse(t, dsl)
	return validator.ValidateObject(fieldspec.Object{"v": val}, rules)
}

func TestFormats_Valid(t *testing.T) {
	cases := []struct {
		typ string
		val fieldspec.Value
	}{
		{"email", fieldspec.String("user@example.com")},
		{"uri", fieldspec.String("https://example.com/path?q=1")},
		{"uri", fieldspec.String("ftp://host")},
		{"uuid", fieldspec.String("550e8400-e29b-41d4-a716-446655440000")},
		{"uuid", fieldspec.String("550e8400e29b41d4a716446655440000")},
		{"ip", fieldspec.String("192.168.0.1")},
		{"ip", fieldspec.String("255.255.255.255")},
		{"mac", fieldspec.String("01:23:45:67:89:ab")},
		{"mac", fieldspec.String("01-23-45-67-89-AB")},
		{"date", fieldspec.String("2024-01-31")},
		{"datetime", fieldspec.String("2024-01-31T12:00:00Z")},
		{"datetime", fieldspec.String("2024-01-31T12:00:00")},
		{"time", fieldspec.String("23:59:59")},
		{"timestamp", fieldspec.Int(1700000000)},
		{"color", fieldspec.String("#ff00aa")},
		{"color", fieldspec.String("#f0a")},
		{"hostname", fieldspec.String("example.com")},
		{"hostname", fieldspec.String("sub-1.example.co")},
		{"slug", fieldspec.String("hello-world-42")},
		{"hex", fieldspec.String("deadBEEF01")},
		{"base64", fieldspec.String("aGVsbG8=")},
		{"password", fieldspec.String("anything goes")},
		{"token", fieldspec.String("tok_123")},
	}
	for _, tc := range cases {
		if err := checkOne(t, "(v:"+tc.typ+")", tc.val); err != nil {
			t.Errorf("%s: %v should validate, got: %v", tc.typ, tc.val, err)
		}
	}
}

func TestFormats_Invalid(t *testing.T) {
	cases := []struct {
		typ string
		val fieldspec.Value
	}{
		{"email", fieldspec.String("not-an-email")},
		{"email", fieldspec.String("a@b")},
		{"uri", fieldspec.String("no-scheme-here")},
		{"uuid", fieldspec.String("550e8400-e29b-41d4-a716")},
		{"ip", fieldspec.String("256.1.1.1")},
		{"ip", fieldspec.String("1.2.3")},
		{"mac", fieldspec.String("01:23:45:67:89")},
		{"date", fieldspec.String("2024-1-31")},
		{"datetime", fieldspec.String("2024-01-31 12:00:00")},
		{"time", fieldspec.String("23:59")},
		{"timestamp", fieldspec.Float(1.7e9)},
		{"color", fieldspec.String("ff00aa")},
		{"color", fieldspec.String("#ff00a")},
		{"hostname", fieldspec.String("nodot")},
		{"hostname", fieldspec.String("-leading.example.com")},
		{"slug", fieldspec.String("Hello-World")},
		{"slug", fieldspec.String("double--dash")},
		{"hex", fieldspec.String("xyz")},
		{"base64", fieldspec.String("a===")},
		{"password", fieldspec.Int(1)},
		{"token", fieldspec.Bool(true)},
	}
	for _, tc := range cases {
		if err := checkOne(t, "(v:"+tc.typ+")", tc.val); err == nil {
			t.Errorf("%s: %v should be rejected", tc.typ, tc.val)
		}
	}
}

func TestFormats_HostnameLengthLimit(t *testing.T) {
	label := strings.Repeat("a", 61)
	long := strings.Join([]string{label, label, label, label, label, "com"}, ".")
	if len(long) <= 253 {
		t.Fatalf("fixture should exceed 253 bytes, got %d", len(long))
	}
	err := checkOne(t, "(v:hostname)", fieldspec.String(long))
	if err == nil || !strings.Contains(err.Error(), "Invalid hostname") {
		t.Fatalf("expected hostname rejection, got: %v", err)
	}

	ok := strings.Join([]string{label, label, label, "example.com"}, ".")
	if len(ok) > 253 {
		t.Fatalf("fixture should fit in 253 bytes, got %d", len(ok))
	}
	if err := checkOne(t, "(v:hostname)", fieldspec.String(ok)); err != nil {
		t.Fatalf("hostname at limit should validate: %v", err)
	}
}

func TestFormats_NonStringInputs(t *testing.T) {
	err := checkOne(t, "(v:email)", fieldspec.Int(5))
	if err == nil || !strings.Contains(err.Error(), "Not string for email") {
		t.Fatalf("expected type error, got: %v", err)
	}
	err = checkOne(t, "(v:ip)", fieldspec.Bool(false))
	if err == nil || !strings.Contains(err.Error(), "Not string for ip") {
		t.Fatalf("expected type error, got: %v", err)
	}
}
