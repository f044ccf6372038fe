package jsonschema_test

import (
	"testing"

	"github.com/fieldspec/fieldspec/jsonschema"
	"github.com/fieldspec/fieldspec/parser"
)

func export(t *testing.T, dsl string) *jsonschema.Schema {
	t.Helper()
	rules, err := parser.ParseRules(dsl)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return jsonschema.Export(rules)
}

func TestExport_ObjectShape(t *testing.T) {
	s := export(t, `(name:string[1,50], age:int[0,150]=30, nickname?:string)`)

	if s.Type != "object" || len(s.Properties) != 3 {
		t.Fatalf("unexpected root: %+v", s)
	}
	// Required lists only fields that are mandatory and have no default.
	if len(s.Required) != 1 || s.Required[0] != "name" {
		t.Fatalf("unexpected required: %v", s.Required)
	}

	age := s.Properties["age"]
	if age.Type != "integer" {
		t.Fatalf("unexpected age type: %q", age.Type)
	}
	if age.Default != int64(30) {
		t.Fatalf("unexpected age default: %v", age.Default)
	}
	if age.Minimum == nil || *age.Minimum != 0 || age.Maximum == nil || *age.Maximum != 150 {
		t.Fatalf("unexpected age bounds: %+v", age)
	}

	name := s.Properties["name"]
	if name.MinLength == nil || *name.MinLength != 1 || name.MaxLength == nil || *name.MaxLength != 50 {
		t.Fatalf("unexpected name length bounds: %+v", name)
	}
}

func TestExport_ExclusiveBounds(t *testing.T) {
	s := export(t, `(score:float(0,100))`)
	score := s.Properties["score"]
	if score.Type != "number" {
		t.Fatalf("unexpected type: %q", score.Type)
	}
	if score.Minimum != nil || score.Maximum != nil {
		t.Fatalf("exclusive bounds must not use minimum/maximum: %+v", score)
	}
	if score.ExclusiveMinimum == nil || *score.ExclusiveMinimum != 0 {
		t.Fatalf("unexpected exclusiveMinimum: %+v", score)
	}
	if score.ExclusiveMaximum == nil || *score.ExclusiveMaximum != 100 {
		t.Fatalf("unexpected exclusiveMaximum: %+v", score)
	}
}

func TestExport_ExclusiveStringLengthTightens(t *testing.T) {
	s := export(t, `(u:string(1,5))`)
	u := s.Properties["u"]
	if u.MinLength == nil || *u.MinLength != 2 {
		t.Fatalf("exclusive min length should tighten to 2: %+v", u)
	}
	if u.MaxLength == nil || *u.MaxLength != 4 {
		t.Fatalf("exclusive max length should tighten to 4: %+v", u)
	}
}

func TestExport_EnumAndPattern(t *testing.T) {
	s := export(t, `(role:string enum(admin,user)=user, slug:string regex("^[a-z-]+$"))`)

	role := s.Properties["role"]
	if len(role.Enum) != 2 || role.Enum[0] != "admin" || role.Enum[1] != "user" {
		t.Fatalf("unexpected enum: %v", role.Enum)
	}
	if role.Default != "user" {
		t.Fatalf("unexpected default: %v", role.Default)
	}

	slug := s.Properties["slug"]
	if slug.Pattern != `^[a-z-]+$` {
		t.Fatalf("unexpected pattern: %q", slug.Pattern)
	}
}

func TestExport_UnionBecomesOneOf(t *testing.T) {
	s := export(t, `(id:int|float)`)
	id := s.Properties["id"]
	if id.Type != "" || len(id.OneOf) != 2 {
		t.Fatalf("unexpected union schema: %+v", id)
	}
	if id.OneOf[0].Type != "integer" || id.OneOf[1].Type != "number" {
		t.Fatalf("unexpected union members: %+v, %+v", id.OneOf[0], id.OneOf[1])
	}
}

func TestExport_NestedObjectAndArray(t *testing.T) {
	s := export(t, `(p:object(tags:array<string[1,10]>, contact:object(email:email)))`)

	p := s.Properties["p"]
	if p.Type != "object" || len(p.Properties) != 2 {
		t.Fatalf("unexpected nested object: %+v", p)
	}

	tags := p.Properties["tags"]
	if tags.Type != "array" || tags.Items == nil || tags.Items.Type != "string" {
		t.Fatalf("unexpected array schema: %+v", tags)
	}
	if tags.Items.MinLength == nil || *tags.Items.MinLength != 1 {
		t.Fatalf("element constraints should project onto items: %+v", tags.Items)
	}

	email := p.Properties["contact"].Properties["email"]
	if email.Type != "string" || email.Format != "email" {
		t.Fatalf("semantic type should map to format: %+v", email)
	}
}

func TestExport_SemanticFormats(t *testing.T) {
	s := export(t, `(h:hostname, ts:timestamp, pw:password)`)

	h := s.Properties["h"]
	if h.Type != "string" || h.Format != "hostname" {
		t.Fatalf("unexpected hostname schema: %+v", h)
	}
	ts := s.Properties["ts"]
	if ts.Type != "integer" || ts.Format != "timestamp" {
		t.Fatalf("unexpected timestamp schema: %+v", ts)
	}
	pw := s.Properties["pw"]
	if pw.Type != "string" || pw.Format != "" {
		t.Fatalf("password should stay a plain string: %+v", pw)
	}
}
