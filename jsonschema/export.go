// Package jsonschema projects a parsed rule tree into a minimal JSON Schema
// document. The projection is lossy where the two models diverge: semantic
// string types map to JSON Schema formats, string ranges become
// minLength/maxLength, and exclusive bounds use the draft-2020 keywords.
package jsonschema

import (
	"strconv"

	"github.com/fieldspec/fieldspec"
)

// Export renders a top-level rule list as an object schema.
func Export(rules []fieldspec.FieldRule) *Schema {
	root := &Schema{Type: "object", Properties: map[string]*Schema{}}
	for i := range rules {
		r := &rules[i]
		root.Properties[r.Field] = exportRule(r)
		if r.Required && r.Default == nil {
			root.Required = append(root.Required, r.Field)
		}
	}
	return root
}

func exportRule(r *fieldspec.FieldRule) *Schema {
	var s *Schema
	if len(r.UnionTypes) > 0 {
		s = &Schema{}
		for _, t := range r.UnionTypes {
			s.OneOf = append(s.OneOf, typeSchema(t))
		}
	} else {
		s = typeSchema(r.Type)
	}

	if r.Default != nil {
		s.Default = valueToAny(r.Default)
	}
	for _, ev := range r.EnumValues {
		s.Enum = append(s.Enum, valueToAny(ev))
	}
	for _, c := range r.Constraints {
		applyConstraint(s, r, c)
	}

	if r.Rule != nil {
		s.Items = exportRule(r.Rule)
	}
	if r.Children != nil {
		s.Properties = map[string]*Schema{}
		for i := range r.Children {
			child := &r.Children[i]
			s.Properties[child.Field] = exportRule(child)
			if child.Required && child.Default == nil {
				s.Required = append(s.Required, child.Field)
			}
		}
	}
	return s
}

func applyConstraint(s *Schema, r *fieldspec.FieldRule, c fieldspec.Constraint) {
	switch c := c.(type) {
	case fieldspec.Range:
		if r.Type == fieldspec.TypeInt || r.Type == fieldspec.TypeFloat {
			if min, ok := boundFloat(c.Min); ok {
				if c.MinInclusive {
					s.Minimum = &min
				} else {
					s.ExclusiveMinimum = &min
				}
			}
			if max, ok := boundFloat(c.Max); ok {
				if c.MaxInclusive {
					s.Maximum = &max
				} else {
					s.ExclusiveMaximum = &max
				}
			}
		} else {
			// String-family range: byte-length bounds. JSON Schema has no
			// exclusive length keywords, so exclusive bounds tighten by one.
			if min, ok := boundUint(c.Min); ok {
				if !c.MinInclusive {
					min++
				}
				s.MinLength = &min
			}
			if max, ok := boundUint(c.Max); ok {
				if !c.MaxInclusive && max > 0 {
					max--
				}
				s.MaxLength = &max
			}
		}
	case fieldspec.Regex:
		s.Pattern = c.Pattern
	}
}

func typeSchema(t fieldspec.FieldType) *Schema {
	switch t {
	case fieldspec.TypeString, fieldspec.TypePassword, fieldspec.TypeToken:
		return &Schema{Type: "string"}
	case fieldspec.TypeInt:
		return &Schema{Type: "integer"}
	case fieldspec.TypeFloat:
		return &Schema{Type: "number"}
	case fieldspec.TypeBool:
		return &Schema{Type: "boolean"}
	case fieldspec.TypeObject:
		return &Schema{Type: "object"}
	case fieldspec.TypeArray:
		return &Schema{Type: "array"}
	case fieldspec.TypeTimestamp:
		return &Schema{Type: "integer", Format: "timestamp"}
	default:
		// Semantic string subtypes keep their DSL keyword as the format name.
		return &Schema{Type: "string", Format: t.String()}
	}
}

func valueToAny(v fieldspec.Value) any {
	switch v := v.(type) {
	case fieldspec.String:
		return string(v)
	case fieldspec.Int:
		return int64(v)
	case fieldspec.Float:
		return float64(v)
	case fieldspec.Bool:
		return bool(v)
	case fieldspec.Array:
		out := make([]any, 0, len(v))
		for _, e := range v {
			out = append(out, valueToAny(e))
		}
		return out
	case fieldspec.Object:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = valueToAny(e)
		}
		return out
	default:
		return nil
	}
}

func boundFloat(v fieldspec.Value) (float64, bool) {
	switch v := v.(type) {
	case fieldspec.Int:
		return float64(v), true
	case fieldspec.Float:
		return float64(v), true
	default:
		return 0, false
	}
}

func boundUint(v fieldspec.Value) (uint64, bool) {
	switch v := v.(type) {
	case fieldspec.Int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case fieldspec.String:
		n, err := strconv.ParseUint(string(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
