// Package validator walks a value tree guided by a rule tree, filling in
// defaults and applying type, union, enum, range, and regex semantics.
//
// A rule tree is immutable and may be shared across concurrent validations;
// the value tree is exclusively owned by the call and is mutated only to
// insert default values into objects. Validation fails fast: the first
// failing field aborts the walk, and defaults inserted before the failure
// remain in the value tree.
package validator

import (
	"regexp"
	"strconv"

	"github.com/fieldspec/fieldspec"
)

// ValidateObject asserts the value is an object, then applies each top-level
// rule in declaration order.
func ValidateObject(value fieldspec.Value, rules []fieldspec.FieldRule) error {
	if _, ok := value.(fieldspec.Object); !ok {
		return fieldspec.Errorf(fieldspec.CodeNotObject, "", "Value is not object")
	}
	for i := range rules {
		if err := ValidateField(value, &rules[i]); err != nil {
			return err
		}
	}
	return nil
}

// ValidateField validates one rule against a container. When the container is
// an object the rule's field is looked up inside it (inserting the default
// first if the key is absent); otherwise the container itself is the value,
// which is how array elements recurse through a nameless element rule.
func ValidateField(container fieldspec.Value, rule *fieldspec.FieldRule) error {
	if obj, ok := container.(fieldspec.Object); ok {
		if _, exists := obj[rule.Field]; !exists && rule.Default != nil {
			obj[rule.Field] = rule.Default.Clone()
		}
	}

	var val fieldspec.Value
	if obj, ok := container.(fieldspec.Object); ok {
		v, exists := obj[rule.Field]
		if !exists {
			if rule.Required {
				return fieldspec.Errorf(fieldspec.CodeRequired, rule.Field, "Missing required field %s", rule.Field)
			}
			return nil
		}
		val = v
	} else {
		val = container
	}

	if len(rule.UnionTypes) > 0 {
		ok := false
		for _, t := range rule.UnionTypes {
			if validateType(val, t) == nil {
				ok = true
				break
			}
		}
		if !ok {
			return fieldspec.Errorf(fieldspec.CodeInvalidType, rule.Field,
				"%s value %s does not match union types %s", rule.Field, val, typeList(rule.UnionTypes))
		}
	} else if err := validateType(val, rule.Type); err != nil {
		return fieldspec.Errorf(fieldspec.CodeInvalidType, rule.Field, "%s value %s: %s", rule.Field, val, err)
	}

	if rule.EnumValues != nil {
		found := false
		for _, ev := range rule.EnumValues {
			if ev.Equal(val) {
				found = true
				break
			}
		}
		if !found {
			return fieldspec.Errorf(fieldspec.CodeInvalidEnum, rule.Field,
				"%s value %s not in enum %s", rule.Field, val, valueList(rule.EnumValues))
		}
	}

	for _, c := range rule.Constraints {
		switch c := c.(type) {
		case fieldspec.Range:
			if err := checkRange(val, c, rule.Field); err != nil {
				return err
			}
		case fieldspec.Regex:
			if err := checkRegex(val, c, rule.Field); err != nil {
				return err
			}
		}
	}

	if rule.Rule != nil {
		switch v := val.(type) {
		case fieldspec.Object:
			if err := ValidateField(val, rule.Rule); err != nil {
				return err
			}
		case fieldspec.Array:
			for _, elem := range v {
				if err := ValidateField(elem, rule.Rule); err != nil {
					return err
				}
			}
		}
	}

	if rule.Children != nil {
		if _, ok := val.(fieldspec.Object); ok {
			for i := range rule.Children {
				if err := ValidateField(val, &rule.Children[i]); err != nil {
					return err
				}
			}
		} else {
			return fieldspec.Errorf(fieldspec.CodeNotObject, rule.Field, "%s is not object but has children", rule.Field)
		}
	}

	return nil
}

// checkRange applies a range constraint. Numeric values compare with both
// bounds coerced to float64; string values compare their UTF-8 byte length
// against bounds taken as unsigned integers (Int bounds are converted with
// wraparound, String bounds must parse as unsigned decimal).
func checkRange(val fieldspec.Value, c fieldspec.Range, field string) error {
	switch v := val.(type) {
	case fieldspec.Int:
		return checkNumericRange(float64(v), val, c, field)
	case fieldspec.Float:
		return checkNumericRange(float64(v), val, c, field)
	case fieldspec.String:
		n := uint64(len(v))
		minV, err := lengthBound(c.Min, field)
		if err != nil {
			return err
		}
		maxV, err := lengthBound(c.Max, field)
		if err != nil {
			return err
		}
		minOK := n > minV || (c.MinInclusive && n == minV)
		maxOK := n < maxV || (c.MaxInclusive && n == maxV)
		if !minOK || !maxOK {
			return fieldspec.Errorf(fieldspec.CodeOutOfRange, field,
				"%s length %d out of range [%s, %s]", field, n, c.Min, c.Max)
		}
		return nil
	default:
		return fieldspec.Errorf(fieldspec.CodeOutOfRange, field, "%s cannot apply range constraint to %s", field, val)
	}
}

func checkNumericRange(n float64, val fieldspec.Value, c fieldspec.Range, field string) error {
	minV, err := numericBound(c.Min, "min", field)
	if err != nil {
		return err
	}
	maxV, err := numericBound(c.Max, "max", field)
	if err != nil {
		return err
	}
	minOK := n > minV || (c.MinInclusive && n >= minV)
	maxOK := n < maxV || (c.MaxInclusive && n <= maxV)
	if !minOK || !maxOK {
		return fieldspec.Errorf(fieldspec.CodeOutOfRange, field,
			"%s value %s out of range [%s, %s]", field, val, c.Min, c.Max)
	}
	return nil
}

func numericBound(b fieldspec.Value, side, field string) (float64, error) {
	switch b := b.(type) {
	case fieldspec.Int:
		return float64(b), nil
	case fieldspec.Float:
		return float64(b), nil
	default:
		return 0, fieldspec.Errorf(fieldspec.CodeOutOfRange, field, "Invalid %s value type in range for %s", side, field)
	}
}

// lengthBound interprets a range bound as an unsigned length. Int bounds
// convert directly (a negative bound wraps, making the constraint
// unsatisfiable); String bounds must parse as unsigned decimal.
func lengthBound(b fieldspec.Value, field string) (uint64, error) {
	switch b := b.(type) {
	case fieldspec.Int:
		return uint64(b), nil
	case fieldspec.String:
		n, err := strconv.ParseUint(string(b), 10, 64)
		if err != nil {
			return 0, fieldspec.Errorf(fieldspec.CodeOutOfRange, field, "Failed to parse '%s' as unsigned integer", string(b))
		}
		return n, nil
	default:
		return 0, fieldspec.Errorf(fieldspec.CodeOutOfRange, field, "Invalid length bound type in range for %s", field)
	}
}

// checkRegex compiles the pattern on every call so that an invalid pattern
// surfaces as a validation error, matching the engine's observable behavior.
func checkRegex(val fieldspec.Value, c fieldspec.Regex, field string) error {
	s, ok := val.(fieldspec.String)
	if !ok {
		return fieldspec.Errorf(fieldspec.CodePattern, field, "%s not string for regex", field)
	}
	re, err := regexp.Compile(c.Pattern)
	if err != nil {
		return fieldspec.Errorf(fieldspec.CodeInvalidRegex, field, "Invalid regex: %s", err)
	}
	if !re.MatchString(string(s)) {
		return fieldspec.Errorf(fieldspec.CodePattern, field, "%s regex mismatch: %s", field, c.Pattern)
	}
	return nil
}

func typeList(types []fieldspec.FieldType) string {
	out := "["
	for i, t := range types {
		if i > 0 {
			out += ", "
		}
		out += t.String()
	}
	return out + "]"
}

func valueList(vals []fieldspec.Value) string {
	out := "["
	for i, v := range vals {
		if i > 0 {
			out += ", "
		}
		out += v.String()
	}
	return out + "]"
}
