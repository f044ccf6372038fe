// Package yaml decodes YAML documents into fieldspec value trees. Only the
// kinds of the value model survive the conversion: mappings must have string
// keys, and null has no counterpart and is rejected.
package yaml

import (
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/fieldspec/fieldspec"
)

// Decode parses a single YAML document into a value tree.
func Decode(data []byte) (fieldspec.Value, error) {
	var node any
	if err := yamlv3.Unmarshal(data, &node); err != nil {
		return nil, fieldspec.Errorf(fieldspec.CodeParseError, "", "invalid YAML: %s", err)
	}
	return fromAny(node)
}

func fromAny(node any) (fieldspec.Value, error) {
	switch v := node.(type) {
	case string:
		return fieldspec.String(v), nil
	case bool:
		return fieldspec.Bool(v), nil
	case int:
		return fieldspec.Int(v), nil
	case int64:
		return fieldspec.Int(v), nil
	case uint64:
		return fieldspec.Int(v), nil
	case float64:
		return fieldspec.Float(v), nil
	case []any:
		ret := make(fieldspec.Array, 0, len(v))
		for _, e := range v {
			ev, err := fromAny(e)
			if err != nil {
				return nil, err
			}
			ret = append(ret, ev)
		}
		return ret, nil
	case map[string]any:
		ret := make(fieldspec.Object, len(v))
		for k, e := range v {
			ev, err := fromAny(e)
			if err != nil {
				return nil, err
			}
			ret[k] = ev
		}
		return ret, nil
	case nil:
		return nil, fieldspec.Errorf(fieldspec.CodeInvalidType, "", "null is not a supported value")
	default:
		return nil, fieldspec.Errorf(fieldspec.CodeInvalidType, "", "unsupported YAML value of type %T", node)
	}
}
