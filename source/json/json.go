// Package json bridges JSON documents and fieldspec value trees.
//
// Decoding scans the raw bytes directly so that integers and floats keep
// their distinct kinds: a numeric literal becomes an Int when it parses as a
// 64-bit integer and a Float otherwise. JSON null has no counterpart in the
// value model and is rejected.
package json

import (
	"github.com/buger/jsonparser"
	gojson "github.com/goccy/go-json"

	"github.com/fieldspec/fieldspec"
)

// Decode parses JSON bytes into a value tree.
func Decode(data []byte) (fieldspec.Value, error) {
	vdata, vtype, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, fieldspec.Errorf(fieldspec.CodeParseError, "", "invalid JSON: %s", err)
	}
	v, err := parseJSON(vdata, vtype)
	if err != nil {
		if _, ok := fieldspec.AsIssues(err); ok {
			return nil, err
		}
		return nil, fieldspec.Errorf(fieldspec.CodeParseError, "", "invalid JSON: %s", err)
	}
	return v, nil
}

// Encode renders a value tree as JSON bytes.
func Encode(v fieldspec.Value) ([]byte, error) {
	return gojson.Marshal(v)
}

// EncodeIndent renders a value tree as indented JSON, for CLI output.
func EncodeIndent(v fieldspec.Value) ([]byte, error) {
	return gojson.MarshalIndent(v, "", "  ")
}

func parseJSON(vdata []byte, vtype jsonparser.ValueType) (fieldspec.Value, error) {
	switch vtype {
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(vdata)
		if err != nil {
			return nil, err
		}
		return fieldspec.Bool(b), nil
	case jsonparser.Number:
		if i, err := jsonparser.ParseInt(vdata); err == nil {
			return fieldspec.Int(i), nil
		}
		f, err := jsonparser.ParseFloat(vdata)
		if err != nil {
			return nil, err
		}
		return fieldspec.Float(f), nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(vdata)
		if err != nil {
			return nil, err
		}
		return fieldspec.String(s), nil
	case jsonparser.Array:
		var ret fieldspec.Array
		var errs []error
		_, err := jsonparser.ArrayEach(vdata, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
			if err != nil {
				errs = append(errs, err)
				return
			}
			v, err := parseJSON(value, dataType)
			if err != nil {
				errs = append(errs, err)
				return
			}
			ret = append(ret, v)
		})
		if err != nil {
			return nil, err
		}
		if len(errs) != 0 {
			return nil, errs[0]
		}
		if ret == nil {
			ret = fieldspec.Array{}
		}
		return ret, nil
	case jsonparser.Object:
		ret := make(fieldspec.Object)
		err := jsonparser.ObjectEach(vdata, func(key, value []byte, dataType jsonparser.ValueType, offset int) error {
			k, err := jsonparser.ParseString(key)
			if err != nil {
				return err
			}
			v, err := parseJSON(value, dataType)
			if err != nil {
				return err
			}
			ret[k] = v
			return nil
		})
		if err != nil {
			return nil, err
		}
		return ret, nil
	case jsonparser.Null:
		return nil, fieldspec.Errorf(fieldspec.CodeInvalidType, "", "null is not a supported value")
	default:
		return nil, fieldspec.Errorf(fieldspec.CodeInvalidType, "", "unknown JSON value type")
	}
}
