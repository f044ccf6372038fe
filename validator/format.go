package validator

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/fieldspec/fieldspec"
)

// Built-in format patterns for the semantic string types. These are fixed and
// compiled once; user-supplied regex constraints are compiled per validation
// instead (see checkRegex).
//
// The hostname rule cannot express its length bound as a lookahead under RE2,
// so hostnameMaxLen is enforced separately before the pattern.
var (
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	uuidRe     = regexp.MustCompile(`^[0-9a-fA-F]{8}-?[0-9a-fA-F]{4}-?[0-9a-fA-F]{4}-?[0-9a-fA-F]{4}-?[0-9a-fA-F]{12}$`)
	ipRe       = regexp.MustCompile(`^((25[0-5]|2[0-4]\d|[01]?\d\d?)\.){3}(25[0-5]|2[0-4]\d|[01]?\d\d?)$`)
	macRe      = regexp.MustCompile(`^([0-9A-Fa-f]{2}[:-]){5}([0-9A-Fa-f]{2})$`)
	dateRe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	datetimeRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z?$`)
	timeRe     = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)
	colorRe    = regexp.MustCompile(`^#([0-9a-fA-F]{6}|[0-9a-fA-F]{3})$`)
	hostnameRe = regexp.MustCompile(`^(?:[a-zA-Z0-9_](?:[a-zA-Z0-9_-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,63}$`)
	slugRe     = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	hexRe      = regexp.MustCompile(`^[0-9a-fA-F]+$`)
	base64Re   = regexp.MustCompile(`^[A-Za-z0-9+/]+={0,2}$`)
)

const hostnameMaxLen = 253

// validateType reports whether the value inhabits the terminal type. The six
// structural kinds check the value tag alone; the semantic string types also
// match the corresponding built-in pattern; uri delegates to the URL parser;
// timestamp requires an integer; password and token require a string but
// impose no pattern.
func validateType(val fieldspec.Value, t fieldspec.FieldType) error {
	switch t {
	case fieldspec.TypeString:
		if _, ok := val.(fieldspec.String); !ok {
			return fmt.Errorf("Not string")
		}
	case fieldspec.TypeInt:
		if _, ok := val.(fieldspec.Int); !ok {
			return fmt.Errorf("Not int")
		}
	case fieldspec.TypeFloat:
		if _, ok := val.(fieldspec.Float); !ok {
			return fmt.Errorf("Not float")
		}
	case fieldspec.TypeBool:
		if _, ok := val.(fieldspec.Bool); !ok {
			return fmt.Errorf("Not bool")
		}
	case fieldspec.TypeObject:
		if _, ok := val.(fieldspec.Object); !ok {
			return fmt.Errorf("Not object")
		}
	case fieldspec.TypeArray:
		if _, ok := val.(fieldspec.Array); !ok {
			return fmt.Errorf("Not array")
		}
	case fieldspec.TypeEmail:
		s, ok := val.(fieldspec.String)
		if !ok {
			return fmt.Errorf("Not string for email")
		}
		if !emailRe.MatchString(string(s)) {
			return fmt.Errorf("%s is not a valid email", val)
		}
	case fieldspec.TypeURI:
		s, ok := val.(fieldspec.String)
		if !ok {
			return fmt.Errorf("Not string for uri")
		}
		u, err := url.Parse(string(s))
		if err != nil || u.Scheme == "" {
			return fmt.Errorf("%s is not a valid URI", string(s))
		}
	case fieldspec.TypeUUID:
		s, ok := val.(fieldspec.String)
		if !ok {
			return fmt.Errorf("Not string for uuid")
		}
		if !uuidRe.MatchString(string(s)) {
			return fmt.Errorf("%s is not a valid UUID", string(s))
		}
	case fieldspec.TypeIP:
		return matchFormat(val, ipRe, "ip")
	case fieldspec.TypeMAC:
		return matchFormat(val, macRe, "mac")
	case fieldspec.TypeDate:
		return matchFormat(val, dateRe, "date")
	case fieldspec.TypeDateTime:
		return matchFormat(val, datetimeRe, "datetime")
	case fieldspec.TypeTime:
		return matchFormat(val, timeRe, "time")
	case fieldspec.TypeTimestamp:
		if _, ok := val.(fieldspec.Int); !ok {
			return fmt.Errorf("Not number for timestamp")
		}
	case fieldspec.TypeColor:
		return matchFormat(val, colorRe, "color")
	case fieldspec.TypeHostname:
		s, ok := val.(fieldspec.String)
		if !ok {
			return fmt.Errorf("Not string for hostname")
		}
		if len(s) == 0 || len(s) > hostnameMaxLen || !hostnameRe.MatchString(string(s)) {
			return fmt.Errorf("Invalid hostname: %s", string(s))
		}
	case fieldspec.TypeSlug:
		return matchFormat(val, slugRe, "slug")
	case fieldspec.TypeHex:
		return matchFormat(val, hexRe, "hex")
	case fieldspec.TypeBase64:
		return matchFormat(val, base64Re, "base64")
	case fieldspec.TypePassword:
		if _, ok := val.(fieldspec.String); !ok {
			return fmt.Errorf("Not string for password")
		}
	case fieldspec.TypeToken:
		if _, ok := val.(fieldspec.String); !ok {
			return fmt.Errorf("Not string for token")
		}
	}
	return nil
}

func matchFormat(val fieldspec.Value, re *regexp.Regexp, name string) error {
	s, ok := val.(fieldspec.String)
	if !ok {
		return fmt.Errorf("Not string for %s", name)
	}
	if !re.MatchString(string(s)) {
		return fmt.Errorf("Invalid %s: %s", name, string(s))
	}
	return nil
}
