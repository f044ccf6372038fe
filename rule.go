package fieldspec

// FieldType is the closed set of terminal kinds a field may declare. Beyond
// the six structural kinds, the semantic string subtypes carry an underlying
// string representation validated against a built-in format; Timestamp is the
// only semantic type that requires an integer instead.
type FieldType int

const (
	TypeString FieldType = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeObject
	TypeArray
	TypeEmail
	TypeURI
	TypeUUID
	TypeIP
	TypeMAC
	TypeDate
	TypeDateTime
	TypeTime
	TypeTimestamp
	TypeColor
	TypeHostname
	TypeSlug
	TypeHex
	TypeBase64
	TypePassword
	TypeToken
)

var typeNames = map[FieldType]string{
	TypeString:    "string",
	TypeInt:       "int",
	TypeFloat:     "float",
	TypeBool:      "bool",
	TypeObject:    "object",
	TypeArray:     "array",
	TypeEmail:     "email",
	TypeURI:       "uri",
	TypeUUID:      "uuid",
	TypeIP:        "ip",
	TypeMAC:       "mac",
	TypeDate:      "date",
	TypeDateTime:  "datetime",
	TypeTime:      "time",
	TypeTimestamp: "timestamp",
	TypeColor:     "color",
	TypeHostname:  "hostname",
	TypeSlug:      "slug",
	TypeHex:       "hex",
	TypeBase64:    "base64",
	TypePassword:  "password",
	TypeToken:     "token",
}

var typesByName = func() map[string]FieldType {
	m := make(map[string]FieldType, len(typeNames))
	for t, name := range typeNames {
		m[name] = t
	}
	return m
}()

func (t FieldType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// FieldTypeFromName resolves a reserved type keyword to its FieldType.
func FieldTypeFromName(name string) (FieldType, bool) {
	t, ok := typesByName[name]
	return t, ok
}

// Constraint is either a Range or a Regex. Constraints on one field are
// evaluated in declaration order and ANDed.
type Constraint interface {
	isConstraint()
}

// Range bounds a numeric value, or the byte length of a string value. The
// bracket choice in the DSL sets inclusivity independently per side.
type Range struct {
	Min          Value
	Max          Value
	MinInclusive bool
	MaxInclusive bool
}

func (Range) isConstraint() {}

// Regex requires a string value to match Pattern. The pattern is stored
// verbatim at parse time and compiled on every validation.
type Regex struct {
	Pattern string
}

func (Regex) isConstraint() {}

// FieldRule is one node of the rule tree.
//
// Invariants: Children is non-nil only when Type is TypeObject; Rule is
// non-nil only when Type is TypeArray; UnionTypes is either nil or holds at
// least two members, in which case Type equals its first element. Ownership
// is strictly tree-shaped; the tree is immutable once the parser returns it.
type FieldRule struct {
	Field       string
	Type        FieldType
	Required    bool
	Default     Value
	EnumValues  []Value
	UnionTypes  []FieldType
	Constraints []Constraint
	Rule        *FieldRule
	Children    []FieldRule
	IsArray     bool
}
