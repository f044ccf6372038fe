// Package parser builds a rule tree from DSL source via recursive descent
// over the token stream. Parsing does not recover: the first failure aborts
// with a contextual error and any partial tree is discarded.
package parser

import (
	"strconv"

	"github.com/fieldspec/fieldspec"
	"github.com/fieldspec/fieldspec/token"
)

// ParseRules lexes and parses DSL source into an ordered rule tree.
func ParseRules(src string) ([]fieldspec.FieldRule, error) {
	tokens, err := token.Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	return p.parseProgram()
}

type parser struct {
	tokens []token.Token
	pos    int
}

func (p *parser) peek() (token.Token, bool) {
	if p.pos >= len(p.tokens) {
		return token.Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) peekKind(k token.Kind) bool {
	t, ok := p.peek()
	return ok && t.Kind == k
}

func (p *parser) next() (token.Token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

func (p *parser) expect(k token.Kind) error {
	t, ok := p.next()
	if !ok {
		return fieldspec.Errorf(fieldspec.CodeUnexpectedToken, "", "Unexpected EOF")
	}
	if t.Kind != k {
		return fieldspec.Errorf(fieldspec.CodeUnexpectedToken, "", "Expected %s, got %s", k, t)
	}
	return nil
}

// parseProgram consumes "( fieldList )" and returns the rules in declaration
// order. The empty program "()" is allowed; a trailing comma is not.
func (p *parser) parseProgram() ([]fieldspec.FieldRule, error) {
	if err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	rules := []fieldspec.FieldRule{}
	for {
		if p.peekKind(token.RParen) {
			p.next()
			break
		}
		field, err := p.parseField(false)
		if err != nil {
			return nil, err
		}
		rules = append(rules, field)

		switch {
		case p.peekKind(token.Comma):
			p.next()
		case p.peekKind(token.RParen):
		default:
			return nil, fieldspec.Errorf(fieldspec.CodeUnexpectedToken, "", "Expected ',' or ')'")
		}
	}
	return rules, nil
}

// parseField parses one field declaration. In nameless mode (the element rule
// of array<...>) the name, optional marker, and colon are skipped and the
// resulting rule is always required with an empty field name.
func (p *parser) parseField(nameless bool) (fieldspec.FieldRule, error) {
	var zero fieldspec.FieldRule

	var name string
	optional := false
	if !nameless {
		t, ok := p.next()
		if !ok || t.Kind != token.Ident {
			return zero, fieldspec.Errorf(fieldspec.CodeUnexpectedToken, "", "Expected field name, got %s", tokenOrEOF(t, ok))
		}
		name = t.Text

		if p.peekKind(token.Question) {
			optional = true
			p.next()
		}

		if err := p.expect(token.Colon); err != nil {
			return zero, err
		}
	}

	// Union: first type name wins as the primary type; trailing |T members
	// are accumulated until the first non-pipe token.
	var unionTypes []fieldspec.FieldType
	for {
		t, ok := p.next()
		if !ok || t.Kind != token.Ident {
			return zero, fieldspec.Errorf(fieldspec.CodeUnexpectedToken, "", "Expected type, got %s", tokenOrEOF(t, ok))
		}
		ft, known := fieldspec.FieldTypeFromName(t.Text)
		if !known {
			return zero, fieldspec.Errorf(fieldspec.CodeUnknownType, "", "Unknown type %s", t.Text)
		}
		unionTypes = append(unionTypes, ft)

		if p.peekKind(token.Pipe) {
			p.next()
		} else {
			break
		}
	}

	fieldType := unionTypes[0]
	isArray := fieldType == fieldspec.TypeArray

	var subRule *fieldspec.FieldRule
	var children []fieldspec.FieldRule
	var constraints []fieldspec.Constraint
	var enumValues []fieldspec.Value
	var def fieldspec.Value

	// array<element rule>: a single nameless field terminated by '>'.
	if isArray && p.peekKind(token.Lt) {
		p.next()
		sub, err := p.parseField(true)
		if err != nil {
			return zero, err
		}
		subRule = &sub
		if err := p.expect(token.Gt); err != nil {
			return zero, err
		}
	}

	// object(fieldList): children in declaration order.
	if fieldType == fieldspec.TypeObject && p.peekKind(token.LParen) {
		p.next()
		children = []fieldspec.FieldRule{}
		for {
			if p.peekKind(token.RParen) {
				p.next()
				break
			}
			child, err := p.parseField(false)
			if err != nil {
				return zero, err
			}
			children = append(children, child)

			switch {
			case p.peekKind(token.Comma):
				p.next()
			case p.peekKind(token.RParen):
			default:
				return zero, fieldspec.Errorf(fieldspec.CodeUnexpectedToken, "", "Expected ',' or ')' in object")
			}
		}
	}

	// Modifier loop: range, regex(...), enum(...), =default in any order and
	// any count, ended by the first token that is none of them.
loop:
	for {
		t, ok := p.peek()
		if !ok {
			break
		}
		switch {
		case t.Kind == token.LBracket:
			c, err := p.parseRange(fieldType)
			if err != nil {
				return zero, err
			}
			constraints = append(constraints, c)

		case t.Kind == token.LParen:
			if fieldType == fieldspec.TypeObject {
				return zero, fieldspec.Errorf(fieldspec.CodeUnexpectedToken, "", "Unexpected '(' after object definition")
			}
			c, err := p.parseRange(fieldType)
			if err != nil {
				return zero, err
			}
			constraints = append(constraints, c)

		case t.Kind == token.Ident && t.Text == "regex":
			p.next()
			if err := p.expect(token.LParen); err != nil {
				return zero, err
			}
			pt, ok := p.next()
			if !ok || pt.Kind != token.Ident {
				return zero, fieldspec.Errorf(fieldspec.CodeUnexpectedToken, "", "Expected pattern, got %s", tokenOrEOF(pt, ok))
			}
			if err := p.expect(token.RParen); err != nil {
				return zero, err
			}
			constraints = append(constraints, fieldspec.Regex{Pattern: pt.Text})

		case t.Kind == token.Ident && t.Text == "enum":
			p.next()
			if err := p.expect(token.LParen); err != nil {
				return zero, err
			}
			vals := []fieldspec.Value{}
			for {
				vt, ok := p.next()
				if !ok || vt.Kind != token.Ident {
					return zero, fieldspec.Errorf(fieldspec.CodeUnexpectedToken, "", "Expected enum value, got %s", tokenOrEOF(vt, ok))
				}
				vals = append(vals, fieldspec.String(vt.Text))

				if p.peekKind(token.Comma) {
					p.next()
				} else if p.peekKind(token.RParen) {
					p.next()
					break
				} else {
					return zero, fieldspec.Errorf(fieldspec.CodeUnexpectedToken, "", "Expected ',' or ')' in enum")
				}
			}
			enumValues = vals

		case t.Kind == token.Equal:
			p.next()
			dt, ok := p.next()
			if !ok {
				return zero, fieldspec.Errorf(fieldspec.CodeUnexpectedToken, "", "Expected default value")
			}
			val, err := p.parseDefault(dt, fieldType)
			if err != nil {
				return zero, err
			}
			def = val

		default:
			break loop
		}
	}

	required := true
	if !nameless {
		required = !optional
	}
	if len(unionTypes) < 2 {
		unionTypes = nil
	}

	return fieldspec.FieldRule{
		Field:       name,
		Type:        fieldType,
		Required:    required,
		Default:     def,
		EnumValues:  enumValues,
		UnionTypes:  unionTypes,
		Constraints: constraints,
		Rule:        subRule,
		Children:    children,
		IsArray:     isArray,
	}, nil
}

// parseDefault interprets the token after '=' against the declared type:
// bool accepts only the identifiers true/false, numeric types take a Number
// token, and the string family stores either an identifier or the verbatim
// numeric text as a string.
func (p *parser) parseDefault(t token.Token, fieldType fieldspec.FieldType) (fieldspec.Value, error) {
	switch t.Kind {
	case token.Number:
		return numberAsType(t, fieldType)
	case token.Ident:
		if fieldType == fieldspec.TypeBool {
			switch t.Text {
			case "true":
				return fieldspec.Bool(true), nil
			case "false":
				return fieldspec.Bool(false), nil
			default:
				return nil, fieldspec.Errorf(fieldspec.CodeInvalidDefault, "", "Invalid bool '%s'", t.Text)
			}
		}
		return fieldspec.String(t.Text), nil
	default:
		return nil, fieldspec.Errorf(fieldspec.CodeInvalidDefault, "", "Unexpected default value %s", t)
	}
}

// parseRange consumes a range constraint. The opening bracket was not yet
// consumed; '[' vs '(' sets MinInclusive and ']' vs ')' sets MaxInclusive.
// Bounds are coerced against the field's primary type.
func (p *parser) parseRange(fieldType fieldspec.FieldType) (fieldspec.Constraint, error) {
	minInclusive := p.peekKind(token.LBracket)
	p.next()

	minTok, ok := p.next()
	if !ok {
		return nil, fieldspec.Errorf(fieldspec.CodeUnexpectedToken, "", "Expected min number")
	}
	min, err := numberAsType(minTok, fieldType)
	if err != nil {
		return nil, err
	}

	if err := p.expect(token.Comma); err != nil {
		return nil, err
	}

	maxTok, ok := p.next()
	if !ok {
		return nil, fieldspec.Errorf(fieldspec.CodeUnexpectedToken, "", "Expected max number")
	}
	max, err := numberAsType(maxTok, fieldType)
	if err != nil {
		return nil, err
	}

	var maxInclusive bool
	t, ok := p.next()
	switch {
	case ok && t.Kind == token.RBracket:
		maxInclusive = true
	case ok && t.Kind == token.RParen:
		maxInclusive = false
	default:
		return nil, fieldspec.Errorf(fieldspec.CodeUnexpectedToken, "", "Expected closing bracket or paren, got %s", tokenOrEOF(t, ok))
	}

	return fieldspec.Range{Min: min, Max: max, MinInclusive: minInclusive, MaxInclusive: maxInclusive}, nil
}

// numberAsType converts a Number token into a Value driven by the target
// type: string keeps the literal verbatim, int parses signed decimal, float
// parses IEEE-754 with scientific notation; every other type rejects.
func numberAsType(t token.Token, fieldType fieldspec.FieldType) (fieldspec.Value, error) {
	if t.Kind != token.Number {
		return nil, fieldspec.Errorf(fieldspec.CodeUnexpectedToken, "", "Expected number token, got %s", t)
	}
	switch fieldType {
	case fieldspec.TypeString:
		return fieldspec.String(t.Text), nil
	case fieldspec.TypeInt:
		i, err := strconv.ParseInt(t.Text, 10, 64)
		if err != nil {
			return nil, fieldspec.Errorf(fieldspec.CodeInvalidDefault, "", "Invalid integer '%s'", t.Text)
		}
		return fieldspec.Int(i), nil
	case fieldspec.TypeFloat:
		f, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, fieldspec.Errorf(fieldspec.CodeInvalidDefault, "", "Invalid float '%s'", t.Text)
		}
		return fieldspec.Float(f), nil
	default:
		return nil, fieldspec.Errorf(fieldspec.CodeInvalidDefault, "", "Field type %s cannot parse number", fieldType)
	}
}

func tokenOrEOF(t token.Token, ok bool) string {
	if !ok {
		return "EOF"
	}
	return t.String()
}
