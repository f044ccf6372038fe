// Package token splits DSL source text into a flat token sequence.
//
// Enum labels, type names, regex patterns, and keywords all share the Ident
// channel; the parser disambiguates them by position. Numeric literals are
// preserved verbatim as Number tokens and interpreted by the parser against
// the declared field type.
package token

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/fieldspec/fieldspec"
)

// Kind identifies a token class.
type Kind int

const (
	Ident Kind = iota
	Number
	Colon
	Comma
	LParen
	RParen
	LBracket
	RBracket
	Question
	Lt
	Gt
	Equal
	Pipe
)

var kindNames = map[Kind]string{
	Ident:    "Ident",
	Number:   "Number",
	Colon:    "Colon",
	Comma:    "Comma",
	LParen:   "LParen",
	RParen:   "RParen",
	LBracket: "LBracket",
	RBracket: "RBracket",
	Question: "Question",
	Lt:       "Lt",
	Gt:       "Gt",
	Equal:    "Equal",
	Pipe:     "Pipe",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is one lexical unit. Text is set for Ident and Number tokens.
type Token struct {
	Kind Kind
	Text string
}

func (t Token) String() string {
	switch t.Kind {
	case Ident, Number:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	default:
		return t.Kind.String()
	}
}

var punct = map[rune]Kind{
	'(': LParen,
	')': RParen,
	'[': LBracket,
	']': RBracket,
	'<': Lt,
	'>': Gt,
	',': Comma,
	'?': Question,
	':': Colon,
	'=': Equal,
	'|': Pipe,
}

// Tokenize scans UTF-8 source into tokens. Classification priority: single
// character punctuators, numeric literals (a run of [0-9.eE+-] after an
// optional sign, validated as a 64-bit float), double-quoted strings (emitted
// as Ident, with \n \r \t \" \\ escapes; any other \X yields X), identifier
// runs of letters, digits, and underscore. Whitespace is skipped and any
// other rune is an error.
//
// The numeric run is consumed greedily, so "[0,-5]" lexes as three tokens
// while "[1-2,3]" collects "1-2" and fails float validation. A quote left
// open at end of input yields an Ident holding the remaining text.
func Tokenize(src string) ([]Token, error) {
	var tokens []Token
	rs := []rune(src)
	i := 0
	for i < len(rs) {
		ch := rs[i]
		if k, ok := punct[ch]; ok {
			tokens = append(tokens, Token{Kind: k})
			i++
			continue
		}
		switch {
		case isNumStart(ch):
			var b strings.Builder
			if ch == '+' || ch == '-' {
				b.WriteRune(ch)
				i++
			}
			for i < len(rs) && isNumBody(rs[i]) {
				b.WriteRune(rs[i])
				i++
			}
			s := b.String()
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				return nil, fieldspec.Errorf(fieldspec.CodeMalformedNumber, "", "Invalid number '%s'", s)
			}
			tokens = append(tokens, Token{Kind: Number, Text: s})
		case ch == '"':
			i++ // skip opening quote
			var b strings.Builder
			for i < len(rs) {
				c := rs[i]
				if c == '"' {
					i++ // skip closing quote
					break
				}
				if c == '\\' {
					i++
					if i < len(rs) {
						b.WriteRune(unescape(rs[i]))
						i++
					}
				} else {
					b.WriteRune(c)
					i++
				}
			}
			tokens = append(tokens, Token{Kind: Ident, Text: b.String()})
		case isIdent(ch):
			start := i
			for i < len(rs) && isIdent(rs[i]) {
				i++
			}
			tokens = append(tokens, Token{Kind: Ident, Text: string(rs[start:i])})
		case unicode.IsSpace(ch):
			i++
		default:
			return nil, fieldspec.Errorf(fieldspec.CodeUnexpectedChar, "", "Unexpected char '%c'", ch)
		}
	}
	return tokens, nil
}

func isNumStart(ch rune) bool {
	return (ch >= '0' && ch <= '9') || ch == '.' || ch == '+' || ch == '-'
}

func isNumBody(ch rune) bool {
	return (ch >= '0' && ch <= '9') || ch == '.' || ch == 'e' || ch == 'E' || ch == '+' || ch == '-'
}

func isIdent(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}

func unescape(ch rune) rune {
	switch ch {
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	default:
		// '"' and '\\' fall through to themselves, as does any other rune.
		return ch
	}
}
