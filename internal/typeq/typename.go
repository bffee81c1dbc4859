package typeq

import (
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Wildcard is the qualified name of an unbounded type argument.
const Wildcard = "?"

var primitives = map[string]bool{
	"boolean": true, "byte": true, "short": true, "char": true,
	"int": true, "long": true, "float": true, "double": true,
}

// TypeName refers to a type by name. The zero value means "no type" (void).
type TypeName struct {
	Qualified string
	Args      []TypeName
	Nullable  bool
	Array     bool
	Variable  bool // type variable or wildcard
}

// ClassName names a declared type, optionally parameterised.
func ClassName(qualified string, args ...TypeName) TypeName {
	return TypeName{Qualified: qualified, Args: args}
}

// Var names a type variable.
func Var(name string) TypeName { return TypeName{Qualified: name, Variable: true} }

// Void reports whether t is the absent type.
func (t TypeName) Void() bool { return t.Qualified == "" || t.Qualified == "void" }

// Simple returns the last dotted segment of the name.
func (t TypeName) Simple() string {
	if i := strings.LastIndexByte(t.Qualified, '.'); i >= 0 {
		return t.Qualified[i+1:]
	}
	return t.Qualified
}

// Package returns the dotted prefix of the name, "" for type variables.
func (t TypeName) Package() string {
	if i := strings.LastIndexByte(t.Qualified, '.'); i >= 0 {
		return t.Qualified[:i]
	}
	return ""
}

// IsPrimitive reports whether t is a non-array primitive.
func (t TypeName) IsPrimitive() bool { return !t.Array && primitives[t.Qualified] }

// Erasure drops type arguments and nullability.
func (t TypeName) Erasure() TypeName {
	return TypeName{Qualified: t.Qualified, Array: t.Array, Variable: t.Variable}
}

// WithNullable returns a copy of t with the given nullability.
func (t TypeName) WithNullable(nullable bool) TypeName {
	t.Nullable = nullable
	return t
}

// WithArgs returns a copy of t parameterised by args.
func (t TypeName) WithArgs(args ...TypeName) TypeName {
	t.Args = append([]TypeName(nil), args...)
	return t
}

// Equal compares names structurally.
func (t TypeName) Equal(o TypeName) bool { return t.String() == o.String() }

func (t TypeName) String() string {
	if t.Void() {
		return "void"
	}
	var sb strings.Builder
	sb.WriteString(t.Qualified)
	if len(t.Args) > 0 {
		sb.WriteByte('<')
		for i, a := range t.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.String())
		}
		sb.WriteByte('>')
	}
	if t.Array {
		sb.WriteString("[]")
	}
	if t.Nullable {
		sb.WriteByte('?')
	}
	return sb.String()
}

// Parse reads the textual form produced by String, e.g.
// "com.example.Box<T, java.lang.String>[]?".
// Undotted non-primitive names are type variables.
func Parse(s string) (TypeName, error) {
	p := &typeParser{src: strings.TrimSpace(s)}
	if p.src == "" || p.src == "void" {
		return TypeName{}, nil
	}
	t, err := p.parse()
	if err != nil {
		return TypeName{}, err
	}
	if p.pos != len(p.src) {
		return TypeName{}, errors.Newf("parse type %q: unexpected %q at %d", s, p.src[p.pos:], p.pos)
	}
	return t, nil
}

// MustParse is Parse for trusted constants.
func MustParse(s string) TypeName {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// UnmarshalYAML decodes a TypeName from its string form.
func (t *TypeName) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) parse() (TypeName, error) {
	p.skipSpace()
	start := p.pos
	if p.pos < len(p.src) && p.src[p.pos] == '?' {
		p.pos++
	} else {
		for p.pos < len(p.src) && isNameByte(p.src[p.pos]) {
			p.pos++
		}
	}
	name := p.src[start:p.pos]
	if name == "" {
		return TypeName{}, errors.Newf("parse type %q: expected name at %d", p.src, start)
	}
	t := TypeName{Qualified: name}
	if name == Wildcard || (!strings.Contains(name, ".") && !primitives[name]) {
		t.Variable = true
	}
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '<' {
		p.pos++
		for {
			arg, err := p.parse()
			if err != nil {
				return TypeName{}, err
			}
			t.Args = append(t.Args, arg)
			p.skipSpace()
			if p.pos >= len(p.src) {
				return TypeName{}, errors.Newf("parse type %q: unterminated type arguments", p.src)
			}
			if p.src[p.pos] == ',' {
				p.pos++
				continue
			}
			if p.src[p.pos] == '>' {
				p.pos++
				break
			}
			return TypeName{}, errors.Newf("parse type %q: unexpected %q at %d", p.src, p.src[p.pos], p.pos)
		}
		// a parameterised name is a declared type even without a package
		t.Variable = false
	}
	if strings.HasPrefix(p.src[p.pos:], "[]") {
		t.Array = true
		p.pos += 2
	}
	if p.pos < len(p.src) && p.src[p.pos] == '?' {
		t.Nullable = true
		p.pos++
	}
	p.skipSpace()
	return t, nil
}

func isNameByte(c byte) bool {
	return c == '.' || c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
