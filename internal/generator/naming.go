package generator

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cockroachdb/errors"

	"github.com/calumari/declgen/internal/typeq"
)

// InstanceNameForStatic derives the instance method a static options factory
// stands for. Exact names are checked before suffixes, so bitmapTransform
// maps to transform rather than bitmap.
func InstanceNameForStatic(name string) (string, error) {
	var out string
	switch {
	case name == "bitmapTransform":
		out = "transform"
	case name == "decodeTypeOf":
		out = "decode"
	case strings.HasSuffix(name, "Transform"):
		out = name[:len(name)-len("Transform")]
	case strings.HasSuffix(name, "Of"):
		out = name[:len(name)-len("Of")]
	case name == "noTransformation":
		out = "dontTransform"
	case name == "noAnimation":
		out = "dontAnimate"
	case name == "option":
		out = "set"
	}
	if out == "" {
		return "", errors.WithHint(
			errors.Wrapf(ErrUnrecognizedConvention, "static method %q", name),
			"static options factories must be named <x>Transform, <x>Of, bitmapTransform, decodeTypeOf, noTransformation, noAnimation or option",
		)
	}
	return out, nil
}

// InferParameterName names a parameter. An explicit name wins; otherwise the
// name comes from the simple type name.
func InferParameterName(p typeq.Param, vararg bool) string {
	if p.Name != "" {
		return p.Name
	}
	return nameForType(p.Type, vararg)
}

func nameForType(t typeq.TypeName, plural bool) string {
	simple := t.Simple()
	var name string
	switch {
	case t.Void() || simple == typeq.Wildcard:
		name = "arg"
	case simple == "Class":
		name = "clazz"
	case simple == "Object":
		name = "o"
	case isAllUpper(simple):
		name = strings.ToLower(simple)
	default:
		name = strings.ToLower(lastWord(simple))
	}
	if t.Array || plural {
		name += "s"
	}
	return name
}

func isAllUpper(s string) bool {
	for _, r := range s {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return s != ""
}

// lastWord returns the final capitalised segment of a PascalCase name.
func lastWord(s string) string {
	for i := len(s); i > 0; {
		r, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
		if i > 0 && unicode.IsUpper(r) {
			return s[i:]
		}
	}
	return s
}

// DedupParameters renames every parameter to <name><index> once any two
// share a name; otherwise ps is returned unchanged.
func DedupParameters(ps []Parameter) []Parameter {
	seen := make(map[string]bool, len(ps))
	dup := false
	for _, p := range ps {
		if seen[p.Name] {
			dup = true
			break
		}
		seen[p.Name] = true
	}
	if !dup {
		return ps
	}
	out := make([]Parameter, len(ps))
	for i, p := range ps {
		p.Name += strconv.Itoa(i)
		out[i] = p
	}
	return out
}
