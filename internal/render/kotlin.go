package render

import (
	"bytes"
	"path"
	"sort"
	"strings"
	"text/template"

	"github.com/cockroachdb/errors"

	"github.com/calumari/declgen/internal/generator"
	"github.com/calumari/declgen/internal/logger"
	"github.com/calumari/declgen/internal/typeq"
)

// Renderer emits the source text of one generated type.
type Renderer interface {
	Render(spec generator.TypeSpec) ([]byte, error)
	FileName(spec generator.TypeSpec) string
}

// Kotlin renders generated types as Kotlin source files.
type Kotlin struct{}

var _ Renderer = (*Kotlin)(nil)

func NewKotlin() *Kotlin { return &Kotlin{} }

// FileName returns the path of spec's source file below a source root.
func (k *Kotlin) FileName(spec generator.TypeSpec) string {
	return path.Join(strings.ReplaceAll(spec.Package, ".", "/"), spec.Name+".kt")
}

type fileView struct {
	Package string
	Imports []string
	Body    string
}

// declView is the data of the decl and body templates.
type declView struct {
	generator.Declaration
	Spec   *generator.TypeSpec
	Indent string
}

func (k *Kotlin) Render(spec generator.TypeSpec) ([]byte, error) {
	if err := ensureTemplates(); err != nil {
		return nil, err
	}
	t, err := kotlinTmpl.Clone()
	if err != nil {
		return nil, errors.Wrap(err, "clone templates")
	}
	im := newImporter(spec)
	t.Funcs(newFuncs(t, im))

	var body bytes.Buffer
	if err := t.ExecuteTemplate(&body, tmplType, &spec); err != nil {
		return nil, errors.Wrapf(err, "render %s", spec.Qualified())
	}
	var out bytes.Buffer
	view := fileView{Package: spec.Package, Imports: im.list(), Body: body.String()}
	if err := t.ExecuteTemplate(&out, tmplFile, view); err != nil {
		return nil, errors.Wrapf(err, "render %s", spec.Qualified())
	}
	logger.Logger.Debugw("rendered type", "name", spec.Qualified(), "imports", len(view.Imports))
	return tidy(out.Bytes()), nil
}

// packages visible in Kotlin without an import
var defaultImports = map[string]bool{
	"java.lang":          true,
	"kotlin":             true,
	"kotlin.annotation":  true,
	"kotlin.collections": true,
	"kotlin.comparisons": true,
	"kotlin.io":          true,
	"kotlin.jvm":         true,
	"kotlin.ranges":      true,
	"kotlin.sequences":   true,
	"kotlin.text":        true,
}

var builtins = map[string]string{
	"boolean":          "Boolean",
	"byte":             "Byte",
	"short":            "Short",
	"char":             "Char",
	"int":              "Int",
	"long":             "Long",
	"float":            "Float",
	"double":           "Double",
	"java.lang.Object": "Any",
	"java.lang.String": "String",
}

var keywords = map[string]bool{
	"as": true, "break": true, "class": true, "continue": true, "do": true,
	"else": true, "false": true, "for": true, "fun": true, "if": true,
	"in": true, "interface": true, "is": true, "null": true, "object": true,
	"package": true, "return": true, "super": true, "this": true, "throw": true,
	"true": true, "try": true, "typealias": true, "typeof": true, "val": true,
	"var": true, "when": true, "while": true,
}

// importer hands out simple names while recording the imports they need.
// The first qualified name to claim a simple name keeps it; later ones stay
// qualified.
type importer struct {
	pkg     string
	names   map[string]string
	imports map[string]bool
}

func newImporter(spec generator.TypeSpec) *importer {
	im := &importer{pkg: spec.Package, names: map[string]string{}, imports: map[string]bool{}}
	im.names[spec.Name] = spec.Qualified()
	return im
}

func (im *importer) ref(qualified string) string {
	t := typeq.ClassName(qualified)
	simple, pkg := t.Simple(), t.Package()
	if pkg == "" {
		return qualified
	}
	if owner, ok := im.names[simple]; ok {
		if owner == qualified {
			return simple
		}
		return qualified
	}
	im.names[simple] = qualified
	if pkg != im.pkg && !defaultImports[pkg] {
		im.imports[qualified] = true
	}
	return simple
}

func (im *importer) list() []string {
	out := make([]string, 0, len(im.imports))
	for q := range im.imports {
		out = append(out, q)
	}
	sort.Strings(out)
	return out
}

func (im *importer) typ(t typeq.TypeName) string {
	var sb strings.Builder
	switch {
	case t.Qualified == typeq.Wildcard:
		sb.WriteByte('*')
	case t.Variable:
		sb.WriteString(t.Qualified)
	default:
		if b, ok := builtins[t.Qualified]; ok {
			sb.WriteString(b)
		} else {
			sb.WriteString(im.ref(t.Qualified))
		}
	}
	if len(t.Args) > 0 {
		sb.WriteByte('<')
		for i, a := range t.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(im.typ(a))
		}
		sb.WriteByte('>')
	}
	s := sb.String()
	if t.Array {
		s = "Array<" + s + ">"
	}
	if t.Nullable {
		s += "?"
	}
	return s
}

func (im *importer) annotation(a generator.Annotation) string {
	s := "@" + im.ref(a.Type)
	if len(a.Members) > 0 {
		s += "(" + strings.Join(a.Members, ", ") + ")"
	}
	return s
}

func (im *importer) params(ps []generator.Parameter) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		var sb strings.Builder
		for _, a := range p.Annotations {
			sb.WriteString(im.annotation(a))
			sb.WriteByte(' ')
		}
		if p.Vararg {
			sb.WriteString("vararg ")
		}
		sb.WriteString(name(p.Name))
		sb.WriteString(": ")
		sb.WriteString(im.typ(p.Type.WithNullable(p.Nullable)))
		parts[i] = sb.String()
	}
	return strings.Join(parts, ", ")
}

// args renders call arguments. References to vararg parameters of the
// enclosing declaration are spread.
func (im *importer) args(as []generator.Arg, ps []generator.Parameter) string {
	parts := make([]string, len(as))
	for i, a := range as {
		if a.Class.Qualified != "" {
			parts[i] = im.typ(a.Class.Erasure()) + "::class.java"
			continue
		}
		s := a.Expr
		for _, p := range ps {
			if p.Name != a.Expr {
				continue
			}
			s = name(s)
			if p.Vararg {
				s = "*" + s
			}
		}
		if a.Member != "" {
			s += "." + a.Member
		}
		parts[i] = s
	}
	return strings.Join(parts, ", ")
}

func (im *importer) header(spec *generator.TypeSpec) string {
	var sb strings.Builder
	sb.WriteString(visibility(spec.Visibility))
	sb.WriteString("class ")
	sb.WriteString(spec.Name)
	sb.WriteString(typeParams(spec.TypeParams))
	var supers []string
	if spec.Superclass != nil {
		s := im.typ(*spec.Superclass)
		if !spec.HasConstructor() {
			s += "()"
		}
		supers = append(supers, s)
	}
	for _, i := range spec.Interfaces {
		supers = append(supers, im.typ(i))
	}
	if len(supers) > 0 {
		sb.WriteString(" : ")
		sb.WriteString(strings.Join(supers, ", "))
	}
	return sb.String()
}

func (im *importer) signature(v declView) string {
	var sb strings.Builder
	sb.WriteString(visibility(v.Visibility))
	if v.Kind == generator.KindConstructor {
		sb.WriteString("constructor(")
		sb.WriteString(im.params(v.Params))
		sb.WriteByte(')')
		switch {
		case v.Body.Strategy == generator.SuperConstructor:
			sb.WriteString(" : super(" + im.args(v.Body.Args, v.Params) + ")")
		case v.Spec.Superclass != nil:
			sb.WriteString(" : super()")
		}
		return sb.String()
	}
	if v.Final {
		sb.WriteString("final ")
	}
	if v.Kind == generator.KindOverride {
		sb.WriteString("override ")
	}
	sb.WriteString("fun ")
	if len(v.TypeParams) > 0 {
		sb.WriteString(typeParams(v.TypeParams) + " ")
	}
	sb.WriteString(name(v.Name))
	sb.WriteString("(" + im.params(v.Params) + ")")
	if v.Returns != nil {
		sb.WriteString(": " + im.typ(*v.Returns))
	}
	return sb.String()
}

func (im *importer) field(f generator.Field) string {
	var sb strings.Builder
	if f.Private {
		sb.WriteString("private ")
	}
	if f.Mutable {
		sb.WriteString("var ")
	} else {
		sb.WriteString("val ")
	}
	sb.WriteString(name(f.Name) + ": " + im.typ(f.Type.WithNullable(f.Nullable)))
	if f.Nullable {
		sb.WriteString(" = null")
	}
	return sb.String()
}

func visibility(v generator.Visibility) string {
	if v == generator.Public || v == "" {
		return ""
	}
	return string(v) + " "
}

func typeParams(tps []string) string {
	if len(tps) == 0 {
		return ""
	}
	return "<" + strings.Join(tps, ", ") + ">"
}

func name(s string) string {
	if keywords[s] {
		return "`" + s + "`"
	}
	return s
}

// doc renders a KDoc block, one line per line of text.
func doc(text, indent string) string {
	if text == "" {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(indent + "/**\n")
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			sb.WriteString(indent + " *\n")
			continue
		}
		sb.WriteString(indent + " * " + line + "\n")
	}
	sb.WriteString(indent + " */\n")
	return sb.String()
}

func indentLines(s, indent string) string {
	s = strings.TrimRight(s, "\n")
	if strings.TrimSpace(s) == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = indent + l
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// newFuncs binds the template helpers to one render. t and im are nil for
// the placeholder set used at parse time.
func newFuncs(t *template.Template, im *importer) template.FuncMap {
	return template.FuncMap{
		"typ": func(v any) string {
			switch tn := v.(type) {
			case typeq.TypeName:
				return im.typ(tn)
			case *typeq.TypeName:
				return im.typ(*tn)
			}
			return ""
		},
		"raw":        func(tn typeq.TypeName) string { return tn.Erasure().Qualified },
		"ann":        func(a generator.Annotation) string { return im.annotation(a) },
		"args":       func(as []generator.Arg, ps []generator.Parameter) string { return im.args(as, ps) },
		"name":       name,
		"doc":        doc,
		"header":     func(spec *generator.TypeSpec) string { return im.header(spec) },
		"signature":  func(v declView) string { return im.signature(v) },
		"field":      func(f generator.Field) string { return im.field(f) },
		"hasStatics": hasStatics,
		"decl": func(spec *generator.TypeSpec, d generator.Declaration, indent string) declView {
			return declView{Declaration: d, Spec: spec, Indent: indent}
		},
		"body": func(v declView) (string, error) {
			if v.Body.Strategy == "" {
				return "", nil
			}
			var buf bytes.Buffer
			if err := t.ExecuteTemplate(&buf, bodyPrefix+string(v.Body.Strategy), v); err != nil {
				return "", err
			}
			return indentLines(buf.String(), v.Indent+"    "), nil
		},
	}
}

func hasStatics(spec *generator.TypeSpec) bool {
	if len(spec.Statics) > 0 {
		return true
	}
	for _, f := range spec.Fields {
		if f.Static {
			return true
		}
	}
	return false
}

// tidy trims trailing blanks and drops blank lines that are doubled or that
// sit just inside braces.
func tidy(src []byte) []byte {
	lines := strings.Split(string(src), "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimRight(l, " \t")
		if l == "" {
			if len(out) == 0 || out[len(out)-1] == "" || strings.HasSuffix(out[len(out)-1], "{") {
				continue
			}
		}
		if strings.TrimSpace(l) == "}" && len(out) > 0 && out[len(out)-1] == "" {
			out = out[:len(out)-1]
		}
		out = append(out, l)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return []byte(strings.Join(out, "\n") + "\n")
}
