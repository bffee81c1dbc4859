package typeq

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Table is an in-memory type table, typically decoded from YAML.
type Table struct {
	types map[string]*tableType
	order []string
}

type tableType struct {
	name    TypeName
	supers  []TypeName
	methods []Method
	anns    []Annotation
}

type tableFile struct {
	Types []typeSpec `yaml:"types"`
}

type typeSpec struct {
	Name        TypeName     `yaml:"name"`
	Supertypes  []TypeName   `yaml:"supertypes"`
	Annotations []Annotation `yaml:"annotations"`
	Methods     []methodSpec `yaml:"methods"`
}

type methodSpec struct {
	Name        string       `yaml:"name"`
	Params      []Param      `yaml:"params"`
	Returns     TypeName     `yaml:"returns"`
	TypeParams  []string     `yaml:"typeParams"`
	Annotations []Annotation `yaml:"annotations"`
	Static      bool         `yaml:"static"`
	Visibility  string       `yaml:"visibility"`
	Varargs     bool         `yaml:"varargs"`
	Deprecated  bool         `yaml:"deprecated"`
	NonNull     bool         `yaml:"nonNull"`
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{types: map[string]*tableType{}}
}

// LoadTable decodes a YAML type table.
func LoadTable(r io.Reader) (*Table, error) {
	var f tableFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, errors.Wrap(err, "decode type table")
	}
	t := NewTable()
	for _, ts := range f.Types {
		if ts.Name.Void() {
			return nil, errors.New("type table entry without a name")
		}
		methods := make([]Method, 0, len(ts.Methods))
		for _, ms := range ts.Methods {
			switch ms.Visibility {
			case "", "public", "protected", "private", "package":
			default:
				return nil, errors.Newf("%s#%s: unknown visibility %q", ts.Name.Qualified, ms.Name, ms.Visibility)
			}
			methods = append(methods, Method{
				Name:        ms.Name,
				Params:      ms.Params,
				Returns:     ms.Returns,
				TypeParams:  ms.TypeParams,
				Annotations: ms.Annotations,
				Static:      ms.Static,
				Public:      ms.Visibility == "" || ms.Visibility == "public",
				Varargs:     ms.Varargs,
				Deprecated:  ms.Deprecated,
				NonNull:     ms.NonNull,
			})
		}
		t.Add(ts.Name, ts.Supertypes, methods...)
		t.types[ts.Name.Qualified].anns = ts.Annotations
	}
	return t, nil
}

// LoadTableFile decodes the YAML type table at path.
func LoadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open type table %s", path)
	}
	defer f.Close()
	return LoadTable(f)
}

// Add registers a type. Re-adding a name replaces the earlier entry.
func (t *Table) Add(name TypeName, supers []TypeName, methods ...Method) {
	key := name.Qualified
	if _, ok := t.types[key]; !ok {
		t.order = append(t.order, key)
	}
	owner := name.WithNullable(false)
	ms := make([]Method, len(methods))
	for i, m := range methods {
		m.Owner = owner
		ms[i] = m
	}
	t.types[key] = &tableType{name: owner, supers: append([]TypeName(nil), supers...), methods: ms}
}

// Names lists the registered types in registration order.
func (t *Table) Names() []string { return append([]string(nil), t.order...) }

func (t *Table) Lookup(qualified string) (TypeName, bool) {
	tt, ok := t.types[qualified]
	if !ok {
		return TypeName{}, false
	}
	return tt.name, true
}

func (t *Table) Members(name TypeName) []Method {
	tt, ok := t.types[name.Qualified]
	if !ok {
		return nil
	}
	return append([]Method(nil), tt.methods...)
}

func (t *Table) Annotations(name TypeName) []Annotation {
	tt, ok := t.types[name.Qualified]
	if !ok {
		return nil
	}
	return append([]Annotation(nil), tt.anns...)
}

// Annotate replaces the annotations recorded for a registered type.
func (t *Table) Annotate(name TypeName, anns ...Annotation) {
	if tt, ok := t.types[name.Qualified]; ok {
		tt.anns = append([]Annotation(nil), anns...)
	}
}

func (t *Table) IsSubtype(sub, super TypeName) bool {
	if sub.Void() || super.Void() {
		return false
	}
	if super.Qualified == "java.lang.Object" {
		// arrays are objects too; Object[] takes only reference arrays
		if !super.Array {
			return !sub.IsPrimitive()
		}
		if sub.Array && !primitives[sub.Qualified] {
			return true
		}
	}
	if sub.Array != super.Array {
		return false
	}
	seen := map[string]bool{}
	queue := []string{sub.Qualified}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == super.Qualified {
			return true
		}
		if seen[cur] {
			continue
		}
		seen[cur] = true
		if tt, ok := t.types[cur]; ok {
			for _, s := range tt.supers {
				queue = append(queue, s.Qualified)
			}
		}
	}
	return false
}

func (t *Table) ReturnTypeAssignableTo(m Method, target TypeName) bool {
	return !m.Returns.Void() && t.IsSubtype(m.Returns, target)
}

func (t *Table) IsStatic(m Method) bool { return m.Static }

func (t *Table) IsPublic(m Method) bool { return m.Public }
