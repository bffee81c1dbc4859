// Package typeq is the type query interface the generators consult.
//
// A Query answers yes/no and enumeration questions about the types of a
// library without exposing how those types are represented. Two
// implementations exist: Table, a declarative type table, and the go/types
// adapter in internal/golang.
package typeq

import (
	"strings"

	"github.com/minio/highwayhash"
)

// Query is the capability set the mapper needs from a type system.
type Query interface {
	// Lookup resolves a qualified name.
	Lookup(qualified string) (TypeName, bool)
	// Members lists the methods declared by t, in declaration order.
	Members(t TypeName) []Method
	// Annotations lists the annotations on the declaration of t.
	Annotations(t TypeName) []Annotation
	// IsSubtype reports whether sub is assignable to super after erasure.
	IsSubtype(sub, super TypeName) bool
	// ReturnTypeAssignableTo reports whether m returns something assignable to target.
	ReturnTypeAssignableTo(m Method, target TypeName) bool
	IsStatic(m Method) bool
	IsPublic(m Method) bool
}

// Annotation is an annotation use on a method or parameter.
type Annotation struct {
	Type   string            `yaml:"type"`
	Values []AnnotationValue `yaml:"values,omitempty"`
}

// AnnotationValue is one element value; class-valued elements list the
// qualified names of the referenced classes.
type AnnotationValue struct {
	Name    string   `yaml:"name"`
	Classes []string `yaml:"classes"`
}

// Simple returns the annotation's simple type name.
func (a Annotation) Simple() string {
	return ClassName(a.Type).Simple()
}

// Param is a method parameter. Name may be empty.
type Param struct {
	Name        string       `yaml:"name,omitempty"`
	Type        TypeName     `yaml:"type"`
	NonNull     bool         `yaml:"nonNull,omitempty"`
	Annotations []Annotation `yaml:"annotations,omitempty"`
}

// Method is a method signature as seen through a Query.
type Method struct {
	Owner       TypeName
	Name        string
	Params      []Param
	Returns     TypeName
	TypeParams  []string
	Annotations []Annotation
	Static      bool
	Public      bool
	Varargs     bool
	Deprecated  bool
	NonNull     bool
}

// HasAnnotation reports whether m carries an annotation whose qualified or
// simple name is name.
func (m Method) HasAnnotation(name string) bool {
	_, ok := m.Annotation(name)
	return ok
}

// Annotation returns the first annotation matching name.
func (m Method) Annotation(name string) (Annotation, bool) {
	for _, a := range m.Annotations {
		if a.Type == name || a.Simple() == name {
			return a, true
		}
	}
	return Annotation{}, false
}

// Signature renders owner#name(paramTypes) with erased parameter types.
func (m Method) Signature() string {
	var sb strings.Builder
	sb.WriteString(m.Owner.Erasure().String())
	sb.WriteByte('#')
	sb.WriteString(m.Name)
	sb.WriteByte('(')
	for i, p := range m.Params {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(p.Type.Erasure().String())
	}
	sb.WriteByte(')')
	return sb.String()
}

var identityKey = []byte("declgen-method-identity-key-0001")

// Identity is a stable hash of Signature, equal across runs and processes.
func (m Method) Identity() uint64 {
	h, err := highwayhash.New64(identityKey)
	if err != nil {
		// key length is fixed at 32 bytes
		panic(err)
	}
	_, _ = h.Write([]byte(m.Signature()))
	return h.Sum64()
}

