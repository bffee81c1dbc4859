package generator

import "github.com/calumari/declgen/internal/typeq"

// This file houses the descriptor structures produced by the mapper and the
// artifact generators and consumed by a renderer.

// Kind classifies a generated declaration.
type Kind uint8

const (
	KindConstructor Kind = iota
	KindOverride
	KindStaticFactory
	KindMethod
)

func (k Kind) String() string {
	switch k {
	case KindConstructor:
		return "constructor"
	case KindOverride:
		return "override"
	case KindStaticFactory:
		return "static-factory"
	default:
		return "method"
	}
}

// Strategy selects how a declaration body is emitted.
type Strategy string

// body strategies for template-driven emission
const (
	DelegateToSuper        Strategy = "delegateToSuper"
	DelegateToStaticMember Strategy = "delegateToStaticMember"
	MemoizedStaticFactory  Strategy = "memoizedStaticFactory"
	DirectFactory          Strategy = "directFactory"
	ConditionalDelegate    Strategy = "conditionalDelegate"
	SuperConstructor       Strategy = "superConstructor"
	Construct              Strategy = "construct"
	DelegateToField        Strategy = "delegateToField"
	InitField              Strategy = "initField"
	InvokeAll              Strategy = "invokeAll"
	ReturnClassSet         Strategy = "returnClassSet"
	ApplyExtension         Strategy = "applyExtension"
)

// Strategies lists every body strategy. Renderers use it to check they can
// emit all of them.
var Strategies = []Strategy{
	DelegateToSuper,
	DelegateToStaticMember,
	MemoizedStaticFactory,
	DirectFactory,
	ConditionalDelegate,
	SuperConstructor,
	Construct,
	DelegateToField,
	InitField,
	InvokeAll,
	ReturnClassSet,
	ApplyExtension,
}

// Visibility of a generated type or member.
type Visibility string

const (
	Public    Visibility = "public"
	Protected Visibility = "protected"
	Internal  Visibility = "internal"
	Private   Visibility = "private"
)

// Config holds generation settings for one run.
type Config struct {
	Package        string   // package of the generated API types
	GlideName      string   // simple name of the generated facade
	AppModule      string   // qualified name of the application module
	LibraryModules []string // qualified names of library modules to register
	Extensions     []string // qualified names of extension classes
	ContextType    string   // qualified name of the context-like parameter type
}

// Annotation is an annotation use on a generated element. Members are
// already-rendered element values, e.g. `"deprecation"`.
type Annotation struct {
	Type    string
	Members []string
}

// Parameter is one generated parameter. Type never carries nullability;
// Nullable does. For a vararg parameter Type is the element type.
type Parameter struct {
	Name        string
	Type        typeq.TypeName
	Nullable    bool
	Vararg      bool
	Annotations []Annotation
}

// Arg is an argument expression: a parameter or local reference, optionally
// followed by a member access, or a class literal when Class is set.
type Arg struct {
	Expr   string
	Member string
	Class  typeq.TypeName
}

// Call is one invocation, either on a field or on a fresh Owner instance.
type Call struct {
	Field  string
	Owner  typeq.TypeName
	Target string
	Args   []Arg
}

// Body describes how a declaration is implemented.
type Body struct {
	Strategy Strategy
	Owner    typeq.TypeName // type constructed, or whose static member is called
	Target   string         // member invoked
	Args     []Arg
	Cast     *typeq.TypeName
	Slot     string // memoization slot
	Field    string
	Chain    *Call            // call applied to the constructed value
	Calls    []Call           // InvokeAll
	Classes  []typeq.TypeName // ReturnClassSet
	TypeArg  typeq.TypeName   // ApplyExtension
	Legacy   bool             // ApplyExtension on a void extension method
}

// Declaration is a generated constructor or method.
type Declaration struct {
	Name        string
	Kind        Kind
	Params      []Parameter
	Returns     *typeq.TypeName
	TypeParams  []string
	Annotations []Annotation
	Visibility  Visibility
	Final       bool
	Varargs     bool
	Doc         string
	Body        Body
}

// Field is a generated property. Static fields live in the companion.
type Field struct {
	Name     string
	Type     typeq.TypeName
	Static   bool
	Private  bool
	Mutable  bool
	Nullable bool
}

// TypeSpec is one generated type.
type TypeSpec struct {
	Name        string
	Package     string
	Visibility  Visibility
	Superclass  *typeq.TypeName
	Interfaces  []typeq.TypeName
	TypeParams  []string
	Doc         string
	Annotations []Annotation
	Fields      []Field
	Decls       []Declaration
	Statics     []Declaration
}

// Qualified returns the package-qualified name of the type.
func (t TypeSpec) Qualified() string {
	if t.Package == "" {
		return t.Name
	}
	return t.Package + "." + t.Name
}

// HasConstructor reports whether the type declares an explicit constructor.
func (t TypeSpec) HasConstructor() bool {
	for _, d := range t.Decls {
		if d.Kind == KindConstructor {
			return true
		}
	}
	return false
}

// Result is the output of one run, in generation order.
type Result struct {
	Types []TypeSpec
}

// Type returns the generated type with the given simple name.
func (r *Result) Type(name string) (TypeSpec, bool) {
	for _, t := range r.Types {
		if t.Name == name {
			return t, true
		}
	}
	return TypeSpec{}, false
}

func ptr(t typeq.TypeName) *typeq.TypeName { return &t }

func argsOf(params []Parameter) []Arg {
	args := make([]Arg, len(params))
	for i, p := range params {
		args[i] = Arg{Expr: p.Name}
	}
	return args
}
