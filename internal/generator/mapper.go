package generator

import (
	"strconv"
	"strings"

	"github.com/calumari/declgen/internal/logger"
	"github.com/calumari/declgen/internal/typeq"
)

// DefaultContextType is the parameter type that makes a one-argument static
// factory memoizable.
const DefaultContextType = "android.content.Context"

// FindInstanceMethodsReturning lists the public instance methods of base
// whose return type is assignable to target, in declaration order.
func FindInstanceMethodsReturning(q typeq.Query, base, target typeq.TypeName) []typeq.Method {
	var out []typeq.Method
	for _, m := range q.Members(base) {
		if q.IsPublic(m) && !q.IsStatic(m) && q.ReturnTypeAssignableTo(m, target) {
			out = append(out, m)
		}
	}
	return out
}

// FindStaticMethodsReturning lists the public static methods of base whose
// return type is assignable to target.
func FindStaticMethodsReturning(q typeq.Query, base, target typeq.TypeName) []typeq.Method {
	var out []typeq.Method
	for _, m := range FindStaticMethods(q, base) {
		if q.ReturnTypeAssignableTo(m, target) {
			out = append(out, m)
		}
	}
	return out
}

// FindStaticMethods lists the public static methods of base.
func FindStaticMethods(q typeq.Query, base typeq.TypeName) []typeq.Method {
	var out []typeq.Method
	for _, m := range q.Members(base) {
		if q.IsPublic(m) && q.IsStatic(m) {
			out = append(out, m)
		}
	}
	return out
}

// Mapper turns library methods into generated declarations. A Mapper holds
// the memoization slots of one run and must not be shared between runs or
// goroutines.
type Mapper struct {
	contextType typeq.TypeName
	support     support
	slots       map[string]string
	nextFieldID int
}

// NewMapper returns a Mapper for q. An empty contextType selects
// DefaultContextType.
func NewMapper(q typeq.Query, contextType string) *Mapper {
	if contextType == "" {
		contextType = DefaultContextType
	}
	return &Mapper{
		contextType: typeq.ClassName(contextType),
		support:     resolveSupport(q),
		slots:       make(map[string]string),
	}
}

// Parameters converts the parameters of m, inferring missing names and
// deduplicating them. Parameters are nullable unless primitive or annotated
// NonNull.
func (mp *Mapper) Parameters(m typeq.Method) []Parameter {
	ps := make([]Parameter, len(m.Params))
	for i, p := range m.Params {
		vararg := m.Varargs && i == len(m.Params)-1
		ps[i] = Parameter{
			Name:        InferParameterName(p, vararg),
			Type:        p.Type.WithNullable(false),
			Nullable:    !p.NonNull && !p.Type.IsPrimitive() && !hasNonNull(p.Annotations),
			Vararg:      vararg,
			Annotations: copyAnnotations(p.Annotations),
		}
	}
	return DedupParameters(ps)
}

func hasNonNull(anns []typeq.Annotation) bool {
	for _, a := range anns {
		if a.Simple() == "NonNull" || a.Simple() == "NotNull" {
			return true
		}
	}
	return false
}

// GenerateOverride overrides m in a generated subtype, narrowing its return
// type to newReturn and forwarding every parameter to super.
func (mp *Mapper) GenerateOverride(m typeq.Method, newReturn typeq.TypeName) Declaration {
	params := mp.Parameters(m)
	return Declaration{
		Name:        m.Name,
		Kind:        KindOverride,
		Params:      params,
		Returns:     ptr(newReturn),
		TypeParams:  append([]string(nil), m.TypeParams...),
		Annotations: copyAnnotations(m.Annotations),
		Visibility:  Public,
		Varargs:     m.Varargs,
		Body: Body{
			Strategy: DelegateToSuper,
			Target:   m.Name,
			Args:     argsOf(params),
			Cast:     ptr(newReturn),
		},
	}
}

// GenerateStaticFactoryEquivalent mirrors the static options factory m on
// owner. The instance method it calls is derived from m's name. Factories
// taking nothing, or a single context, are memoized in a private static
// slot, which is returned as the second value; the same method always maps
// to the same slot within one Mapper.
func (mp *Mapper) GenerateStaticFactoryEquivalent(m typeq.Method, owner typeq.TypeName) (Declaration, *Field, error) {
	instance, err := InstanceNameForStatic(m.Name)
	if err != nil {
		return Declaration{}, nil, err
	}
	params := mp.Parameters(m)
	memoize := len(params) == 0 || (len(params) == 1 && mp.isContext(params[0]))

	args := argsOf(params)
	if memoize && len(args) == 1 {
		args[0].Member = "applicationContext"
	}
	d := Declaration{
		Name:       m.Name,
		Kind:       KindStaticFactory,
		Params:     params,
		Returns:    ptr(owner.WithNullable(true)),
		TypeParams: append([]string(nil), m.TypeParams...),
		Annotations: []Annotation{
			marker(annJvmStatic),
			marker(mp.support.checkResult),
			marker(mp.support.nonNull),
		},
		Visibility: Public,
		Varargs:    m.Varargs,
		Doc:        seeDoc(m),
		Body: Body{
			Strategy: DirectFactory,
			Owner:    owner,
			Target:   instance,
			Args:     args,
		},
	}
	if !memoize {
		return d, nil, nil
	}
	d.Body.Strategy = MemoizedStaticFactory
	d.Body.Slot = mp.slot(m)
	return d, &Field{
		Name:     d.Body.Slot,
		Type:     owner.WithNullable(false),
		Static:   true,
		Private:  true,
		Mutable:  true,
		Nullable: true,
	}, nil
}

func (mp *Mapper) isContext(p Parameter) bool {
	return !p.Vararg && p.Type.Erasure().Equal(mp.contextType.Erasure())
}

func (mp *Mapper) slot(m typeq.Method) string {
	sig := m.Signature()
	if s, ok := mp.slots[sig]; ok {
		return s
	}
	s := m.Name + strconv.Itoa(mp.nextFieldID)
	mp.nextFieldID++
	mp.slots[sig] = s
	logger.Logger.Debugw("allocated memo slot", "slot", s, "method", sig, "id", m.Identity())
	return s
}

// seeDoc renders a "@see Owner#name(Params)" reference to m.
func seeDoc(m typeq.Method) string {
	var sb strings.Builder
	sb.WriteString("@see ")
	sb.WriteString(m.Owner.Simple())
	sb.WriteByte('#')
	sb.WriteString(m.Name)
	sb.WriteByte('(')
	for i, p := range m.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Type.Erasure().Simple())
	}
	sb.WriteByte(')')
	return sb.String()
}
