package golang

import (
	"cmp"
	"go/types"
	"slices"
	"strings"

	"github.com/calumari/declgen/internal/typeq"
)

var basicNames = map[types.BasicKind]string{
	types.Bool:    "boolean",
	types.Int8:    "byte",
	types.Uint8:   "byte",
	types.Int16:   "short",
	types.Int32:   "int",
	types.Int:     "int",
	types.Int64:   "long",
	types.Float32: "float",
	types.Float64: "double",
	types.String:  "java.lang.String",
}

// Query returns a typeq.Query over the package's named types.
//
// Instance members of T are its methods in declaration order, followed by
// those promoted through embedding. Static members are package funcs whose
// first result is T or *T, also in declaration order.
func (p *Package) Query() typeq.Query {
	return &query{pkg: p.pkg.Types}
}

type query struct {
	pkg *types.Package
}

func (q *query) object(qualified string) (*types.TypeName, bool) {
	path, name := splitQualified(qualified)
	if path != q.pkg.Path() {
		return nil, false
	}
	tn, ok := q.pkg.Scope().Lookup(name).(*types.TypeName)
	return tn, ok
}

func (q *query) Lookup(qualified string) (typeq.TypeName, bool) {
	tn, ok := q.object(qualified)
	if !ok {
		return typeq.TypeName{}, false
	}
	return typeName(tn.Type()), true
}

func (q *query) Members(t typeq.TypeName) []typeq.Method {
	tn, ok := q.object(t.Qualified)
	if !ok {
		return nil
	}
	owner := typeName(tn.Type())
	var out []typeq.Method
	for _, fn := range instanceMethods(tn) {
		out = append(out, method(owner, fn, false))
	}
	var statics []*types.Func
	scope := q.pkg.Scope()
	for _, name := range scope.Names() {
		fn, ok := scope.Lookup(name).(*types.Func)
		if !ok {
			continue
		}
		sig := fn.Type().(*types.Signature)
		if sig.Results().Len() == 0 || !sameNamed(sig.Results().At(0).Type(), tn) {
			continue
		}
		statics = append(statics, fn)
	}
	byPos(statics)
	for _, fn := range statics {
		out = append(out, method(owner, fn, true))
	}
	return out
}

// instanceMethods lists the methods of tn in declaration order. Interfaces
// yield their full method set; other types yield their declared methods
// followed by those promoted through embedding.
func instanceMethods(tn *types.TypeName) []*types.Func {
	var out []*types.Func
	if iface, ok := tn.Type().Underlying().(*types.Interface); ok {
		for i := 0; i < iface.NumMethods(); i++ {
			out = append(out, iface.Method(i))
		}
		byPos(out)
		return out
	}
	named, ok := tn.Type().(*types.Named)
	if !ok {
		return nil
	}
	for i := 0; i < named.NumMethods(); i++ {
		out = append(out, named.Method(i))
	}
	byPos(out)
	var promoted []*types.Func
	mset := types.NewMethodSet(types.NewPointer(named))
	for i := 0; i < mset.Len(); i++ {
		sel := mset.At(i)
		if len(sel.Index()) < 2 {
			continue
		}
		if fn, ok := sel.Obj().(*types.Func); ok {
			promoted = append(promoted, fn)
		}
	}
	byPos(promoted)
	return append(out, promoted...)
}

// byPos orders fns by source position. go/types hands methods and scope
// names back sorted by name.
func byPos(fns []*types.Func) {
	slices.SortStableFunc(fns, func(a, b *types.Func) int { return cmp.Compare(a.Pos(), b.Pos()) })
}

// Annotations is always empty: Go declarations carry no annotations.
func (q *query) Annotations(typeq.TypeName) []typeq.Annotation { return nil }

func (q *query) IsSubtype(sub, super typeq.TypeName) bool {
	if sub.Void() || super.Void() {
		return false
	}
	if sub.Erasure().Equal(super.Erasure()) {
		return true
	}
	st, ok := q.object(sub.Qualified)
	if !ok {
		return false
	}
	tt, ok := q.object(super.Qualified)
	if !ok {
		return false
	}
	return types.AssignableTo(st.Type(), tt.Type()) ||
		types.AssignableTo(types.NewPointer(st.Type()), tt.Type())
}

func (q *query) ReturnTypeAssignableTo(m typeq.Method, target typeq.TypeName) bool {
	return !m.Returns.Void() && q.IsSubtype(m.Returns, target)
}

func (q *query) IsStatic(m typeq.Method) bool { return m.Static }

func (q *query) IsPublic(m typeq.Method) bool { return m.Public }

func method(owner typeq.TypeName, fn *types.Func, static bool) typeq.Method {
	sig := fn.Type().(*types.Signature)
	m := typeq.Method{
		Owner:   owner,
		Name:    fn.Name(),
		Static:  static,
		Public:  fn.Exported(),
		Varargs: sig.Variadic(),
	}
	for i := 0; i < sig.Params().Len(); i++ {
		v := sig.Params().At(i)
		pt := v.Type()
		if m.Varargs && i == sig.Params().Len()-1 {
			if s, ok := pt.(*types.Slice); ok {
				pt = s.Elem()
			}
		}
		m.Params = append(m.Params, typeq.Param{Name: v.Name(), Type: typeName(pt)})
	}
	if sig.Results().Len() > 0 {
		m.Returns = typeName(sig.Results().At(0).Type())
	}
	if tps := sig.TypeParams(); tps != nil {
		for i := 0; i < tps.Len(); i++ {
			m.TypeParams = append(m.TypeParams, tps.At(i).Obj().Name())
		}
	}
	return m
}

// typeName maps a Go type onto the query's naming. Pointers become nullable
// references and slices become arrays.
func typeName(t types.Type) typeq.TypeName {
	switch tt := t.(type) {
	case *types.Pointer:
		return typeName(tt.Elem()).WithNullable(true)
	case *types.Slice:
		n := typeName(tt.Elem())
		n.Array = true
		return n
	case *types.Array:
		n := typeName(tt.Elem())
		n.Array = true
		return n
	case *types.TypeParam:
		return typeq.Var(tt.Obj().Name())
	case *types.Basic:
		if name, ok := basicNames[tt.Kind()]; ok {
			return typeq.ClassName(name)
		}
		return typeq.ClassName(tt.Name())
	case *types.Named:
		obj := tt.Obj()
		qualified := obj.Name()
		if obj.Pkg() != nil {
			qualified = obj.Pkg().Path() + "." + obj.Name()
		}
		var args []typeq.TypeName
		if ta := tt.TypeArgs(); ta != nil {
			for i := 0; i < ta.Len(); i++ {
				args = append(args, typeName(ta.At(i)))
			}
		}
		return typeq.ClassName(qualified, args...)
	}
	return typeq.ClassName("java.lang.Object")
}

func sameNamed(t types.Type, tn *types.TypeName) bool {
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}
	n, ok := t.(*types.Named)
	return ok && n.Obj() == tn
}

func splitQualified(s string) (path, name string) {
	i := strings.LastIndexByte(s, '.')
	if i < 0 {
		return "", s
	}
	return s[:i], s[i+1:]
}
