package generator

import (
	"strings"

	"github.com/calumari/declgen/internal/typeq"
)

// generateOptions builds GlideOptions: a static equivalent for each
// non-deprecated static factory of RequestOptions, and an override narrowing
// the return of each chaining method of BaseRequestOptions. It returns nil
// when the library has no RequestOptions.
func (g *generator) generateOptions() (*TypeSpec, error) {
	ro, ok := g.q.Lookup(qnRequestOptions)
	if !ok {
		return nil, nil
	}
	ro = ro.WithNullable(false)
	bro, err := g.lookup(qnBaseRequestOptions)
	if err != nil {
		return nil, err
	}
	opts := g.generated(optionsName)

	spec := &TypeSpec{
		Name:        optionsName,
		Package:     g.cfg.Package,
		Visibility:  Public,
		Superclass:  ptr(ro),
		Interfaces:  []typeq.TypeName{typeq.ClassName(qnCloneable)},
		Annotations: []Annotation{suppressWarnings("deprecation")},
		Doc:         g.optionsDoc(),
	}

	for _, m := range FindStaticMethodsReturning(g.q, ro, ro) {
		if m.Deprecated || m.HasAnnotation(annDeprecated) {
			continue
		}
		d, slot, err := g.mapper.GenerateStaticFactoryEquivalent(m, opts)
		if err != nil {
			return nil, err
		}
		spec.Statics = append(spec.Statics, d)
		if slot != nil {
			spec.Fields = append(spec.Fields, *slot)
		}
	}

	for _, m := range FindInstanceMethodsReturning(g.q, bro, bro) {
		d := g.mapper.GenerateOverride(m, opts)
		if m.Varargs && strings.Contains(m.Name, "transform") {
			d.Annotations = append(varargsAnnotations(), d.Annotations...)
		}
		spec.Decls = append(spec.Decls, d)
	}
	g.options = opts
	return spec, nil
}

func (g *generator) optionsDoc() string {
	var sb strings.Builder
	sb.WriteString("Automatically generated from GlideExtension annotated classes.\n\n")
	sb.WriteString("@see RequestOptions")
	for _, ext := range g.cfg.Extensions {
		sb.WriteString("\n@see ")
		sb.WriteString(typeq.ClassName(ext).Simple())
	}
	return sb.String()
}
