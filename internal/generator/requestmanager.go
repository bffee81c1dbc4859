package generator

import (
	"github.com/cockroachdb/errors"

	"github.com/calumari/declgen/internal/typeq"
)

// generateRequestManager builds GlideRequests: the manager handing out
// GlideRequest builders, extended with the GlideType methods of the
// configured extension classes.
func (g *generator) generateRequestManager() (*TypeSpec, error) {
	rm, err := g.lookup(qnRequestManager)
	if err != nil {
		return nil, err
	}
	rb, err := g.lookup(qnRequestBuilder)
	if err != nil {
		return nil, err
	}
	g.manager = g.generated(requestManagerName)

	spec := &TypeSpec{
		Name:        requestManagerName,
		Package:     g.cfg.Package,
		Visibility:  Public,
		Superclass:  ptr(rm),
		Annotations: []Annotation{suppressWarnings("deprecation")},
		Doc: "Includes all additions from methods in GlideExtensions\n" +
			"annotated with GlideType\n\n<p>Generated code, do not modify",
	}

	resource := typeq.Var("ResourceType")
	asParams := []Parameter{g.nonNullParam("resourceClass", typeq.ClassName(qnClass, resource))}
	spec.Decls = append(spec.Decls, Declaration{
		Name:        "as",
		Kind:        KindOverride,
		Params:      asParams,
		Returns:     ptr(g.request.WithArgs(resource)),
		TypeParams:  []string{resource.Qualified},
		Visibility:  Public,
		Annotations: []Annotation{marker(g.support.nonNull), marker(g.support.checkResult)},
		Body: Body{
			Strategy: Construct,
			Owner:    g.request.WithArgs(resource),
			Args:     []Arg{{Expr: "glide"}, {Expr: "this"}, {Expr: "resourceClass"}, {Expr: "context"}},
		},
	})

	ctor, err := g.managerParams()
	if err != nil {
		return nil, err
	}
	spec.Decls = append(spec.Decls, Declaration{
		Name:       "constructor",
		Kind:       KindConstructor,
		Params:     ctor,
		Visibility: Public,
		Body:       Body{Strategy: SuperConstructor, Args: argsOf(ctor)},
	})

	exts, err := g.extensionMethods()
	if err != nil {
		return nil, err
	}
	spec.Decls = append(spec.Decls, exts...)

	for _, m := range FindInstanceMethodsReturning(g.q, rm, rm) {
		d := g.mapper.GenerateOverride(m, g.manager)
		d.Annotations = append(d.Annotations, marker(g.support.nonNull))
		spec.Decls = append(spec.Decls, d)
	}
	for _, m := range FindInstanceMethodsReturning(g.q, rm, rb) {
		if m.Name == "as" {
			continue
		}
		ret := g.request.WithArgs(firstTypeArg(m.Returns, typeq.ClassName("java.lang.Object")))
		spec.Decls = append(spec.Decls, g.mapper.GenerateOverride(m, ret))
	}

	if !g.options.Void() {
		ro, err := g.lookup(qnRequestOptions)
		if err != nil {
			return nil, err
		}
		params := []Parameter{g.nonNullParam("toSet", ro)}
		spec.Decls = append(spec.Decls, Declaration{
			Name:       "setRequestOptions",
			Kind:       KindOverride,
			Params:     params,
			Visibility: Protected,
			Body: Body{
				Strategy: ConditionalDelegate,
				Owner:    g.options,
				Target:   "setRequestOptions",
				Args:     argsOf(params),
			},
		})
	}
	return spec, nil
}

// managerParams are the parameters shared by the manager constructor and
// the factory's build method.
func (g *generator) managerParams() ([]Parameter, error) {
	names := []struct{ name, qualified string }{
		{"glide", qnGlide},
		{"lifecycle", qnLifecycle},
		{"treeNode", qnTreeNode},
	}
	var params []Parameter
	for _, n := range names {
		t, err := g.lookup(n.qualified)
		if err != nil {
			return nil, err
		}
		params = append(params, g.nonNullParam(n.name, t))
	}
	return append(params, g.nonNullParam("context", g.contextType())), nil
}

// extensionMethods adds one typed request method per GlideType method of
// the extension classes. Void extension methods use the legacy form that
// mutates the builder in place.
func (g *generator) extensionMethods() ([]Declaration, error) {
	var out []Declaration
	for _, name := range g.cfg.Extensions {
		ext, ok := g.q.Lookup(name)
		if !ok {
			return nil, errors.WithHint(
				errors.Newf("extension %s not found in library", name),
				"list only extension classes present in the type table",
			)
		}
		for _, m := range g.q.Members(ext) {
			if !m.HasAnnotation(annGlideType) {
				continue
			}
			classes, err := SingleAnnotationValue(g.q, m.Signature(), m.Annotations, annGlideType)
			if err != nil {
				return nil, err
			}
			resource := classes[0]
			ret := g.request.WithArgs(resource)
			out = append(out, Declaration{
				Name:        m.Name,
				Kind:        KindMethod,
				Returns:     ptr(ret),
				Visibility:  Public,
				Doc:         seeDoc(m),
				Annotations: []Annotation{marker(g.support.nonNull), marker(g.support.checkResult)},
				Body: Body{
					Strategy: ApplyExtension,
					Owner:    ext.WithNullable(false),
					Target:   m.Name,
					TypeArg:  resource,
					Cast:     ptr(ret),
					Legacy:   m.Returns.Void(),
				},
			})
		}
	}
	return out, nil
}
