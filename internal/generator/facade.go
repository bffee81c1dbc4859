package generator

import (
	"github.com/cockroachdb/errors"

	"github.com/calumari/declgen/internal/typeq"
)

// generateFacade builds the application entry point (GlideApp by default):
// a static mirror of every public static method of Glide, with the ones
// returning a RequestManager narrowed to the generated manager.
func (g *generator) generateFacade() (*TypeSpec, error) {
	glide, err := g.lookup(qnGlide)
	if err != nil {
		return nil, err
	}
	rm, err := g.lookup(qnRequestManager)
	if err != nil {
		return nil, err
	}
	spec := &TypeSpec{
		Name:       g.cfg.GlideName,
		Package:    g.cfg.Package,
		Visibility: Public,
		Doc: "The entry point for interacting with Glide for Applications\n\n" +
			"<p>Includes all generated APIs from all\n" +
			"GlideExtensions in source and dependent libraries.\n\n" +
			"<p>This class is generated and should not be modified\n\n" +
			"@see Glide",
		Decls: []Declaration{{
			Name:       "constructor",
			Kind:       KindConstructor,
			Visibility: Private,
		}},
	}

	for _, m := range FindStaticMethods(g.q, glide) {
		params := g.mapper.Parameters(m)
		d := Declaration{
			Name:        m.Name,
			Kind:        KindStaticFactory,
			Params:      params,
			TypeParams:  append([]string(nil), m.TypeParams...),
			Visibility:  Public,
			Varargs:     m.Varargs,
			Doc:         seeDoc(m),
			Annotations: append([]Annotation{marker(annJvmStatic)}, g.returnAnnotations(m)...),
			Body: Body{
				Strategy: DelegateToStaticMember,
				Owner:    glide,
				Target:   m.Name,
				Args:     argsOf(params),
			},
		}
		switch {
		case g.q.ReturnTypeAssignableTo(m, rm):
			if len(params) != 1 {
				return nil, errors.AssertionFailedf("%s: expected a single parameter, found %d", m.Signature(), len(params))
			}
			d.Returns = ptr(g.manager)
			d.Body.Cast = ptr(g.manager)
		case m.Returns.Void():
		case m.Returns.IsPrimitive():
			d.Returns = ptr(m.Returns)
		default:
			d.Returns = ptr(m.Returns.WithNullable(true))
		}
		spec.Statics = append(spec.Statics, d)
	}
	return spec, nil
}

// returnAnnotations copies the annotations of m; VisibleForTesting also
// silences the matching lint check on the mirror.
func (g *generator) returnAnnotations(m typeq.Method) []Annotation {
	var out []Annotation
	for _, a := range copyAnnotations(m.Annotations) {
		out = append(out, a)
		if a.Type == g.support.visibleForTesting {
			out = append(out, Annotation{Type: annSuppressLint, Members: []string{`"VisibleForTests"`}})
		}
	}
	return out
}
