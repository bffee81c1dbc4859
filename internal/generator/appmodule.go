package generator

import (
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/calumari/declgen/internal/typeq"
)

const appModuleField = "appGlideModule"

// generateAppModule builds GeneratedAppGlideModuleImpl, which wraps the
// application module and registers every library module it does not
// exclude before registering the application module itself.
func (g *generator) generateAppModule() (*TypeSpec, error) {
	if g.cfg.AppModule == "" {
		return nil, errors.New("no app module configured")
	}
	app, ok := g.q.Lookup(g.cfg.AppModule)
	if !ok {
		return nil, errors.WithHint(
			errors.Newf("app module %s not found in library", g.cfg.AppModule),
			"add the app module and its annotations to the type table",
		)
	}
	app = app.WithNullable(false)
	excluded, err := AnnotationClassValues(g.q, g.cfg.AppModule, g.q.Annotations(app), annExcludes)
	if err != nil {
		return nil, err
	}
	skip := make(map[string]bool, len(excluded))
	for _, e := range excluded {
		skip[e.Qualified] = true
	}
	libraries := append([]string(nil), g.cfg.LibraryModules...)
	sort.Strings(libraries)

	base, err := g.lookup(qnGeneratedAppModule)
	if err != nil {
		return nil, err
	}
	glide, err := g.lookup(qnGlide)
	if err != nil {
		return nil, err
	}
	builder, err := g.lookup(qnGlideBuilder)
	if err != nil {
		return nil, err
	}
	registry, err := g.lookup(qnRegistry)
	if err != nil {
		return nil, err
	}
	ctx := g.contextType()

	applyParams := []Parameter{g.nonNullParam("context", ctx), g.nonNullParam("builder", builder)}
	registerParams := []Parameter{
		g.nonNullParam("context", ctx),
		g.nonNullParam("glide", glide),
		g.nonNullParam("registry", registry),
	}
	var calls []Call
	for _, lib := range libraries {
		if skip[lib] {
			continue
		}
		calls = append(calls, Call{Owner: typeq.ClassName(lib), Target: "registerComponents", Args: argsOf(registerParams)})
	}
	// the app module must register last
	calls = append(calls, Call{Field: appModuleField, Target: "registerComponents", Args: argsOf(registerParams)})

	classSet := typeq.ClassName(qnSet, typeq.ClassName(qnClass, typeq.TypeName{Qualified: typeq.Wildcard, Variable: true}))
	nonNull := []Annotation{marker(g.support.nonNull)}

	return &TypeSpec{
		Name:        appModuleImplName,
		Package:     glidePackage,
		Visibility:  Internal,
		Superclass:  ptr(base),
		Annotations: []Annotation{suppressWarnings("deprecation")},
		Fields:      []Field{{Name: appModuleField, Type: app, Private: true}},
		Decls: []Declaration{
			{
				Name:       "constructor",
				Kind:       KindConstructor,
				Params:     []Parameter{{Name: "context", Type: ctx}},
				Visibility: Public,
				Body:       Body{Strategy: InitField, Field: appModuleField, Owner: app},
			},
			{
				Name:       "applyOptions",
				Kind:       KindOverride,
				Params:     applyParams,
				Visibility: Public,
				Body:       Body{Strategy: DelegateToField, Field: appModuleField, Target: "applyOptions", Args: argsOf(applyParams)},
			},
			{
				Name:       "registerComponents",
				Kind:       KindOverride,
				Params:     registerParams,
				Visibility: Public,
				Body:       Body{Strategy: InvokeAll, Calls: calls},
			},
			{
				Name:       "isManifestParsingEnabled",
				Kind:       KindOverride,
				Returns:    ptr(typeq.ClassName(qnBoolean)),
				Visibility: Public,
				Body:       Body{Strategy: DelegateToField, Field: appModuleField, Target: "isManifestParsingEnabled"},
			},
			{
				Name:        "getExcludedModuleClasses",
				Kind:        KindOverride,
				Returns:     ptr(classSet),
				Visibility:  Public,
				Annotations: nonNull,
				Body:        Body{Strategy: ReturnClassSet, Classes: excluded},
			},
			{
				Name:        "getRequestManagerFactory",
				Kind:        KindOverride,
				Returns:     ptr(g.factory),
				Visibility:  Public,
				Annotations: nonNull,
				Body:        Body{Strategy: Construct, Owner: g.factory},
			},
		},
	}, nil
}
