package generator

import (
	"github.com/cockroachdb/errors"

	"github.com/calumari/declgen/internal/logger"
	"github.com/calumari/declgen/internal/typeq"
)

// library types the generators read from
const (
	glidePackage          = "com.bumptech.glide"
	qnRequestOptions      = "com.bumptech.glide.request.RequestOptions"
	qnBaseRequestOptions  = "com.bumptech.glide.request.BaseRequestOptions"
	qnRequestBuilder      = "com.bumptech.glide.RequestBuilder"
	qnRequestManager      = "com.bumptech.glide.RequestManager"
	qnGlide               = "com.bumptech.glide.Glide"
	qnGlideBuilder        = "com.bumptech.glide.GlideBuilder"
	qnRegistry            = "com.bumptech.glide.Registry"
	qnLifecycle           = "com.bumptech.glide.manager.Lifecycle"
	qnTreeNode            = "com.bumptech.glide.manager.RequestManagerTreeNode"
	qnManagerFactory      = "com.bumptech.glide.manager.RequestManagerRetriever.RequestManagerFactory"
	qnGeneratedAppModule  = "com.bumptech.glide.GeneratedAppGlideModule"
	qnCloneable           = "java.lang.Cloneable"
	qnClass               = "java.lang.Class"
	qnFile                = "java.io.File"
	qnSet                 = "kotlin.collections.Set"
	qnBoolean             = "boolean"
	defaultGlideName      = "GlideApp"
	optionsName           = "GlideOptions"
	requestBuilderName    = "GlideRequest"
	requestManagerName    = "GlideRequests"
	managerFactoryName    = "GeneratedRequestManagerFactory"
	appModuleImplName     = "GeneratedAppGlideModuleImpl"
	transcodeTypeVariable = "TranscodeType"
)

// generator holds transient state while building one run's types.
type generator struct {
	cfg     Config
	q       typeq.Query
	mapper  *Mapper
	support support

	// generated type names, set as each artifact is built
	options typeq.TypeName
	request typeq.TypeName // raw GlideRequest
	manager typeq.TypeName
	factory typeq.TypeName
}

// Run generates every API type for the library described by q. Any error
// aborts the run and no result is returned.
func Run(q typeq.Query, cfg Config) (*Result, error) {
	res, err := newGenerator(q, cfg).run()
	if err != nil {
		return nil, err
	}
	return res, nil
}

func newGenerator(q typeq.Query, cfg Config) *generator {
	if cfg.GlideName == "" {
		cfg.GlideName = defaultGlideName
	}
	if cfg.ContextType == "" {
		cfg.ContextType = DefaultContextType
	}
	return &generator{
		cfg:     cfg,
		q:       q,
		mapper:  NewMapper(q, cfg.ContextType),
		support: resolveSupport(q),
	}
}

func (g *generator) run() (*Result, error) {
	if g.cfg.Package == "" {
		return nil, errors.New("no package for generated types")
	}
	steps := []struct {
		name  string
		build func() (*TypeSpec, error)
	}{
		{optionsName, g.generateOptions},
		{requestBuilderName, g.generateRequestBuilder},
		{requestManagerName, g.generateRequestManager},
		{managerFactoryName, g.generateManagerFactory},
		{g.cfg.GlideName, g.generateFacade},
		{appModuleImplName, g.generateAppModule},
	}
	res := &Result{}
	for _, step := range steps {
		spec, err := step.build()
		if err != nil {
			return nil, errors.Wrapf(err, "generate %s", step.name)
		}
		if spec == nil {
			logger.Logger.Debugw("skipped type", "name", step.name)
			continue
		}
		logger.Logger.Debugw("generated type",
			"name", spec.Qualified(),
			"decls", len(spec.Decls),
			"statics", len(spec.Statics),
		)
		res.Types = append(res.Types, *spec)
	}
	return res, nil
}

// lookup resolves a library type that generation cannot proceed without.
func (g *generator) lookup(qualified string) (typeq.TypeName, error) {
	t, ok := g.q.Lookup(qualified)
	if !ok {
		return typeq.TypeName{}, errors.WithHint(
			errors.Newf("type %s not found in library", qualified),
			"add the type to the library type table",
		)
	}
	return t.WithNullable(false), nil
}

func (g *generator) generated(name string) typeq.TypeName {
	return typeq.ClassName(g.cfg.Package + "." + name)
}

// nonNullParam builds a parameter annotated with the resolved NonNull.
func (g *generator) nonNullParam(name string, t typeq.TypeName) Parameter {
	return Parameter{Name: name, Type: t, Annotations: []Annotation{marker(g.support.nonNull)}}
}

func (g *generator) contextType() typeq.TypeName {
	return typeq.ClassName(g.cfg.ContextType)
}
