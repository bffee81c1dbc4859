package generator

import "github.com/calumari/declgen/internal/typeq"

// generateRequestBuilder builds GlideRequest<TranscodeType>, which repeats
// every chaining method of RequestBuilder with the generated type as return.
func (g *generator) generateRequestBuilder() (*TypeSpec, error) {
	rb, err := g.lookup(qnRequestBuilder)
	if err != nil {
		return nil, err
	}
	glide, err := g.lookup(qnGlide)
	if err != nil {
		return nil, err
	}
	rm, err := g.lookup(qnRequestManager)
	if err != nil {
		return nil, err
	}
	g.request = g.generated(requestBuilderName)
	transcode := typeq.Var(transcodeTypeVariable)
	classOfTranscode := typeq.ClassName(qnClass, transcode)

	optionsRef := "RequestOptions"
	if !g.options.Void() {
		optionsRef = g.options.Simple()
	}
	spec := &TypeSpec{
		Name:        requestBuilderName,
		Package:     g.cfg.Package,
		Visibility:  Public,
		TypeParams:  []string{transcodeTypeVariable},
		Superclass:  ptr(rb.WithArgs(transcode)),
		Interfaces:  []typeq.TypeName{typeq.ClassName(qnCloneable)},
		Annotations: []Annotation{suppressWarnings("unused", "deprecation")},
		Doc: "Contains all public methods from RequestBuilder, all options from\n" +
			optionsRef + " and all generated options from GlideOption annotated\n" +
			"methods in GlideExtension annotated classes.\n\n" +
			"<p>Generated code, do not modify.\n\n" +
			"@see RequestBuilder\n@see " + optionsRef,
	}

	ctorParams := [][]Parameter{
		{
			g.nonNullParam("transcodeClass", classOfTranscode),
			g.nonNullParam("other", rb.WithArgs(typeq.TypeName{Qualified: typeq.Wildcard, Variable: true})),
		},
		{
			g.nonNullParam("glide", glide),
			g.nonNullParam("requestManager", rm),
			g.nonNullParam("transcodeClass", classOfTranscode),
			g.nonNullParam("context", g.contextType()),
		},
	}
	for _, params := range ctorParams {
		spec.Decls = append(spec.Decls, Declaration{
			Name:       "constructor",
			Kind:       KindConstructor,
			Params:     params,
			Visibility: Internal,
			Body:       Body{Strategy: SuperConstructor, Args: argsOf(params)},
		})
	}

	file := typeq.ClassName(qnFile)
	ofFile := g.request.WithArgs(file)
	spec.Decls = append(spec.Decls, Declaration{
		Name:        "getDownloadOnlyRequest",
		Kind:        KindOverride,
		Returns:     ptr(ofFile),
		Visibility:  Protected,
		Annotations: []Annotation{marker(g.support.checkResult), marker(g.support.nonNull)},
		Body: Body{
			Strategy: Construct,
			Owner:    ofFile,
			Args:     []Arg{{Class: file}, {Expr: "this"}},
			Chain:    &Call{Target: "apply", Args: []Arg{{Expr: "DOWNLOAD_ONLY_OPTIONS"}}},
		},
	})

	for _, m := range FindInstanceMethodsReturning(g.q, rb, rb) {
		d := g.mapper.GenerateOverride(m, g.request.WithArgs(firstTypeArg(m.Returns, transcode)))
		if m.Varargs {
			d.Final = true
			d.Annotations = append(d.Annotations, varargsAnnotations()...)
		}
		spec.Decls = append(spec.Decls, d)
	}
	return spec, nil
}

func firstTypeArg(t, fallback typeq.TypeName) typeq.TypeName {
	if len(t.Args) == 0 {
		return fallback
	}
	return t.Args[0]
}
