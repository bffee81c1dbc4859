package generator

import "github.com/calumari/declgen/internal/typeq"

// generateManagerFactory builds the factory Glide uses to create the
// generated request manager. It always lives in the glide package.
func (g *generator) generateManagerFactory() (*TypeSpec, error) {
	iface, err := g.lookup(qnManagerFactory)
	if err != nil {
		return nil, err
	}
	rm, err := g.lookup(qnRequestManager)
	if err != nil {
		return nil, err
	}
	params, err := g.managerParams()
	if err != nil {
		return nil, err
	}
	g.factory = typeq.ClassName(glidePackage + "." + managerFactoryName)
	return &TypeSpec{
		Name:       managerFactoryName,
		Package:    glidePackage,
		Visibility: Internal,
		Interfaces: []typeq.TypeName{iface},
		Doc:        "Generated code, do not modify",
		Decls: []Declaration{{
			Name:        "build",
			Kind:        KindOverride,
			Params:      params,
			Returns:     ptr(rm),
			Visibility:  Public,
			Annotations: []Annotation{marker(g.support.nonNull)},
			Body:        Body{Strategy: Construct, Owner: g.manager, Args: argsOf(params)},
		}},
	}, nil
}
