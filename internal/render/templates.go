package render

import (
	"embed"
	"sync"
	"text/template"

	"github.com/cockroachdb/errors"

	"github.com/calumari/declgen/internal/generator"
)

const (
	tmplFile = "file"
	tmplType = "type"
	tmplDecl = "decl"

	bodyPrefix = "body_"
)

const (
	templatePattern       = "templates/*.gtpl"
	templateBodiesPattern = "templates/bodies/*.gtpl"
)

//go:embed templates/*.gtpl templates/bodies/*.gtpl
var templatesFS embed.FS

var (
	kotlinTmpl   *template.Template
	tmplInitOnce sync.Once
	tmplInitErr  error
)

// validateTemplates ensures all required templates are defined
func validateTemplates() error {
	for _, name := range []string{tmplFile, tmplType, tmplDecl} {
		if kotlinTmpl.Lookup(name) == nil {
			return errors.Newf("required template %q not found", name)
		}
	}

	// every body strategy needs its body_* template
	for _, s := range generator.Strategies {
		name := bodyPrefix + string(s)
		if kotlinTmpl.Lookup(name) == nil {
			return errors.Newf("required body template %q for strategy %q not found", name, s)
		}
	}
	return nil
}

// ensureTemplates parses and validates templates exactly once. The parsed
// set carries placeholder funcs; each render clones it and binds its own.
func ensureTemplates() error {
	tmplInitOnce.Do(func() {
		var t *template.Template
		t, tmplInitErr = template.New(tmplFile).
			Funcs(newFuncs(nil, nil)).
			ParseFS(templatesFS, templatePattern, templateBodiesPattern)
		if tmplInitErr != nil {
			tmplInitErr = errors.Wrap(tmplInitErr, "parse templates")
			return
		}
		kotlinTmpl = t
		tmplInitErr = validateTemplates()
	})
	return tmplInitErr
}
