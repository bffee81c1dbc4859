// Package golang exposes a loaded Go package as a declaration tree and as a
// type query, so the path engine and the mapper can run over Go code.
package golang

import (
	"path/filepath"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/go/packages"
)

const loadMode = packages.NeedName | packages.NeedSyntax | packages.NeedTypes |
	packages.NeedTypesInfo | packages.NeedDeps | packages.NeedFiles | packages.NeedCompiledGoFiles

// Package is a single type-checked Go package.
type Package struct {
	pkg *packages.Package
}

// Load loads the Go package in dir.
func Load(dir string) (*Package, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", dir)
	}
	pkgs, err := loadDir(absDir)
	if err != nil {
		return nil, err
	}
	if len(pkgs) == 0 {
		return nil, errors.Newf("no packages found in %s", absDir)
	}
	return &Package{pkg: pkgs[0]}, nil
}

// loadDir loads the Go package(s) for a directory.
func loadDir(dir string) ([]*packages.Package, error) {
	cfg := &packages.Config{Mode: loadMode, Dir: dir}
	pkgs, err := packages.Load(cfg, "./")
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", dir)
	}
	var result []*packages.Package
	for _, p := range pkgs {
		if len(p.Errors) > 0 {
			return nil, errors.Wrapf(p.Errors[0], "package %s", p.PkgPath)
		}
		result = append(result, p)
	}
	return result, nil
}

// Name returns the package name.
func (p *Package) Name() string { return p.pkg.Name }

// Path returns the import path.
func (p *Package) Path() string { return p.pkg.PkgPath }
