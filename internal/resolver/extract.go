package resolver

import (
	"fmt"

	"golang.org/x/tools/go/packages"
)

// Extract loads every package matched by the patterns (e.g. "./...") and
// returns all documented objects keyed by fully qualified dotted path. This
// is the source feed for building a static docstring index.
func Extract(patterns ...string) (map[string]*Object, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedSyntax,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading packages %v: %w", patterns, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages matched %v", patterns)
	}

	out := make(map[string]*Object)
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("loading package %q: %v", pkg.PkgPath, pkg.Errors[0])
		}
		objects, err := buildObjects(pkg)
		if err != nil {
			return nil, err
		}
		for rel, obj := range objects {
			path := pkg.PkgPath
			if rel != "" {
				path += "." + rel
			}
			qualified := *obj
			qualified.Path = path
			out[path] = &qualified
		}
	}
	return out, nil
}
