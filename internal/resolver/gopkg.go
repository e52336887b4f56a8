package resolver

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/doc"
	"go/printer"
	"go/token"
	"strings"
	"sync"

	"golang.org/x/tools/go/packages"
)

// GoPackages resolves dotted paths against live Go source: the package part
// is loaded with go/packages, docstrings come from doc comments, signatures
// from the AST and members from the package's declarations. Loaded packages
// are cached for the resolver's lifetime.
type GoPackages struct {
	mu    sync.Mutex
	cache map[string]map[string]*Object
}

func NewGoPackages() *GoPackages {
	return &GoPackages{cache: make(map[string]map[string]*Object)}
}

// Resolve interprets path as <package>[.Symbol[.Method]]. Dots inside the
// package path only occur before the last slash, so at most the final two
// dot segments are tried as symbols.
func (r *GoPackages) Resolve(path string) (*Object, error) {
	for _, cand := range splitCandidates(path) {
		objects, err := r.load(cand.pkg)
		if err != nil {
			continue
		}
		if obj, ok := objects[cand.symbol]; ok {
			resolved := *obj
			resolved.Path = path
			return &resolved, nil
		}
	}
	return nil, &NotFoundError{Path: path}
}

type candidate struct {
	pkg    string
	symbol string
}

func splitCandidates(path string) []candidate {
	candidates := []candidate{{pkg: path}}
	base := path
	if i := strings.LastIndex(path, "/"); i >= 0 {
		base = path[i+1:]
	}
	segments := strings.Split(base, ".")
	for n := 1; n <= 2 && n < len(segments); n++ {
		symbol := strings.Join(segments[len(segments)-n:], ".")
		candidates = append(candidates, candidate{
			pkg:    path[:len(path)-len(symbol)-1],
			symbol: symbol,
		})
	}
	return candidates
}

func (r *GoPackages) load(pattern string) (map[string]*Object, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if objects, ok := r.cache[pattern]; ok {
		if objects == nil {
			return nil, fmt.Errorf("package %q previously failed to load", pattern)
		}
		return objects, nil
	}

	pkg, err := loadPackage(pattern)
	if err != nil {
		r.cache[pattern] = nil
		return nil, err
	}
	objects, err := buildObjects(pkg)
	if err != nil {
		r.cache[pattern] = nil
		return nil, err
	}
	r.cache[pattern] = objects
	return objects, nil
}

func loadPackage(pattern string) (*packages.Package, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedSyntax,
	}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("loading package %q: %w", pattern, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no package matched %q", pattern)
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("loading package %q: %v", pattern, pkg.Errors[0])
	}
	return pkg, nil
}

// buildObjects extracts every documented symbol of a package, keyed by
// symbol path relative to the package ("" is the package itself, "Name" a
// top-level symbol, "Type.Method" a method).
func buildObjects(pkg *packages.Package) (map[string]*Object, error) {
	docPkg, err := doc.NewFromFiles(pkg.Fset, pkg.Syntax, pkg.PkgPath, doc.AllDecls|doc.AllMethods)
	if err != nil {
		return nil, fmt.Errorf("extracting docs for %q: %w", pkg.PkgPath, err)
	}

	objects := make(map[string]*Object)

	pkgObj := &Object{Docstring: docPkg.Doc}
	objects[""] = pkgObj

	addValue := func(values []*doc.Value) {
		for _, v := range values {
			for _, name := range valueNames(v.Decl) {
				pkgObj.Members = append(pkgObj.Members, name)
				objects[name] = &Object{Docstring: v.Doc}
			}
		}
	}
	addValue(docPkg.Consts)
	addValue(docPkg.Vars)

	for _, t := range docPkg.Types {
		pkgObj.Members = append(pkgObj.Members, t.Name)
		typeObj := &Object{Docstring: t.Doc}
		objects[t.Name] = typeObj

		for _, f := range t.Funcs {
			typeObj.Members = append(typeObj.Members, f.Name)
			fnObj := &Object{Signature: fnSignature(pkg.Fset, f.Decl), Docstring: f.Doc}
			objects[t.Name+"."+f.Name] = fnObj
			objects[f.Name] = fnObj
		}
		for _, m := range t.Methods {
			typeObj.Members = append(typeObj.Members, m.Name)
			objects[t.Name+"."+m.Name] = &Object{Signature: fnSignature(pkg.Fset, m.Decl), Docstring: m.Doc}
		}
	}

	for _, f := range docPkg.Funcs {
		pkgObj.Members = append(pkgObj.Members, f.Name)
		objects[f.Name] = &Object{Signature: fnSignature(pkg.Fset, f.Decl), Docstring: f.Doc}
	}

	return objects, nil
}

func valueNames(decl *ast.GenDecl) []string {
	var names []string
	for _, spec := range decl.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}
		for _, ident := range vs.Names {
			names = append(names, ident.Name)
		}
	}
	return names
}

// fnSignature renders a function type without the func keyword or receiver,
// e.g. "(s string) (int, error)".
func fnSignature(fset *token.FileSet, decl *ast.FuncDecl) string {
	if decl == nil || decl.Type == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, decl.Type); err != nil {
		return ""
	}
	return strings.TrimPrefix(buf.String(), "func")
}
