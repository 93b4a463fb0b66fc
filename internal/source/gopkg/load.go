package gopkg

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/tools/go/packages"
)

const loadMode = packages.NeedName | packages.NeedCompiledGoFiles | packages.NeedFiles |
	packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo |
	packages.NeedTypesSizes | packages.NeedModule | packages.NeedImports

// loadPackages resolves a single package expression, or every package under
// a "..." pattern.
func loadPackages(ctx context.Context, pattern string) ([]*packages.Package, error) {
	if strings.Contains(pattern, "...") {
		return loadPackageTree(ctx, pattern)
	}
	pkg, err := resolvePackage(ctx, pattern)
	if err != nil {
		return nil, err
	}
	return []*packages.Package{pkg}, nil
}

func loadPackage(ctx context.Context, pattern string) (*packages.Package, error) {
	cfg := &packages.Config{Context: ctx, Mode: loadMode}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, err
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no Go packages matched %q", pattern)
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("%s", pkg.Errors[0])
	}
	return pkg, nil
}

// resolvePackage loads expr, falling back to a standard library package
// whose import path ends in expr, so "json" finds encoding/json.
func resolvePackage(ctx context.Context, expr string) (*packages.Package, error) {
	if expr == "" {
		expr = "."
	}
	pkg, err := loadPackage(ctx, expr)
	if err == nil {
		return pkg, nil
	}
	if match := matchStdSuffix(expr); match != "" && match != expr {
		return loadPackage(ctx, match)
	}
	return nil, fmt.Errorf("could not resolve package %q: %w", expr, err)
}

var (
	stdOnce     sync.Once
	stdPackages []string
	stdErr      error
)

func loadStdPackages() {
	cfg := &packages.Config{Mode: packages.NeedName}
	pkgs, err := packages.Load(cfg, "std")
	if err != nil {
		stdErr = err
		return
	}
	for _, pkg := range pkgs {
		stdPackages = append(stdPackages, pkg.PkgPath)
	}
	sort.Strings(stdPackages)
}

func matchStdSuffix(arg string) string {
	if arg == "" || strings.HasPrefix(arg, ".") {
		return ""
	}
	stdOnce.Do(loadStdPackages)
	if stdErr != nil {
		return ""
	}
	var best string
	for _, path := range stdPackages {
		if path == arg || strings.HasSuffix(path, "/"+arg) {
			if best == "" || path < best {
				best = path
			}
		}
	}
	return best
}

func loadPackageTree(ctx context.Context, pattern string) ([]*packages.Package, error) {
	cfg := &packages.Config{Context: ctx, Mode: loadMode}
	pkgs, err := packages.Load(cfg, filepath.ToSlash(strings.TrimSpace(pattern)))
	if err != nil {
		return nil, err
	}
	unique := make(map[string]*packages.Package)
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("%s", pkg.Errors[0])
		}
		key := pkg.PkgPath
		if key == "" {
			key = packageDir(pkg)
		}
		unique[key] = pkg
	}
	if len(unique) == 0 {
		return nil, fmt.Errorf("no Go packages matched %q", pattern)
	}
	result := make([]*packages.Package, 0, len(unique))
	for _, pkg := range unique {
		result = append(result, pkg)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].PkgPath < result[j].PkgPath
	})
	return result, nil
}

func packageDir(pkg *packages.Package) string {
	if len(pkg.GoFiles) > 0 {
		return filepath.Dir(pkg.GoFiles[0])
	}
	if len(pkg.CompiledGoFiles) > 0 {
		return filepath.Dir(pkg.CompiledGoFiles[0])
	}
	return ""
}
