// Package gopkg presents a Go package as a documentable namespace.
//
// Named types become classes, their constructors become static methods and
// their exported struct fields become properties. Callables get a
// synthesized docstring in the three-line convention:
//
//	Grow(self: *widgets.Widget, n: int) -> int
//
//	Grow enlarges the widget by n.
//
// Types are qualified with their package name, so mentions of the package's
// own types link to their sections.
package gopkg

import (
	"context"
	"fmt"
	"go/ast"
	"go/doc"
	"go/types"
	"log/slog"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/agentflare-ai/dokuref/internal/namespace"
	"github.com/agentflare-ai/dokuref/internal/signature"
)

// Options tune which declarations are exposed.
type Options struct {
	// Unexported includes unexported declarations.
	Unexported bool
	Logger     *slog.Logger
}

// Load builds one namespace per package matched by pattern.
func Load(ctx context.Context, pattern string, opts Options) ([]*namespace.Object, error) {
	pkgs, err := loadPackages(ctx, pattern)
	if err != nil {
		return nil, err
	}
	out := make([]*namespace.Object, 0, len(pkgs))
	for _, pkg := range pkgs {
		ns, err := Namespace(pkg, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, ns)
	}
	return out, nil
}

// Namespace converts a loaded package.
func Namespace(pkg *packages.Package, opts Options) (*namespace.Object, error) {
	if pkg.Types == nil {
		return nil, fmt.Errorf("%s: package has no type information", pkg.PkgPath)
	}
	docPkg, err := buildDocPackage(pkg, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pkg.PkgPath, err)
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	b := &builder{pkg: pkg, doc: docPkg, log: log, unexported: opts.Unexported}

	ns := &namespace.Object{ObjName: pkg.Name, ObjDoc: docPkg.Doc}
	ns.Children = append(ns.Children, b.values(docPkg.Consts)...)
	ns.Children = append(ns.Children, b.values(docPkg.Vars)...)
	for _, f := range docPkg.Funcs {
		if fn := b.lookupFunc(f.Name); fn != nil {
			ns.Children = append(ns.Children, b.callable(f.Name, fn, namespace.KindFunction, f.Doc))
		}
	}
	for _, t := range docPkg.Types {
		ns.Children = append(ns.Children, b.class(t))
	}
	return ns, nil
}

func buildDocPackage(pkg *packages.Package, opts Options) (*doc.Package, error) {
	mode := doc.Mode(0)
	if opts.Unexported {
		mode |= doc.AllDecls | doc.AllMethods
	}
	return doc.NewFromFiles(pkg.Fset, pkg.Syntax, pkg.PkgPath, mode)
}

type builder struct {
	pkg        *packages.Package
	doc        *doc.Package
	log        *slog.Logger
	unexported bool
}

// qualify names every package by its package name, matching how a reader
// of the generated page refers to types.
func (b *builder) qualify(p *types.Package) string {
	return p.Name()
}

func (b *builder) typeString(t types.Type) string {
	return types.TypeString(t, b.qualify)
}

func (b *builder) lookupFunc(name string) *types.Func {
	fn, _ := b.pkg.Types.Scope().Lookup(name).(*types.Func)
	if fn == nil {
		b.log.Debug("no type information", "func", name)
	}
	return fn
}

func (b *builder) values(vals []*doc.Value) []*namespace.Object {
	var out []*namespace.Object
	for _, v := range vals {
		for _, name := range v.Names {
			out = append(out, &namespace.Object{ObjName: name, ObjKind: namespace.KindData, ObjDoc: v.Doc})
		}
	}
	return out
}

func (b *builder) class(t *doc.Type) *namespace.Object {
	obj := &namespace.Object{
		ObjName:   t.Name,
		ObjKind:   namespace.KindClass,
		ObjModule: b.pkg.Name,
		ObjDoc:    t.Doc,
	}
	tn, _ := b.pkg.Types.Scope().Lookup(t.Name).(*types.TypeName)
	if tn == nil {
		return obj
	}
	if tn.IsAlias() {
		if named, ok := types.Unalias(tn.Type()).(*types.Named); ok && named.Obj().Pkg() != nil {
			obj.ObjModule = named.Obj().Pkg().Name()
		}
		b.log.Debug("alias type", "name", t.Name, "module", obj.ObjModule)
		return obj
	}

	obj.Children = append(obj.Children, b.values(t.Consts)...)
	obj.Children = append(obj.Children, b.values(t.Vars)...)
	for _, f := range t.Funcs {
		if fn := b.lookupFunc(f.Name); fn != nil {
			obj.Children = append(obj.Children, b.callable(f.Name, fn, namespace.KindStaticMethod, f.Doc))
		}
	}
	for _, m := range t.Methods {
		found, _, _ := types.LookupFieldOrMethod(tn.Type(), true, b.pkg.Types, m.Name)
		fn, ok := found.(*types.Func)
		if !ok {
			continue
		}
		obj.Children = append(obj.Children, b.callable(m.Name, fn, namespace.KindMethod, m.Doc))
	}
	obj.Children = append(obj.Children, b.fields(t, tn)...)
	return obj
}

func (b *builder) fields(t *doc.Type, tn *types.TypeName) []*namespace.Object {
	st, ok := tn.Type().Underlying().(*types.Struct)
	if !ok {
		return nil
	}
	docs := fieldDocs(t.Decl, t.Name)
	var out []*namespace.Object
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if f.Embedded() || (!f.Exported() && !b.unexported) {
			continue
		}
		out = append(out, &namespace.Object{
			ObjName: f.Name(),
			ObjKind: namespace.KindProperty,
			ObjDoc:  docs[f.Name()],
			Type:    &namespace.Annotation{Name: b.typeString(f.Type())},
		})
	}
	return out
}

// fieldDocs maps struct field names to their doc or line comment.
func fieldDocs(decl *ast.GenDecl, typeName string) map[string]string {
	docs := make(map[string]string)
	if decl == nil {
		return docs
	}
	for _, spec := range decl.Specs {
		ts, ok := spec.(*ast.TypeSpec)
		if !ok || ts.Name.Name != typeName {
			continue
		}
		st, ok := ts.Type.(*ast.StructType)
		if !ok || st.Fields == nil {
			continue
		}
		for _, field := range st.Fields.List {
			text := field.Doc.Text()
			if text == "" {
				text = field.Comment.Text()
			}
			for _, name := range field.Names {
				docs[name.Name] = strings.TrimSpace(text)
			}
		}
	}
	return docs
}

func (b *builder) callable(name string, fn *types.Func, kind namespace.Kind, docText string) *namespace.Object {
	sig := fn.Type().(*types.Signature)
	var params []namespace.Parameter
	if recv := sig.Recv(); recv != nil && kind == namespace.KindMethod {
		params = append(params, namespace.Parameter{Name: "self", Type: b.typeString(recv.Type())})
	}
	params = append(params, b.params(sig)...)
	s := &namespace.Signature{Params: params, Return: b.results(sig.Results())}
	return &namespace.Object{
		ObjName: name,
		ObjKind: kind,
		ObjDoc:  b.docstring(name, s, docText),
		Sig:     s,
	}
}

func (b *builder) params(sig *types.Signature) []namespace.Parameter {
	tuple := sig.Params()
	out := make([]namespace.Parameter, 0, tuple.Len())
	for i := 0; i < tuple.Len(); i++ {
		v := tuple.At(i)
		name := v.Name()
		if name == "" {
			name = "_"
		}
		typ := b.typeString(v.Type())
		if sig.Variadic() && i == tuple.Len()-1 {
			if slice, ok := v.Type().(*types.Slice); ok {
				typ = "..." + b.typeString(slice.Elem())
			}
		}
		out = append(out, namespace.Parameter{Name: name, Type: typ})
	}
	return out
}

func (b *builder) results(tuple *types.Tuple) *namespace.Annotation {
	switch tuple.Len() {
	case 0:
		return nil
	case 1:
		if tuple.At(0).Name() == "" {
			return &namespace.Annotation{Name: b.typeString(tuple.At(0).Type())}
		}
	}
	parts := make([]string, 0, tuple.Len())
	for i := 0; i < tuple.Len(); i++ {
		v := tuple.At(i)
		if v.Name() != "" {
			parts = append(parts, v.Name()+" "+b.typeString(v.Type()))
		} else {
			parts = append(parts, b.typeString(v.Type()))
		}
	}
	return &namespace.Annotation{Repr: "(" + strings.Join(parts, ", ") + ")"}
}

// docstring synthesizes the header, separator and synopsis. Undocumented
// callables keep an empty docstring.
func (b *builder) docstring(name string, sig *namespace.Signature, text string) string {
	synopsis := b.doc.Synopsis(text)
	if synopsis == "" {
		return ""
	}
	header := name + signature.Format(sig.Params) + signature.ReturnText(sig.Return)
	return header + "\n\n" + synopsis
}
