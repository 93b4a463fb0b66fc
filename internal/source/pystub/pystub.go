// Package pystub reads Python stub files (.pyi) into a namespace using the
// tree-sitter Python grammar.
//
// Stub docstrings usually carry only a description, since the def line is
// the signature. When a docstring does not open with a "name(" header one
// is synthesized from the def, so rows can be rendered from it.
package pystub

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/agentflare-ai/dokuref/internal/namespace"
	"github.com/agentflare-ai/dokuref/internal/signature"
)

// ModuleName derives the module name from a stub path. A package's
// __init__.pyi is named after its directory.
func ModuleName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if base == "__init__" {
		return filepath.Base(filepath.Dir(path))
	}
	return base
}

// Load parses the stub file at path.
func Load(path string) (*namespace.Object, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(ModuleName(path), src)
}

// Parse builds the namespace for module from stub source.
func Parse(module string, src []byte) (*namespace.Object, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(tree_sitter.NewLanguage(tree_sitter_python.Language())); err != nil {
		return nil, fmt.Errorf("set language python: %w", err)
	}
	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter returned nil tree for %s", module)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("%s: stub has syntax errors", module)
	}

	b := &builder{src: src, module: module}
	ns := &namespace.Object{ObjName: module, ObjDoc: b.docstring(root)}
	ns.Children = b.scope(root, false)
	return ns, nil
}

type builder struct {
	src    []byte
	module string
}

func (b *builder) text(n *tree_sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(b.src)
}

// scope collects the definitions directly inside a module or class body.
// Later definitions with an already seen name, such as overloads or
// property setters, are dropped.
func (b *builder) scope(body *tree_sitter.Node, inClass bool) []*namespace.Object {
	var out []*namespace.Object
	seen := make(map[string]bool)
	add := func(o *namespace.Object) {
		if o == nil || seen[o.ObjName] {
			return
		}
		seen[o.ObjName] = true
		out = append(out, o)
	}
	for i := uint(0); i < body.NamedChildCount(); i++ {
		node := body.NamedChild(i)
		var decorators []string
		if node.Kind() == "decorated_definition" {
			decorators = b.decorators(node)
			node = node.ChildByFieldName("definition")
			if node == nil {
				continue
			}
		}
		switch node.Kind() {
		case "class_definition":
			add(b.class(node))
		case "function_definition":
			add(b.function(node, decorators, inClass))
		case "expression_statement":
			if inClass {
				add(b.attribute(node))
			}
		}
	}
	return out
}

func (b *builder) decorators(node *tree_sitter.Node) []string {
	var names []string
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() != "decorator" {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(b.text(child), "@"))
		if open := strings.IndexByte(name, '('); open >= 0 {
			name = name[:open]
		}
		names = append(names, name)
	}
	return names
}

func (b *builder) class(node *tree_sitter.Node) *namespace.Object {
	body := node.ChildByFieldName("body")
	obj := &namespace.Object{
		ObjName:   b.text(node.ChildByFieldName("name")),
		ObjKind:   namespace.KindClass,
		ObjModule: b.module,
	}
	if body != nil {
		obj.ObjDoc = b.docstring(body)
		obj.Children = b.scope(body, true)
	}
	return obj
}

func (b *builder) function(node *tree_sitter.Node, decorators []string, inClass bool) *namespace.Object {
	kind := namespace.KindFunction
	if inClass {
		kind = namespace.KindMethod
	}
	for _, d := range decorators {
		switch {
		case d == "staticmethod":
			kind = namespace.KindStaticMethod
		case d == "classmethod":
			kind = namespace.KindClassMethod
		case d == "property" || strings.HasSuffix(d, "cached_property"):
			kind = namespace.KindProperty
		case strings.HasSuffix(d, ".setter") || strings.HasSuffix(d, ".deleter"):
			return nil
		}
	}

	name := b.text(node.ChildByFieldName("name"))
	params := b.parameters(node.ChildByFieldName("parameters"))
	var ret *namespace.Annotation
	if rt := node.ChildByFieldName("return_type"); rt != nil {
		ret = &namespace.Annotation{Repr: b.text(rt)}
	}
	var doc string
	if body := node.ChildByFieldName("body"); body != nil {
		doc = b.docstring(body)
	}

	if kind == namespace.KindProperty {
		return &namespace.Object{ObjName: name, ObjKind: kind, ObjDoc: doc, Type: ret}
	}
	sig := &namespace.Signature{Params: params, Return: ret}
	return &namespace.Object{
		ObjName: name,
		ObjKind: kind,
		ObjDoc:  withHeader(name, doc, sig),
		Sig:     sig,
	}
}

// attribute turns an annotated class attribute ("x: float") into a
// property.
func (b *builder) attribute(node *tree_sitter.Node) *namespace.Object {
	if node.NamedChildCount() == 0 {
		return nil
	}
	assign := node.NamedChild(0)
	if assign.Kind() != "assignment" {
		return nil
	}
	left, typ := assign.ChildByFieldName("left"), assign.ChildByFieldName("type")
	if left == nil || typ == nil || left.Kind() != "identifier" {
		return nil
	}
	return &namespace.Object{
		ObjName: b.text(left),
		ObjKind: namespace.KindProperty,
		Type:    &namespace.Annotation{Repr: b.text(typ)},
	}
}

func (b *builder) parameters(node *tree_sitter.Node) []namespace.Parameter {
	if node == nil {
		return nil
	}
	var params []namespace.Parameter
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "identifier", "list_splat_pattern", "dictionary_splat_pattern":
			params = append(params, namespace.Parameter{Name: b.text(child)})
		case "keyword_separator":
			params = append(params, namespace.Parameter{Name: "*"})
		case "positional_separator":
			params = append(params, namespace.Parameter{Name: "/"})
		case "typed_parameter":
			params = append(params, namespace.Parameter{
				Name: b.text(child.NamedChild(0)),
				Type: b.text(child.ChildByFieldName("type")),
			})
		case "default_parameter", "typed_default_parameter":
			params = append(params, namespace.Parameter{
				Name:    b.text(child.ChildByFieldName("name")),
				Type:    b.text(child.ChildByFieldName("type")),
				Default: b.text(child.ChildByFieldName("value")),
			})
		}
	}
	return params
}

// docstring returns the cleaned string literal opening a block, if any.
func (b *builder) docstring(body *tree_sitter.Node) string {
	var first *tree_sitter.Node
	for i := uint(0); i < body.NamedChildCount(); i++ {
		if n := body.NamedChild(i); n.Kind() != "comment" {
			first = n
			break
		}
	}
	if first == nil || first.Kind() != "expression_statement" || first.NamedChildCount() == 0 {
		return ""
	}
	str := first.NamedChild(0)
	if str.Kind() != "string" {
		return ""
	}
	return namespace.CleanDoc(unquoteString(b.text(str)))
}

// unquoteString strips the prefix and quotes from a Python string literal.
// Escape sequences are kept as written.
func unquoteString(lit string) string {
	lit = strings.TrimLeft(lit, "rRuUbBfF")
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if len(lit) >= 2*len(q) && strings.HasPrefix(lit, q) && strings.HasSuffix(lit, q) {
			return lit[len(q) : len(lit)-len(q)]
		}
	}
	return lit
}

// withHeader prepends a "name(params) -> ret" header and a blank separator
// to a description-only docstring. Empty docstrings stay empty.
func withHeader(name, doc string, sig *namespace.Signature) string {
	if doc == "" || strings.HasPrefix(doc, name+"(") {
		return doc
	}
	header := name + signature.Format(sig.Params)
	if ret := sig.Return.Display(); ret != "" {
		header += " -> " + ret
	}
	return header + "\n\n" + doc
}
