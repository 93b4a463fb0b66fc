package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentflare-ai/dokuref/internal/namespace"
	"github.com/agentflare-ai/dokuref/internal/symbol"
)

func fixture() *namespace.Object {
	self := namespace.Parameter{Name: "self", Type: "mymodule.Widget"}
	return &namespace.Object{
		ObjName: "mymodule",
		Children: []*namespace.Object{
			{ObjName: "__doc__", ObjKind: namespace.KindData},
			{ObjName: "load", ObjKind: namespace.KindBuiltin, ObjDoc: "load(path: str) -> Model\n\n\nLoads a model from disk"},
			{ObjName: "Widget", ObjKind: namespace.KindClass, ObjModule: "mymodule", ObjDoc: "A widget.\n\nMore detail.", Children: []*namespace.Object{
				{ObjName: "__init__", ObjKind: namespace.KindMethod},
				{ObjName: "reset", ObjKind: namespace.KindMethod, ObjDoc: "reset(self) -> None\n\n\nResets state",
					Sig: &namespace.Signature{Params: []namespace.Parameter{self}, Return: &namespace.Annotation{Name: "None"}}},
				{ObjName: "create", ObjKind: namespace.KindClassMethod,
					Sig: &namespace.Signature{Params: []namespace.Parameter{{Name: "cls"}, {Name: "n", Type: "int"}}}},
				{ObjName: "version", ObjKind: namespace.KindStaticMethod,
					Sig: &namespace.Signature{Return: &namespace.Annotation{Name: "str"}}},
				{ObjName: "native", ObjKind: namespace.KindCallable},
				{ObjName: "size", ObjKind: namespace.KindProperty, ObjDoc: "  Number   of\titems\n second line", Type: &namespace.Annotation{Name: "int"}},
				{ObjName: "color", ObjKind: namespace.KindProperty},
				{ObjName: "LIMIT", ObjKind: namespace.KindData},
				{ObjName: "Inner", ObjKind: namespace.KindClass, ObjModule: "mymodule"},
			}},
			{ObjName: "Array", ObjKind: namespace.KindClass, ObjModule: "numpy"},
			{ObjName: "Abacus", ObjKind: namespace.KindClass, ObjModule: "mymodule"},
			{ObjName: "helper", ObjKind: namespace.KindFunction},
			{ObjName: "PI", ObjKind: namespace.KindData},
		},
	}
}

func TestModuleClassifiesAndSorts(t *testing.T) {
	mod := Module(fixture(), Options{})

	assert.Equal(t, "mymodule", mod.Name)
	assert.Equal(t, []string{"Abacus", "Widget"}, mod.ClassNames())

	require.Len(t, mod.Functions, 2)
	assert.Equal(t, "helper", mod.Functions[0].Name)
	assert.Equal(t, "load", mod.Functions[1].Name)
	assert.Equal(t, symbol.BindingNone, mod.Functions[1].Binding)
	assert.Equal(t, "()", mod.Functions[1].Signature)
}

func TestClassMembers(t *testing.T) {
	mod := Module(fixture(), Options{})
	widget := mod.Classes[1]
	require.Equal(t, "Widget", widget.Name)
	assert.Equal(t, "Widget", widget.Anchor)

	var names []string
	bindings := map[string]symbol.BindingKind{}
	for _, m := range widget.Methods {
		names = append(names, m.Name)
		bindings[m.Name] = m.Binding
	}
	assert.Equal(t, []string{"create", "native", "reset", "version"}, names)
	assert.Equal(t, symbol.BindingClass, bindings["create"])
	assert.Equal(t, symbol.BindingUnknown, bindings["native"])
	assert.Equal(t, symbol.BindingInstance, bindings["reset"])
	assert.Equal(t, symbol.BindingStatic, bindings["version"])

	assert.Equal(t, "(n: int)", widget.Methods[0].Signature)
	assert.Equal(t, "()", widget.Methods[2].Signature)
	assert.Equal(t, " -> None", widget.Methods[2].ReturnText)
	assert.Equal(t, " -> str", widget.Methods[3].ReturnText)

	require.Len(t, widget.Properties, 2)
	assert.Equal(t, &symbol.Property{Name: "color"}, widget.Properties[0])
	assert.Equal(t, &symbol.Property{Name: "size", Type: "int", Description: "Number of items"}, widget.Properties[1])
}

func TestReservedPrefixOption(t *testing.T) {
	ns := &namespace.Object{
		ObjName: "m",
		Children: []*namespace.Object{
			{ObjName: "_private", ObjKind: namespace.KindFunction},
			{ObjName: "__dunder__", ObjKind: namespace.KindFunction},
			{ObjName: "public", ObjKind: namespace.KindFunction},
		},
	}
	mod := Module(ns, Options{})
	assert.Len(t, mod.Functions, 2)

	mod = Module(ns, Options{ReservedPrefix: "_"})
	require.Len(t, mod.Functions, 1)
	assert.Equal(t, "public", mod.Functions[0].Name)
}

func TestBinding(t *testing.T) {
	_, ok := Binding(namespace.KindData)
	assert.False(t, ok)
	_, ok = Binding(namespace.KindClass)
	assert.False(t, ok)
	b, ok := Binding(namespace.KindBoundMethod)
	assert.True(t, ok)
	assert.Equal(t, symbol.BindingClass, b)
}

func TestDescription(t *testing.T) {
	assert.Equal(t, "a b c", Description("\n  a   b\tc\nnext"))
	assert.Equal(t, "", Description(""))
}
