package gopkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentflare-ai/dokuref/internal/classify"
	"github.com/agentflare-ai/dokuref/internal/dokuwiki"
	"github.com/agentflare-ai/dokuref/internal/namespace"
	"github.com/agentflare-ai/dokuref/internal/symbol"
)

func loadWidgets(t *testing.T, opts Options) *namespace.Object {
	t.Helper()
	nss, err := Load(t.Context(), "./testdata/widgets", opts)
	require.NoError(t, err)
	require.Len(t, nss, 1)
	return nss[0]
}

func child(t *testing.T, o *namespace.Object, name string) *namespace.Object {
	t.Helper()
	for _, c := range o.Children {
		if c.Name() == name {
			return c
		}
	}
	t.Fatalf("%s has no member %s", o.Name(), name)
	return nil
}

func TestNamespace(t *testing.T) {
	ns := loadWidgets(t, Options{})
	assert.Equal(t, "widgets", ns.Name())
	assert.Contains(t, ns.Doc(), "fixture for the Go package namespace")

	assert.Equal(t, namespace.KindData, child(t, ns, "Version").Kind())
	assert.Equal(t, "strings", child(t, ns, "Builder").Module())

	join := child(t, ns, "Join")
	assert.Equal(t, namespace.KindFunction, join.Kind())
	assert.Equal(t, "Join(ws: []*widgets.Widget, sep: string) -> (joined string)\n\nJoin concatenates widget names.", join.Doc())
	assert.Empty(t, child(t, ns, "Bare").Doc())

	widget := child(t, ns, "Widget")
	assert.Equal(t, "widgets", widget.Module())
	var names []string
	for _, c := range widget.Children {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"New", "Grow", "Parts", "Name", "Size"}, names)

	newFn := child(t, widget, "New")
	assert.Equal(t, namespace.KindStaticMethod, newFn.Kind())
	assert.Equal(t, "New(name: string) -> *widgets.Widget\n\nNew creates a widget.", newFn.Doc())

	grow := child(t, widget, "Grow")
	assert.Equal(t, namespace.KindMethod, grow.Kind())
	assert.Equal(t, []namespace.Parameter{{Name: "self", Type: "*widgets.Widget"}, {Name: "n", Type: "int"}}, grow.Sig.Params)

	parts := child(t, widget, "Parts")
	assert.Equal(t, "Parts(self: widgets.Widget, sep: string, limit: ...int) -> ([]string, error)\n\nParts splits the name.", parts.Doc())

	size := child(t, widget, "Size")
	assert.Equal(t, namespace.KindProperty, size.Kind())
	assert.Equal(t, "int", size.Annotation().Display())
	assert.Equal(t, "Size in pixels.", size.Doc())
}

func TestUnexportedOption(t *testing.T) {
	ns := loadWidgets(t, Options{Unexported: true})
	child(t, ns, "undocumented")
	child(t, child(t, ns, "Widget"), "hidden")
}

func TestGeneratedPage(t *testing.T) {
	ns := loadWidgets(t, Options{})
	mod := classify.Module(ns, classify.Options{})
	assert.Equal(t, []string{"Pair", "Widget"}, mod.ClassNames())

	page := dokuwiki.Generate(mod, dokuwiki.Options{})
	assert.Contains(t, page, "====== widgets Reference Manual ======\n")
	assert.Contains(t, page, "| **Join**(ws: []*[[#Widget|Widget]], sep: string) | (joined string) | Join concatenates widget names. |\n")
	assert.Contains(t, page, "| **New**(name: string) | *[[#Widget|Widget]] | New creates a widget. |\n")
	assert.Contains(t, page, "| **Grow**(n: int) | int | Grow enlarges the widget by n and returns the new size. |\n")
	assert.Contains(t, page, "| **Parts**(sep: string, limit: ...int) | ([]string, error) | Parts splits the name. |\n")
	assert.Contains(t, page, "| ''Name -> string'' | Name labels the widget. |\n")
	assert.Contains(t, page, "| **Get**(k: K) | V | Get returns the value for k. |\n")
	assert.NotContains(t, page, "Builder")
}

func TestLoadUnknownPackage(t *testing.T) {
	_, err := Load(t.Context(), "./testdata/nope", Options{})
	assert.Error(t, err)
}

func TestGenericReceiverMatchesNormalizedSignature(t *testing.T) {
	ns := loadWidgets(t, Options{})
	mod := classify.Module(ns, classify.Options{})
	var get *symbol.Function
	for _, c := range mod.Classes {
		if c.Name != "Pair" {
			continue
		}
		for _, m := range c.Methods {
			if m.Name == "Get" {
				get = m
			}
		}
	}
	require.NotNil(t, get)
	assert.Equal(t, "(k: K)", get.Signature)

	row, ok := dokuwiki.Row(get.Doc)
	require.True(t, ok)
	assert.Equal(t, "| **Get**"+get.Signature+" | V | Get returns the value for k. |", row)
}
