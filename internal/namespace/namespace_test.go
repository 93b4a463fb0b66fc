package namespace

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input    string
		expected Kind
	}{
		{"type", KindClass},
		{"pybind11_type", KindClass},
		{"function", KindFunction},
		{"builtin_function_or_method", KindBuiltin},
		{"instancemethod", KindMethod},
		{"classmethod", KindClassMethod},
		{"staticmethod", KindStaticMethod},
		{"property", KindProperty},
		{"method-wrapper", KindBoundMethod},
		{"int", KindData},
		{"callable", KindCallable},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := ParseKind("spaceship")
	assert.Error(t, err)
}

func TestKindRoundTripsThroughString(t *testing.T) {
	for k := KindData; k <= KindCallable; k++ {
		got, err := ParseKind(k.String())
		require.NoError(t, err, k.String())
		assert.Equal(t, k, got)
	}
}

func TestObjectMembersNarrowCapabilities(t *testing.T) {
	root := &Object{
		ObjName: "mod",
		Children: []*Object{
			{ObjName: "Widget", ObjKind: KindClass, ObjModule: "mod"},
			{ObjName: "load", ObjKind: KindBuiltin},
			{ObjName: "size", ObjKind: KindProperty, Type: &Annotation{Name: "int"}},
			{ObjName: "VERSION", ObjKind: KindData},
		},
	}
	members := root.Members()
	require.Len(t, members, 4)

	_, isClass := members[0].(Class)
	assert.True(t, isClass)

	_, isClass = members[1].(Class)
	assert.False(t, isClass)
	fn, isCallable := members[1].(Callable)
	require.True(t, isCallable)
	_, err := fn.Signature()
	assert.True(t, errors.Is(err, ErrNoSignature))

	typed, isTyped := members[2].(Typed)
	require.True(t, isTyped)
	assert.Equal(t, "int", typed.Annotation().Display())

	_, isCallable = members[3].(Callable)
	assert.False(t, isCallable)
}

func TestAnnotationDisplay(t *testing.T) {
	var nilAnn *Annotation
	assert.Equal(t, "", nilAnn.Display())
	assert.Equal(t, "Model", (&Annotation{Name: "Model", Repr: "<class 'mod.Model'>"}).Display())
	assert.Equal(t, "list[int]", (&Annotation{Repr: "list[int]"}).Display())
}

func TestCleanDoc(t *testing.T) {
	in := "Summary line.\n\n    Indented body\n      deeper\n    "
	assert.Equal(t, "Summary line.\n\nIndented body\n  deeper", CleanDoc(in))
	assert.Equal(t, "", CleanDoc("   \n  \n"))
	assert.Equal(t, "a\n\nb", CleanDoc("\n  a\n\n  b\n"))
}

func TestFirstParagraph(t *testing.T) {
	assert.Equal(t, "One\ntwo", FirstParagraph("One\ntwo\n\nThree"))
	assert.Equal(t, "Only", FirstParagraph("  Only  "))
}
