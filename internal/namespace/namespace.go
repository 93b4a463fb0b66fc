// Package namespace defines the capability set dokuref needs from a
// documented module: enumerable, named members that can be introspected for
// a docstring and, when callable, for parameter and return metadata.
//
// Every source (Python dump, live interpreter, stub file, Go package) is an
// adapter onto these interfaces. Nothing downstream of this package knows
// which runtime produced a member.
package namespace

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoSignature is returned by Callable.Signature when the member exposes
// no introspectable signature. Natively implemented callables usually hit
// this, and callers treat it as a normal outcome.
var ErrNoSignature = errors.New("no introspectable signature")

// Kind classifies a member the way the host runtime reports it.
type Kind int

const (
	KindData Kind = iota
	KindClass
	KindFunction
	KindBuiltin
	KindMethod
	KindBoundMethod
	KindClassMethod
	KindStaticMethod
	KindProperty
	KindCallable
)

var kindNames = map[Kind]string{
	KindData:         "data",
	KindClass:        "class",
	KindFunction:     "function",
	KindBuiltin:      "builtin",
	KindMethod:       "method",
	KindBoundMethod:  "boundmethod",
	KindClassMethod:  "classmethod",
	KindStaticMethod: "staticmethod",
	KindProperty:     "property",
	KindCallable:     "callable",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsCallable reports whether members of this kind can be called.
func (k Kind) IsCallable() bool {
	switch k {
	case KindData, KindClass, KindProperty:
		return false
	}
	return true
}

// ParseKind maps a kind name back to its Kind. It accepts the names produced
// by String as well as the Python type names a runtime dump records.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "data", "", "int", "float", "str", "bool", "nonetype", "dict", "list", "tuple", "module":
		return KindData, nil
	case "class", "type", "pybind11_type":
		return KindClass, nil
	case "function":
		return KindFunction, nil
	case "builtin", "builtin_function_or_method", "ufunc", "_arrayfunctiondispatcher", "nb_func":
		return KindBuiltin, nil
	case "method", "instancemethod", "method_descriptor", "nb_method":
		return KindMethod, nil
	case "boundmethod", "bound_method", "method-wrapper":
		return KindBoundMethod, nil
	case "classmethod", "classmethod_descriptor":
		return KindClassMethod, nil
	case "staticmethod":
		return KindStaticMethod, nil
	case "property", "getset_descriptor", "member_descriptor":
		return KindProperty, nil
	case "callable", "wrapper_descriptor":
		return KindCallable, nil
	}
	return KindData, fmt.Errorf("unknown member kind %q", s)
}

// Member is a single named entry of a scope.
type Member interface {
	Name() string
	Kind() Kind
	// Doc returns the raw docstring, or "" when the member has none.
	Doc() string
}

// Scope enumerates members in the host runtime's natural iteration order.
type Scope interface {
	Name() string
	Members() []Member
}

// Namespace is the root scope whose members are documented.
type Namespace interface {
	Scope
}

// Class is a member that is itself a scope.
type Class interface {
	Member
	Members() []Member
	// Module names the namespace that declares the class. Classes re-exported
	// from another namespace report that other name.
	Module() string
}

// Callable is a member whose parameter and return metadata may be
// introspected.
type Callable interface {
	Member
	Signature() (*Signature, error)
}

// Typed is a member that carries a value type annotation, such as a
// property with an annotated getter.
type Typed interface {
	Member
	Annotation() *Annotation
}

// Parameter is one entry of a callable's parameter list.
type Parameter struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type,omitempty" yaml:"type,omitempty"`
	Default string `json:"default,omitempty" yaml:"default,omitempty"`
}

// Annotation is a type annotation as the runtime displays it.
type Annotation struct {
	// Name is the short display name (a type's __name__), if any.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Repr is the full textual representation.
	Repr string `json:"repr,omitempty" yaml:"repr,omitempty"`
}

// Display returns the short name when available, else the full repr.
func (a *Annotation) Display() string {
	if a == nil {
		return ""
	}
	if a.Name != "" {
		return a.Name
	}
	return a.Repr
}

// Signature is a callable's introspected parameter list and return type.
type Signature struct {
	Params []Parameter  `json:"params" yaml:"params"`
	Return *Annotation `json:"returns,omitempty" yaml:"returns,omitempty"`
}
