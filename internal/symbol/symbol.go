// Package symbol holds the classified view of a namespace that the
// documentation assembler consumes.
package symbol

import "github.com/agentflare-ai/dokuref/internal/namespace"

// BindingKind records whether a method implicitly receives an instance, a
// class, or neither. It decides whether a receiver parameter is stripped.
type BindingKind int

const (
	// BindingNone marks free functions.
	BindingNone BindingKind = iota
	BindingInstance
	BindingClass
	BindingStatic
	// BindingUnknown marks callables found on a class whose wrapper type does
	// not reveal how they bind, such as natively implemented methods.
	BindingUnknown
)

func (b BindingKind) String() string {
	switch b {
	case BindingInstance:
		return "instance"
	case BindingClass:
		return "class"
	case BindingStatic:
		return "static"
	case BindingUnknown:
		return "unknown"
	}
	return "none"
}

// Module is a classified namespace.
type Module struct {
	Name      string      `json:"name"`
	Classes   []*Class    `json:"classes"`
	Functions []*Function `json:"functions"`
}

// Class is a classified class together with its members.
type Class struct {
	Name       string      `json:"name"`
	Doc        string      `json:"doc,omitempty"`
	Anchor     string      `json:"anchor"`
	Methods    []*Function `json:"methods"`
	Properties []*Property `json:"properties"`
}

// Function is a free function or a method.
type Function struct {
	Name    string                `json:"name"`
	Doc     string                `json:"doc,omitempty"`
	Binding BindingKind           `json:"binding"`
	Params  []namespace.Parameter `json:"params,omitempty"`
	// Signature and ReturnText are the normalized rendering, e.g. "(path: str)"
	// and " -> Model". They fall back to "()" and "" when the callable exposes
	// no signature.
	Signature  string `json:"signature"`
	ReturnText string `json:"returnText,omitempty"`
}

// Property is a classified class property.
type Property struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// Anchor returns the section anchor for a class name. DokuWiki derives
// section IDs from heading text, and the heading is the bare name.
func Anchor(name string) string {
	return name
}

// Qualified returns the "<module>.<name>" form cross-references match on.
func Qualified(module, name string) string {
	return module + "." + name
}

// ClassNames returns the names of all classified classes in order.
func (m *Module) ClassNames() []string {
	names := make([]string, 0, len(m.Classes))
	for _, c := range m.Classes {
		names = append(names, c.Name)
	}
	return names
}
