// Package classify partitions a namespace into the classes, functions,
// methods and properties that get documented.
package classify

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/agentflare-ai/dokuref/internal/namespace"
	"github.com/agentflare-ai/dokuref/internal/signature"
	"github.com/agentflare-ai/dokuref/internal/symbol"
)

// DefaultReservedPrefix marks internal (dunder) members.
const DefaultReservedPrefix = "__"

// Options tunes classification.
type Options struct {
	// ReservedPrefix hides members whose name starts with it. Empty means
	// DefaultReservedPrefix.
	ReservedPrefix string
	// Logger receives debug output about skipped members. Nil discards it.
	Logger *slog.Logger
}

type classifier struct {
	prefix string
	log    *slog.Logger
}

// Module classifies the members of ns. Classes count only when they are
// declared by ns itself. Every category comes back sorted by name.
// Classification does not recurse into nested classes.
func Module(ns namespace.Namespace, opts Options) *symbol.Module {
	c := newClassifier(opts)
	mod := &symbol.Module{Name: ns.Name()}
	for _, m := range ns.Members() {
		if !c.visible(m.Name()) {
			continue
		}
		if cls, ok := m.(namespace.Class); ok && m.Kind() == namespace.KindClass {
			if cls.Module() != ns.Name() {
				c.log.Debug("skipping foreign class", "name", m.Name(), "module", cls.Module())
				continue
			}
			mod.Classes = append(mod.Classes, c.class(cls))
			continue
		}
		switch m.Kind() {
		case namespace.KindFunction, namespace.KindBuiltin:
			if fn, ok := m.(namespace.Callable); ok {
				mod.Functions = append(mod.Functions, c.function(fn, symbol.BindingNone))
			}
		default:
			c.log.Debug("skipping module member", "name", m.Name(), "kind", m.Kind())
		}
	}
	sort.Slice(mod.Classes, func(i, j int) bool { return mod.Classes[i].Name < mod.Classes[j].Name })
	sortFunctions(mod.Functions)
	return mod
}

func newClassifier(opts Options) *classifier {
	c := &classifier{prefix: opts.ReservedPrefix, log: opts.Logger}
	if c.prefix == "" {
		c.prefix = DefaultReservedPrefix
	}
	if c.log == nil {
		c.log = slog.New(slog.DiscardHandler)
	}
	return c
}

func (c *classifier) visible(name string) bool {
	return name != "" && !strings.HasPrefix(name, c.prefix)
}

func (c *classifier) class(cls namespace.Class) *symbol.Class {
	out := &symbol.Class{
		Name:   cls.Name(),
		Doc:    cls.Doc(),
		Anchor: symbol.Anchor(cls.Name()),
	}
	for _, m := range cls.Members() {
		if !c.visible(m.Name()) {
			continue
		}
		if m.Kind() == namespace.KindProperty {
			out.Properties = append(out.Properties, property(m))
			continue
		}
		binding, ok := Binding(m.Kind())
		if !ok {
			continue
		}
		fn, isCallable := m.(namespace.Callable)
		if !isCallable {
			continue
		}
		out.Methods = append(out.Methods, c.function(fn, binding))
	}
	sortFunctions(out.Methods)
	sort.Slice(out.Properties, func(i, j int) bool { return out.Properties[i].Name < out.Properties[j].Name })
	return out
}

// Binding maps a class member's kind to how it binds. It reports false for
// members that are not methods at all.
func Binding(k namespace.Kind) (symbol.BindingKind, bool) {
	switch k {
	case namespace.KindMethod:
		return symbol.BindingInstance, true
	case namespace.KindBoundMethod, namespace.KindClassMethod:
		return symbol.BindingClass, true
	case namespace.KindStaticMethod:
		return symbol.BindingStatic, true
	case namespace.KindFunction, namespace.KindBuiltin, namespace.KindCallable:
		return symbol.BindingUnknown, true
	}
	return symbol.BindingNone, false
}

func (c *classifier) function(fn namespace.Callable, binding symbol.BindingKind) *symbol.Function {
	norm := signature.Normalize(fn, binding)
	if norm.Fallback {
		c.log.Debug("no signature metadata", "name", fn.Name(), "binding", binding)
	}
	return &symbol.Function{
		Name:       fn.Name(),
		Doc:        fn.Doc(),
		Binding:    binding,
		Params:     norm.Params,
		Signature:  norm.Signature,
		ReturnText: norm.Return,
	}
}

func property(m namespace.Member) *symbol.Property {
	p := &symbol.Property{
		Name:        m.Name(),
		Description: Description(m.Doc()),
	}
	if typed, ok := m.(namespace.Typed); ok {
		p.Type = typed.Annotation().Display()
	}
	return p
}

// Description reduces a docstring to its first line with runs of whitespace
// collapsed.
func Description(doc string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(doc), "\n")
	return strings.Join(strings.Fields(first), " ")
}

func sortFunctions(funcs []*symbol.Function) {
	sort.Slice(funcs, func(i, j int) bool { return funcs[i].Name < funcs[j].Name })
}
