// Package signature renders callable signatures as documentation text.
//
// Normalize works on introspected metadata and StripReceiver on header text
// taken from docstrings. Both remove the implicit receiver the same way.
package signature

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agentflare-ai/dokuref/internal/namespace"
	"github.com/agentflare-ai/dokuref/internal/symbol"
)

// Fallback is the signature rendered when a callable exposes no metadata.
const Fallback = "()"

// Normalized is the textual rendering of a callable.
type Normalized struct {
	// Signature is the parenthesized parameter list, e.g. "(path: str)".
	Signature string
	// Return is " -> <type>", or "" when there is no return annotation.
	Return string
	// Params are the parameters left after receiver stripping.
	Params []namespace.Parameter
	// Fallback is set when no metadata could be introspected.
	Fallback bool
}

// Normalize introspects c and renders its signature. A receiver parameter is
// removed according to binding. Instance and class bindings drop exactly one
// leading parameter. Unknown bindings drop a leading "self" or "cls" by name.
// Missing metadata, or an introspection failure of any kind, yields the
// fallback "()" with an empty return.
func Normalize(c namespace.Callable, binding symbol.BindingKind) Normalized {
	sig, err := introspect(c)
	if err != nil || sig == nil {
		return Normalized{Signature: Fallback, Fallback: true}
	}
	params := stripReceiverParam(sig.Params, binding)
	return Normalized{
		Signature: Format(params),
		Return:    ReturnText(sig.Return),
		Params:    params,
	}
}

func introspect(c namespace.Callable) (sig *namespace.Signature, err error) {
	defer func() {
		if r := recover(); r != nil {
			sig, err = nil, fmt.Errorf("introspecting %s: %v", c.Name(), r)
		}
	}()
	return c.Signature()
}

func stripReceiverParam(params []namespace.Parameter, binding symbol.BindingKind) []namespace.Parameter {
	if len(params) == 0 {
		return params
	}
	switch binding {
	case symbol.BindingInstance, symbol.BindingClass:
		params = params[1:]
	case symbol.BindingUnknown:
		if !isReceiverName(params[0].Name) {
			return params
		}
		params = params[1:]
	default:
		return params
	}
	// A positional-only marker directly after the receiver now has nothing
	// before it.
	if len(params) > 0 && params[0].Name == "/" {
		params = params[1:]
	}
	return params
}

func isReceiverName(name string) bool {
	return name == "self" || name == "cls"
}

// Format renders parameters the way Python prints a signature.
func Format(params []namespace.Parameter) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		var b strings.Builder
		b.WriteString(p.Name)
		if p.Type != "" {
			b.WriteString(": ")
			b.WriteString(p.Type)
		}
		if p.Default != "" {
			if p.Type != "" {
				b.WriteString(" = ")
			} else {
				b.WriteString("=")
			}
			b.WriteString(p.Default)
		}
		parts = append(parts, b.String())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ReturnText renders a return annotation with its " -> " prefix.
func ReturnText(ann *namespace.Annotation) string {
	display := ann.Display()
	if display == "" {
		return ""
	}
	return " -> " + display
}

var headerRE = regexp.MustCompile(`^\s*[\p{L}\p{N}_.]*\(\s*`)

// StripReceiver removes a leading "self" or "cls" parameter, annotated or
// not, from signature header text such as "reset(self: mod.Widget) -> None".
// The annotation may itself contain commas, as in "self: Dict[str, int]".
// The separator that followed the receiver goes too, and so does a
// positional-only marker left at the front.
func StripReceiver(header string) string {
	head := headerRE.FindString(header)
	if head == "" {
		return header
	}
	rest, ok := cutReceiverName(header[len(head):])
	if !ok {
		return header
	}
	rest = strings.TrimLeft(rest, " \t")
	if strings.HasPrefix(rest, ":") {
		rest = rest[1:]
		rest = rest[scan(rest, ","):]
	}
	rest = dropSeparator(rest)
	if strings.HasPrefix(rest, "/") {
		if after := strings.TrimLeft(rest[1:], " \t"); after == "" || after[0] == ',' || after[0] == ')' {
			rest = dropSeparator(after)
		}
	}
	return head + rest
}

func cutReceiverName(s string) (string, bool) {
	for _, name := range []string{"self", "cls"} {
		rest, ok := strings.CutPrefix(s, name)
		if !ok {
			continue
		}
		if r, _ := utf8.DecodeRuneInString(rest); r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return s, false
		}
		return rest, true
	}
	return s, false
}

func dropSeparator(s string) string {
	s = strings.TrimLeft(s, " \t")
	if strings.HasPrefix(s, ",") {
		s = strings.TrimLeft(s[1:], " \t")
	}
	return s
}
