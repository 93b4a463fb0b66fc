package dokuwiki

import (
	"fmt"
	"io"
	"strings"

	"github.com/agentflare-ai/dokuref/internal/namespace"
	"github.com/agentflare-ai/dokuref/internal/symbol"
)

const (
	callableTableHeader = "^ Signature ^ Returns ^ Description ^"
	propertyTableHeader = "^ Signature  ^ Description  ^"
)

// Options tunes the generated page.
type Options struct {
	// Title overrides the page title. Defaults to "<module> Reference Manual".
	Title string
}

// Generate assembles the reference page for m and rewrites qualified class
// mentions into section links.
func Generate(m *symbol.Module, opts Options) string {
	var b strings.Builder
	Assemble(&b, m, opts)
	return Rewrite(b.String(), m.Name, m.ClassNames())
}

// Assemble writes the page for m to w without cross-reference rewriting.
// The class index and the class sections both come from m.Classes, so every
// indexed class has a section and every section is indexed.
func Assemble(w io.Writer, m *symbol.Module, opts Options) {
	r := &renderer{module: m, title: opts.Title}
	if r.title == "" {
		r.title = m.Name + " Reference Manual"
	}
	r.renderTitle(w)
	r.renderIndex(w)
	r.renderFunctions(w)
	for _, c := range m.Classes {
		r.renderClass(w, c)
	}
}

type renderer struct {
	module *symbol.Module
	title  string
}

func (r *renderer) renderTitle(w io.Writer) {
	fmt.Fprintf(w, "====== %s ======\n\n", r.title)
}

func (r *renderer) renderIndex(w io.Writer) {
	if len(r.module.Classes) == 0 {
		return
	}
	fmt.Fprint(w, "===== Classes =====\n\n")
	for _, c := range r.module.Classes {
		fmt.Fprintf(w, "  * [[#%s|%s]]\n", c.Anchor, c.Name)
	}
	fmt.Fprintln(w)
}

func (r *renderer) renderFunctions(w io.Writer) {
	if len(r.module.Functions) == 0 {
		return
	}
	fmt.Fprint(w, "===== Functions =====\n\n")
	r.renderCallableTable(w, r.module.Functions)
}

func (r *renderer) renderClass(w io.Writer, c *symbol.Class) {
	fmt.Fprintf(w, "===== %s =====\n\n", c.Name)
	if doc := namespace.FirstParagraph(c.Doc); doc != "" {
		fmt.Fprintf(w, "%s\n\n", doc)
	}
	r.renderCallableTable(w, c.Methods)
	if len(c.Properties) == 0 {
		return
	}
	fmt.Fprint(w, "=== Properties ===\n\n")
	fmt.Fprintln(w, propertyTableHeader)
	for _, p := range c.Properties {
		fmt.Fprintln(w, propertyRow(p))
	}
	fmt.Fprintln(w)
}

// renderCallableTable always emits the header. Callables without a
// conforming docstring get no row.
func (r *renderer) renderCallableTable(w io.Writer, funcs []*symbol.Function) {
	fmt.Fprintln(w, callableTableHeader)
	for _, f := range funcs {
		if row, ok := Row(f.Doc); ok {
			fmt.Fprintln(w, row)
		}
	}
	fmt.Fprintln(w)
}

func propertyRow(p *symbol.Property) string {
	spec := p.Name
	if p.Type != "" {
		spec += " -> " + p.Type
	}
	return fmt.Sprintf("| ''%s'' | %s |", Escape(spec), Escape(p.Description))
}
