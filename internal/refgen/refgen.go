// Package refgen runs the generation pipeline: open a source, classify each
// namespace, and assemble its reference page.
package refgen

import (
	"context"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/agentflare-ai/dokuref/internal/classify"
	"github.com/agentflare-ai/dokuref/internal/dokuwiki"
	"github.com/agentflare-ai/dokuref/internal/source"
	"github.com/agentflare-ai/dokuref/internal/symbol"
)

// Options configure every stage.
type Options struct {
	Source   source.Options
	Classify classify.Options
	Page     dokuwiki.Options
}

// Result is one generated page.
type Result struct {
	Module *symbol.Module
	Text   string
}

// Classify opens arg and classifies every namespace it yields.
func Classify(ctx context.Context, arg string, opts Options) ([]*symbol.Module, error) {
	nss, err := source.Open(ctx, arg, opts.Source)
	if err != nil {
		return nil, err
	}
	mods := make([]*symbol.Module, 0, len(nss))
	for _, ns := range nss {
		mods = append(mods, classify.Module(ns, opts.Classify))
	}
	return mods, nil
}

// Generate produces the reference page for every namespace arg yields.
func Generate(ctx context.Context, arg string, opts Options) ([]Result, error) {
	mods, err := Classify(ctx, arg, opts)
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(mods))
	for _, m := range mods {
		results = append(results, Result{Module: m, Text: dokuwiki.Generate(m, opts.Page)})
	}
	return results, nil
}

// SymbolRows flattens a module into KIND, NAME, BINDING, SIGNATURE rows.
func SymbolRows(m *symbol.Module) [][]string {
	var rows [][]string
	for _, f := range m.Functions {
		rows = append(rows, []string{"function", symbol.Qualified(m.Name, f.Name), "", f.Name + f.Signature + f.ReturnText})
	}
	for _, c := range m.Classes {
		qualified := symbol.Qualified(m.Name, c.Name)
		rows = append(rows, []string{"class", qualified, "", ""})
		for _, f := range c.Methods {
			rows = append(rows, []string{"method", qualified + "." + f.Name, f.Binding.String(), f.Name + f.Signature + f.ReturnText})
		}
		for _, p := range c.Properties {
			spec := p.Name
			if p.Type != "" {
				spec += " -> " + p.Type
			}
			rows = append(rows, []string{"property", qualified + "." + p.Name, "", spec})
		}
	}
	return rows
}

// WriteSymbols renders SymbolRows as an aligned table.
func WriteSymbols(w io.Writer, m *symbol.Module) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"KIND", "NAME", "BINDING", "SIGNATURE"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(SymbolRows(m))
	table.Render()
}
