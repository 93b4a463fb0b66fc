// Package source picks the namespace adapter for a source argument.
package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/agentflare-ai/dokuref/internal/namespace"
	"github.com/agentflare-ai/dokuref/internal/source/dump"
	"github.com/agentflare-ai/dokuref/internal/source/gopkg"
	"github.com/agentflare-ai/dokuref/internal/source/pyinspect"
	"github.com/agentflare-ai/dokuref/internal/source/pystub"
)

// Kind names an adapter.
type Kind string

const (
	Auto   Kind = ""
	Dump   Kind = "dump"
	Stub   Kind = "stub"
	Python Kind = "python"
	Go     Kind = "go"
)

// PythonPrefix marks a live Python module argument, e.g. "py:sconepy".
const PythonPrefix = "py:"

// Kinds lists the selectable adapters.
var Kinds = []Kind{Dump, Stub, Python, Go}

// ParseKind validates an adapter name. Empty means Auto.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if k == Auto {
		return Auto, nil
	}
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return Auto, fmt.Errorf("unknown source kind %q (want dump, stub, python or go)", s)
}

// Detect infers the adapter from the shape of arg.
func Detect(arg string) Kind {
	if strings.HasPrefix(arg, PythonPrefix) {
		return Python
	}
	if _, ok := dump.FormatOf(arg); ok {
		return Dump
	}
	if strings.EqualFold(filepath.Ext(arg), ".pyi") {
		return Stub
	}
	return Go
}

// Options carry per-adapter settings.
type Options struct {
	// Kind forces an adapter. Auto detects it from the argument.
	Kind   Kind
	Python pyinspect.Options
	Go     gopkg.Options
}

// Open loads the namespaces arg describes. Only Go patterns ending in
// "..." yield more than one.
func Open(ctx context.Context, arg string, opts Options) ([]*namespace.Object, error) {
	kind := opts.Kind
	if kind == Auto {
		kind = Detect(arg)
	}
	switch kind {
	case Dump:
		return one(dump.Load(arg))
	case Stub:
		return one(pystub.Load(arg))
	case Python:
		return one(pyinspect.Load(ctx, strings.TrimPrefix(arg, PythonPrefix), opts.Python))
	case Go:
		return gopkg.Load(ctx, arg, opts.Go)
	}
	return nil, fmt.Errorf("unknown source kind %q", kind)
}

func one(ns *namespace.Object, err error) ([]*namespace.Object, error) {
	if err != nil {
		return nil, err
	}
	return []*namespace.Object{ns}, nil
}
