// Package dump reads and writes namespace snapshots as JSON or YAML.
//
// A snapshot is a tree of entries:
//
//	name: sconepy
//	members:
//	  - name: Model
//	    kind: class
//	    module: sconepy
//	    members:
//	      - name: bodies
//	        kind: method
//	        doc: "bodies(self: sconepy.Model) -> List[sconepy.Body]\n\nAll bodies"
//	        sig: "(self) -> List[sconepy.Body]"
//
// A callable records its signature either as text (sig) or structured
// (signature). Kind names accept Python type names such as
// builtin_function_or_method.
package dump

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agentflare-ai/dokuref/internal/namespace"
	"github.com/agentflare-ai/dokuref/internal/signature"
)

// Format selects the snapshot encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, true
	case ".yaml", ".yml":
		return YAML, true
	}
	return "", false
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case JSON, YAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown dump format %q (want json or yaml)", s)
}

// Entry is one member of a snapshot.
type Entry struct {
	Name      string                `json:"name" yaml:"name"`
	Kind      string                `json:"kind,omitempty" yaml:"kind,omitempty"`
	Module    string                `json:"module,omitempty" yaml:"module,omitempty"`
	Doc       string                `json:"doc,omitempty" yaml:"doc,omitempty"`
	Sig       string                `json:"sig,omitempty" yaml:"sig,omitempty"`
	Signature *namespace.Signature  `json:"signature,omitempty" yaml:"signature,omitempty"`
	Type      *namespace.Annotation `json:"type,omitempty" yaml:"type,omitempty"`
	Members   []*Entry              `json:"members,omitempty" yaml:"members,omitempty"`
}

// Load reads a snapshot file, picking the decoder from its extension.
func Load(path string) (*namespace.Object, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, fmt.Errorf("%s: not a .json, .yaml or .yml dump", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	obj, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return obj, nil
}

// Decode reads a snapshot and converts it to a namespace.
func Decode(r io.Reader, format Format) (*namespace.Object, error) {
	var root Entry
	switch format {
	case JSON:
		if err := json.NewDecoder(r).Decode(&root); err != nil {
			return nil, err
		}
	case YAML:
		if err := yaml.NewDecoder(r).Decode(&root); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown dump format %q", format)
	}
	if root.Name == "" {
		return nil, fmt.Errorf("snapshot has no module name")
	}
	return root.object("")
}

func (e *Entry) object(path string) (*namespace.Object, error) {
	qualified := e.Name
	if path != "" {
		qualified = path + "." + e.Name
	}
	kind, err := namespace.ParseKind(e.Kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", qualified, err)
	}
	obj := &namespace.Object{
		ObjName:   e.Name,
		ObjKind:   kind,
		ObjDoc:    e.Doc,
		ObjModule: e.Module,
		Sig:       e.Signature,
		Type:      e.Type,
	}
	if obj.Sig == nil && e.Sig != "" {
		params, ret := signature.Parse(e.Sig)
		obj.Sig = &namespace.Signature{Params: params, Return: ret}
	}
	for _, m := range e.Members {
		child, err := m.object(qualified)
		if err != nil {
			return nil, err
		}
		obj.Children = append(obj.Children, child)
	}
	return obj, nil
}

// Snapshot captures any namespace as an entry tree. Signatures that cannot
// be introspected are left out.
func Snapshot(ns namespace.Namespace) *Entry {
	return &Entry{Name: ns.Name(), Members: snapshotMembers(ns.Members())}
}

func snapshotMembers(members []namespace.Member) []*Entry {
	entries := make([]*Entry, 0, len(members))
	for _, m := range members {
		e := &Entry{Name: m.Name(), Kind: m.Kind().String(), Doc: m.Doc()}
		if cls, ok := m.(namespace.Class); ok && m.Kind() == namespace.KindClass {
			e.Module = cls.Module()
			e.Members = snapshotMembers(cls.Members())
		}
		if c, ok := m.(namespace.Callable); ok && m.Kind().IsCallable() {
			if sig, err := c.Signature(); err == nil {
				e.Signature = sig
			}
		}
		if typed, ok := m.(namespace.Typed); ok {
			e.Type = typed.Annotation()
		}
		entries = append(entries, e)
	}
	return entries
}

// Write encodes a snapshot.
func Write(w io.Writer, e *Entry, format Format) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(e)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(e); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown dump format %q", format)
}
