// Package widgets is a fixture for the Go package namespace.
package widgets

import "strings"

// Version is the fixture version.
const Version = "1.0"

// Builder is re-exported from strings.
type Builder = strings.Builder

// Widget is a thing with a size.
//
// More detail that is not shown.
type Widget struct {
	// Name labels the widget.
	Name string
	Size int // Size in pixels.

	hidden bool
}

// New creates a widget.
func New(name string) *Widget {
	return &Widget{Name: name}
}

// Grow enlarges the widget by n and returns the new size.
func (w *Widget) Grow(n int) int {
	w.Size += n
	return w.Size
}

// Parts splits the name. It returns at most limit parts.
func (w Widget) Parts(sep string, limit ...int) ([]string, error) {
	if w.hidden || len(limit) == 0 {
		return strings.Split(w.Name, sep), nil
	}
	return strings.SplitN(w.Name, sep, limit[0]), nil
}

// Pair maps keys to values.
type Pair[K comparable, V any] struct {
	m map[K]V
}

// Get returns the value for k.
func (p *Pair[K, V]) Get(k K) V {
	return p.m[k]
}

// Join concatenates widget names.
func Join(ws []*Widget, sep string) (joined string) {
	names := make([]string, 0, len(ws))
	for _, w := range ws {
		names = append(names, w.Name)
	}
	return strings.Join(names, sep)
}

func Bare() {}

func undocumented() {}
