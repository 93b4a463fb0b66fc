// Package example is a small Go package documented by the dokuref CLI tests.
package example

const (
	// Answer documents an exported constant.
	Answer = 42

	internalConstant = 0
)

// Greeter produces greeting messages.
//
// Only this first paragraph reaches the reference page.
type Greeter struct {
	// Name is included to verify field documentation.
	Name string
}

// NewGreeter constructs a Greeter.
func NewGreeter(name string) *Greeter {
	return &Greeter{Name: name}
}

// Greet returns a friendly message.
func (g *Greeter) Greet() string {
	return "hello " + g.Name
}

// Shout returns the greeting for every name in the batch.
func Shout(g *Greeter, names ...string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, g.Greet()+" "+n+"!")
	}
	return out
}
