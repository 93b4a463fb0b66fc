// Package dokuwiki assembles classified symbols into a DokuWiki reference
// page.
package dokuwiki

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agentflare-ai/dokuref/internal/signature"
)

// escaper wraps characters that DokuWiki would read as markup in %%…%%.
// Apostrophes start monospace, circumflexes start header cells and pipes end
// table cells.
var escaper = strings.NewReplacer(
	"'", "%%'%%",
	"^", "%%^%%",
	"|", "%%|%%",
)

// Escape makes text safe to place inside a table cell.
func Escape(s string) string {
	return escaper.Replace(s)
}

var leadingIdent = regexp.MustCompile(`^([\p{L}\p{N}_]+)`)

// Docstring is the parsed three-line docstring convention: a signature
// header, a separator line, and a one-line description.
type Docstring struct {
	// Callable is the header before " -> " with the receiver removed,
	// e.g. "reset()".
	Callable string
	// Return is the header text after " -> ", if any.
	Return string
	// Description is the first non-blank line after the separator.
	Description string
}

// ParseDocstring splits a docstring into its parts. It reports false for
// docstrings with fewer than three lines.
func ParseDocstring(doc string) (Docstring, bool) {
	doc = strings.ReplaceAll(strings.TrimSpace(doc), "\r\n", "\n")
	lines := strings.Split(doc, "\n")
	if len(lines) < 3 {
		return Docstring{}, false
	}
	header := signature.StripReceiver(strings.TrimSpace(lines[0]))
	callable, ret, _ := strings.Cut(header, " -> ")
	// Line two is the separator. Extra blank lines before the description
	// are tolerated.
	var description string
	for _, line := range lines[2:] {
		if line = strings.TrimSpace(line); line != "" {
			description = line
			break
		}
	}
	return Docstring{
		Callable:    strings.TrimSpace(callable),
		Return:      strings.TrimSpace(ret),
		Description: description,
	}, true
}

// Row renders a docstring as a "| signature | returns | description |" table
// row. The leading identifier is set in bold. It reports false when the
// docstring does not follow the three-line convention.
func Row(doc string) (string, bool) {
	d, ok := ParseDocstring(doc)
	if !ok {
		return "", false
	}
	callable := leadingIdent.ReplaceAllString(Escape(d.Callable), "**${1}**")
	return fmt.Sprintf("| %s | %s | %s |", callable, Escape(d.Return), Escape(d.Description)), true
}
