package dokuwiki

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agentflare-ai/dokuref/internal/symbol"
)

// Rewrite replaces every "<module>.<Class>" mention of a listed class with a
// link to the class section, then breaks up bracket runs the links create.
//
// A mention only matches on identifier boundaries. "mod.Foo" is left alone
// inside "mod.FooBar" or "othermod.Foo", so the order of classes is
// irrelevant even when one name is a prefix of another.
func Rewrite(text, module string, classes []string) string {
	if module == "" || len(classes) == 0 {
		return repairBrackets(text)
	}
	known := make(map[string]bool, len(classes))
	for _, c := range classes {
		known[c] = true
	}
	prefix := module + "."

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		if !strings.HasPrefix(text[i:], prefix) || precededByQualifier(text[:i]) {
			b.WriteByte(text[i])
			i++
			continue
		}
		start := i + len(prefix)
		end := start
		for end < len(text) {
			r, size := utf8.DecodeRuneInString(text[end:])
			if !isIdentRune(r) {
				break
			}
			end += size
		}
		name := text[start:end]
		if !known[name] {
			b.WriteByte(text[i])
			i++
			continue
		}
		b.WriteString(link(name))
		i = end
	}
	return repairBrackets(b.String())
}

func link(name string) string {
	return "[[#" + symbol.Anchor(name) + "|" + name + "]]"
}

// repairBrackets inserts a space into every run of three like-direction
// brackets: "[[[" becomes "[ [[" and "]]]" becomes "]] ]". DokuWiki would
// otherwise misread the run next to a link. Passes repeat until no run is
// left, which also covers runs of four or more.
func repairBrackets(text string) string {
	for strings.Contains(text, "[[[") {
		text = strings.ReplaceAll(text, "[[[", "[ [[")
	}
	for strings.Contains(text, "]]]") {
		text = strings.ReplaceAll(text, "]]]", "]] ]")
	}
	return text
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func precededByQualifier(before string) bool {
	if before == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(before)
	return isIdentRune(r) || r == '.'
}
