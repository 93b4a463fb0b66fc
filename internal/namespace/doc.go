package namespace

import "strings"

// CleanDoc normalizes a docstring the way Python's inspect.cleandoc does:
// tabs become spaces, the first line loses its leading whitespace, the common
// indentation of the remaining lines is removed, and blank lines are trimmed
// from both ends.
func CleanDoc(doc string) string {
	doc = strings.ReplaceAll(doc, "\r\n", "\n")
	doc = strings.ReplaceAll(doc, "\t", "        ")
	lines := strings.Split(doc, "\n")
	minIndent := -1
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := leadingWhitespace(line)
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}
	lines[0] = strings.TrimLeft(lines[0], " ")
	if minIndent > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= minIndent {
				lines[i] = lines[i][minIndent:]
			} else {
				lines[i] = strings.TrimLeft(lines[i], " ")
			}
		}
	}
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

// FirstParagraph returns the text before the first blank line.
func FirstParagraph(doc string) string {
	doc = strings.TrimSpace(doc)
	if idx := strings.Index(doc, "\n\n"); idx >= 0 {
		return strings.TrimSpace(doc[:idx])
	}
	return doc
}

func leadingWhitespace(line string) int {
	count := 0
	for _, r := range line {
		if r == ' ' {
			count++
			continue
		}
		break
	}
	return count
}
