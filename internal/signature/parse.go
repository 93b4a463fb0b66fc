package signature

import (
	"strings"

	"github.com/agentflare-ai/dokuref/internal/namespace"
)

// Parse splits parenthesized signature text such as
// "(self, path: str, mode='r') -> Model" into its parameters and return
// annotation. Numpy-style optional groups ("stop[, step]") are flattened and
// a trailing "..." becomes a variadic parameter. Text that does not open
// with "(" yields nothing.
func Parse(text string) ([]namespace.Parameter, *namespace.Annotation) {
	text = strings.TrimSpace(text)
	end := matchingBracket(text, '(', ')')
	if end < 0 {
		return nil, nil
	}
	params := parseParams(text[1:end])
	rest := strings.TrimSpace(text[end+1:])
	if !strings.HasPrefix(rest, "->") {
		return params, nil
	}
	ret := unquote(strings.TrimSpace(strings.TrimPrefix(rest, "->")))
	if ret == "" {
		return params, nil
	}
	return params, &namespace.Annotation{Repr: ret}
}

func parseParams(sig string) []namespace.Parameter {
	var params []namespace.Parameter
	for {
		sig = strings.TrimSpace(sig)
		if sig == "" {
			return params
		}
		switch sig[0] {
		case ',', ')', ']':
			sig = sig[1:]
			continue
		case '[': // optional args
			end := matchingBracket(sig, '[', ']')
			if end < 0 {
				return params
			}
			params = append(params, parseParams(sig[1:end])...)
			sig = sig[end+1:]
			continue
		case '(': // (a1, a2, ...)
			end := matchingBracket(sig, '(', ')')
			if end < 0 {
				return params
			}
			params = append(params, namespace.Parameter{Name: strings.TrimSpace(sig[:end+1])})
			sig = sig[end+1:]
			continue
		}

		pos := strings.IndexAny(sig, ",:=[")
		if pos < 0 {
			pos = len(sig)
		}
		name := strings.TrimSpace(sig[:pos])
		if name == "..." {
			if n := len(params); n > 0 && params[n-1].Default != "" {
				name = "**kwargs"
			} else {
				name = "*args"
			}
		}
		param := namespace.Parameter{Name: name}
		if pos == len(sig) {
			return append(params, param)
		}
		switch sig[pos] {
		case ',':
			sig = sig[pos+1:]
		case ':':
			param.Type, sig = parseValue(sig[pos+1:], ",=")
			param.Type = unquote(param.Type)
			if strings.HasPrefix(sig, "=") {
				param.Default, sig = parseValue(sig[1:], ",")
			}
		case '=':
			param.Default, sig = parseValue(sig[pos+1:], ",")
		case '[':
			sig = sig[pos:]
		}
		params = append(params, param)
	}
}

// parseValue reads a type or default value up to the next top-level stop
// byte and returns it with the unread remainder.
func parseValue(sig, stops string) (string, string) {
	sig = strings.TrimSpace(sig)
	end := scan(sig, stops)
	return strings.TrimSpace(sig[:end]), sig[end:]
}

// scan returns the index of the first stop byte that is outside brackets and
// quotes, or len(s). A '[' directly followed by ',' opens an optional group
// rather than a subscript, so it also ends the scan.
func scan(s, stops string) int {
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(', '{':
			depth++
		case '[':
			if depth == 0 && strings.HasPrefix(strings.TrimSpace(s[i+1:]), ",") {
				return i
			}
			depth++
		case ')', ']', '}':
			if depth == 0 {
				return i
			}
			depth--
		default:
			if depth == 0 && strings.IndexByte(stops, c) >= 0 {
				return i
			}
		}
	}
	return len(s)
}

// matchingBracket returns the index of the bracket closing s[0], or -1.
func matchingBracket(s string, open, close byte) int {
	if len(s) == 0 || s[0] != open {
		return -1
	}
	count := 1
	var quote byte
	for i := 1; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case open:
			count++
		case close:
			count--
			if count == 0 {
				return i
			}
		}
	}
	return -1
}

// unquote drops one layer of matching quotes from a string annotation such
// as 'TimedeltaIndex'.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
