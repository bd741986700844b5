package parser

import "strings"

// rawLine is one non-blank, comment-stripped source line with its original
// 1-based line number.
type rawLine struct {
	line int
	text string
}

// stripComment removes a trailing `//` comment, but never one that starts
// inside a double-quoted byte-string literal.
func stripComment(s string) (code, comment string) {
	inQuotes := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			if i == 0 || s[i-1] != '\\' {
				inQuotes = !inQuotes
			}
		case '/':
			if !inQuotes && i+1 < len(s) && s[i+1] == '/' {
				return s[:i], s[i+2:]
			}
		}
	}
	return s, ""
}

// splitLines turns source text into non-blank, comment-stripped lines.
func splitLines(source string) []rawLine {
	var out []rawLine
	for i, l := range strings.Split(source, "\n") {
		code, _ := stripComment(l)
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		out = append(out, rawLine{line: i + 1, text: code})
	}
	return out
}

// tokenize splits a line's code into a mnemonic/label and its raw operand
// tokens, respecting double-quoted strings as a single token.
func tokenize(s string) []string {
	var toks []string
	var cur strings.Builder
	inQuotes := false
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' && (i == 0 || s[i-1] != '\\'):
			inQuotes = !inQuotes
			cur.WriteByte(c)
		case c == ' ' || c == '\t':
			if inQuotes {
				cur.WriteByte(c)
			} else {
				flush()
			}
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return toks
}
