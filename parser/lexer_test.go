package parser

import (
	"reflect"
	"testing"
)

func TestStripCommentBasic(t *testing.T) {
	code, comment := stripComment(`int 1 // push one`)
	if code != "int 1 " || comment != " push one" {
		t.Errorf("stripComment = %q, %q", code, comment)
	}
}

func TestStripCommentIgnoresSlashesInQuotes(t *testing.T) {
	code, comment := stripComment(`byte "http://example.com"`)
	if code != `byte "http://example.com"` || comment != "" {
		t.Errorf("stripComment = %q, %q; want the quoted string left untouched", code, comment)
	}
}

func TestSplitLinesSkipsBlankLines(t *testing.T) {
	lines := splitLines("int 1\n\n  \nreturn\n")
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	if lines[0].line != 1 || lines[1].line != 4 {
		t.Errorf("line numbers = %d, %d; want 1, 4", lines[0].line, lines[1].line)
	}
}

func TestTokenizeRespectsQuotedStrings(t *testing.T) {
	toks := tokenize(`byte "hello world"`)
	want := []string{"byte", `"hello world"`}
	if !reflect.DeepEqual(toks, want) {
		t.Errorf("tokenize = %v, want %v", toks, want)
	}
}

func TestTokenizeCollapsesExtraSpaces(t *testing.T) {
	toks := tokenize("gtxn   0   Sender")
	want := []string{"gtxn", "0", "Sender"}
	if !reflect.DeepEqual(toks, want) {
		t.Errorf("tokenize = %v, want %v", toks, want)
	}
}
