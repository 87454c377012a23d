package kicadsexp

import (
	"errors"
	"strings"
	"testing"
)

func TestParseStructure(t *testing.T) {
	input := `(kicad_symbol_lib
	(version 20231120)
	(generator "kicad_symbol_editor")
	(symbol "R"
		(property "Value" "R" (at 0 0 0))
	)
)`

	root, err := ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	if root.Keyword() != "kicad_symbol_lib" {
		t.Errorf("Expected root keyword 'kicad_symbol_lib', got '%s'", root.Keyword())
	}
	if root.Len() != 4 {
		t.Fatalf("Expected 4 root items, got %d", root.Len())
	}

	gen, ok := root.Get(2).(*List)
	if !ok {
		t.Fatalf("Expected generator list, got %T", root.Get(2))
	}
	leaf := gen.Get(1).(*Leaf)
	if leaf.Value() != "kicad_symbol_editor" || !leaf.Quoted() {
		t.Errorf("Expected quoted 'kicad_symbol_editor', got %q (quoted=%v)", leaf.Value(), leaf.Quoted())
	}

	sym := root.Get(3).(*List)
	if sym.Keyword() != "symbol" {
		t.Errorf("Expected 'symbol', got '%s'", sym.Keyword())
	}
	prop := sym.Get(2).(*List)
	if prop.Len() != 4 {
		t.Errorf("Expected property with 4 items, got %d", prop.Len())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason string
		line   int
		column int
	}{
		{name: "empty document", input: "", reason: "empty document", line: 1, column: 1},
		{name: "whitespace only", input: "  \n\t", reason: "empty document", line: 2, column: 2},
		{name: "unmatched close", input: "(a b))", reason: "unmatched ')'", line: 1, column: 6},
		{name: "leading close", input: ")", reason: "unmatched ')'", line: 1, column: 1},
		{name: "unterminated list", input: "(a\n  (b c)", reason: "unterminated list", line: 1, column: 1},
		{name: "unterminated nested list", input: "(a\n  (b c", reason: "unterminated list", line: 2, column: 3},
		{name: "unterminated string", input: `(a "bc)`, reason: "unterminated string", line: 1, column: 4},
		{name: "bare atom at top level", input: "kicad", reason: "expected '(' at top level", line: 1, column: 1},
		{name: "second top-level list", input: "(a) (b)", reason: "unexpected content after top-level list", line: 1, column: 5},
		{name: "empty list", input: "(a ())", reason: "empty list", line: 1, column: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			if err == nil {
				t.Fatalf("Expected error for %q, got nil", tt.input)
			}

			var synErr *SyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("Expected *SyntaxError, got %T: %v", err, err)
			}
			if !strings.Contains(synErr.Reason, tt.reason) {
				t.Errorf("Expected reason containing %q, got %q", tt.reason, synErr.Reason)
			}
			if synErr.Pos.Line != tt.line || synErr.Pos.Column != tt.column {
				t.Errorf("Expected position %d:%d, got %d:%d", tt.line, tt.column, synErr.Pos.Line, synErr.Pos.Column)
			}
		})
	}
}

func TestParseUnknownKeywordsArePreserved(t *testing.T) {
	input := "(kicad_symbol_lib (future_field 1 2 (nested \"x\")))"
	root, err := ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if got := Format(root, ""); got != input {
		t.Errorf("Format() = %q, want %q", got, input)
	}
}

func TestParseReader(t *testing.T) {
	root, err := Parse(strings.NewReader("(a b)"))
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if root.String() != "(a b)" {
		t.Errorf("Expected (a b), got %s", root.String())
	}
}
