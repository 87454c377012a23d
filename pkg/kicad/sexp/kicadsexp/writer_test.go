package kicadsexp

import (
	"testing"
)

func TestFormatRoundTrip(t *testing.T) {
	inputs := []string{
		"(kicad_symbol_lib (version 20211014) (generator kicad_symbol_editor))",
		"(kicad_symbol_lib\n\t(version 20231120)\n\t(generator \"kicad_symbol_editor\")\n)\n",
		"\n\n(a  \"spaced  out\"\t(b)\r\n)\n\n",
		"(a(b)(c d))",
		"(property \"Datasheet\" \"~\" (at 0 0 0) (effects (font (size 1.27 1.27)) hide))",
		"(s \"esc \\\"q\\\" \\\\ \\n\")",
	}

	for _, input := range inputs {
		root, err := ParseString(input)
		if err != nil {
			t.Fatalf("Failed to parse %q: %v", input, err)
		}
		if got := Format(root, ""); got != input {
			t.Errorf("Format() = %q, want %q", got, input)
		}
	}
}

func TestFormatSynthesized(t *testing.T) {
	prop := NewNode("property", NewString("Value"), NewString("1M"),
		NewNode("at", NewSymbol("0"), NewSymbol("0"), NewSymbol("0")),
		NewNode("effects", NewNode("font", NewNode("size", NewSymbol("1.27"), NewSymbol("1.27")))),
	)
	sym := NewNode("symbol", NewString("1M_precision"), NewNode("extends", NewString("~Template")), prop)
	root := NewNode("kicad_symbol_lib", NewNode("version", NewSymbol("20231120")), sym)

	want := `(kicad_symbol_lib
	(version 20231120)
	(symbol "1M_precision"
		(extends "~Template")
		(property "Value" "1M"
			(at 0 0 0)
			(effects
				(font
					(size 1.27 1.27)
				)
			)
		)
	)
)
`
	if got := Format(root, "\t"); got != want {
		t.Errorf("Format() mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatIdempotentAfterEdit(t *testing.T) {
	input := "(kicad_symbol_lib\n\t(version 20231120)\n\t(symbol \"R\"\n\t\t(property \"Value\" \"R\")\n\t)\n)\n"
	root, err := ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	sym := root.Get(2).(*List)
	sym.Append(NewNode("property", NewString("Footprint"), NewString("R_0805")))
	root.Append(NewNode("symbol", NewString("C"), NewNode("property", NewString("Value"), NewString("C"))))

	want := "(kicad_symbol_lib\n\t(version 20231120)\n\t(symbol \"R\"\n\t\t(property \"Value\" \"R\")\n\t\t(property \"Footprint\" \"R_0805\")\n\t)\n\t(symbol \"C\"\n\t\t(property \"Value\" \"C\")\n\t)\n)\n"
	first := Format(root, "\t")
	if first != want {
		t.Fatalf("Format() = %q, want %q", first, want)
	}

	reparsed, err := ParseString(first)
	if err != nil {
		t.Fatalf("Failed to re-parse: %v", err)
	}
	if second := Format(reparsed, "\t"); second != first {
		t.Errorf("Second Format() = %q, want %q", second, first)
	}
}

func TestSetValueReencodes(t *testing.T) {
	root, err := ParseString(`(property "Value"   "R")`)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	leaf := root.Get(2).(*Leaf)
	leaf.SetValue(`10 "k"`)

	want := `(property "Value"   "10 \"k\"")`
	if got := Format(root, ""); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestGluedAtomsGetSeparated(t *testing.T) {
	root, err := ParseString("(k(x)y)")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	root.Remove(1)

	if got := Format(root, ""); got != "(k y)" {
		t.Errorf("Format() = %q, want %q", got, "(k y)")
	}
}

func TestDetectIndent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"tabs", "(kicad_symbol_lib\n\t(version 20231120)\n)", "\t"},
		{"two spaces", "(kicad_symbol_lib (version 20211014)\n  (symbol \"R\")\n)", "  "},
		{"single line", "(kicad_symbol_lib (version 20211014))", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := ParseString(tt.input)
			if err != nil {
				t.Fatalf("Failed to parse: %v", err)
			}
			if got := DetectIndent(root); got != tt.want {
				t.Errorf("DetectIndent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCloneDropsLayout(t *testing.T) {
	root, err := ParseString("(at\n   0   0\n)")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	clone := Clone(root)
	if !Equal(root, clone) {
		t.Fatalf("Clone is not structurally equal")
	}
	if got := Format(clone, ""); got != "(at 0 0)\n" {
		t.Errorf("Format(clone) = %q, want %q", got, "(at 0 0)\n")
	}
}

func TestListEditing(t *testing.T) {
	l := NewNode("k", NewSymbol("a"), NewSymbol("c"))
	l.Insert(2, NewSymbol("b"))
	if l.String() != "(k a b c)" {
		t.Errorf("After Insert: %s", l.String())
	}
	l.Insert(99, NewSymbol("d"))
	if l.String() != "(k a b c d)" {
		t.Errorf("After Insert past end: %s", l.String())
	}
	if removed := l.Remove(1); removed.String() != "a" {
		t.Errorf("Remove returned %v", removed)
	}
	if l.Remove(10) != nil {
		t.Errorf("Remove out of range should return nil")
	}
	if l.IndexOf(l.Get(2)) != 2 {
		t.Errorf("IndexOf mismatch")
	}
	if l.String() != "(k b c d)" {
		t.Errorf("Final list: %s", l.String())
	}
}

func TestFormatSynthesizedAtomAfterList(t *testing.T) {
	effects := NewNode("effects",
		NewNode("font", NewNode("size", NewSymbol("1.27"), NewSymbol("1.27"))),
		NewSymbol("hide"),
	)

	want := "(effects\n  (font\n    (size 1.27 1.27)\n  )\n  hide\n)\n"
	if got := Format(effects, "  "); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}
