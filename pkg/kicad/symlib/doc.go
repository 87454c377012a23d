// Package symlib reads, queries, edits and writes KiCad symbol libraries
// (.kicad_sym files).
//
// A library is loaded into a lossless S-expression tree (see package
// kicadsexp) and a typed view on top of it: the library header, an ordered
// list of symbols, each symbol's own properties and its optional parent
// named by (extends "..."). Everything this package does not interpret,
// such as pins, graphics and unit sub-symbols, is kept verbatim, so a library
// that is loaded and saved without edits is written back byte for byte.
//
// # Derivation
//
// A symbol that extends a template inherits the template's properties. Its
// effective properties are the parent's effective properties overlaid with
// the symbol's own entries: the child wins per key, keys only the parent
// defines survive, keys only the child defines are appended. Effective
// properties are computed on every read, so editing a template is visible
// through all symbols derived from it.
//
// References are resolved lazily: a library with a dangling (extends ...)
// loads fine and only fails when the broken symbol is resolved. Set
// Config.StrictReferences to check every link at load time instead.
//
// # Usage
//
//	lib, err := symlib.Load(text)
//	if err != nil {
//		return err
//	}
//
//	overrides := symlib.PropertiesFrom(
//		"Value", "1M",
//		"Description", "1MΩ High precision resistor",
//	)
//	if _, err := lib.DeriveSymbol("1M_precision", "~Template", overrides); err != nil {
//		return err
//	}
//
//	props, found, err := lib.SymbolProperties("1M_precision")
//
//	out := symlib.Serialize(lib)
//
// A Library is not safe for concurrent use; callers that share one must
// serialize access themselves.
package symlib
