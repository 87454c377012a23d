// Package schematic reads the parts of KiCad schematic files (.kicad_sch)
// that relate to symbol libraries: the header, the embedded lib_symbols
// cache and the placed symbol instances.
package schematic

import (
	"strings"

	"github.com/OpenTraceLab/kicad-symlib/pkg/kicad/sexp"
	"github.com/OpenTraceLab/kicad-symlib/pkg/kicad/sexp/kicadsexp"
)

// Re-export shared types from sexp package for convenience
type Position = sexp.Position
type Angle = sexp.Angle
type Property = sexp.Property

// Schematic represents a KiCad schematic file
type Schematic struct {
	Version      int        // File format version
	Generator    string     // Generator info (e.g., "eeschema")
	GeneratorVer string     // Generator version
	UUID         string     // Schematic UUID
	Paper        string     // Paper size (e.g., "A4")
	TitleBlock   TitleBlock // Title block information
	LibSymbols   []LibSymbol
	Symbols      []Symbol // Symbol instances on the schematic
}

// TitleBlock contains schematic title block information
type TitleBlock struct {
	Title    string
	Date     string
	Revision string
	Company  string
	Comment1 string
	Comment2 string
	Comment3 string
	Comment4 string
}

// LibSymbol is a symbol definition from the schematic's lib_symbols cache.
// Cached names carry the library nickname, e.g. "Device:R".
type LibSymbol struct {
	Name       string
	InBom      bool
	OnBoard    bool
	Properties []Property

	node *kicadsexp.List
}

// Node returns the cached (symbol ...) definition.
func (l *LibSymbol) Node() *kicadsexp.List { return l.node }

// Nickname splits a cached name into library nickname and symbol name.
// Names without a nickname return an empty nickname.
func (l *LibSymbol) Nickname() (nickname, name string) {
	return SplitLibID(l.Name)
}

// Symbol represents a symbol instance placed on the schematic
type Symbol struct {
	LibID      string // Library identifier (e.g., "Device:R")
	LibName    string // Cache entry name when it differs from LibID
	Position   Position
	Angle      Angle
	Unit       int
	InBom      bool
	OnBoard    bool
	UUID       string
	Properties []Property
}

// CacheName returns the lib_symbols entry this instance is drawn from.
func (s *Symbol) CacheName() string {
	if s.LibName != "" {
		return s.LibName
	}
	return s.LibID
}

// Property returns the value of the instance property with the given key.
func (s *Symbol) Property(key string) (string, bool) {
	for _, prop := range s.Properties {
		if prop.Key == key {
			return prop.Value, true
		}
	}
	return "", false
}

// GetSymbol finds a symbol by reference designator
func (s *Schematic) GetSymbol(ref string) *Symbol {
	for i := range s.Symbols {
		if v, ok := s.Symbols[i].Property("Reference"); ok && v == ref {
			return &s.Symbols[i]
		}
	}
	return nil
}

// GetSymbolsByLib returns all symbols with the given library ID
func (s *Schematic) GetSymbolsByLib(libID string) []Symbol {
	var result []Symbol
	for _, sym := range s.Symbols {
		if sym.LibID == libID {
			result = append(result, sym)
		}
	}
	return result
}

// GetAllReferences returns all reference designators
func (s *Schematic) GetAllReferences() []string {
	var refs []string
	for _, sym := range s.Symbols {
		if v, ok := sym.Property("Reference"); ok && v != "" {
			refs = append(refs, v)
		}
	}
	return refs
}

// GetLibSymbol returns the cached definition with the given name
func (s *Schematic) GetLibSymbol(name string) *LibSymbol {
	for i := range s.LibSymbols {
		if s.LibSymbols[i].Name == name {
			return &s.LibSymbols[i]
		}
	}
	return nil
}

// SplitLibID splits "nickname:name". An ID without a colon has no nickname.
func SplitLibID(id string) (nickname, name string) {
	if nickname, name, ok := strings.Cut(id, ":"); ok {
		return nickname, name
	}
	return "", id
}
