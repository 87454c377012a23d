package symlib

import (
	"strconv"

	"github.com/OpenTraceLab/kicad-symlib/pkg/kicad/sexp/kicadsexp"
)

// Format constants of the KiCad symbol library format.
const (
	// RootKeyword heads every symbol library file
	RootKeyword = "kicad_symbol_lib"

	// MinSupportedVersion is the oldest format handled (KiCad 6.0)
	MinSupportedVersion = 20211014

	// MaxKnownVersion is the newest format this package was written against (KiCad 9.0)
	MaxKnownVersion = 20241209

	// FormatVersion is written into libraries created with New (KiCad 8.0)
	FormatVersion = 20231120

	// propertyIDVersion is the first format without (id N) in properties (KiCad 7.0)
	propertyIDVersion = 20220914

	// hideYesVersion is the first format writing (hide yes) instead of a bare hide (KiCad 8.0)
	hideYesVersion = 20231120

	// hideFieldVersion is the first format writing (hide yes) on the property itself (KiCad 9.0)
	hideFieldVersion = 20241209
)

// Library is an in-memory KiCad symbol library.
type Library struct {
	root   *kicadsexp.List
	config *Config
	indent string

	version          string
	versionNum       int
	generator        string
	generatorVersion string
	warning          string

	symbols []*Symbol
	byName  map[string]*Symbol
}

// Version returns the format version string from the file header.
func (l *Library) Version() string { return l.version }

// Generator returns the generator tag, e.g. "kicad_symbol_editor".
func (l *Library) Generator() string { return l.generator }

// GeneratorVersion returns the generator version, empty for files older than KiCad 8.
func (l *Library) GeneratorVersion() string { return l.generatorVersion }

// VersionWarning describes a format version this package may not fully
// understand. It is empty for supported versions.
func (l *Library) VersionWarning() string { return l.warning }

// Len returns the number of symbols.
func (l *Library) Len() int { return len(l.symbols) }

// Root returns the underlying document tree.
func (l *Library) Root() *kicadsexp.List {
	l.syncAll()
	return l.root
}

// Symbol returns the symbol with the given name.
func (l *Library) Symbol(name string) (*Symbol, bool) {
	sym, ok := l.byName[name]
	return sym, ok
}

// Symbols returns all symbols in library order.
func (l *Library) Symbols() []*Symbol {
	return append([]*Symbol(nil), l.symbols...)
}

// SymbolNames returns the symbol names in library order.
func (l *Library) SymbolNames() []string {
	names := make([]string, len(l.symbols))
	for i, sym := range l.symbols {
		names[i] = sym.Name()
	}
	return names
}

// SymbolDerivedFrom returns the parent name of a symbol. It returns false
// both for standalone symbols and for unknown names.
func (l *Library) SymbolDerivedFrom(name string) (string, bool) {
	sym, ok := l.byName[name]
	if !ok {
		return "", false
	}
	return sym.DerivedFrom()
}

// Dependents returns the names of symbols that derive directly from name.
func (l *Library) Dependents(name string) []string {
	var names []string
	for _, sym := range l.symbols {
		if parent, ok := sym.DerivedFrom(); ok && parent == name {
			names = append(names, sym.Name())
		}
	}
	return names
}

// Templates returns the names of symbols that at least one other symbol
// derives from, in library order.
func (l *Library) Templates() []string {
	referenced := make(map[string]bool)
	for _, sym := range l.symbols {
		if parent, ok := sym.DerivedFrom(); ok {
			referenced[parent] = true
		}
	}
	var names []string
	for _, sym := range l.symbols {
		if referenced[sym.Name()] {
			names = append(names, sym.Name())
		}
	}
	return names
}

// versionNumber returns the numeric format version, or FormatVersion when
// the header holds something else.
func (l *Library) versionNumber() int {
	if l.versionNum == 0 {
		return FormatVersion
	}
	return l.versionNum
}

func (l *Library) syncAll() {
	for _, sym := range l.symbols {
		sym.sync()
	}
}

// checkVersion fills in the numeric version and the warning text
func (l *Library) checkVersion() {
	n, err := strconv.Atoi(l.version)
	if err != nil {
		l.warning = "format version " + strconv.Quote(l.version) + " is not a number"
		return
	}
	l.versionNum = n
	switch {
	case n < MinSupportedVersion:
		l.warning = "format version " + l.version + " predates KiCad 6 (" + strconv.Itoa(MinSupportedVersion) + ")"
	case n > MaxKnownVersion:
		l.warning = "format version " + l.version + " is newer than " + strconv.Itoa(MaxKnownVersion) + "; unknown fields are kept verbatim"
	}
}
