package schematic

import (
	"fmt"
	"io"

	"github.com/OpenTraceLab/kicad-symlib/pkg/kicad/symlib"
)

// ExtractOptions controls how a schematic's symbol cache becomes a library.
type ExtractOptions struct {
	// StripNickname drops the library nickname from cached names,
	// turning "Device:R" into "R"
	StripNickname bool

	// UsedOnly skips cache entries no placed symbol refers to
	UsedOnly bool

	// Library configures the created library (nil for defaults)
	Library *symlib.Config
}

// ExtractLibrary parses a schematic and builds a symbol library from its
// embedded lib_symbols cache. The library declares the newest symbol
// library format the schematic's KiCad release can write.
func ExtractLibrary(r io.Reader, opts ExtractOptions) (*symlib.Library, error) {
	sch, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return sch.Library(opts)
}

// Library builds a symbol library from the schematic's lib_symbols cache.
func (s *Schematic) Library(opts ExtractOptions) (*symlib.Library, error) {
	lib, err := symlib.NewVersion(symlib.KnownVersion(s.Version), opts.Library)
	if err != nil {
		return nil, err
	}

	used := make(map[string]bool)
	for i := range s.Symbols {
		used[s.Symbols[i].CacheName()] = true
	}

	for i := range s.LibSymbols {
		cached := &s.LibSymbols[i]
		if opts.UsedOnly && !used[cached.Name] {
			continue
		}
		if _, err := lib.AddSymbol(cached.Node()); err != nil {
			return nil, fmt.Errorf("failed to add cached symbol %q: %w", cached.Name, err)
		}
	}

	if opts.StripNickname {
		for _, name := range lib.SymbolNames() {
			if _, short := SplitLibID(name); short != name {
				if err := lib.RenameSymbol(name, short); err != nil {
					return nil, fmt.Errorf("failed to strip nickname of %q: %w", name, err)
				}
			}
		}
	}

	return lib, nil
}
