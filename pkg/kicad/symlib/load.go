package symlib

import (
	"fmt"
	"io"

	"github.com/OpenTraceLab/kicad-symlib/pkg/kicad/sexp/kicadsexp"
)

// Load parses .kicad_sym text with the default configuration.
func Load(text string) (*Library, error) {
	return LoadWithConfig(text, nil)
}

// LoadWithConfig parses .kicad_sym text.
func LoadWithConfig(text string, cfg *Config) (*Library, error) {
	root, err := kicadsexp.ParseString(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse s-expression: %w", err)
	}
	return Build(root, cfg)
}

// Read parses a library from r.
func Read(r io.Reader, cfg *Config) (*Library, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read library: %w", err)
	}
	return LoadWithConfig(string(data), cfg)
}
