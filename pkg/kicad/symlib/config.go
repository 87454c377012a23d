package symlib

import (
	"fmt"
	"strings"
)

// Config controls how libraries are loaded, edited and saved.
type Config struct {
	// StrictReferences validates every (extends ...) link and rejects
	// derivation cycles at load time instead of on first use (default: false)
	StrictReferences bool

	// Indent is the indentation unit for nodes created in memory.
	// Empty means use the unit found in the loaded file, or a tab.
	Indent string

	// Generator is written into libraries created with New (default: "kicad_symlib")
	Generator string

	// DefaultFontSize is the font size of new properties that have no
	// counterpart in a parent symbol (default: 1.27 mm)
	DefaultFontSize float64

	// Backup keeps the previous file content as <file>.bak in WriteFile (default: false)
	Backup bool
}

// DefaultConfig returns a Config with the defaults KiCad itself uses.
func DefaultConfig() *Config {
	return &Config{
		StrictReferences: false,
		Indent:           "",
		Generator:        "kicad_symlib",
		DefaultFontSize:  1.27,
		Backup:           false,
	}
}

// Validate checks the configuration and fills in defaults for zero values.
func (c *Config) Validate() error {
	if strings.Trim(c.Indent, " \t") != "" {
		return fmt.Errorf("indent must contain only spaces or tabs, got %q", c.Indent)
	}

	if c.Generator == "" {
		c.Generator = "kicad_symlib"
	}

	if c.DefaultFontSize <= 0 {
		c.DefaultFontSize = 1.27
	}

	return nil
}

// resolveConfig returns a validated copy of cfg, or the defaults for nil.
func resolveConfig(cfg *Config) (*Config, error) {
	if cfg == nil {
		return DefaultConfig(), nil
	}
	c := *cfg
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &c, nil
}
