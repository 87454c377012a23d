package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/OpenTraceLab/kicad-symlib/pkg/kicad/symlib"
)

// fileConfig mirrors symlib.Config in the TOML config file:
//
//	strict_references = true
//	indent = "\t"
//	generator = "kicad_symbol_editor"
//	default_font_size = 1.27
//	backup = true
type fileConfig struct {
	StrictReferences *bool    `toml:"strict_references"`
	Indent           *string  `toml:"indent"`
	Generator        *string  `toml:"generator"`
	DefaultFontSize  *float64 `toml:"default_font_size"`
	Backup           *bool    `toml:"backup"`
}

// defaultConfigPath returns the per-user config file location
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "kicad-symlib", "config.toml")
}

// loadConfig reads the config file at path over the library defaults. An
// empty path means the default location, which may be absent.
func loadConfig(path string) (*symlib.Config, error) {
	cfg := symlib.DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	logf("Loaded config: %s", path)

	if fc.StrictReferences != nil {
		cfg.StrictReferences = *fc.StrictReferences
	}
	if fc.Indent != nil {
		cfg.Indent = *fc.Indent
	}
	if fc.Generator != nil {
		cfg.Generator = *fc.Generator
	}
	if fc.DefaultFontSize != nil {
		cfg.DefaultFontSize = *fc.DefaultFontSize
	}
	if fc.Backup != nil {
		cfg.Backup = *fc.Backup
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}
