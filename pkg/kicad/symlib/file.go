package symlib

import (
	"fmt"
	"os"
	"path/filepath"
)

// ParseFile parses a KiCad symbol library file
func ParseFile(filename string, cfg *Config) (*Library, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	lib, err := LoadWithConfig(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return lib, nil
}

// WriteFile saves the library to filename. The text goes to a temporary
// file in the same directory that is renamed over the target, so readers
// never see a partial library. With cfg.Backup the previous content is
// kept as filename.bak.
func WriteFile(lib *Library, filename string, cfg *Config) error {
	cfg, err := resolveConfig(cfg)
	if err != nil {
		return err
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(filename); err == nil {
		mode = info.Mode().Perm()
		if cfg.Backup {
			if err := copyFile(filename, filename+".bak", mode); err != nil {
				return fmt.Errorf("failed to write backup: %w", err)
			}
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := lib.WriteTo(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write library: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync library: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filename, err)
	}
	return nil
}

func copyFile(src, dst string, mode os.FileMode) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, mode)
}
