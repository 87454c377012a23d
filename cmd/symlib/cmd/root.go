package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/kicad-symlib/pkg/kicad/symlib"
)

var (
	// Global flags
	verbose    bool
	configPath string
	strict     bool
)

var rootCmd = &cobra.Command{
	Use:   "symlib",
	Short: "symlib - KiCad symbol library tool",
	Long: `symlib reads, queries and edits KiCad symbol libraries (.kicad_sym).

Libraries are rewritten losslessly: everything a command does not touch is
saved exactly as it was read.

Examples:
  symlib info Resistors.kicad_sym                          # List symbols
  symlib props Resistors.kicad_sym 10k                     # Effective properties
  symlib derive Resistors.kicad_sym 1M ~Template -p Value=1M
  symlib set Resistors.kicad_sym 1M Footprint=R_0603
  symlib export-cache board.kicad_sch -o cache.kicad_sym   # Schematic cache to library`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/kicad-symlib/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "reject broken derivation links at load time")
}

// logf writes a diagnostic line in verbose mode
func logf(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}

// libraryConfig loads the config file and applies the global flags
func libraryConfig() (*symlib.Config, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if strict {
		cfg.StrictReferences = true
	}
	return cfg, nil
}

// openLibrary parses a library file with the effective configuration
func openLibrary(filename string) (*symlib.Library, *symlib.Config, error) {
	cfg, err := libraryConfig()
	if err != nil {
		return nil, nil, err
	}

	logf("Loading library: %s", filename)
	lib, err := symlib.ParseFile(filename, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading library: %w", err)
	}
	if warning := lib.VersionWarning(); warning != "" {
		log.Printf("warning: %s: %s", filename, warning)
	}
	logf("Loaded %d symbols (format %s)", lib.Len(), lib.Version())

	return lib, cfg, nil
}

// saveLibrary writes lib to output, "-" for stdout, or back to the input file
func saveLibrary(lib *symlib.Library, input, output string, cfg *symlib.Config) error {
	switch output {
	case "-":
		_, err := lib.WriteTo(os.Stdout)
		return err
	case "":
		output = input
	}

	logf("Writing library: %s", output)
	if err := symlib.WriteFile(lib, output, cfg); err != nil {
		return fmt.Errorf("error saving library: %w", err)
	}
	return nil
}
