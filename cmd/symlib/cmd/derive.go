package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/kicad-symlib/pkg/kicad/symlib"
)

var (
	deriveProps  []string
	deriveOutput string
)

var deriveCmd = &cobra.Command{
	Use:   "derive <library_file> <new_symbol> <template>",
	Short: "Create a symbol derived from a template",
	Long: `Create a new symbol that extends an existing one. Only the properties
given with -p are stored on the new symbol; everything else is inherited
from the template.

Examples:
  symlib derive Resistors.kicad_sym 1M_precision ~Template \
      -p Value=1M -p "Description=1MΩ High precision resistor"`,
	Args: cobra.ExactArgs(3),
	RunE: runDerive,
}

func init() {
	rootCmd.AddCommand(deriveCmd)

	deriveCmd.Flags().StringArrayVarP(&deriveProps, "property", "p", nil,
		"property override as Key=Value (repeatable)")
	deriveCmd.Flags().StringVarP(&deriveOutput, "output", "o", "",
		"write to this file instead of the input (- for stdout)")
}

func runDerive(cmd *cobra.Command, args []string) error {
	filename, name, template := args[0], args[1], args[2]

	overrides, err := parseAssignments(deriveProps)
	if err != nil {
		return err
	}

	lib, cfg, err := openLibrary(filename)
	if err != nil {
		return err
	}

	if _, err := lib.DeriveSymbol(name, template, overrides); err != nil {
		return fmt.Errorf("failed to derive %q: %w", name, err)
	}
	logf("Derived %s from %s with %d overrides", name, template, overrides.Len())

	if err := saveLibrary(lib, filename, deriveOutput, cfg); err != nil {
		return err
	}
	if deriveOutput != "-" {
		fmt.Printf("Created symbol %s (extends %s)\n", name, template)
	}
	return nil
}

// parseAssignments parses Key=Value arguments in order
func parseAssignments(args []string) (*symlib.Properties, error) {
	props := symlib.NewProperties()
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid property %q: expected Key=Value", arg)
		}
		props.Set(key, value)
	}
	return props, nil
}
