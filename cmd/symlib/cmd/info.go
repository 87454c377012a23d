package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/kicad-symlib/pkg/kicad/symlib"
)

var infoCmd = &cobra.Command{
	Use:   "info <library_file>",
	Short: "Show library information",
	Long: `Display the header of a KiCad symbol library and list its symbols
together with their derivation links.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]
	lib, _, err := openLibrary(filename)
	if err != nil {
		return err
	}

	showLibrarySummary(lib, filename)
	return nil
}

func showLibrarySummary(lib *symlib.Library, filename string) {
	fmt.Printf("Library: %s\n", filename)
	fmt.Printf("Version: %s\n", lib.Version())
	if lib.Generator() != "" {
		fmt.Printf("Generator: %s", lib.Generator())
		if lib.GeneratorVersion() != "" {
			fmt.Printf(" v%s", lib.GeneratorVersion())
		}
		fmt.Println()
	}
	if warning := lib.VersionWarning(); warning != "" {
		fmt.Printf("Warning: %s\n", warning)
	}
	fmt.Printf("Symbols: %d\n", lib.Len())
	fmt.Println()

	if lib.Len() == 0 {
		return
	}

	width := 0
	for _, name := range lib.SymbolNames() {
		width = max(width, len(name))
	}

	fmt.Println("Symbols:")
	for _, sym := range lib.Symbols() {
		fmt.Printf("  %-*s", width, sym.Name())
		if parent, ok := sym.DerivedFrom(); ok {
			fmt.Printf("  extends %s", parent)
		}
		if n := len(lib.Dependents(sym.Name())); n > 0 {
			fmt.Printf("  (template, %d derived)", n)
		}
		if units := len(sym.Units()); units > 0 {
			fmt.Printf("  [%d units, %d pins]", units, len(sym.Pins()))
		}
		fmt.Println()
	}
}
