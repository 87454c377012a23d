package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/kicad-symlib/pkg/kicad/schematic"
)

var (
	exportOutput        string
	exportStripNickname bool
	exportUsedOnly      bool
)

var exportCmd = &cobra.Command{
	Use:   "export-cache <schematic_file>",
	Short: "Export a schematic's symbol cache as a library",
	Long: `Build a symbol library from the lib_symbols cache embedded in a KiCad
schematic. This recovers the symbols of a design whose libraries are
not available.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "-",
		"output library file (- for stdout)")
	exportCmd.Flags().BoolVar(&exportStripNickname, "strip-nickname", false,
		"drop the library nickname from symbol names (Device:R becomes R)")
	exportCmd.Flags().BoolVar(&exportUsedOnly, "used-only", false,
		"only export symbols placed on the schematic")
}

func runExport(cmd *cobra.Command, args []string) error {
	filename := args[0]

	cfg, err := libraryConfig()
	if err != nil {
		return err
	}

	logf("Loading schematic: %s", filename)
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	lib, err := schematic.ExtractLibrary(file, schematic.ExtractOptions{
		StripNickname: exportStripNickname,
		UsedOnly:      exportUsedOnly,
		Library:       cfg,
	})
	if err != nil {
		return fmt.Errorf("error exporting symbol cache: %w", err)
	}
	logf("Extracted %d symbols (format %s)", lib.Len(), lib.Version())

	output := exportOutput
	if output == "" {
		output = "-"
	}
	return saveLibrary(lib, "", output, cfg)
}
