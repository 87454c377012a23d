package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/kicad-symlib/pkg/kicad/symlib"
)

var (
	fmtCheck  bool
	fmtOutput string
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <library_file>",
	Short: "Rewrite a library or verify that it round-trips",
	Long: `Load a library and write it back. With --check nothing is written;
the command fails if saving would change the file or if the saved text
would not load back to the same library.`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false,
		"only verify that the file round-trips unchanged")
	fmtCmd.Flags().StringVarP(&fmtOutput, "output", "o", "",
		"write to this file instead of the input (- for stdout)")
}

func runFmt(cmd *cobra.Command, args []string) error {
	filename := args[0]

	original, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	lib, cfg, err := openLibrary(filename)
	if err != nil {
		return err
	}
	text := symlib.Serialize(lib)

	reloaded, err := symlib.LoadWithConfig(text, cfg)
	if err != nil {
		return fmt.Errorf("written library does not load: %w", err)
	}
	if again := symlib.Serialize(reloaded); again != text {
		return fmt.Errorf("%s: output is not stable across a second load", filename)
	}

	if fmtCheck {
		if text != string(original) {
			return fmt.Errorf("%s: saving would change the file", filename)
		}
		fmt.Printf("%s: ok (%d symbols)\n", filename, lib.Len())
		return nil
	}

	return saveLibrary(lib, filename, fmtOutput, cfg)
}
