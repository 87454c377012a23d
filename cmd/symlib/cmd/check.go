package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <library_file>",
	Short: "Validate derivation links",
	Long: `Resolve every symbol of a library and report each derivation link
that points at a missing symbol and each derivation cycle.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	filename := args[0]
	lib, _, err := openLibrary(filename)
	if err != nil {
		return err
	}

	err = lib.Validate()
	if err == nil {
		fmt.Printf("%s: %d symbols, %d templates, no problems found\n",
			filename, lib.Len(), len(lib.Templates()))
		return nil
	}

	problems := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		problems = joined.Unwrap()
	}
	for _, p := range problems {
		fmt.Printf("  %v\n", p)
	}
	return fmt.Errorf("%s: %d problem(s) found", filename, len(problems))
}
