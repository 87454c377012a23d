package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	editOutput  string
	deleteForce bool
)

var setCmd = &cobra.Command{
	Use:   "set <library_file> <symbol> <Key=Value>...",
	Short: "Set symbol properties",
	Long: `Set properties on a symbol. Existing properties keep their position
and display attributes; new ones are added after the last property.`,
	Args: cobra.MinimumNArgs(3),
	RunE: runSet,
}

var unsetCmd = &cobra.Command{
	Use:   "unset <library_file> <symbol> <Key>...",
	Short: "Remove symbol properties",
	Long: `Remove properties a symbol defines itself. Inherited values become
visible again.`,
	Args: cobra.MinimumNArgs(3),
	RunE: runUnset,
}

var renameCmd = &cobra.Command{
	Use:   "rename <library_file> <old_name> <new_name>",
	Short: "Rename a symbol",
	Long: `Rename a symbol, its unit sub-symbols and every derivation link that
points at it.`,
	Args: cobra.ExactArgs(3),
	RunE: runRename,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <library_file> <symbol>",
	Short: "Delete a symbol",
	Long: `Delete a symbol. Symbols derived from it would lose their template, so
this is refused unless --force is given.`,
	Args: cobra.ExactArgs(2),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(setCmd, unsetCmd, renameCmd, deleteCmd)

	for _, c := range []*cobra.Command{setCmd, unsetCmd, renameCmd, deleteCmd} {
		c.Flags().StringVarP(&editOutput, "output", "o", "",
			"write to this file instead of the input (- for stdout)")
	}
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false,
		"delete even if other symbols derive from it")
}

func runSet(cmd *cobra.Command, args []string) error {
	filename, name := args[0], args[1]

	props, err := parseAssignments(args[2:])
	if err != nil {
		return err
	}

	lib, cfg, err := openLibrary(filename)
	if err != nil {
		return err
	}

	for key, value := range props.All() {
		if err := lib.SetProperty(name, key, value); err != nil {
			return fmt.Errorf("failed to set %s on %q: %w", key, name, err)
		}
		logf("%s: %s = %q", name, key, value)
	}

	return saveLibrary(lib, filename, editOutput, cfg)
}

func runUnset(cmd *cobra.Command, args []string) error {
	filename, name := args[0], args[1]

	lib, cfg, err := openLibrary(filename)
	if err != nil {
		return err
	}

	var missing []string
	for _, key := range args[2:] {
		removed, err := lib.RemoveProperty(name, key)
		if err != nil {
			return fmt.Errorf("failed to remove %s from %q: %w", key, name, err)
		}
		if !removed {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		fmt.Printf("Not defined on %s: %s\n", name, strings.Join(missing, ", "))
	}

	return saveLibrary(lib, filename, editOutput, cfg)
}

func runRename(cmd *cobra.Command, args []string) error {
	filename, oldName, newName := args[0], args[1], args[2]

	lib, cfg, err := openLibrary(filename)
	if err != nil {
		return err
	}

	dependents := lib.Dependents(oldName)
	if err := lib.RenameSymbol(oldName, newName); err != nil {
		return fmt.Errorf("failed to rename %q: %w", oldName, err)
	}
	if len(dependents) > 0 {
		logf("Updated derivation links of %s", strings.Join(dependents, ", "))
	}

	return saveLibrary(lib, filename, editOutput, cfg)
}

func runDelete(cmd *cobra.Command, args []string) error {
	filename, name := args[0], args[1]

	lib, cfg, err := openLibrary(filename)
	if err != nil {
		return err
	}

	if dependents := lib.Dependents(name); len(dependents) > 0 {
		if !deleteForce {
			return fmt.Errorf("symbol %q is the template of %s (use --force to delete anyway)",
				name, strings.Join(dependents, ", "))
		}
		logf("Leaving %s without a template", strings.Join(dependents, ", "))
	}

	if err := lib.DeleteSymbol(name); err != nil {
		return fmt.Errorf("failed to delete %q: %w", name, err)
	}

	return saveLibrary(lib, filename, editOutput, cfg)
}
