package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/kicad-symlib/pkg/kicad/symlib"
)

var (
	propsOwn  bool
	propsJSON bool
)

var propsCmd = &cobra.Command{
	Use:   "props <library_file> <symbol>",
	Short: "Show symbol properties",
	Long: `Display the effective properties of a symbol: the properties inherited
from its templates overlaid with its own. Use --own to show only the
properties the symbol defines itself.`,
	Args: cobra.ExactArgs(2),
	RunE: runProps,
}

func init() {
	rootCmd.AddCommand(propsCmd)

	propsCmd.Flags().BoolVar(&propsOwn, "own", false,
		"show only the symbol's own properties")
	propsCmd.Flags().BoolVar(&propsJSON, "json", false,
		"print properties as a JSON object")
}

func runProps(cmd *cobra.Command, args []string) error {
	lib, _, err := openLibrary(args[0])
	if err != nil {
		return err
	}
	name := args[1]

	var props *symlib.Properties
	if propsOwn {
		sym, ok := lib.Symbol(name)
		if !ok {
			return fmt.Errorf("symbol %q not found", name)
		}
		props = sym.Properties()
	} else {
		var found bool
		props, found, err = lib.SymbolProperties(name)
		if err != nil {
			return fmt.Errorf("failed to resolve %q: %w", name, err)
		}
		if !found {
			return fmt.Errorf("symbol %q not found", name)
		}
	}

	if propsJSON {
		data, err := propertiesJSON(props)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}

	if parent, ok := lib.SymbolDerivedFrom(name); ok && !propsOwn {
		logf("%s extends %s", name, parent)
	}

	width := 0
	for _, key := range props.Keys() {
		width = max(width, len(key))
	}
	for key, value := range props.All() {
		fmt.Printf("%-*s  %s\n", width+1, key+":", value)
	}
	return nil
}

// propertiesJSON encodes a mapping as a JSON object in property order
func propertiesJSON(props *symlib.Properties) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	i := 0
	for key, value := range props.All() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		i++
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
