package schematic

import (
	"fmt"
	"io"
	"os"

	"github.com/OpenTraceLab/kicad-symlib/pkg/kicad/sexp"
	"github.com/OpenTraceLab/kicad-symlib/pkg/kicad/sexp/kicadsexp"
)

// Minimum supported KiCad version for schematics (6.0 = 20211014)
const MinSupportedVersion = 20211014

// ParseFile reads and parses a KiCad schematic file
func ParseFile(filename string) (*Schematic, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads and parses a KiCad schematic from an io.Reader
func Parse(r io.Reader) (*Schematic, error) {
	root, err := kicadsexp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse s-expression: %w", err)
	}

	// Verify this is a kicad_sch file
	rootName, err := sexp.GetNodeName(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get root node name: %w", err)
	}

	if rootName != "kicad_sch" {
		return nil, fmt.Errorf("not a KiCad schematic file: expected 'kicad_sch', got '%s'", rootName)
	}

	sch := &Schematic{}

	if err := parseHeader(root, sch); err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	if uuidNode, found := sexp.FindList(root, "uuid"); found {
		sch.UUID, _ = sexp.GetString(uuidNode, 1)
	}

	if paperNode, found := sexp.FindList(root, "paper"); found {
		sch.Paper, _ = sexp.GetQuotedString(paperNode, 1)
	}

	if titleBlockNode, found := sexp.FindList(root, "title_block"); found {
		sch.TitleBlock = parseTitleBlock(titleBlockNode)
	}

	if libSymbolsNode, found := sexp.FindList(root, "lib_symbols"); found {
		sch.LibSymbols = parseLibSymbols(libSymbolsNode)
	}

	sch.Symbols = parseSymbols(root)

	return sch, nil
}

// parseHeader extracts version and generator information
func parseHeader(root *kicadsexp.List, sch *Schematic) error {
	versionNode, found := sexp.FindList(root, "version")
	if !found {
		return fmt.Errorf("missing required 'version' field")
	}

	ver, err := sexp.GetInt(versionNode, 1)
	if err != nil {
		return fmt.Errorf("failed to parse version: %w", err)
	}

	if ver < MinSupportedVersion {
		return fmt.Errorf("unsupported KiCad version: %d (minimum required: %d / KiCad 6.0)", ver, MinSupportedVersion)
	}
	sch.Version = ver

	if genNode, found := sexp.FindList(root, "generator"); found {
		sch.Generator, _ = sexp.GetString(genNode, 1)
	}

	if genVerNode, found := sexp.FindList(root, "generator_version"); found {
		sch.GeneratorVer, _ = sexp.GetQuotedString(genVerNode, 1)
	}

	return nil
}

// parseTitleBlock extracts title block information
func parseTitleBlock(node *kicadsexp.List) TitleBlock {
	tb := TitleBlock{}

	if titleNode, found := sexp.FindList(node, "title"); found {
		tb.Title, _ = sexp.GetQuotedString(titleNode, 1)
	}
	if dateNode, found := sexp.FindList(node, "date"); found {
		tb.Date, _ = sexp.GetQuotedString(dateNode, 1)
	}
	if revNode, found := sexp.FindList(node, "rev"); found {
		tb.Revision, _ = sexp.GetQuotedString(revNode, 1)
	}
	if companyNode, found := sexp.FindList(node, "company"); found {
		tb.Company, _ = sexp.GetQuotedString(companyNode, 1)
	}
	for _, cn := range sexp.FindAllNodes(node, "comment") {
		num, _ := sexp.GetInt(cn, 1)
		text, _ := sexp.GetQuotedString(cn, 2)
		switch num {
		case 1:
			tb.Comment1 = text
		case 2:
			tb.Comment2 = text
		case 3:
			tb.Comment3 = text
		case 4:
			tb.Comment4 = text
		}
	}

	return tb
}

// parseLibSymbols parses embedded library symbols
func parseLibSymbols(node *kicadsexp.List) []LibSymbol {
	symbolNodes := sexp.FindAllNodes(node, "symbol")
	symbols := make([]LibSymbol, 0, len(symbolNodes))

	for _, symNode := range symbolNodes {
		symbols = append(symbols, parseLibSymbol(symNode))
	}

	return symbols
}

// parseLibSymbol parses a single library symbol definition
func parseLibSymbol(node *kicadsexp.List) LibSymbol {
	sym := LibSymbol{
		InBom:   true,
		OnBoard: true,
		node:    node,
	}

	sym.Name, _ = sexp.GetQuotedString(node, 1)

	for _, pn := range sexp.FindAllNodes(node, "property") {
		prop, err := sexp.GetProperty(pn)
		if err == nil {
			sym.Properties = append(sym.Properties, prop)
		}
	}

	if ibNode, found := sexp.FindList(node, "in_bom"); found {
		sym.InBom = sexp.GetYesNo(ibNode)
	}

	if obNode, found := sexp.FindList(node, "on_board"); found {
		sym.OnBoard = sexp.GetYesNo(obNode)
	}

	return sym
}

// parseSymbols parses symbol instances
func parseSymbols(root *kicadsexp.List) []Symbol {
	symbolNodes := sexp.FindAllNodes(root, "symbol")
	symbols := make([]Symbol, 0, len(symbolNodes))

	for _, symNode := range symbolNodes {
		symbols = append(symbols, parseSymbol(symNode))
	}

	return symbols
}

// parseSymbol parses a single symbol instance
func parseSymbol(node *kicadsexp.List) Symbol {
	sym := Symbol{
		InBom:   true,
		OnBoard: true,
		Unit:    1,
	}

	if libNode, found := sexp.FindList(node, "lib_id"); found {
		sym.LibID, _ = sexp.GetQuotedString(libNode, 1)
	}

	// Set when the instance uses a modified copy of the library symbol
	if libNameNode, found := sexp.FindList(node, "lib_name"); found {
		sym.LibName, _ = sexp.GetQuotedString(libNameNode, 1)
	}

	if atNode, found := sexp.FindList(node, "at"); found {
		if pos, err := sexp.GetPosition(atNode); err == nil {
			sym.Position = pos.Position
			sym.Angle = pos.Angle
		}
	}

	if unitNode, found := sexp.FindList(node, "unit"); found {
		sym.Unit, _ = sexp.GetInt(unitNode, 1)
	}

	if ibNode, found := sexp.FindList(node, "in_bom"); found {
		sym.InBom = sexp.GetYesNo(ibNode)
	}

	if obNode, found := sexp.FindList(node, "on_board"); found {
		sym.OnBoard = sexp.GetYesNo(obNode)
	}

	if uuidNode, found := sexp.FindList(node, "uuid"); found {
		sym.UUID, _ = sexp.GetString(uuidNode, 1)
	}

	for _, pn := range sexp.FindAllNodes(node, "property") {
		prop, err := sexp.GetProperty(pn)
		if err == nil {
			sym.Properties = append(sym.Properties, prop)
		}
	}

	return sym
}
