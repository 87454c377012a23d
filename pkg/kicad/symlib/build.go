package symlib

import (
	"fmt"
	"strconv"

	"github.com/OpenTraceLab/kicad-symlib/pkg/kicad/sexp"
	"github.com/OpenTraceLab/kicad-symlib/pkg/kicad/sexp/kicadsexp"
)

// Build creates the typed library view of a parsed document. The tree is
// owned by the library afterwards. A nil cfg uses DefaultConfig.
func Build(root *kicadsexp.List, cfg *Config) (*Library, error) {
	cfg, err := resolveConfig(cfg)
	if err != nil {
		return nil, err
	}

	// The root should be a (kicad_symbol_lib ...) expression
	rootName, err := sexp.GetNodeName(root)
	if err != nil {
		return nil, &SchemaError{What: "not a KiCad symbol library", Context: err.Error()}
	}
	if rootName != RootKeyword {
		return nil, &SchemaError{
			What:    "not a KiCad symbol library",
			Context: fmt.Sprintf("expected '%s', got '%s'", RootKeyword, rootName),
		}
	}

	lib := &Library{
		root:   root,
		config: cfg,
		byName: make(map[string]*Symbol),
	}

	if err := parseHeader(root, lib); err != nil {
		return nil, err
	}

	lib.indent = cfg.Indent
	if lib.indent == "" {
		lib.indent = kicadsexp.DetectIndent(root)
	}
	if lib.indent == "" {
		lib.indent = kicadsexp.DefaultIndent
	}

	for _, symNode := range sexp.FindAllNodes(root, "symbol") {
		sym, err := buildSymbol(symNode)
		if err != nil {
			return nil, err
		}
		if _, dup := lib.byName[sym.Name()]; dup {
			return nil, &SchemaError{What: fmt.Sprintf("duplicate symbol name %q", sym.Name())}
		}
		lib.symbols = append(lib.symbols, sym)
		lib.byName[sym.Name()] = sym
	}

	if cfg.StrictReferences {
		if err := lib.Validate(); err != nil {
			return nil, err
		}
	}

	return lib, nil
}

// New creates an empty library in the current format.
func New(cfg *Config) (*Library, error) {
	return NewVersion(FormatVersion, cfg)
}

// NewVersion creates an empty library declaring the given format version.
// Headers follow the KiCad release that introduced the version.
func NewVersion(version int, cfg *Config) (*Library, error) {
	cfg, err := resolveConfig(cfg)
	if err != nil {
		return nil, err
	}

	root := kicadsexp.NewNode(RootKeyword,
		kicadsexp.NewNode("version", kicadsexp.NewSymbol(strconv.Itoa(version))),
	)
	if version < hideYesVersion {
		root.Append(kicadsexp.NewNode("generator", kicadsexp.NewSymbol(cfg.Generator)))
	} else {
		root.Append(
			kicadsexp.NewNode("generator", kicadsexp.NewString(cfg.Generator)),
			kicadsexp.NewNode("generator_version", kicadsexp.NewString(generatorVersion(version))),
		)
	}
	return Build(root, cfg)
}

// KnownVersion returns the newest symbol library format version that is
// not newer than version, e.g. the library format matching a schematic.
func KnownVersion(version int) int {
	known := MinSupportedVersion
	for _, v := range []int{MinSupportedVersion, propertyIDVersion, hideYesVersion, hideFieldVersion} {
		if v <= version {
			known = v
		}
	}
	return known
}

func generatorVersion(version int) string {
	if version >= hideFieldVersion {
		return "9.0"
	}
	return "8.0"
}

// parseHeader extracts version and generator information
func parseHeader(root *kicadsexp.List, lib *Library) error {
	versionNode, found := sexp.FindList(root, "version")
	if !found {
		return &SchemaError{What: "missing required 'version' field", Context: RootKeyword}
	}

	ver, err := sexp.GetString(versionNode, 1)
	if err != nil {
		return &SchemaError{What: "invalid 'version' field", Context: err.Error()}
	}
	lib.version = ver
	lib.checkVersion()

	if genNode, found := sexp.FindList(root, "generator"); found {
		lib.generator, _ = sexp.GetString(genNode, 1)
	}

	if genVerNode, found := sexp.FindList(root, "generator_version"); found {
		lib.generatorVersion, _ = sexp.GetString(genVerNode, 1)
	}

	return nil
}

// buildSymbol builds the typed view of a (symbol "name" ...) list
func buildSymbol(node *kicadsexp.List) (*Symbol, error) {
	name, err := sexp.GetLeaf(node, 1)
	if err != nil || name.Value() == "" {
		return nil, &SchemaError{What: "symbol definition without a name", Context: truncate(node.String())}
	}

	sym := &Symbol{
		node:  node,
		name:  name,
		props: make(map[string]*Property),
	}

	for _, item := range node.Items()[2:] {
		list, isList := item.(*kicadsexp.List)
		keyword := ""
		if isList {
			keyword = list.Keyword()
		}

		switch keyword {
		case "extends":
			parent, err := sexp.GetLeaf(list, 1)
			if err != nil || parent.Value() == "" {
				return nil, &SchemaError{What: "extends without a parent name", Context: "symbol " + strconv.Quote(sym.Name())}
			}
			if sym.extends != nil {
				return nil, &SchemaError{What: "more than one extends", Context: "symbol " + strconv.Quote(sym.Name())}
			}
			sym.extends = parent
			sym.fields = append(sym.fields, Field{Kind: FieldExtends, Node: list})

		case "property":
			key, err := sexp.GetString(list, 1)
			if err != nil || key == "" {
				return nil, &SchemaError{What: "property without a name", Context: "symbol " + strconv.Quote(sym.Name())}
			}
			value, _ := sexp.GetString(list, 2)
			prop := &Property{node: list, key: key, value: value}
			sym.fields = append(sym.fields, Field{Kind: FieldProperty, Node: list, Property: prop})
			sym.setOwn(prop)

		default:
			sym.fields = append(sym.fields, Field{Kind: FieldPayload, Node: item})
		}
	}

	return sym, nil
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) > 40 {
		return string(r[:40]) + "..."
	}
	return s
}
