package cmd

import (
	"fmt"
	"os"
	"sort"

	refsexp "github.com/chewxy/sexp"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/kicad-symlib/pkg/kicad/sexp/kicadsexp"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show S-expression statistics of any KiCad file",
	Long: `Tokenize and parse a KiCad file without interpreting it and print
token and tree statistics. The file is also read with a general-purpose
S-expression parser as a cross-check of the lossless reader.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

// treeStats counts the nodes of a parsed tree
type treeStats struct {
	lists    int
	leaves   int
	depth    int
	keywords map[string]int
}

func (s *treeStats) walk(n kicadsexp.Node, depth int) {
	s.depth = max(s.depth, depth)
	list, ok := n.(*kicadsexp.List)
	if !ok {
		s.leaves++
		return
	}
	s.lists++
	if kw := list.Keyword(); kw != "" {
		s.keywords[kw]++
	}
	for _, item := range list.Items() {
		s.walk(item, depth+1)
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	filename := args[0]

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	text := string(data)

	fmt.Printf("File: %s\n", filename)
	fmt.Printf("Size: %d bytes\n", len(data))
	fmt.Println()

	tokens := kicadsexp.Tokenize(text)
	counts := make(map[kicadsexp.TokenType]int)
	for _, tok := range tokens {
		counts[tok.Type]++
	}
	fmt.Println("Tokens:")
	for _, tt := range []kicadsexp.TokenType{
		kicadsexp.TokenLeftParen,
		kicadsexp.TokenRightParen,
		kicadsexp.TokenSymbol,
		kicadsexp.TokenString,
		kicadsexp.TokenWhitespace,
		kicadsexp.TokenInvalid,
	} {
		if counts[tt] > 0 {
			fmt.Printf("  %-12s %d\n", tt.String()+":", counts[tt])
		}
	}
	fmt.Println()

	root, err := kicadsexp.ParseTokens(tokens)
	if err != nil {
		return fmt.Errorf("failed to parse s-expression: %w", err)
	}

	stats := &treeStats{keywords: make(map[string]int)}
	stats.walk(root, 0)

	fmt.Println("Tree:")
	fmt.Printf("  Root:      %s\n", root.Keyword())
	fmt.Printf("  Lists:     %d\n", stats.lists)
	fmt.Printf("  Atoms:     %d\n", stats.leaves)
	fmt.Printf("  Max depth: %d\n", stats.depth)
	fmt.Printf("  Lossless:  %v\n", kicadsexp.Format(root, "") == text)
	fmt.Println()

	if verbose {
		keywords := make([]string, 0, len(stats.keywords))
		for kw := range stats.keywords {
			keywords = append(keywords, kw)
		}
		sort.Slice(keywords, func(i, j int) bool {
			if stats.keywords[keywords[i]] != stats.keywords[keywords[j]] {
				return stats.keywords[keywords[i]] > stats.keywords[keywords[j]]
			}
			return keywords[i] < keywords[j]
		})
		fmt.Println("Keywords:")
		for _, kw := range keywords {
			fmt.Printf("  %-20s %d\n", kw, stats.keywords[kw])
		}
		fmt.Println()
	}

	fmt.Println("Reference parser (github.com/chewxy/sexp):")
	sexps, err := refsexp.ParseString(text)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
		return nil
	}
	fmt.Printf("  Expressions: %d\n", len(sexps))
	if len(sexps) > 0 && !sexps[0].IsLeaf() {
		leaves := int(sexps[0].LeafCount())
		fmt.Printf("  Leaf count:  %d\n", leaves)
		if leaves != stats.leaves {
			fmt.Printf("  Differs from the lossless reader by %d atoms\n", leaves-stats.leaves)
		}
	}
	return nil
}
