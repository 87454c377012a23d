package symlib

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSymbolNotFound is returned by operations whose target symbol must exist.
// Lookups report a missing symbol with a boolean instead.
var ErrSymbolNotFound = errors.New("symbol not found")

// SchemaError reports a well-formed S-expression that is not a valid symbol library.
type SchemaError struct {
	What    string
	Context string
}

func (e *SchemaError) Error() string {
	if e.Context == "" {
		return "schema error: " + e.What
	}
	return fmt.Sprintf("schema error: %s (%s)", e.What, e.Context)
}

// UnresolvedReferenceError reports a derivation from a symbol that does not exist.
type UnresolvedReferenceError struct {
	Symbol    string // symbol holding the reference
	Reference string // missing parent name
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("symbol %q derives from unknown symbol %q", e.Symbol, e.Reference)
}

// CyclicDerivationError reports a derivation chain that revisits a symbol.
// Chain lists the names in the order they were followed; the last entry
// repeats an earlier one.
type CyclicDerivationError struct {
	Chain []string
}

func (e *CyclicDerivationError) Error() string {
	return "cyclic derivation: " + strings.Join(e.Chain, " -> ")
}

// DuplicateNameError reports an attempt to create a symbol whose name is taken.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("symbol %q already exists", e.Name)
}

func notFound(name string) error {
	return fmt.Errorf("%w: %q", ErrSymbolNotFound, name)
}
