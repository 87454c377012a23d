package symlib

import (
	"strconv"

	"github.com/OpenTraceLab/kicad-symlib/pkg/kicad/sexp"
	"github.com/OpenTraceLab/kicad-symlib/pkg/kicad/sexp/kicadsexp"
)

// DeriveSymbol creates a symbol named name that extends template. Only the
// overrides are stored on the new symbol; everything else is inherited on
// read. payload nodes (pins, graphics) are copied into the symbol. The new
// symbol is placed after the last symbol of the library.
//
// It fails with *DuplicateNameError when name is taken and with
// *UnresolvedReferenceError when template does not exist. The library is
// unchanged on failure.
func (l *Library) DeriveSymbol(name, template string, overrides *Properties, payload ...kicadsexp.Node) (*Symbol, error) {
	if name == "" {
		return nil, &SchemaError{What: "symbol definition without a name"}
	}
	if _, exists := l.byName[name]; exists {
		return nil, &DuplicateNameError{Name: name}
	}
	if _, exists := l.byName[template]; !exists {
		return nil, &UnresolvedReferenceError{Symbol: name, Reference: template}
	}

	node := kicadsexp.NewNode("symbol",
		kicadsexp.NewString(name),
		kicadsexp.NewNode("extends", kicadsexp.NewString(template)),
	)
	nextID := l.nextPropertyID(template, nil)
	for key, value := range overrides.All() {
		prop := l.newPropertyNode(key, value, l.inheritedProperty(template, key), &nextID)
		node.Append(prop)
	}
	for _, n := range payload {
		node.Append(kicadsexp.Clone(n))
	}

	sym, err := buildSymbol(node)
	if err != nil {
		return nil, err
	}
	l.insertSymbol(sym)
	return sym, nil
}

// AddSymbol copies a (symbol "name" ...) definition into the library, for
// example one taken from another library or a schematic's symbol cache.
func (l *Library) AddSymbol(node *kicadsexp.List) (*Symbol, error) {
	if node.Keyword() != "symbol" {
		return nil, &SchemaError{What: "expected a symbol definition", Context: "got '" + node.Keyword() + "'"}
	}
	sym, err := buildSymbol(kicadsexp.Clone(node).(*kicadsexp.List))
	if err != nil {
		return nil, err
	}
	if _, exists := l.byName[sym.Name()]; exists {
		return nil, &DuplicateNameError{Name: sym.Name()}
	}
	l.insertSymbol(sym)
	return sym, nil
}

// SetProperty sets one of the symbol's own properties, inserting it when
// the symbol does not define the key yet. The effective value of symbols
// deriving from this one follows.
func (l *Library) SetProperty(name, key, value string) error {
	sym, ok := l.byName[name]
	if !ok {
		return notFound(name)
	}
	if key == "" {
		return &SchemaError{What: "property without a name", Context: "symbol " + strconv.Quote(name)}
	}

	if p, has := sym.Property(key); has {
		p.setValue(value)
		return nil
	}

	parent, _ := sym.DerivedFrom()
	nextID := l.nextPropertyID(parent, sym)
	node := l.newPropertyNode(key, value, l.inheritedProperty(parent, key), &nextID)
	sym.insertProperty(&Property{node: node, key: key, value: value})
	return nil
}

// RemoveProperty deletes one of the symbol's own properties. An inherited
// value becomes visible again. It reports whether the key was defined.
func (l *Library) RemoveProperty(name, key string) (bool, error) {
	sym, ok := l.byName[name]
	if !ok {
		return false, notFound(name)
	}
	return sym.removeProperty(key), nil
}

// RenameSymbol renames a symbol together with its unit sub-symbols and
// updates the (extends ...) of every symbol derived from it.
func (l *Library) RenameSymbol(oldName, newName string) error {
	sym, ok := l.byName[oldName]
	if !ok {
		return notFound(oldName)
	}
	if oldName == newName {
		return nil
	}
	if newName == "" {
		return &SchemaError{What: "symbol definition without a name"}
	}
	if _, exists := l.byName[newName]; exists {
		return &DuplicateNameError{Name: newName}
	}

	for _, other := range l.symbols {
		if parent, ok := other.DerivedFrom(); ok && parent == oldName {
			other.extends.SetValue(newName)
		}
	}
	sym.rename(newName)
	delete(l.byName, oldName)
	l.byName[newName] = sym
	return nil
}

// DeleteSymbol removes a symbol. Symbols derived from it keep their
// reference and fail to resolve until it is fixed; check Dependents first.
func (l *Library) DeleteSymbol(name string) error {
	sym, ok := l.byName[name]
	if !ok {
		return notFound(name)
	}
	if i := l.root.IndexOf(sym.node); i >= 0 {
		l.root.Remove(i)
	}
	for i, s := range l.symbols {
		if s == sym {
			l.symbols = append(l.symbols[:i], l.symbols[i+1:]...)
			break
		}
	}
	delete(l.byName, name)
	return nil
}

// insertSymbol adds sym after the last symbol in the document
func (l *Library) insertSymbol(sym *Symbol) {
	at := l.root.Len()
	if n := len(l.symbols); n > 0 {
		if i := l.root.IndexOf(l.symbols[n-1].node); i >= 0 {
			at = i + 1
		}
	}
	l.root.Insert(at, sym.node)
	l.symbols = append(l.symbols, sym)
	l.byName[sym.Name()] = sym
}

// newPropertyNode builds a (property ...) list. Display attributes are
// copied from src when the key is inherited, otherwise the property is
// placed at the origin and hidden.
func (l *Library) newPropertyNode(key, value string, src *Property, nextID *int) *kicadsexp.List {
	node := kicadsexp.NewNode("property", kicadsexp.NewString(key), kicadsexp.NewString(value))
	version := l.versionNumber()

	if src != nil {
		for _, item := range src.node.Items()[2:] {
			if _, isList := item.(*kicadsexp.List); isList {
				node.Append(kicadsexp.Clone(item))
			}
		}
		if _, hasID := sexp.FindList(node, "id"); hasID || version >= propertyIDVersion {
			return node
		}
	}

	if version < propertyIDVersion {
		node.Insert(3, kicadsexp.NewNode("id", kicadsexp.NewSymbol(strconv.Itoa(*nextID))))
		*nextID++
	}
	if src != nil {
		return node
	}

	size := strconv.FormatFloat(l.config.DefaultFontSize, 'f', -1, 64)
	font := kicadsexp.NewNode("font", kicadsexp.NewNode("size", kicadsexp.NewSymbol(size), kicadsexp.NewSymbol(size)))
	node.Append(kicadsexp.NewNode("at", kicadsexp.NewSymbol("0"), kicadsexp.NewSymbol("0"), kicadsexp.NewSymbol("0")))
	hide := kicadsexp.NewNode("hide", kicadsexp.NewSymbol("yes"))
	switch {
	case version >= hideFieldVersion:
		node.Append(hide, kicadsexp.NewNode("effects", font))
	case version >= hideYesVersion:
		node.Append(kicadsexp.NewNode("effects", font, hide))
	default:
		node.Append(kicadsexp.NewNode("effects", font, kicadsexp.NewSymbol("hide")))
	}
	return node
}

// nextPropertyID returns the first free (id N) for a new field of a symbol
// deriving from parent. Only KiCad 6 files carry ids.
func (l *Library) nextPropertyID(parent string, sym *Symbol) int {
	next := 4 // ids 0-3 are the mandatory fields
	consider := func(s *Symbol) {
		for _, key := range s.order {
			if idNode, ok := sexp.FindList(s.props[key].node, "id"); ok {
				if id, err := sexp.GetInt(idNode, 1); err == nil && id >= next {
					next = id + 1
				}
			}
		}
	}

	if sym != nil {
		consider(sym)
	}
	seen := make(map[string]bool)
	for name := parent; name != "" && !seen[name]; {
		seen[name] = true
		s, ok := l.byName[name]
		if !ok {
			break
		}
		consider(s)
		name, _ = s.DerivedFrom()
	}
	return next
}
