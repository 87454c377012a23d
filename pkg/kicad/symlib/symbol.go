package symlib

import (
	"strings"

	"github.com/OpenTraceLab/kicad-symlib/pkg/kicad/sexp"
	"github.com/OpenTraceLab/kicad-symlib/pkg/kicad/sexp/kicadsexp"
)

// FieldKind tags the children of a symbol definition.
type FieldKind int

const (
	// FieldExtends is the (extends "parent") entry
	FieldExtends FieldKind = iota
	// FieldProperty is a (property "key" "value" ...) entry
	FieldProperty
	// FieldPayload is anything else: pins, graphics, unit sub-symbols,
	// flags such as (in_bom yes). Kept verbatim.
	FieldPayload
)

// Field is one child of a symbol definition, in file order.
type Field struct {
	Kind     FieldKind
	Node     kicadsexp.Node
	Property *Property // set for FieldProperty
}

// Property is one (property ...) entry of a symbol.
type Property struct {
	node  *kicadsexp.List
	key   string
	value string
}

// Key returns the property name.
func (p *Property) Key() string { return p.key }

// Value returns the property value.
func (p *Property) Value() string { return p.value }

// Node returns the underlying (property ...) list.
func (p *Property) Node() *kicadsexp.List { return p.node }

// Attributes decodes the display attributes (position, effects, visibility).
func (p *Property) Attributes() (sexp.Property, error) {
	return sexp.GetProperty(p.node)
}

func (p *Property) setValue(value string) {
	p.value = value
	if leaf, ok := p.node.Get(2).(*kicadsexp.Leaf); ok {
		leaf.SetValue(value)
		leaf.SetQuoted(true)
		return
	}
	p.node.Insert(2, kicadsexp.NewString(value))
}

// Pin is a pin found in a symbol's graphics payload.
type Pin struct {
	Unit   string // name of the unit sub-symbol holding the pin
	Number string
	Name   string
	Type   string // electrical type (input, passive, ...)
	Style  string // graphic style (line, inverted, ...)
}

// Symbol is one symbol definition of a library.
type Symbol struct {
	node    *kicadsexp.List
	name    *kicadsexp.Leaf
	extends *kicadsexp.Leaf // parent name atom, nil for standalone symbols
	fields  []Field

	props map[string]*Property // last definition of each key
	order []string             // keys in order of first appearance
}

// Name returns the symbol name.
func (s *Symbol) Name() string { return s.name.Value() }

// DerivedFrom returns the name of the parent symbol, if any.
func (s *Symbol) DerivedFrom() (string, bool) {
	if s.extends == nil {
		return "", false
	}
	return s.extends.Value(), true
}

// Properties returns a copy of the symbol's own property mapping, without
// anything inherited from a parent.
func (s *Symbol) Properties() *Properties {
	p := NewProperties()
	for _, key := range s.order {
		p.Set(key, s.props[key].value)
	}
	return p
}

// Property returns the symbol's own property entry for key.
func (s *Symbol) Property(key string) (*Property, bool) {
	p, ok := s.props[key]
	return p, ok
}

// Fields returns the symbol's children in file order.
func (s *Symbol) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Payload returns the children this package does not interpret.
func (s *Symbol) Payload() []kicadsexp.Node {
	var nodes []kicadsexp.Node
	for _, f := range s.fields {
		if f.Kind == FieldPayload {
			nodes = append(nodes, f.Node)
		}
	}
	return nodes
}

// Node returns the underlying (symbol ...) list, synchronized with the typed view.
func (s *Symbol) Node() *kicadsexp.List {
	s.sync()
	return s.node
}

// Units returns the names of the unit sub-symbols, e.g. "R_0_1".
func (s *Symbol) Units() []string {
	var units []string
	for _, f := range s.fields {
		if f.Kind != FieldPayload {
			continue
		}
		list, ok := f.Node.(*kicadsexp.List)
		if !ok || list.Keyword() != "symbol" {
			continue
		}
		if name, err := sexp.GetString(list, 1); err == nil {
			units = append(units, name)
		}
	}
	return units
}

// Pins returns the pins defined in the payload, directly or inside unit sub-symbols.
func (s *Symbol) Pins() []Pin {
	var pins []Pin
	for _, f := range s.fields {
		if f.Kind != FieldPayload {
			continue
		}
		list, ok := f.Node.(*kicadsexp.List)
		if !ok {
			continue
		}
		switch list.Keyword() {
		case "pin":
			pins = append(pins, parsePin(list, ""))
		case "symbol":
			unit, _ := sexp.GetString(list, 1)
			for _, pn := range sexp.FindAllNodes(list, "pin") {
				pins = append(pins, parsePin(pn, unit))
			}
		}
	}
	return pins
}

// parsePin parses a pin definition
func parsePin(node *kicadsexp.List, unit string) Pin {
	pin := Pin{Unit: unit}

	// Pin type (input, output, etc.)
	pin.Type, _ = sexp.GetString(node, 1)

	// Pin style (line, inverted, etc.)
	pin.Style, _ = sexp.GetString(node, 2)

	if nameNode, found := sexp.FindList(node, "name"); found {
		pin.Name, _ = sexp.GetQuotedString(nameNode, 1)
	}

	if numNode, found := sexp.FindList(node, "number"); found {
		pin.Number, _ = sexp.GetQuotedString(numNode, 1)
	}

	return pin
}

// sync writes the field sequence back into the symbol's list
func (s *Symbol) sync() {
	items := make([]kicadsexp.Node, 0, len(s.fields)+2)
	items = append(items, s.node.Get(0), s.name)
	for _, f := range s.fields {
		items = append(items, f.Node)
	}
	s.node.SetItems(items)
}

// setOwn records a property definition; the last definition of a key wins
// but the key keeps its first position.
func (s *Symbol) setOwn(p *Property) {
	if _, ok := s.props[p.key]; !ok {
		s.order = append(s.order, p.key)
	}
	s.props[p.key] = p
}

// insertProperty places a new property field after the last existing one,
// or after (extends ...), or before the first unit sub-symbol.
func (s *Symbol) insertProperty(p *Property) {
	at := -1
	for i, f := range s.fields {
		if f.Kind == FieldProperty || f.Kind == FieldExtends {
			at = i + 1
		}
	}
	if at < 0 {
		at = len(s.fields)
		for i, f := range s.fields {
			if list, ok := f.Node.(*kicadsexp.List); ok && isUnitOrGraphic(list.Keyword()) {
				at = i
				break
			}
		}
	}

	field := Field{Kind: FieldProperty, Node: p.node, Property: p}
	s.fields = append(s.fields[:at], append([]Field{field}, s.fields[at:]...)...)
	s.setOwn(p)
	s.sync()
}

// removeProperty drops every definition of key.
func (s *Symbol) removeProperty(key string) bool {
	if _, ok := s.props[key]; !ok {
		return false
	}
	kept := s.fields[:0]
	for _, f := range s.fields {
		if f.Kind == FieldProperty && f.Property.key == key {
			continue
		}
		kept = append(kept, f)
	}
	s.fields = kept
	delete(s.props, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.sync()
	return true
}

// rename changes the symbol name and the names of its unit sub-symbols,
// which KiCad requires to start with "<name>_".
func (s *Symbol) rename(name string) {
	old := s.name.Value()
	s.name.SetValue(name)
	for _, f := range s.fields {
		list, ok := f.Node.(*kicadsexp.List)
		if !ok || list.Keyword() != "symbol" {
			continue
		}
		unit, err := sexp.GetLeaf(list, 1)
		if err == nil && strings.HasPrefix(unit.Value(), old+"_") {
			unit.SetValue(name + strings.TrimPrefix(unit.Value(), old))
		}
	}
}

func isUnitOrGraphic(keyword string) bool {
	switch keyword {
	case "symbol", "pin", "rectangle", "circle", "arc", "polyline", "bezier", "text", "text_box", "embedded_fonts":
		return true
	}
	return false
}
