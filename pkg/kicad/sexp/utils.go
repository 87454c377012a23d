package sexp

import (
	"fmt"
	"strconv"

	"github.com/OpenTraceLab/kicad-symlib/pkg/kicad/sexp/kicadsexp"
)

// S-expression navigation helpers

// FindNode searches for a child node with the given key.
// A child matches when it is an atom equal to key or a list headed by key.
// Example: FindNode(node, "at") finds (at 100 50) in a list
func FindNode(s kicadsexp.Node, key string) (kicadsexp.Node, bool) {
	list, ok := s.(*kicadsexp.List)
	if !ok {
		return nil, false
	}

	for _, item := range list.Items() {
		switch item := item.(type) {
		case *kicadsexp.Leaf:
			if !item.Quoted() && item.Value() == key {
				return item, true
			}
		case *kicadsexp.List:
			if item.Keyword() == key {
				return item, true
			}
		}
	}

	return nil, false
}

// FindList is FindNode restricted to list children.
func FindList(s kicadsexp.Node, key string) (*kicadsexp.List, bool) {
	items := FindAllNodes(s, key)
	if len(items) == 0 {
		return nil, false
	}
	return items[0], true
}

// FindAllNodes finds all child lists with the given key
func FindAllNodes(s kicadsexp.Node, key string) []*kicadsexp.List {
	var results []*kicadsexp.List

	list, ok := s.(*kicadsexp.List)
	if !ok {
		return results
	}

	for _, item := range list.Items() {
		if sub, ok := item.(*kicadsexp.List); ok && sub.Keyword() == key {
			results = append(results, sub)
		}
	}

	return results
}

// GetListItems returns all items in a list (excluding the first symbol/key)
// Example: GetListItems((layers "F.Cu" "B.Cu")) returns ["F.Cu", "B.Cu"]
func GetListItems(s kicadsexp.Node) []kicadsexp.Node {
	list, ok := s.(*kicadsexp.List)
	if !ok || list.Len() <= 1 {
		return []kicadsexp.Node{}
	}
	return list.Items()[1:]
}

// Typed value extraction helpers

// GetLeaf returns the atom at the given index in a list
// Index 0 is the key, 1 is first value, etc.
func GetLeaf(s kicadsexp.Node, index int) (*kicadsexp.Leaf, error) {
	list, ok := s.(*kicadsexp.List)
	if !ok {
		return nil, fmt.Errorf("expected list, got leaf")
	}

	if index < 0 || index >= list.Len() {
		return nil, fmt.Errorf("index %d out of bounds (length %d)", index, list.Len())
	}

	leaf, ok := list.Get(index).(*kicadsexp.Leaf)
	if !ok {
		return nil, fmt.Errorf("expected atom at index %d, got list", index)
	}
	return leaf, nil
}

// GetString extracts the decoded value of the atom at the given index.
// Quoted and bare atoms are treated alike.
func GetString(s kicadsexp.Node, index int) (string, error) {
	leaf, err := GetLeaf(s, index)
	if err != nil {
		return "", err
	}
	return leaf.Value(), nil
}

// GetQuotedString extracts a string that KiCad writes quoted.
// The lexer keeps quoted strings whole, so this only differs from GetString
// in rejecting a list at that index.
func GetQuotedString(s kicadsexp.Node, index int) (string, error) {
	return GetString(s, index)
}

// GetFloat extracts a float64 value at the given index
func GetFloat(s kicadsexp.Node, index int) (float64, error) {
	str, err := GetString(s, index)
	if err != nil {
		return 0, err
	}

	val, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse float %q: %w", str, err)
	}

	return val, nil
}

// GetInt extracts an int value at the given index
func GetInt(s kicadsexp.Node, index int) (int, error) {
	str, err := GetString(s, index)
	if err != nil {
		return 0, err
	}

	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("failed to parse int %q: %w", str, err)
	}

	return val, nil
}

// HasSymbol checks if a list contains a specific bare atom
func HasSymbol(s kicadsexp.Node, symbol string) bool {
	list, ok := s.(*kicadsexp.List)
	if !ok {
		return false
	}

	for _, item := range list.Items() {
		if leaf, ok := item.(*kicadsexp.Leaf); ok && !leaf.Quoted() && leaf.Value() == symbol {
			return true
		}
	}

	return false
}

// GetNodeName returns the first symbol of a list (the node type/name)
func GetNodeName(s kicadsexp.Node) (string, error) {
	switch s := s.(type) {
	case *kicadsexp.Leaf:
		return s.Value(), nil
	case *kicadsexp.List:
		if leaf, ok := s.Head().(*kicadsexp.Leaf); ok {
			return leaf.Value(), nil
		}
	}
	return "", fmt.Errorf("expected symbol at head of list")
}

// GetYesNo reads a (keyword yes|no) flag. Older files write a bare keyword
// meaning "yes", e.g. (hide) or a bare hide atom.
func GetYesNo(s kicadsexp.Node) bool {
	if s.IsLeaf() {
		return true
	}
	val, err := GetString(s, 1)
	if err != nil {
		return true
	}
	return val == "yes"
}

// Domain-specific extraction helpers

// GetPosition extracts a PositionAngle from an (at X Y [angle]) node.
// Symbol files store millimeters and degrees.
func GetPosition(s kicadsexp.Node) (PositionAngle, error) {
	key, err := GetNodeName(s)
	if err != nil || s.IsLeaf() {
		return PositionAngle{}, fmt.Errorf("expected (at X Y [angle]) list")
	}
	if key != "at" {
		return PositionAngle{}, fmt.Errorf("expected 'at', got %q", key)
	}

	x, err := GetFloat(s, 1)
	if err != nil {
		return PositionAngle{}, fmt.Errorf("failed to parse X coordinate: %w", err)
	}

	y, err := GetFloat(s, 2)
	if err != nil {
		return PositionAngle{}, fmt.Errorf("failed to parse Y coordinate: %w", err)
	}

	result := PositionAngle{Position: Position{X: x, Y: y}}

	// Angle is optional
	if s.Len() > 3 {
		angle, err := GetFloat(s, 3)
		if err == nil {
			result.Angle = Angle(angle)
		}
	}

	return result, nil
}

// GetEffects extracts text effects from an (effects ...) node
func GetEffects(s kicadsexp.Node) (Effects, error) {
	effects := Effects{}

	if s.IsLeaf() {
		return effects, fmt.Errorf("expected (effects ...) list")
	}

	if fontNode, ok := FindList(s, "font"); ok {
		font, err := GetFont(fontNode)
		if err == nil {
			effects.Font = font
		}
	}

	if justifyNode, ok := FindList(s, "justify"); ok {
		justify, err := GetJustify(justifyNode)
		if err == nil {
			effects.Justify = justify
		}
	}

	// (effects ... hide) before KiCad 8, (effects ... (hide yes)) from KiCad 8 on
	if hideNode, ok := FindNode(s, "hide"); ok {
		effects.Hide = GetYesNo(hideNode)
	}

	return effects, nil
}

// GetFont extracts font properties from a (font ...) node
func GetFont(s kicadsexp.Node) (Font, error) {
	font := Font{}

	if s.IsLeaf() {
		return font, fmt.Errorf("expected (font ...) list")
	}

	if sizeNode, ok := FindList(s, "size"); ok {
		h, _ := GetFloat(sizeNode, 1)
		w, _ := GetFloat(sizeNode, 2)
		font.Size = Size{Width: w, Height: h}
	}

	if thicknessNode, ok := FindList(s, "thickness"); ok {
		font.Thickness, _ = GetFloat(thicknessNode, 1)
	}

	if n, ok := FindNode(s, "bold"); ok {
		font.Bold = GetYesNo(n)
	}
	if n, ok := FindNode(s, "italic"); ok {
		font.Italic = GetYesNo(n)
	}

	if faceNode, ok := FindList(s, "face"); ok {
		font.Face, _ = GetQuotedString(faceNode, 1)
	}

	return font, nil
}

// GetJustify extracts justification from a (justify ...) node
func GetJustify(s kicadsexp.Node) (Justify, error) {
	justify := Justify{
		Horizontal: "center",
		Vertical:   "center",
	}

	for _, item := range GetListItems(s) {
		leaf, ok := item.(*kicadsexp.Leaf)
		if !ok {
			continue
		}
		switch leaf.Value() {
		case "left":
			justify.Horizontal = "left"
		case "right":
			justify.Horizontal = "right"
		case "top":
			justify.Vertical = "top"
		case "bottom":
			justify.Vertical = "bottom"
		case "mirror":
			justify.Mirror = true
		}
	}

	return justify, nil
}

// GetProperty extracts a property from a (property ...) node
func GetProperty(s kicadsexp.Node) (Property, error) {
	prop := Property{}

	if name, err := GetNodeName(s); err != nil || s.IsLeaf() || name != "property" {
		return prop, fmt.Errorf("expected (property ...) list")
	}

	// Format: (property "key" "value" (at X Y angle) (effects ...))
	key, err := GetQuotedString(s, 1)
	if err != nil {
		return prop, fmt.Errorf("failed to parse property key: %w", err)
	}
	prop.Key = key

	value, err := GetQuotedString(s, 2)
	if err != nil {
		value = "" // Value can be empty
	}
	prop.Value = value

	if idNode, ok := FindList(s, "id"); ok {
		prop.ID, _ = GetInt(idNode, 1)
	}

	if atNode, ok := FindList(s, "at"); ok {
		pos, err := GetPosition(atNode)
		if err == nil {
			prop.Position = pos
		}
	}

	if effectsNode, ok := FindList(s, "effects"); ok {
		effects, err := GetEffects(effectsNode)
		if err == nil {
			prop.Effects = effects
		}
	}

	prop.Hidden = prop.Effects.Hide
	if hideNode, ok := FindList(s, "hide"); ok {
		prop.Hidden = GetYesNo(hideNode)
	}

	return prop, nil
}
