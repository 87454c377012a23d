// Package sexp provides shared S-expression navigation helpers and the
// display-attribute types decoded from KiCad symbol properties.
package sexp

// Position represents a 2D coordinate in millimeters.
// Symbol library coordinates are stored in millimeters, no conversion is needed.
type Position struct {
	X float64
	Y float64
}

// Angle represents rotation in degrees
type Angle float64

// PositionAngle combines position with rotation
type PositionAngle struct {
	Position
	Angle Angle
}

// Size represents dimensions
type Size struct {
	Width  float64 // Width in mm
	Height float64 // Height in mm
}

// Effects represents text effects (font, justification, etc.)
type Effects struct {
	Font    Font
	Justify Justify
	Hide    bool
}

// Font represents font properties
type Font struct {
	Face      string  // Font face name (optional)
	Size      Size    // Font size
	Thickness float64 // Line thickness for stroke fonts
	Bold      bool
	Italic    bool
}

// Justify represents text justification
type Justify struct {
	Horizontal string // left, center, right
	Vertical   string // top, center, bottom
	Mirror     bool
}

// Property represents the decoded form of a (property ...) node,
// including its display attributes.
type Property struct {
	Key      string
	Value    string
	ID       int
	Position PositionAngle
	Effects  Effects
	// Hidden is true when the property is hidden either by the KiCad 9
	// (hide yes) field or by a hide flag inside (effects ...).
	Hidden bool
}
