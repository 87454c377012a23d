// Package kicadsexp provides a lossless S-expression reader and writer for
// KiCad files. Unlike general-purpose sexp libraries, parsed trees remember
// the whitespace between tokens and the source spelling of every atom, so an
// untouched tree writes back byte for byte.
package kicadsexp

import "strings"

// Node represents an S-expression node.
// It is either a *Leaf (atom or quoted string) or a *List.
type Node interface {
	// IsLeaf returns true if this is an atom (not a list)
	IsLeaf() bool

	// Len returns the number of elements in a list (0 for leaves)
	Len() int

	// String returns a compact single-line rendering
	String() string

	layoutInfo() *layout
}

// layout holds the formatting recorded for a node by the parser.
// Nodes built in memory have parsed == false and are laid out by the writer.
type layout struct {
	pre    string // whitespace preceding the node
	parsed bool
}

func (l *layout) layoutInfo() *layout { return l }

// Leaf is an atom: a bare symbol (keyword, number, identifier) or a quoted string.
type Leaf struct {
	layout
	value  string
	quoted bool
	raw    string // source spelling, empty once the value is changed
}

// NewSymbol creates a bare (unquoted) atom.
func NewSymbol(value string) *Leaf {
	return &Leaf{value: value}
}

// NewString creates a quoted string atom.
func NewString(value string) *Leaf {
	return &Leaf{value: value, quoted: true}
}

func (l *Leaf) IsLeaf() bool { return true }
func (l *Leaf) Len() int     { return 0 }

// Value returns the decoded value (quotes removed, escapes resolved).
func (l *Leaf) Value() string { return l.value }

// Quoted reports whether the atom is written as a quoted string.
func (l *Leaf) Quoted() bool { return l.quoted }

// SetValue replaces the value. The atom keeps its position and quoting but
// is re-encoded on write.
func (l *Leaf) SetValue(value string) {
	l.value = value
	l.raw = ""
}

// SetQuoted switches between quoted string and bare symbol spelling.
func (l *Leaf) SetQuoted(quoted bool) {
	if l.quoted != quoted {
		l.quoted = quoted
		l.raw = ""
	}
}

// Raw returns the text written for this atom.
func (l *Leaf) Raw() string {
	if l.raw != "" {
		return l.raw
	}
	if l.quoted || needsQuoting(l.value) {
		return Quote(l.value)
	}
	return l.value
}

func (l *Leaf) String() string { return l.Raw() }

// List is a parenthesized sequence of nodes. The first element is
// conventionally a keyword identifying the node's role.
type List struct {
	layout
	items []Node
	tail  string // whitespace before the closing parenthesis
	trail string // whitespace after the closing parenthesis (document root only)
}

// NewList creates a list from the given items.
func NewList(items ...Node) *List {
	return &List{items: append([]Node(nil), items...)}
}

// NewNode creates a list headed by a keyword: NewNode("at", NewSymbol("0")) is (at 0).
func NewNode(keyword string, args ...Node) *List {
	return NewList(append([]Node{NewSymbol(keyword)}, args...)...)
}

func (l *List) IsLeaf() bool { return false }
func (l *List) Len() int     { return len(l.items) }

// Head returns the first element of the list (nil if empty)
func (l *List) Head() Node {
	if len(l.items) == 0 {
		return nil
	}
	return l.items[0]
}

// Keyword returns the value of the leading atom, or "" if the list does not
// start with one.
func (l *List) Keyword() string {
	if leaf, ok := l.Head().(*Leaf); ok {
		return leaf.value
	}
	return ""
}

// Get returns the element at the given index
func (l *List) Get(index int) Node {
	if index < 0 || index >= len(l.items) {
		return nil
	}
	return l.items[index]
}

// Items returns a copy of the list elements.
func (l *List) Items() []Node {
	return append([]Node(nil), l.items...)
}

// SetItems replaces all elements. Recorded whitespace of the kept nodes is
// left untouched.
func (l *List) SetItems(items []Node) {
	l.items = append([]Node(nil), items...)
}

// Append adds nodes at the end of the list.
func (l *List) Append(nodes ...Node) {
	l.items = append(l.items, nodes...)
}

// Insert adds nodes before the element at index. An index past the end appends.
func (l *List) Insert(index int, nodes ...Node) {
	if index < 0 {
		index = 0
	}
	if index >= len(l.items) {
		l.items = append(l.items, nodes...)
		return
	}
	items := make([]Node, 0, len(l.items)+len(nodes))
	items = append(items, l.items[:index]...)
	items = append(items, nodes...)
	items = append(items, l.items[index:]...)
	l.items = items
}

// Remove deletes and returns the element at index.
func (l *List) Remove(index int) Node {
	if index < 0 || index >= len(l.items) {
		return nil
	}
	n := l.items[index]
	l.items = append(l.items[:index:index], l.items[index+1:]...)
	return n
}

// IndexOf returns the position of n among the direct children, or -1.
func (l *List) IndexOf(n Node) int {
	for i, item := range l.items {
		if item == n {
			return i
		}
	}
	return -1
}

func (l *List) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, item := range l.items {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(item.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Clone returns a deep copy of n with all recorded whitespace dropped, so
// the copy is laid out afresh wherever it is inserted. Atom spelling is kept.
func Clone(n Node) Node {
	switch n := n.(type) {
	case *Leaf:
		return &Leaf{value: n.value, quoted: n.quoted, raw: n.raw}
	case *List:
		items := make([]Node, len(n.items))
		for i, item := range n.items {
			items[i] = Clone(item)
		}
		return &List{items: items}
	}
	return nil
}

// Equal reports whether two trees have the same structure and atom values,
// ignoring layout and quoting style.
func Equal(a, b Node) bool {
	switch a := a.(type) {
	case *Leaf:
		bl, ok := b.(*Leaf)
		return ok && a.value == bl.value
	case *List:
		bl, ok := b.(*List)
		if !ok || len(a.items) != len(bl.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], bl.items[i]) {
				return false
			}
		}
		return true
	}
	return false
}
