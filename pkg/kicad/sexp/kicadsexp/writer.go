package kicadsexp

import (
	"io"
	"strings"
)

// DefaultIndent is the indentation unit KiCad 7 and later use.
const DefaultIndent = "\t"

// Format renders a tree. Parsed nodes are written with their recorded
// whitespace; nodes built in memory are laid out the way KiCad writes them:
// every nested list on its own line, one indent unit deeper than its parent.
func Format(root Node, indent string) string {
	f := &formatter{indent: indent}
	if f.indent == "" {
		f.indent = DefaultIndent
	}
	f.node(root, 0, true, false)
	return f.b.String()
}

// Write renders a tree to w.
func Write(w io.Writer, root Node, indent string) error {
	_, err := io.WriteString(w, Format(root, indent))
	return err
}

// DetectIndent guesses the indentation unit of a parsed document from the
// whitespace in front of the root's first nested list. It returns "" when
// the document gives no hint.
func DetectIndent(root *List) string {
	for _, item := range root.items {
		l := item.layoutInfo()
		if item.IsLeaf() || !l.parsed {
			continue
		}
		nl := strings.LastIndexByte(l.pre, '\n')
		if nl < 0 {
			continue
		}
		if unit := l.pre[nl+1:]; unit != "" {
			return unit
		}
	}
	return ""
}

type formatter struct {
	b      strings.Builder
	indent string
}

func (f *formatter) node(n Node, depth int, first, afterList bool) {
	switch n := n.(type) {
	case *Leaf:
		f.lead(&n.layout, depth, first, afterList)
		if n.parsed && n.pre == "" && !first && f.glued() {
			f.b.WriteByte(' ')
		}
		f.b.WriteString(n.Raw())

	case *List:
		f.lead(&n.layout, depth, first, true)
		f.b.WriteByte('(')
		nested := false
		for i, item := range n.items {
			f.node(item, depth+1, i == 0, nested && !n.items[i-1].IsLeaf())
			if !item.IsLeaf() {
				nested = true
			}
		}
		switch {
		case n.parsed:
			f.b.WriteString(n.tail)
		case nested:
			f.newline(depth)
		}
		f.b.WriteByte(')')
		if depth == 0 {
			if n.parsed {
				f.b.WriteString(n.trail)
			} else {
				f.b.WriteByte('\n')
			}
		}
	}
}

// lead writes the whitespace in front of a node. Nodes built in memory go
// on their own line when they are lists or follow a list.
func (f *formatter) lead(l *layout, depth int, first, ownLine bool) {
	if l.parsed {
		f.b.WriteString(l.pre)
		return
	}
	switch {
	case depth == 0 || first:
	case ownLine:
		f.newline(depth)
	default:
		f.b.WriteByte(' ')
	}
}

// glued reports whether an atom written now would merge with the previous one
func (f *formatter) glued() bool {
	s := f.b.String()
	if s == "" {
		return false
	}
	switch s[len(s)-1] {
	case '(', ')', '"', ' ', '\t', '\n', '\r':
		return false
	}
	return true
}

func (f *formatter) newline(depth int) {
	f.b.WriteByte('\n')
	for i := 0; i < depth; i++ {
		f.b.WriteString(f.indent)
	}
}
