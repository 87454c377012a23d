package symlib

import (
	"iter"
	"strconv"
	"strings"
)

// Properties is an ordered string mapping. Keys keep the position of their
// first insertion; overwriting a key does not move it.
// The zero value is not usable; use NewProperties or PropertiesFrom.
type Properties struct {
	keys   []string
	values map[string]string
}

// NewProperties returns an empty mapping.
func NewProperties() *Properties {
	return &Properties{values: make(map[string]string)}
}

// PropertiesFrom builds a mapping from alternating keys and values.
// A trailing key without a value maps to "".
func PropertiesFrom(kv ...string) *Properties {
	p := NewProperties()
	for i := 0; i < len(kv); i += 2 {
		value := ""
		if i+1 < len(kv) {
			value = kv[i+1]
		}
		p.Set(kv[i], value)
	}
	return p
}

// Len returns the number of keys.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Get returns the value for key.
func (p *Properties) Get(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	v, ok := p.values[key]
	return v, ok
}

// Set inserts key at the end or overwrites its value in place.
func (p *Properties) Set(key, value string) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Delete removes key and reports whether it was present.
func (p *Properties) Delete(key string) bool {
	if _, ok := p.values[key]; !ok {
		return false
	}
	delete(p.values, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the keys in order.
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.keys...)
}

// All iterates over key/value pairs in order.
func (p *Properties) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if p == nil {
			return
		}
		for _, k := range p.keys {
			if !yield(k, p.values[k]) {
				return
			}
		}
	}
}

// Map returns an unordered copy.
func (p *Properties) Map() map[string]string {
	m := make(map[string]string, p.Len())
	for k, v := range p.All() {
		m[k] = v
	}
	return m
}

// Clone returns an independent copy.
func (p *Properties) Clone() *Properties {
	c := NewProperties()
	for k, v := range p.All() {
		c.Set(k, v)
	}
	return c
}

// Overlay returns a new mapping holding p with top applied over it:
// values of shared keys come from top, keys only in top are appended.
func (p *Properties) Overlay(top *Properties) *Properties {
	out := p.Clone()
	for k, v := range top.All() {
		out.Set(k, v)
	}
	return out
}

// Equal reports whether both mappings hold the same keys in the same order
// with the same values.
func (p *Properties) Equal(other *Properties) bool {
	if p.Len() != other.Len() {
		return false
	}
	for i, k := range p.Keys() {
		if other.keys[i] != k || other.values[k] != p.values[k] {
			return false
		}
	}
	return true
}

func (p *Properties) String() string {
	var b strings.Builder
	b.WriteByte('{')
	i := 0
	for k, v := range p.All() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(k))
		b.WriteString(": ")
		b.WriteString(strconv.Quote(v))
		i++
	}
	b.WriteByte('}')
	return b.String()
}
