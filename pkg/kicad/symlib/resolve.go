package symlib

import "errors"

// EffectiveProperties returns the properties of a symbol after derivation:
// the parent's effective properties overlaid with the symbol's own.
// Unknown names yield ErrSymbolNotFound.
func (l *Library) EffectiveProperties(name string) (*Properties, error) {
	sym, ok := l.byName[name]
	if !ok {
		return nil, notFound(name)
	}
	return l.resolve(sym)
}

// SymbolProperties is the lookup form of EffectiveProperties: an unknown
// name is reported by found == false, not as an error. err is set only for
// a broken derivation chain.
func (l *Library) SymbolProperties(name string) (props *Properties, found bool, err error) {
	sym, ok := l.byName[name]
	if !ok {
		return nil, false, nil
	}
	props, err = l.resolve(sym)
	return props, true, err
}

// Validate resolves every symbol and reports all broken references and
// derivation cycles.
func (l *Library) Validate() error {
	var errs []error
	for _, sym := range l.symbols {
		if _, err := l.chain(sym); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// resolve flattens the derivation chain of sym, root ancestor first
func (l *Library) resolve(sym *Symbol) (*Properties, error) {
	chain, err := l.chain(sym)
	if err != nil {
		return nil, err
	}
	props := NewProperties()
	for i := len(chain) - 1; i >= 0; i-- {
		props = props.Overlay(chain[i].Properties())
	}
	return props, nil
}

// chain returns sym followed by its ancestors, nearest first
func (l *Library) chain(sym *Symbol) ([]*Symbol, error) {
	chain := []*Symbol{sym}
	seen := map[string]bool{sym.Name(): true}

	for cur := sym; ; {
		parentName, ok := cur.DerivedFrom()
		if !ok {
			return chain, nil
		}
		if seen[parentName] {
			names := make([]string, 0, len(chain)+1)
			for _, s := range chain {
				names = append(names, s.Name())
			}
			return nil, &CyclicDerivationError{Chain: append(names, parentName)}
		}
		parent, found := l.byName[parentName]
		if !found {
			return nil, &UnresolvedReferenceError{Symbol: cur.Name(), Reference: parentName}
		}
		seen[parentName] = true
		chain = append(chain, parent)
		cur = parent
	}
}

// inheritedProperty finds the nearest definition of key among the ancestors
// of the symbol named parent, following the chain as far as it resolves.
func (l *Library) inheritedProperty(parent, key string) *Property {
	seen := make(map[string]bool)
	for name, ok := parent, parent != ""; ok && !seen[name]; {
		seen[name] = true
		sym, found := l.byName[name]
		if !found {
			return nil
		}
		if p, has := sym.Property(key); has {
			return p
		}
		name, ok = sym.DerivedFrom()
	}
	return nil
}
