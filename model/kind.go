package model

import (
	"fmt"
	"slices"
)

// Kind is an entity kind: a name, its parent kinds and its own fields.
// The effective model is resolved when the kind is declared and never
// changes afterwards.
type Kind struct {
	name      string
	parents   []*Kind
	own       []Field
	ancestors []*Kind

	model  Model
	byName map[string]int
	byKey  map[string]int
}

// Model is the ordered, resolved field table of a kind.
type Model []Field

// Names returns the local field names in model order.
func (m Model) Names() []string {
	names := make([]string, len(m))
	for i, f := range m {
		names[i] = f.Name
	}

	return names
}

// Keys returns the remote keys in model order.
func (m Model) Keys() []string {
	keys := make([]string, len(m))
	for i, f := range m {
		keys[i] = f.Key
	}

	return keys
}

// NewKind declares an entity kind.
//
// The model folds the own fields of every ancestor, base first, followed by
// fields. A field whose name was already declared replaces that declaration
// in place, so derived declarations win and keep the position of the first
// one. Ancestors shared through several parents are visited once.
//
// NewKind panics when two fields of the resolved model read the same remote
// key; kinds are package-level declarations, so this is a programming error.
func NewKind(name string, parents []*Kind, fields ...Field) *Kind {
	k := &Kind{
		name:    name,
		parents: slices.Clone(parents),
		own:     slices.Clone(fields),
	}

	k.ancestors = linearize(k)
	k.model = resolve(k.ancestors)

	k.byName = make(map[string]int, len(k.model))
	k.byKey = make(map[string]int, len(k.model))
	for i, f := range k.model {
		k.byName[f.Name] = i
		if prev, ok := k.byKey[f.Key]; ok {
			panic(fmt.Sprintf("model: kind %s: fields %q and %q both read key %q",
				name, k.model[prev].Name, f.Name, f.Key))
		}
		k.byKey[f.Key] = i
	}

	return k
}

// Name returns the kind name.
func (k *Kind) Name() string {
	return k.name
}

func (k *Kind) String() string {
	return k.name
}

// Model returns a copy of the resolved field table.
func (k *Kind) Model() Model {
	return slices.Clone(k.model)
}

// Field returns the descriptor of a local field.
func (k *Kind) Field(name string) (Field, bool) {
	i, ok := k.byName[name]
	if !ok {
		return Field{}, false
	}

	return k.model[i], true
}

// Ancestors returns the kind followed by its ancestors, nearest first.
func (k *Kind) Ancestors() []*Kind {
	return slices.Clone(k.ancestors)
}

// Is reports whether k is other or derives from it.
func (k *Kind) Is(other *Kind) bool {
	return slices.Contains(k.ancestors, other)
}

// linearize orders k and its ancestors nearest first. Each parent's own
// order is kept and a shared ancestor only appears after every kind that
// derives from it.
func linearize(k *Kind) []*Kind {
	chain := []*Kind{k}
	for _, p := range k.parents {
		chain = append(chain, p.ancestors...)
	}

	// Keep the last occurrence of every kind
	seen := make(map[*Kind]bool, len(chain))
	out := make([]*Kind, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		if seen[chain[i]] {
			continue
		}
		seen[chain[i]] = true
		out = append(out, chain[i])
	}
	slices.Reverse(out)

	return out
}

func resolve(ancestors []*Kind) Model {
	var m Model
	pos := make(map[string]int)

	for i := len(ancestors) - 1; i >= 0; i-- {
		for _, f := range ancestors[i].own {
			if j, ok := pos[f.Name]; ok {
				m[j] = f
				continue
			}
			pos[f.Name] = len(m)
			m = append(m, f)
		}
	}

	return m
}
