package block

import (
	"sort"
	"strings"
)

// Port is a named, typed connection point on a block interface.
// Its type is the set of lowercase word tokens derived from the name;
// structural matching between ports only ever consults this set.
// Ports are immutable once constructed.
type Port struct {
	Name   string
	tokens map[string]struct{}
}

// NewPort creates a port, deriving its type tokens from the name.
func NewPort(name string) Port {
	return Port{Name: name, tokens: Tokenize(name)}
}

// NewPorts creates a port list from names, preserving order.
func NewPorts(names ...string) []Port {
	ports := make([]Port, len(names))
	for i, n := range names {
		ports[i] = NewPort(n)
	}
	return ports
}

// Tokenize derives the type-token set for a port name: lowercase, split on
// commas, plus signs, and whitespace. Empty fragments are dropped.
func Tokenize(name string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == ',' || r == '+' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	tokens := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		tokens[f] = struct{}{}
	}
	return tokens
}

// Tokens returns the port's type tokens in sorted order.
// The returned slice is a copy.
func (p Port) Tokens() []string {
	out := make([]string, 0, len(p.tokens))
	for t := range p.tokens {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// HasToken reports whether the port's type contains the given token.
func (p Port) HasToken(tok string) bool {
	_, ok := p.tokens[tok]
	return ok
}

// Equal reports port equality by (name, token set).
func (p Port) Equal(other Port) bool {
	if p.Name != other.Name || len(p.tokens) != len(other.tokens) {
		return false
	}
	for t := range p.tokens {
		if _, ok := other.tokens[t]; !ok {
			return false
		}
	}
	return true
}

// Overlaps reports whether the two ports share at least one type token.
func Overlaps(a, b Port) bool {
	// Iterate the smaller set.
	small, large := a.tokens, b.tokens
	if len(large) < len(small) {
		small, large = large, small
	}
	for t := range small {
		if _, ok := large[t]; ok {
			return true
		}
	}
	return false
}

// SubsetOf reports whether every token of a is a token of b.
// The empty set is a subset of everything.
func SubsetOf(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		return false
	}
	for t := range a {
		if _, ok := b[t]; !ok {
			return false
		}
	}
	return true
}

// TokensOverlap reports whether two token sets intersect.
func TokensOverlap(a, b map[string]struct{}) bool {
	small, large := a, b
	if len(large) < len(small) {
		small, large = large, small
	}
	for t := range small {
		if _, ok := large[t]; ok {
			return true
		}
	}
	return false
}
