package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeLowercasesAndSplits(t *testing.T) {
	tokens := Tokenize("Temperature, Setpoint+Error Signal")
	assert.Equal(t, map[string]struct{}{
		"temperature": {},
		"setpoint":    {},
		"error":       {},
		"signal":      {},
	}, tokens)
}

func TestTokenizeDropsEmptyFragments(t *testing.T) {
	tokens := Tokenize(" ,+ ")
	assert.Empty(t, tokens)
}

func TestPortTokensSorted(t *testing.T) {
	p := NewPort("Zeta Alpha")
	assert.Equal(t, []string{"alpha", "zeta"}, p.Tokens())
}

func TestPortEqualByNameAndTokens(t *testing.T) {
	assert.True(t, NewPort("Temperature").Equal(NewPort("Temperature")))
	assert.False(t, NewPort("Temperature").Equal(NewPort("temperature")))
	assert.False(t, NewPort("Temperature").Equal(NewPort("Pressure")))
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(NewPort("Temperature Reading"), NewPort("Reading")))
	assert.False(t, Overlaps(NewPort("Temperature"), NewPort("Pressure")))
	assert.False(t, Overlaps(NewPort(""), NewPort("Pressure")))
}

func TestSubsetOf(t *testing.T) {
	assert.True(t, SubsetOf(Tokenize("Reading"), Tokenize("Temperature Reading")))
	assert.False(t, SubsetOf(Tokenize("Temperature Reading"), Tokenize("Reading")))
	// Empty set is a subset of everything, including itself.
	assert.True(t, SubsetOf(Tokenize(""), Tokenize("")))
	assert.True(t, SubsetOf(Tokenize(""), Tokenize("Reading")))
}

func TestJoinNames(t *testing.T) {
	assert.Equal(t, "", JoinNames(nil))
	assert.Equal(t, "A, B", JoinNames(NewPorts("A", "B")))
}
