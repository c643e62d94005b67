package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleRoundTrip(t *testing.T) {
	for _, r := range []Role{RoleBoundary, RolePolicy, RoleMechanism, RoleControl} {
		parsed, err := ParseRole(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)

		text, err := r.MarshalText()
		require.NoError(t, err)
		var back Role
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, r, back)
	}
}

func TestParseRoleUnknown(t *testing.T) {
	_, err := ParseRole("referee")
	assert.Error(t, err)
}

func TestRoleMarshalInvalid(t *testing.T) {
	_, err := Role(99).MarshalText()
	assert.Error(t, err)
}

func TestDirectionRoundTrip(t *testing.T) {
	for _, d := range []Direction{Covariant, Contravariant} {
		parsed, err := ParseDirection(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
	}
}

func TestParseDirectionUnknown(t *testing.T) {
	_, err := ParseDirection("sideways")
	assert.Error(t, err)
}
