package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionID(t *testing.T) {
	first := NewSessionID()
	second := NewSessionID()

	require.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

func TestNewGameID(t *testing.T) {
	id := NewGameID()

	assert.Len(t, id, 24)
	assert.True(t, IsGameID(id))
	assert.NotEqual(t, id, NewGameID())
}

func TestIsGameID(t *testing.T) {
	assert.True(t, IsGameID("0123456789abcdef01234567"))

	assert.False(t, IsGameID(""))
	assert.False(t, IsGameID("0123456789abcdef0123456"))   // too short
	assert.False(t, IsGameID("0123456789abcdef012345678")) // too long
	assert.False(t, IsGameID("0123456789abcdef0123456z"))  // not hex
	assert.False(t, IsGameID("not-a-valid-identifier!!"))
}
