package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	maker := NewTokenMaker("test-secret", 1)

	token, err := maker.Generate(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	maker := NewTokenMaker("test-secret", 1)
	other := NewTokenMaker("different-secret", 1)

	token, err := maker.Generate(42)
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	maker := NewTokenMaker("test-secret", 1)

	_, err := maker.Parse("not-a-token")
	assert.Error(t, err)
}
