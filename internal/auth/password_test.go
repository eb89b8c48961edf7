package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("kata-sandi-rahasia")
	require.NoError(t, err)

	parts := strings.SplitN(hash, ":", 2)
	require.Len(t, parts, 2)
	assert.Len(t, parts[0], saltBytes*2)
	assert.Len(t, parts[1], keyBytes*2)
	assert.NotContains(t, hash, "kata-sandi-rahasia")

	other, err := HashPassword("kata-sandi-rahasia")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "same password must salt differently")
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("kata-sandi-rahasia")
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "kata-sandi-rahasia"))
	assert.False(t, VerifyPassword(hash, "kata-sandi-salah"))
	assert.False(t, VerifyPassword("not-a-hash", "kata-sandi-rahasia"))
	assert.False(t, VerifyPassword("zz:zz", "kata-sandi-rahasia"))
	assert.False(t, VerifyPassword("", "kata-sandi-rahasia"))
}
