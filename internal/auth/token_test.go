package auth

import (
	"testing"
	"time"

	"rutilahu/internal/utils"
	"rutilahu/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestIssuer(t *testing.T, ttl time.Duration) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer(testSecret, "rutilahu-test", ttl)
	require.NoError(t, err)
	return issuer
}

func TestNewTokenIssuerRejectsShortSecret(t *testing.T) {
	_, err := NewTokenIssuer([]byte("too-short"), "rutilahu-test", time.Hour)
	require.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := newTestIssuer(t, time.Hour)

	user := &types.User{
		ID:         "user-1",
		Username:   "operator.bandung",
		Role:       types.RoleDistrictOperator,
		DistrictID: utils.StringPtr("district-1"),
	}

	raw, expiresAt, err := issuer.Issue(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	principal, err := issuer.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", principal.UserID)
	assert.Equal(t, "operator.bandung", principal.Username)
	assert.Equal(t, types.RoleDistrictOperator, principal.Role)
	require.NotNil(t, principal.DistrictID)
	assert.Equal(t, "district-1", *principal.DistrictID)
	assert.Nil(t, principal.VillageID)
}

func TestTokenVerifyRejectsTampering(t *testing.T) {
	issuer := newTestIssuer(t, time.Hour)

	raw, _, err := issuer.Issue(&types.User{ID: "user-1", Username: "admin", Role: types.RolePUPRAdmin})
	require.NoError(t, err)

	_, err = issuer.Verify(raw + "x")
	assert.ErrorIs(t, err, types.ErrInvalidToken)

	otherIssuer, err := NewTokenIssuer([]byte("ffffffffffffffffffffffffffffffff"), "rutilahu-test", time.Hour)
	require.NoError(t, err)
	_, err = otherIssuer.Verify(raw)
	assert.ErrorIs(t, err, types.ErrInvalidToken)
}

func TestTokenVerifyRejectsExpired(t *testing.T) {
	issuer := newTestIssuer(t, -time.Minute)

	raw, _, err := issuer.Issue(&types.User{ID: "user-1", Username: "admin", Role: types.RolePUPRAdmin})
	require.NoError(t, err)

	_, err = issuer.Verify(raw)
	assert.ErrorIs(t, err, types.ErrInvalidToken)
}
