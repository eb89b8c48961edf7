package auth

import (
	"fmt"
	"time"

	"rutilahu/pkg/types"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// TokenIssuer signs and verifies the HS256 access tokens that carry a
// caller's role and geographic scope.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewTokenIssuer(secret []byte, issuer string, ttl time.Duration) (*TokenIssuer, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("token secret must be at least 32 bytes")
	}

	return &TokenIssuer{secret: secret, issuer: issuer, ttl: ttl}, nil
}

func (i *TokenIssuer) Issue(user *types.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(i.ttl)

	builder := jwt.NewBuilder().
		Subject(user.ID).
		Issuer(i.issuer).
		IssuedAt(now).
		Expiration(expiresAt).
		Claim("username", user.Username).
		Claim("role", string(user.Role))

	if user.DistrictID != nil {
		builder = builder.Claim("district_id", *user.DistrictID)
	}
	if user.VillageID != nil {
		builder = builder.Claim("village_id", *user.VillageID)
	}

	token, err := builder.Build()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), i.secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return string(signed), expiresAt, nil
}

// Verify parses a signed token and reconstructs the principal. Any parse,
// signature, or expiry failure maps to ErrInvalidToken.
func (i *TokenIssuer) Verify(raw string) (*types.Principal, error) {
	token, err := jwt.Parse(
		[]byte(raw),
		jwt.WithKey(jwa.HS256(), i.secret),
		jwt.WithValidate(true),
		jwt.WithIssuer(i.issuer),
	)
	if err != nil {
		return nil, types.ErrInvalidToken
	}

	userID, ok := token.Subject()
	if !ok || userID == "" {
		return nil, types.ErrInvalidToken
	}

	principal := &types.Principal{UserID: userID}

	var username string
	if err := token.Get("username", &username); err == nil {
		principal.Username = username
	}

	var role string
	if err := token.Get("role", &role); err != nil {
		return nil, types.ErrInvalidToken
	}
	principal.Role = types.Role(role)
	if !principal.Role.Valid() {
		return nil, types.ErrInvalidToken
	}

	var districtID string
	if err := token.Get("district_id", &districtID); err == nil && districtID != "" {
		principal.DistrictID = &districtID
	}

	var villageID string
	if err := token.Get("village_id", &villageID); err == nil && villageID != "" {
		principal.VillageID = &villageID
	}

	return principal, nil
}
