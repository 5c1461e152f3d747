package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/medicine-service/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    "user-123",
		Email: "staff2@example.com",
		Role:  domain.RoleStaff,
	}
}

func TestTokenManager_GenerateAndParse(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", 1)
	user := testUser()

	token, exp, err := tm.GenerateToken(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, domain.RoleStaff, claims.Role)
}

func TestTokenManager_DefaultTTLIsSevenDays(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", 0)
	_, exp, err := tm.GenerateToken(testUser())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(168*time.Hour), exp, 5*time.Second)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	t.Parallel()

	secret := "super-secret"
	claims := &Claims{
		UserID: "user-123",
		Email:  "staff2@example.com",
		Role:   domain.RoleStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	tm := NewTokenManager(secret, 1)
	_, err = tm.ParseToken(expired)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	t.Parallel()

	token, _, err := NewTokenManager("right-secret", 1).GenerateToken(testUser())
	require.NoError(t, err)

	_, err = NewTokenManager("wrong-secret", 1).ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenManager_RejectsMalformed(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", 1)
	_, err := tm.ParseToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenManager_RejectsUnexpectedSigningMethod(t *testing.T) {
	t.Parallel()

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "user-123"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tm := NewTokenManager("super-secret", 1)
	_, err = tm.ParseToken(unsigned)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
