package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"rideshare/internal/domain"
)

const testSecret = "test-secret-32-bytes-should-be-long-enough"

func testUser() *domain.User {
	return &domain.User{ID: 42, Name: "Ann", Email: "ann@test.com"}
}

func TestJWTIssuer_IssueAndVerify(t *testing.T) {
	issuer, err := NewJWTIssuer(testSecret, "rideshare", time.Hour)
	require.NoError(t, err)

	raw, err := issuer.Issue(testUser())
	require.NoError(t, err)

	claims, err := issuer.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "ann@test.com", claims.Subject)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "rideshare", claims.Issuer)
	require.NotEmpty(t, claims.ID)
	require.WithinDuration(t, claims.IssuedAt.Add(time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestJWTIssuer_TokensAreUnique(t *testing.T) {
	issuer, err := NewJWTIssuer(testSecret, "rideshare", time.Hour)
	require.NoError(t, err)

	a, err := issuer.Issue(testUser())
	require.NoError(t, err)
	b, err := issuer.Issue(testUser())
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestJWTIssuer_RejectsExpired(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer, err := NewJWTIssuer(testSecret, "rideshare", time.Minute)
	require.NoError(t, err)

	raw, err := issuer.WithClock(func() time.Time { return base }).Issue(testUser())
	require.NoError(t, err)

	_, err = issuer.WithClock(func() time.Time { return base.Add(2 * time.Minute) }).Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTIssuer_RejectsWrongSecret(t *testing.T) {
	a, err := NewJWTIssuer(testSecret, "rideshare", time.Hour)
	require.NoError(t, err)
	b, err := NewJWTIssuer("another-secret-32-bytes-longgggg", "rideshare", time.Hour)
	require.NoError(t, err)

	raw, err := a.Issue(testUser())
	require.NoError(t, err)

	_, err = b.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTIssuer_RejectsWrongIssuer(t *testing.T) {
	a, err := NewJWTIssuer(testSecret, "someone-else", time.Hour)
	require.NoError(t, err)
	b, err := NewJWTIssuer(testSecret, "rideshare", time.Hour)
	require.NoError(t, err)

	raw, err := a.Issue(testUser())
	require.NoError(t, err)

	_, err = b.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTIssuer_RejectsNoneAlgorithm(t *testing.T) {
	issuer, err := NewJWTIssuer(testSecret, "rideshare", time.Hour)
	require.NoError(t, err)

	claims := Claims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ann@test.com",
			Issuer:    "rideshare",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = issuer.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTIssuer_RejectsMissingIdentity(t *testing.T) {
	issuer, err := NewJWTIssuer(testSecret, "rideshare", time.Hour)
	require.NoError(t, err)

	raw, err := issuer.Issue(&domain.User{})
	require.NoError(t, err)

	_, err = issuer.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTIssuer_RejectsMalformed(t *testing.T) {
	issuer, err := NewJWTIssuer(testSecret, "rideshare", time.Hour)
	require.NoError(t, err)

	for _, raw := range []string{"", "abc", "a.b.c"} {
		_, err := issuer.Verify(raw)
		require.ErrorIs(t, err, ErrInvalidToken, "raw=%q", raw)
	}
}

func TestNewJWTIssuer_RequiresSecretAndTTL(t *testing.T) {
	_, err := NewJWTIssuer("", "rideshare", time.Hour)
	require.Error(t, err)

	_, err = NewJWTIssuer(testSecret, "rideshare", 0)
	require.Error(t, err)
}
