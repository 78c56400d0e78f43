package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestManager(t *testing.T, clock *fakeClock, opts ...TokenOption) *TokenManager {
	t.Helper()
	opts = append([]TokenOption{WithNowFunc(clock.Now)}, opts...)
	tm, err := NewTokenManager(testSecret, "HS256", time.Hour, opts...)
	require.NoError(t, err)
	return tm
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 5, 4, 12, 30, 15, 500, time.UTC)}
	tm := newTestManager(t, clock)

	token, err := tm.Issue("user-1", "ada@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token.Raw)

	claims, err := tm.Verify(token.Raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.SubjectID())
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, token.Claims.TokenID(), claims.TokenID())
	assert.NotEmpty(t, claims.TokenID())
	assert.Equal(t, time.Hour, claims.ExpiresAtTime().Sub(claims.IssuedAtTime()))
	assert.True(t, clock.now.Truncate(time.Second).Equal(claims.IssuedAtTime()))
}

func TestTokenManager_EveryIssuanceGetsFreshID(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)}
	tm := newTestManager(t, clock)

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		token, err := tm.Issue("user-1", "ada@example.com")
		require.NoError(t, err)
		_, dup := seen[token.Claims.TokenID()]
		require.False(t, dup, "duplicate jti %s", token.Claims.TokenID())
		seen[token.Claims.TokenID()] = struct{}{}
	}
}

func TestTokenManager_ExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: issuedAt}
	tm := newTestManager(t, clock)

	token, err := tm.Issue("user-1", "ada@example.com")
	require.NoError(t, err)

	clock.now = issuedAt.Add(time.Hour - time.Second)
	_, err = tm.Verify(token.Raw)
	require.NoError(t, err)

	clock.now = issuedAt.Add(time.Hour)
	_, err = tm.Verify(token.Raw)
	assert.ErrorIs(t, err, ErrTokenExpired)

	clock.now = issuedAt.Add(48 * time.Hour)
	_, err = tm.Verify(token.Raw)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManager_LeewayExtendsValidity(t *testing.T) {
	issuedAt := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: issuedAt}
	tm := newTestManager(t, clock, WithLeeway(30*time.Second))

	token, err := tm.Issue("user-1", "ada@example.com")
	require.NoError(t, err)

	clock.now = issuedAt.Add(time.Hour + 10*time.Second)
	_, err = tm.Verify(token.Raw)
	assert.NoError(t, err)
}

func TestTokenManager_TamperedSignature(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)}
	tm := newTestManager(t, clock)

	token, err := tm.Issue("user-1", "ada@example.com")
	require.NoError(t, err)

	_, err = tm.Verify(flipSignatureBit(t, token.Raw))
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func flipSignatureBit(t *testing.T, raw string) string {
	t.Helper()
	parts := strings.Split(raw, ".")
	require.Len(t, parts, 3)
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	require.NoError(t, err)
	sig[0] ^= 0x01
	parts[2] = base64.RawURLEncoding.EncodeToString(sig)
	return strings.Join(parts, ".")
}

func TestTokenManager_TamperedPayload(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)}
	tm := newTestManager(t, clock)

	token, err := tm.Issue("user-1", "ada@example.com")
	require.NoError(t, err)
	other, err := tm.Issue("user-2", "bob@example.com")
	require.NoError(t, err)

	parts := strings.Split(token.Raw, ".")
	otherParts := strings.Split(other.Raw, ".")
	parts[1] = otherParts[1]

	_, err = tm.Verify(strings.Join(parts, "."))
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestTokenManager_SignatureCheckedBeforeExpiry(t *testing.T) {
	issuedAt := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: issuedAt}
	tm := newTestManager(t, clock)

	foreign, err := NewTokenManager("another-secret", "HS256", time.Hour, WithNowFunc(clock.Now))
	require.NoError(t, err)
	token, err := foreign.Issue("user-1", "ada@example.com")
	require.NoError(t, err)

	clock.now = issuedAt.Add(2 * time.Hour)
	_, err = tm.Verify(token.Raw)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestTokenManager_RejectsOtherAlgorithms(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)}
	tm := newTestManager(t, clock)

	claims := Claims{
		Email: "ada@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ID:        "jti-1",
			IssuedAt:  jwt.NewNumericDate(clock.now),
			ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, &claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = tm.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tm.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestTokenManager_RequiredClaims(t *testing.T) {
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: now}
	tm := newTestManager(t, clock)

	sign := func(c jwt.RegisteredClaims) string {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{RegisteredClaims: c}).SignedString([]byte(testSecret))
		require.NoError(t, err)
		return raw
	}
	exp := jwt.NewNumericDate(now.Add(time.Hour))

	tests := []struct {
		name   string
		claims jwt.RegisteredClaims
	}{
		{"missing subject", jwt.RegisteredClaims{ID: "jti-1", ExpiresAt: exp}},
		{"missing token id", jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: exp}},
		{"missing expiry", jwt.RegisteredClaims{Subject: "user-1", ID: "jti-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tm.Verify(sign(tt.claims))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestTokenManager_Malformed(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)}
	tm := newTestManager(t, clock)

	for _, raw := range []string{"", "abc", "a.b.c", "only.two"} {
		_, err := tm.Verify(raw)
		assert.ErrorIs(t, err, ErrMalformed, "token %q", raw)
	}
}

func TestNewTokenManager_Validation(t *testing.T) {
	_, err := NewTokenManager("", "HS256", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenManager(testSecret, "HS256", 0)
	assert.Error(t, err)

	_, err = NewTokenManager(testSecret, "RS256", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenManager(testSecret, "none", time.Hour)
	assert.Error(t, err)

	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		tm, err := NewTokenManager(testSecret, alg, time.Minute)
		require.NoError(t, err, alg)
		assert.Equal(t, time.Minute, tm.TTL())
	}
}
