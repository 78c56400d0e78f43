package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims describes the JWT payload: {sub, email, jti, iat, exp}.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SubjectID returns the user id the token was issued for.
func (c *Claims) SubjectID() string {
	return c.Subject
}

// TokenID returns the unique id of this issuance.
func (c *Claims) TokenID() string {
	return c.ID
}

// IssuedAtTime returns the iat claim, or the zero time when absent.
func (c *Claims) IssuedAtTime() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

// ExpiresAtTime returns the exp claim, or the zero time when absent.
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// SessionToken is a freshly issued, signed token together with its claims.
type SessionToken struct {
	Raw    string
	Claims Claims
}

// TokenManager issues and verifies session tokens. It holds no per-token state.
type TokenManager struct {
	secret  []byte
	method  *jwt.SigningMethodHMAC
	ttl     time.Duration
	leeway  time.Duration
	nowFunc func() time.Time
	newID   func() string
}

// TokenOption customises a TokenManager.
type TokenOption func(*TokenManager)

// WithNowFunc overrides the clock used for iat/exp and for expiry checks.
func WithNowFunc(now func() time.Time) TokenOption {
	return func(tm *TokenManager) {
		tm.nowFunc = now
	}
}

// WithLeeway tolerates the given clock skew when checking exp.
func WithLeeway(leeway time.Duration) TokenOption {
	return func(tm *TokenManager) {
		tm.leeway = leeway
	}
}

// WithTokenIDFunc overrides jti generation.
func WithTokenIDFunc(newID func() string) TokenOption {
	return func(tm *TokenManager) {
		tm.newID = newID
	}
}

// NewTokenManager builds a manager for the named HMAC algorithm (HS256, HS384, HS512).
func NewTokenManager(secret, algorithm string, ttl time.Duration, opts ...TokenOption) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}

	tm := &TokenManager{
		secret:  []byte(secret),
		method:  method,
		ttl:     ttl,
		nowFunc: time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(tm)
	}
	return tm, nil
}

// TTL returns the lifetime of issued tokens.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Issue builds and signs a token for the subject. Issuance writes nothing to storage.
func (tm *TokenManager) Issue(subjectID, subjectEmail string) (*SessionToken, error) {
	// JWT NumericDate has second precision; truncate so exp - iat is exactly the TTL.
	issuedAt := tm.nowFunc().UTC().Truncate(time.Second)
	claims := Claims{
		Email: subjectEmail,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ID:        tm.newID(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(tm.ttl)),
		},
	}

	raw, err := jwt.NewWithClaims(tm.method, &claims).SignedString(tm.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &SessionToken{Raw: raw, Claims: claims}, nil
}

// Verify checks signature, expiry and required claims of a raw token. It never
// consults storage; revocation is checked separately by the AuthGate.
func (tm *TokenManager) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (interface{}, error) { return tm.secret, nil },
		jwt.WithValidMethods([]string{tm.method.Alg()}),
		jwt.WithTimeFunc(tm.nowFunc),
		jwt.WithLeeway(tm.leeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, classifyParseError(err)
	}
	if !parsed.Valid {
		return nil, ErrMalformed
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, ErrMalformed
	}
	return claims, nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
