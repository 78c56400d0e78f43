package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/nutrisense/internal/domain"
	"github.com/spec-kit/nutrisense/internal/observability"
	"github.com/spec-kit/nutrisense/internal/repository"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller of a protected route.
type Principal struct {
	ID     string
	Name   string
	Email  string
	Claims Claims
}

// TokenVerifier validates a raw token without touching storage.
type TokenVerifier interface {
	Verify(raw string) (*Claims, error)
}

// UserFinder resolves a token subject to a stored account.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Gate authenticates requests: extract bearer credential, verify it, check
// revocation, then resolve the subject. Any failure is terminal for the request.
type Gate struct {
	verifier    TokenVerifier
	revocations RevocationStore
	users       UserFinder
	logger      *zap.Logger
	metrics     *observability.Metrics
}

// NewGate constructs the gate.
func NewGate(verifier TokenVerifier, revocations RevocationStore, users UserFinder, logger *zap.Logger, metrics *observability.Metrics) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{verifier: verifier, revocations: revocations, users: users, logger: logger, metrics: metrics}
}

// Authenticate runs the full check for the value of an Authorization header.
func (g *Gate) Authenticate(ctx context.Context, authHeader string) (*Principal, error) {
	raw, ok := bearerToken(authHeader)
	if !ok {
		return nil, g.reject(ErrUnauthenticated)
	}

	claims, err := g.verifier.Verify(raw)
	if err != nil {
		return nil, g.reject(err)
	}

	revoked, err := g.revocations.IsRevoked(ctx, claims.TokenID())
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, g.reject(ErrTokenRevoked)
	}

	user, err := g.users.GetByID(ctx, claims.SubjectID())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, g.reject(ErrUserNotFound)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	g.metrics.RecordAuthOutcome("resolved")
	return &Principal{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Claims: *claims,
	}, nil
}

func (g *Gate) reject(err error) error {
	g.logger.Debug("request rejected", zap.Error(err))
	g.metrics.RecordAuthOutcome(outcomeCode(err))
	return err
}

// Handle enforces authentication for protected routes.
func (g *Gate) Handle(c *fiber.Ctx) error {
	principal, err := g.Authenticate(c.UserContext(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return ToDomainError(err)
	}
	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func outcomeCode(err error) string {
	for _, entry := range errorSpecs {
		if errors.Is(err, entry.err) {
			return strings.ToLower(entry.spec.code)
		}
	}
	return "error"
}
