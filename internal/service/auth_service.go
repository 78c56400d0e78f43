package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/nutrisense/internal/auth"
	"github.com/spec-kit/nutrisense/internal/config"
	"github.com/spec-kit/nutrisense/internal/domain"
	"github.com/spec-kit/nutrisense/internal/events"
	"github.com/spec-kit/nutrisense/internal/repository"
)

// LoginResult is a successful login: the account and its new session token.
type LoginResult struct {
	User  *domain.User
	Token *auth.SessionToken
}

// AuthService coordinates signup, login and logout.
type AuthService struct {
	users       repository.UserRepository
	revocations auth.RevocationStore
	hasher      *auth.PasswordHasher
	tokenMgr    *auth.TokenManager
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	// compared against when the email is unknown so both login failures cost one bcrypt run
	decoyHash string
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo     repository.UserRepository
	Revocations  auth.RevocationStore
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
	TokenOptions []auth.TokenOption
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) (*AuthService, error) {
	tokenMgr, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.AccessTokenTTL(), deps.TokenOptions...)
	if err != nil {
		return nil, err
	}
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	decoy, err := hasher.Hash("decoy-password")
	if err != nil {
		return nil, fmt.Errorf("prepare decoy hash: %w", err)
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	dispatcher := deps.Dispatcher
	if dispatcher == nil {
		dispatcher = events.NewInMemoryDispatcher()
	}

	return &AuthService{
		users:       deps.UserRepo,
		revocations: deps.Revocations,
		hasher:      hasher,
		tokenMgr:    tokenMgr,
		dispatcher:  dispatcher,
		logger:      logger,
		decoyHash:   decoy,
	}, nil
}

// Signup creates a new account. The email is normalized and must be unused.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, auth.ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, auth.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.publish(ctx, events.NewEvent(events.EventUserSignedUp, user.ID, nil))
	return user, nil
}

// Login verifies credentials and issues a session token. Unknown email and wrong
// password both fail with ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = domain.NormalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("lookup user: %w", err)
		}
		s.hasher.Verify(password, s.decoyHash)
		s.loginFailed(ctx, email)
		return nil, auth.ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		s.loginFailed(ctx, email)
		return nil, auth.ErrInvalidCredentials
	}

	token, err := s.tokenMgr.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewEvent(events.EventUserLoggedIn, user.ID, events.SessionPayload{
		TokenID:   token.Claims.TokenID(),
		ExpiresAt: token.Claims.ExpiresAtTime(),
	}))
	return &LoginResult{User: user, Token: token}, nil
}

// Logout revokes the token the principal authenticated with. Only a token the
// caller currently holds can be revoked this way.
func (s *AuthService) Logout(ctx context.Context, principal *auth.Principal) error {
	if principal == nil {
		return auth.ErrUnauthenticated
	}
	tokenID := principal.Claims.TokenID()
	expiresAt := principal.Claims.ExpiresAtTime()

	if err := s.revocations.Revoke(ctx, tokenID, expiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	s.publish(ctx, events.NewEvent(events.EventSessionRevoked, principal.ID, events.SessionPayload{
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}))
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) loginFailed(ctx context.Context, email string) {
	s.publish(ctx, events.NewEvent(events.EventLoginFailed, "", events.LoginFailedPayload{Email: email}))
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
