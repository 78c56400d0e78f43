package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/nutrisense/internal/auth"
	"github.com/spec-kit/nutrisense/internal/config"
	"github.com/spec-kit/nutrisense/internal/domain"
	"github.com/spec-kit/nutrisense/internal/events"
	"github.com/spec-kit/nutrisense/internal/repository"
	"github.com/spec-kit/nutrisense/internal/repository/memrepo"
)

var testAuthConfig = config.AuthConfig{
	JWTSecret:             "service-test-secret",
	JWTAlgorithm:          "HS256",
	AccessTokenTTLMinutes: 60,
	BcryptCost:            bcrypt.MinCost,
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.events))
	for _, e := range d.events {
		out = append(out, e.Type)
	}
	return out
}

type authFixture struct {
	svc         *AuthService
	users       *memrepo.UserRepo
	revocations *auth.MemoryRevocationStore
	dispatcher  *recordingDispatcher
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		users:       memrepo.NewUserRepo(),
		revocations: auth.NewMemoryRevocationStore(),
		dispatcher:  &recordingDispatcher{},
	}
	svc, err := NewAuthService(testAuthConfig, AuthDependencies{
		UserRepo:    f.users,
		Revocations: f.revocations,
		Dispatcher:  f.dispatcher,
	})
	require.NoError(t, err)
	f.svc = svc
	return f
}

func TestAuthService_SignupStoresHashedPassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, err := f.svc.Signup(ctx, " Ada Lovelace ", "Ada@Example.com ", "pa55word")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Ada Lovelace", user.Name)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, "pa55word", user.PasswordHash)

	stored, err := f.users.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pa55word")))

	assert.Equal(t, []events.EventType{events.EventUserSignedUp}, f.dispatcher.types())
}

func TestAuthService_SignupDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.Signup(ctx, "Ada", "ada@example.com", "pa55word")
	require.NoError(t, err)

	_, err = f.svc.Signup(ctx, "Imposter", "ADA@example.com", "other")
	assert.ErrorIs(t, err, auth.ErrDuplicateEmail)
}

func TestAuthService_SignupOverlongPassword(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Signup(context.Background(), "Ada", "ada@example.com", strings.Repeat("p", 80))
	assert.ErrorIs(t, err, auth.ErrPasswordTooLong)
	assert.True(t, auth.IsAuthError(err))

	_, err = f.users.GetByEmail(context.Background(), "ada@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAuthService_LoginIssuesVerifiableToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, err := f.svc.Signup(ctx, "Ada", "ada@example.com", "pa55word")
	require.NoError(t, err)

	result, err := f.svc.Login(ctx, "ADA@example.com", "pa55word")
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)

	claims, err := f.svc.TokenManager().Verify(result.Token.Raw)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.SubjectID())
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, time.Hour, claims.ExpiresAtTime().Sub(claims.IssuedAtTime()))

	// issuance records nothing in the revocation store
	assert.Equal(t, 0, f.revocations.Len())
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.Signup(ctx, "Ada", "ada@example.com", "pa55word")
	require.NoError(t, err)

	_, wrongPassword := f.svc.Login(ctx, "ada@example.com", "nope")
	_, unknownEmail := f.svc.Login(ctx, "ghost@example.com", "pa55word")

	assert.ErrorIs(t, wrongPassword, auth.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, auth.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())

	assert.Equal(t, []events.EventType{
		events.EventUserSignedUp,
		events.EventLoginFailed,
		events.EventLoginFailed,
	}, f.dispatcher.types())
}

func TestAuthService_EachLoginGetsDistinctToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.Signup(ctx, "Ada", "ada@example.com", "pa55word")
	require.NoError(t, err)

	first, err := f.svc.Login(ctx, "ada@example.com", "pa55word")
	require.NoError(t, err)
	second, err := f.svc.Login(ctx, "ada@example.com", "pa55word")
	require.NoError(t, err)

	assert.NotEqual(t, first.Token.Claims.TokenID(), second.Token.Claims.TokenID())
}

func TestAuthService_LogoutRevokesOnlyPresentedToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.Signup(ctx, "Ada", "ada@example.com", "pa55word")
	require.NoError(t, err)
	first, err := f.svc.Login(ctx, "ada@example.com", "pa55word")
	require.NoError(t, err)
	second, err := f.svc.Login(ctx, "ada@example.com", "pa55word")
	require.NoError(t, err)

	gate := auth.NewGate(f.svc.TokenManager(), f.revocations, f.users, nil, nil)
	principal, err := gate.Authenticate(ctx, "Bearer "+first.Token.Raw)
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, principal))
	require.NoError(t, f.svc.Logout(ctx, principal))
	assert.Equal(t, 1, f.revocations.Len())

	_, err = gate.Authenticate(ctx, "Bearer "+first.Token.Raw)
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)

	_, err = gate.Authenticate(ctx, "Bearer "+second.Token.Raw)
	assert.NoError(t, err)
}

func TestAuthService_LogoutWithoutPrincipal(t *testing.T) {
	f := newAuthFixture(t)
	assert.ErrorIs(t, f.svc.Logout(context.Background(), nil), auth.ErrUnauthenticated)
}

type failingUsers struct {
	repository.UserRepository
}

func (failingUsers) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, errors.New("connection reset")
}

func TestAuthService_StorageFaultIsNotCredentialFailure(t *testing.T) {
	svc, err := NewAuthService(testAuthConfig, AuthDependencies{
		UserRepo:    failingUsers{},
		Revocations: auth.NewMemoryRevocationStore(),
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "ada@example.com", "pa55word")
	require.Error(t, err)
	assert.False(t, auth.IsAuthError(err))

	_, err = svc.Signup(context.Background(), "Ada", "ada@example.com", "pa55word")
	require.Error(t, err)
	assert.False(t, auth.IsAuthError(err))
}

func TestNewAuthService_RejectsBadTokenConfig(t *testing.T) {
	cfg := testAuthConfig
	cfg.JWTAlgorithm = "RS256"
	_, err := NewAuthService(cfg, AuthDependencies{})
	assert.Error(t, err)
}
