package handlers

import (
	"fmt"
	"net/http"
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nutrisense/internal/api/dto"
	"github.com/spec-kit/nutrisense/internal/auth"
	"github.com/spec-kit/nutrisense/internal/service"
	apperrors "github.com/spec-kit/nutrisense/pkg/util"
)

// AuthHandler exposes signup, login, me and logout.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if strings.TrimSpace(req.Name) == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}
	if !validEmail(req.Email) {
		return apperrors.NewValidationError("invalid email address", map[string]any{"email": req.Email})
	}
	if len(req.Password) > auth.MaxPasswordBytes {
		return apperrors.NewValidationError("password too long", map[string]any{
			"password": fmt.Sprintf("must be at most %d bytes", auth.MaxPasswordBytes),
		})
	}

	user, err := h.auth.Signup(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return auth.ToDomainError(err)
	}
	return c.Status(http.StatusCreated).JSON(dto.UserFromDomain(user))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return auth.ToDomainError(err)
	}

	return c.JSON(dto.TokenResponse{
		AccessToken: result.Token.Raw,
		TokenType:   "bearer",
		ExpiresIn:   int64(h.auth.TokenManager().TTL().Seconds()),
		User:        dto.UserFromDomain(result.User),
	})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return auth.ToDomainError(auth.ErrUnauthenticated)
	}
	return c.JSON(dto.UserFromPrincipal(principal))
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return auth.ToDomainError(auth.ErrUnauthenticated)
	}
	if err := h.auth.Logout(c.UserContext(), principal); err != nil {
		return auth.ToDomainError(err)
	}
	return c.JSON(dto.MessageResponse{Message: "Logged out successfully"})
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == strings.TrimSpace(email)
}
