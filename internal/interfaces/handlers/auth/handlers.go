package auth

import (
	"context"
	"errors"

	"mandi-core/internal/domain"
	"mandi-core/internal/middleware"
	"mandi-core/internal/pkg/response"
	"mandi-core/internal/pkg/validation"
	"mandi-core/internal/prefs"
	"mandi-core/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	Sessions *session.Service
	Prefs    *prefs.Store
	Rdb      *redis.Client
	Config   middleware.SessionConfig
}

// LoginRequest body.
type LoginRequest struct {
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// RegisterRequest body.
type RegisterRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Pin   string `json:"pin"`
	Role  string `json:"role"`
}

// VerifyOTPRequest body.
type VerifyOTPRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// VerifyPINRequest body.
type VerifyPINRequest struct {
	Phone string `json:"phone"`
	Pin   string `json:"pin"`
}

// Login POST /api/v1/auth/login — authenticate, create session, set cookie.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Phone and role are required", fiber.StatusBadRequest, nil)
	}
	if !validation.IsValidPhone(req.Phone) {
		return response.Error(c, "A valid phone number is required", fiber.StatusBadRequest, nil)
	}

	identity, err := h.Sessions.Login(c.UserContext(), req.Phone, domain.ParseRole(req.Role))
	if err != nil {
		return errorStatus(c, err)
	}
	h.establishSession(c, identity)
	return response.Success(c, "Login successful", fiber.Map{"user": identity}, nil)
}

// Register POST /api/v1/auth/register — store identity, create session.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Name, phone, PIN and role are required", fiber.StatusBadRequest, nil)
	}
	if !validation.IsValidName(req.Name) {
		return response.Error(c, "A valid name is required", fiber.StatusBadRequest, nil)
	}
	if !validation.IsValidPhone(req.Phone) {
		return response.Error(c, "A valid phone number is required", fiber.StatusBadRequest, nil)
	}
	if !validation.IsValidPin(req.Pin) {
		return response.Error(c, "PIN must be 4 to 6 digits", fiber.StatusBadRequest, nil)
	}

	identity, err := h.Sessions.Register(c.UserContext(), req.Name, req.Phone, req.Pin, domain.ParseRole(req.Role))
	if err != nil {
		return errorStatus(c, err)
	}
	h.establishSession(c, identity)
	return response.SuccessCreated(c, "Registration successful", fiber.Map{"user": identity}, nil)
}

// VerifyOTP POST /api/v1/auth/verify-otp.
func (h *Handlers) VerifyOTP(c *fiber.Ctx) error {
	var req VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Phone and code are required", fiber.StatusBadRequest, nil)
	}
	if !validation.IsValidOtp(req.Code) {
		return response.Error(c, session.ErrInvalidOTP.Error(), fiber.StatusUnauthorized, nil)
	}

	identity, err := h.Sessions.VerifyOTP(c.UserContext(), req.Phone, req.Code)
	if err != nil {
		return errorStatus(c, err)
	}
	h.establishSession(c, identity)
	return response.Success(c, "OTP verified", fiber.Map{"user": identity}, nil)
}

// VerifyPIN POST /api/v1/auth/verify-pin.
func (h *Handlers) VerifyPIN(c *fiber.Ctx) error {
	var req VerifyPINRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Phone and PIN are required", fiber.StatusBadRequest, nil)
	}

	identity, err := h.Sessions.VerifyPIN(c.UserContext(), req.Phone, req.Pin)
	if err != nil {
		return errorStatus(c, err)
	}
	h.establishSession(c, identity)
	return response.Success(c, "PIN verified", fiber.Map{"user": identity}, nil)
}

// Me GET /api/v1/auth/me — return the current session user.
func (h *Handlers) Me(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return response.Error(c, "Not authenticated", fiber.StatusUnauthorized, nil)
	}
	return response.Success(c, "Authenticated", fiber.Map{"user": user}, nil)
}

// Logout DELETE /api/v1/auth/logout — demote identities, destroy session,
// reset the role preference.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	if err := h.Sessions.Logout(c.UserContext()); err != nil {
		return errorStatus(c, err)
	}
	if h.Prefs != nil {
		_ = h.Prefs.SetRole(c.UserContext(), domain.RoleNone)
	}

	if sessionID := middleware.GetSessionID(c); sessionID != "" && h.Rdb != nil {
		_ = h.Rdb.Del(context.Background(), middleware.SessionRedisPrefix+sessionID).Err()
	}
	middleware.DestroySession(c)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = ""
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.Success(c, "Logged out successfully", nil, nil)
}

// establishSession regenerates the session id, stores the identity claims and
// sets the cookie.
func (h *Handlers) establishSession(c *fiber.Ctx, identity *domain.Identity) {
	sessionID := middleware.RegenerateSessionID(c)
	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID: identity.ID.String(),
		Name:   identity.Name,
		Phone:  identity.PhoneNumber,
		Role:   identity.Role.String(),
	})
	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = sessionID
	c.Cookie(&cookie)
}

// errorStatus maps the session error taxonomy onto HTTP statuses.
func errorStatus(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, session.ErrInvalidOTP):
		return response.Error(c, err.Error(), fiber.StatusUnauthorized, nil)
	case errors.Is(err, session.ErrRoleRequired):
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	case errors.Is(err, session.ErrTransport):
		return response.Error(c, err.Error(), fiber.StatusBadGateway, nil)
	default:
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
}
