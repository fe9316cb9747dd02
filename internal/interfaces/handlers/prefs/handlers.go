package prefs

import (
	"mandi-core/internal/domain"
	"mandi-core/internal/pkg/constants"
	"mandi-core/internal/pkg/response"
	prefstore "mandi-core/internal/prefs"
	"mandi-core/internal/routing"
	"mandi-core/internal/session"

	"github.com/gofiber/fiber/v2"
)

// Handlers exposes the preference store and the routing decision.
type Handlers struct {
	Store    *prefstore.Store
	Sessions *session.Service
}

// SetLanguageRequest body.
type SetLanguageRequest struct {
	Language string `json:"language"`
}

// SetRoleRequest body.
type SetRoleRequest struct {
	Role string `json:"role"`
}

// GetPreferences GET /api/v1/prefs.
func (h *Handlers) GetPreferences(c *fiber.Ctx) error {
	return response.Success(c, "Preferences fetched successfully", fiber.Map{
		"language": h.Store.Language(),
		"role":     h.Store.Role(),
	}, nil)
}

// SetLanguage PUT /api/v1/prefs/language.
func (h *Handlers) SetLanguage(c *fiber.Ctx) error {
	var req SetLanguageRequest
	if err := c.BodyParser(&req); err != nil || req.Language == "" {
		return response.Error(c, "Missing required field: language", fiber.StatusBadRequest, nil)
	}
	if err := h.Store.SetLanguage(c.UserContext(), req.Language); err != nil {
		return response.Error(c, "Failed to save language", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Language saved", fiber.Map{"language": req.Language}, nil)
}

// SetRole PUT /api/v1/prefs/role.
func (h *Handlers) SetRole(c *fiber.Ctx) error {
	var req SetRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Missing required field: role", fiber.StatusBadRequest, nil)
	}
	if req.Role != constants.None && !constants.IsValidRole(req.Role) {
		return response.Error(c, "Unknown role", fiber.StatusBadRequest, nil)
	}
	if err := h.Store.SetRole(c.UserContext(), domain.ParseRole(req.Role)); err != nil {
		return response.Error(c, "Failed to save role", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Role saved", fiber.Map{"role": req.Role}, nil)
}

// GetRoute GET /api/v1/route — the screen the current session should land on,
// recomputed from the live session and preference state on every call.
func (h *Handlers) GetRoute(c *fiber.Ctx) error {
	identity := h.Sessions.Current()
	role := h.Store.Role()
	screen := routing.Route(identity, role, h.Store.Language() != prefstore.DefaultLanguage)
	return response.Success(c, "Route resolved", fiber.Map{"screen": screen}, nil)
}
