package handlers

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v3"

	"controlcompass/internal/db"
	"controlcompass/internal/models"
	"controlcompass/internal/validation"
)

// ProfileHandler handles user profile updates.
type ProfileHandler struct {
	db *db.DB
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(database *db.DB) *ProfileHandler {
	return &ProfileHandler{db: database}
}

type profileUpdateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Update sets the caller's name and email.
func (h *ProfileHandler) Update(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req profileUpdateRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" {
		return jsonError(c, fiber.StatusBadRequest, "name is required")
	}
	if !validation.ValidateEmail(req.Email) {
		return jsonError(c, fiber.StatusBadRequest, "a valid email is required")
	}

	updated, err := h.db.UpdateUserProfile(c.Context(), user.ID, req.Name, req.Email)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to update profile")
	}

	return jsonSuccess(c, updated)
}
