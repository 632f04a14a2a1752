package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"controlcompass/internal/db"
	"controlcompass/internal/email"
	"controlcompass/internal/models"
)

// AdminHandler handles the review queue and approval decisions.
type AdminHandler struct {
	db       *db.DB
	notifier *email.Notifier
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(database *db.DB, notifier *email.Notifier) *AdminHandler {
	return &AdminHandler{db: database, notifier: notifier}
}

type decisionRequest struct {
	CompanyID string `json:"companyId"`
}

// Pending returns all listings awaiting review, oldest first.
func (h *AdminHandler) Pending(c fiber.Ctx) error {
	companies, err := h.db.GetPendingCompanies(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch pending companies")
	}
	if companies == nil {
		companies = []models.CompanyDetail{}
	}
	return jsonSuccess(c, companies)
}

// Approve marks a listing approved and notifies its owners. Approving a
// listing that already carries a decision simply reapplies it.
func (h *AdminHandler) Approve(c fiber.Ctx) error {
	id, err := parseDecision(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid company id")
	}

	company, err := h.db.ApproveCompany(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrCompanyNotFound) {
			return jsonError(c, fiber.StatusNotFound, "company not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to approve company")
	}

	h.notifier.NotifyCompanyApproved(c.Context(), company)

	return jsonSuccess(c, company)
}

// Reject marks a listing rejected and notifies its owners.
func (h *AdminHandler) Reject(c fiber.Ctx) error {
	id, err := parseDecision(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid company id")
	}

	company, err := h.db.RejectCompany(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrCompanyNotFound) {
			return jsonError(c, fiber.StatusNotFound, "company not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to reject company")
	}

	h.notifier.NotifyCompanyRejected(c.Context(), company)

	return jsonSuccess(c, company)
}

func parseDecision(c fiber.Ctx) (uuid.UUID, error) {
	var req decisionRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(req.CompanyID)
}
