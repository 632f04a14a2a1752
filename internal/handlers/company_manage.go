package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"controlcompass/internal/db"
	"controlcompass/internal/email"
	"controlcompass/internal/models"
	"controlcompass/internal/validation"
)

// CompanyManageHandler handles listing submission and maintenance by
// company owners.
type CompanyManageHandler struct {
	db       *db.DB
	notifier *email.Notifier
}

// NewCompanyManageHandler creates a new company management handler.
func NewCompanyManageHandler(database *db.DB, notifier *email.Notifier) *CompanyManageHandler {
	return &CompanyManageHandler{db: database, notifier: notifier}
}

// Create submits a new listing. It enters the review queue as PENDING and
// the caller becomes its OWNER.
func (h *CompanyManageHandler) Create(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var form models.CompanyForm
	if err := json.Unmarshal(c.Body(), &form); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if errs := validation.ValidateCompanyForm(&form); !errs.Empty() {
		return jsonValidationError(c, errs)
	}

	company, err := h.db.CreateCompany(c.Context(), &form, user.ID)
	if err != nil {
		if errors.Is(err, db.ErrSlugSpaceExhausted) || errors.Is(err, db.ErrDuplicateSlug) {
			return jsonError(c, fiber.StatusConflict, "too many companies share this name")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to create company")
	}

	h.notifier.NotifyCompanySubmitted(c.Context(), company, user)

	return jsonSuccess(c, company)
}

// Update replaces the content of a listing the caller is attached to.
// Slug and status are never changed here.
func (h *CompanyManageHandler) Update(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid company id")
	}

	if !user.IsAdmin() {
		if _, err := h.db.GetCompanyRelation(c.Context(), user.ID, id); err != nil {
			if errors.Is(err, db.ErrRelationNotFound) {
				return jsonError(c, fiber.StatusForbidden, "not a member of this company")
			}
			return jsonError(c, fiber.StatusInternalServerError, "failed to check company access")
		}
	}

	var form models.CompanyForm
	if err := json.Unmarshal(c.Body(), &form); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if errs := validation.ValidateCompanyForm(&form); !errs.Empty() {
		return jsonValidationError(c, errs)
	}

	company, err := h.db.UpdateCompany(c.Context(), id, &form)
	if err != nil {
		if errors.Is(err, db.ErrCompanyNotFound) {
			return jsonError(c, fiber.StatusNotFound, "company not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to update company")
	}

	return jsonSuccess(c, company)
}

// MyCompanies returns the caller's listings with their relation to each.
func (h *CompanyManageHandler) MyCompanies(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	companies, err := h.db.GetUserCompanies(c.Context(), user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch companies")
	}
	if companies == nil {
		companies = []models.UserCompany{}
	}

	return jsonSuccess(c, companies)
}
