package email

import (
	"context"
	"log"

	"github.com/google/uuid"

	"controlcompass/internal/config"
	"controlcompass/internal/models"
)

// DirectoryEmailGetter is an interface for looking up notification recipients.
type DirectoryEmailGetter interface {
	GetAdminEmails(ctx context.Context) ([]string, error)
	GetCompanyOwnerEmails(ctx context.Context, companyID uuid.UUID) ([]string, error)
}

// Notifier sends email notifications for approval workflow events.
type Notifier struct {
	service   *Service
	templates *Templates
	cfg       *config.Config
	db        DirectoryEmailGetter
}

// NewNotifier creates a new email notifier.
func NewNotifier(cfg *config.Config, db DirectoryEmailGetter) *Notifier {
	return &Notifier{
		service:   NewService(cfg),
		templates: NewTemplates(cfg),
		cfg:       cfg,
		db:        db,
	}
}

// NotifyCompanySubmitted notifies admins that a new listing needs review.
func (n *Notifier) NotifyCompanySubmitted(ctx context.Context, company *models.CompanyDetail, submitter *models.User) {
	if !n.service.IsEnabled() || !n.cfg.EmailNotifyAdminsOnSubmit {
		return
	}

	emails, err := n.db.GetAdminEmails(ctx)
	if err != nil {
		log.Printf("Failed to get admin emails: %v", err)
		return
	}

	if len(emails) == 0 {
		log.Println("No admin emails found for notification")
		return
	}

	subject, htmlBody, textBody := n.templates.CompanySubmittedForReview(company, submitter)
	n.service.SendAsync(emails, subject, htmlBody, textBody)
}

// NotifyCompanyApproved notifies the listing owners of an approval.
func (n *Notifier) NotifyCompanyApproved(ctx context.Context, company *models.CompanyDetail) {
	if !n.service.IsEnabled() || !n.cfg.EmailNotifyOwnerOnDecision {
		return
	}

	emails, err := n.db.GetCompanyOwnerEmails(ctx, company.ID)
	if err != nil {
		log.Printf("Failed to get owner emails: %v", err)
		return
	}

	if len(emails) == 0 {
		return
	}

	subject, htmlBody, textBody := n.templates.CompanyApproved(company)
	n.service.SendAsync(emails, subject, htmlBody, textBody)
}

// NotifyCompanyRejected notifies the listing owners of a rejection.
func (n *Notifier) NotifyCompanyRejected(ctx context.Context, company *models.CompanyDetail) {
	if !n.service.IsEnabled() || !n.cfg.EmailNotifyOwnerOnDecision {
		return
	}

	emails, err := n.db.GetCompanyOwnerEmails(ctx, company.ID)
	if err != nil {
		log.Printf("Failed to get owner emails: %v", err)
		return
	}

	if len(emails) == 0 {
		return
	}

	subject, htmlBody, textBody := n.templates.CompanyRejected(company)
	n.service.SendAsync(emails, subject, htmlBody, textBody)
}
