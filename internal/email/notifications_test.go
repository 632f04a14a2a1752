package email

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"controlcompass/internal/config"
	"controlcompass/internal/models"
)

type fakeEmailGetter struct {
	adminEmails []string
	ownerEmails []string
	adminCalls  int
	ownerCalls  int
}

func (f *fakeEmailGetter) GetAdminEmails(ctx context.Context) ([]string, error) {
	f.adminCalls++
	return f.adminEmails, nil
}

func (f *fakeEmailGetter) GetCompanyOwnerEmails(ctx context.Context, companyID uuid.UUID) ([]string, error) {
	f.ownerCalls++
	return f.ownerEmails, nil
}

func TestNotifier_DisabledWithoutSMTP(t *testing.T) {
	getter := &fakeEmailGetter{adminEmails: []string{"admin@example.com"}}
	n := NewNotifier(&config.Config{
		EmailNotifyAdminsOnSubmit:  true,
		EmailNotifyOwnerOnDecision: true,
	}, getter)

	submitter := &models.User{Name: "Someone", Email: "someone@example.com"}
	n.NotifyCompanySubmitted(context.Background(), testCompany(), submitter)
	n.NotifyCompanyApproved(context.Background(), testCompany())
	n.NotifyCompanyRejected(context.Background(), testCompany())

	if getter.adminCalls != 0 || getter.ownerCalls != 0 {
		t.Error("disabled notifier should not look up recipients")
	}
}

func TestNotifier_RespectsToggles(t *testing.T) {
	getter := &fakeEmailGetter{adminEmails: []string{"admin@example.com"}}
	n := NewNotifier(&config.Config{
		SMTPHost:                   "smtp.example.com",
		EmailNotifyAdminsOnSubmit:  false,
		EmailNotifyOwnerOnDecision: false,
	}, getter)

	submitter := &models.User{Name: "Someone", Email: "someone@example.com"}
	n.NotifyCompanySubmitted(context.Background(), testCompany(), submitter)
	n.NotifyCompanyApproved(context.Background(), testCompany())

	if getter.adminCalls != 0 || getter.ownerCalls != 0 {
		t.Error("toggled-off notifications should not look up recipients")
	}
}

func TestService_SendEmailDisabled(t *testing.T) {
	s := NewService(&config.Config{})

	if s.IsEnabled() {
		t.Error("service without SMTP host should be disabled")
	}
	if err := s.SendEmail([]string{"x@example.com"}, "subject", "html", "text"); err != nil {
		t.Errorf("SendEmail() on disabled service error = %v", err)
	}
}
