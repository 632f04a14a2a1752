package email

import (
	"fmt"
	"html"
	"strings"

	"controlcompass/internal/config"
	"controlcompass/internal/models"
)

// Templates provides email template generation.
type Templates struct {
	cfg *config.Config
}

// NewTemplates creates a new templates instance.
func NewTemplates(cfg *config.Config) *Templates {
	return &Templates{cfg: cfg}
}

// baseHTML wraps content in a consistent HTML email template.
func (t *Templates) baseHTML(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0f766e; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
        .footer { background: #f3f4f6; padding: 15px; text-align: center; font-size: 12px; color: #6b7280; border-radius: 0 0 8px 8px; border: 1px solid #e5e7eb; border-top: none; }
        .button { display: inline-block; background: #0f766e; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin: 10px 0; }
        .button:hover { background: #115e59; }
        .info-box { background: white; border: 1px solid #e5e7eb; border-radius: 6px; padding: 15px; margin: 15px 0; }
        .label { font-weight: 600; color: #374151; }
        .value { color: #6b7280; }
        .success { color: #059669; }
        .warning { color: #d97706; }
        .error { color: #dc2626; }
    </style>
</head>
<body>
    <div class="header">
        <h1>%s</h1>
    </div>
    <div class="content">
        %s
    </div>
    <div class="footer">
        <p>This email was sent by %s</p>
        <p><a href="%s">%s</a></p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(t.cfg.SiteTitle), content, html.EscapeString(t.cfg.SiteTitle), t.cfg.BaseURL, t.cfg.BaseURL)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// CompanySubmittedForReview generates email for admins when a listing needs review.
func (t *Templates) CompanySubmittedForReview(company *models.CompanyDetail, submitter *models.User) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] New company pending review: %s", t.cfg.SiteTitle, company.Name)

	content := fmt.Sprintf(`
        <p>A new company listing has been submitted and requires your review.</p>

        <div class="info-box">
            <p><span class="label">Company:</span> %s</p>
            <p><span class="label">Website:</span> <a href="%s">%s</a></p>
            <p><span class="label">Services:</span> %s</p>
            <p><span class="label">HQ:</span> %s, %s</p>
            <p><span class="label">Submitted by:</span> %s (%s)</p>
        </div>

        <p style="text-align: center;">
            <a href="%s/admin" class="button">Review in Dashboard</a>
        </p>
    `,
		html.EscapeString(company.Name),
		html.EscapeString(deref(company.WebsiteURL)),
		html.EscapeString(deref(company.WebsiteURL)),
		html.EscapeString(strings.Join(company.Services, ", ")),
		html.EscapeString(deref(company.HQCity)),
		html.EscapeString(deref(company.HQState)),
		html.EscapeString(submitter.Name),
		html.EscapeString(submitter.Email),
		t.cfg.BaseURL,
	)

	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`New company pending review

Company: %s
Website: %s
Services: %s
HQ: %s, %s
Submitted by: %s (%s)

Review at: %s/admin

--
%s
%s`,
		company.Name,
		deref(company.WebsiteURL),
		strings.Join(company.Services, ", "),
		deref(company.HQCity),
		deref(company.HQState),
		submitter.Name,
		submitter.Email,
		t.cfg.BaseURL,
		t.cfg.SiteTitle,
		t.cfg.BaseURL,
	)

	return
}

// CompanyApproved generates email for owners when their listing is approved.
func (t *Templates) CompanyApproved(company *models.CompanyDetail) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] Your listing '%s' has been approved!", t.cfg.SiteTitle, company.Name)

	content := fmt.Sprintf(`
        <p>Great news! Your company listing has been approved and is now visible in the directory.</p>

        <div class="info-box">
            <p><span class="label">Company:</span> %s</p>
            <p><span class="label">Status:</span> <span class="success">Approved</span></p>
        </div>

        <p style="text-align: center;">
            <a href="%s/companies/%s" class="button">View your listing</a>
        </p>
    `,
		html.EscapeString(company.Name),
		t.cfg.BaseURL,
		html.EscapeString(company.Slug),
	)

	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`Your listing has been approved!

Company: %s
Status: Approved

View it at: %s/companies/%s

--
%s
%s`,
		company.Name,
		t.cfg.BaseURL,
		company.Slug,
		t.cfg.SiteTitle,
		t.cfg.BaseURL,
	)

	return
}

// CompanyRejected generates email for owners when their listing is rejected.
func (t *Templates) CompanyRejected(company *models.CompanyDetail) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] Your listing '%s' was not approved", t.cfg.SiteTitle, company.Name)

	content := fmt.Sprintf(`
        <p>Your company listing was reviewed and was not approved for the directory.</p>

        <div class="info-box">
            <p><span class="label">Company:</span> %s</p>
            <p><span class="label">Status:</span> <span class="error">Rejected</span></p>
        </div>

        <p>You can update your listing from your dashboard and it will be reviewed again.</p>
        <p style="text-align: center;">
            <a href="%s/dashboard" class="button">Open Dashboard</a>
        </p>
    `,
		html.EscapeString(company.Name),
		t.cfg.BaseURL,
	)

	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`Your listing was not approved

Company: %s
Status: Rejected

Update it from your dashboard and it will be reviewed again: %s/dashboard

--
%s
%s`,
		company.Name,
		t.cfg.BaseURL,
		t.cfg.SiteTitle,
		t.cfg.BaseURL,
	)

	return
}
