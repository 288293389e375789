package domain

import "context"

// Mailer sends a single email.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders a named email template to subject, html, and
// text bodies.
type EmailTemplateRenderer interface {
	Render(templateName string, data interface{}) (subject, htmlBody, textBody string, err error)
}

// WelcomeEmailData is the template data for the registration welcome email.
type WelcomeEmailData struct {
	Name string
}

// EmailService sends application emails. Sending is best-effort; callers log
// and ignore failures.
type EmailService interface {
	SendWelcome(ctx context.Context, user *User) error
}
