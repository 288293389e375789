package services

import (
	"context"
	"fmt"

	"eventhorizon/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and
// template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendWelcome sends the registration welcome email using the "welcome"
// template.
func (s *emailService) SendWelcome(ctx context.Context, user *domain.User) error {
	if user == nil {
		return fmt.Errorf("welcome email user is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("welcome", &domain.WelcomeEmailData{Name: user.Name})
	if err != nil {
		return fmt.Errorf("failed to render welcome template: %w", err)
	}
	if err := s.mailer.Send(user.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}
