package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// InvitationEmailData holds data for the invitation notice email.
type InvitationEmailData struct {
	Email     string
	Invitee   string
	Organizer string
	EventID   int64
	Title     string
	Date      string
	IsPublic  bool
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendInvitationNotice(ctx context.Context, data *InvitationEmailData) error
}
