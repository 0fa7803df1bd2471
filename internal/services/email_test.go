package services

import (
	"context"
	"errors"
	"testing"

	"eventplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	to, subject, html, text string
	err                     error
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, html, text string) error {
	f.to, f.subject, f.html, f.text = to, subject, html, text
	return f.err
}

type fakeRenderer struct {
	name string
	err  error
}

func (f *fakeRenderer) Render(templateName string, data any) (string, string, string, error) {
	f.name = templateName
	if f.err != nil {
		return "", "", "", f.err
	}
	d := data.(*domain.InvitationEmailData)
	return "invite " + d.Title, "<p>" + d.Title + "</p>", d.Title, nil
}

func TestEmailService_SendInvitationNotice(t *testing.T) {
	mailer := &fakeMailer{}
	renderer := &fakeRenderer{}
	svc := NewEmailService(mailer, renderer, discardLogger())

	err := svc.SendInvitationNotice(context.Background(), &domain.InvitationEmailData{Email: "alice@example.com", Title: "Standup"})
	require.NoError(t, err)
	assert.Equal(t, invitationTemplate, renderer.name)
	assert.Equal(t, "alice@example.com", mailer.to)
	assert.Equal(t, "invite Standup", mailer.subject)
	assert.Equal(t, "<p>Standup</p>", mailer.html)
}

func TestEmailService_SendInvitationNotice_errors(t *testing.T) {
	svc := NewEmailService(&fakeMailer{}, &fakeRenderer{}, discardLogger())
	assert.Error(t, svc.SendInvitationNotice(context.Background(), nil))

	svc = NewEmailService(&fakeMailer{}, &fakeRenderer{err: errors.New("bad template")}, discardLogger())
	assert.ErrorContains(t, svc.SendInvitationNotice(context.Background(), &domain.InvitationEmailData{}), "render")

	svc = NewEmailService(&fakeMailer{err: errors.New("throttled")}, &fakeRenderer{}, discardLogger())
	assert.ErrorContains(t, svc.SendInvitationNotice(context.Background(), &domain.InvitationEmailData{}), "send")
}
