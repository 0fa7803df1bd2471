package email

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"eventplanner/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestTemplateRenderer_Invitation(t *testing.T) {
	r := NewTemplateRenderer()
	data := &domain.InvitationEmailData{
		Email:     "alice@example.com",
		Invitee:   "alice",
		Organizer: "carol",
		EventID:   42,
		Title:     "Standup",
		Date:      "2024-01-01",
		IsPublic:  false,
	}

	subject, html, text, err := r.Render(TemplateInvitation, data)
	require.NoError(t, err)
	assert.Equal(t, "carol invited you to Standup", subject)
	assert.Contains(t, html, "<strong>Standup</strong>")
	assert.Contains(t, html, "private event")
	assert.Contains(t, text, `"Standup" on 2024-01-01`)
	assert.Contains(t, text, "Event #42")
}

func TestTemplateRenderer_escapes_html(t *testing.T) {
	r := NewTemplateRenderer()
	data := &domain.InvitationEmailData{Invitee: "alice", Organizer: "carol", Title: "<b>x</b>"}

	_, html, text, err := r.Render(TemplateInvitation, data)
	require.NoError(t, err)
	assert.NotContains(t, html, "<b>x</b>")
	assert.Contains(t, text, "<b>x</b>")
}

func TestTemplateRenderer_unknown_template(t *testing.T) {
	_, _, _, err := NewTemplateRenderer().Render("missing", nil)
	require.Error(t, err)
}

func TestSESMailer_Send(t *testing.T) {
	client := &fakeSES{}
	m := newSESMailer(client, "noreply@example.com", "Event Planner", discardLogger())

	err := m.Send(context.Background(), "alice@example.com", "subject", "<p>hi</p>", "hi")
	require.NoError(t, err)
	require.NotNil(t, client.input)
	assert.Equal(t, "Event Planner <noreply@example.com>", aws.ToString(client.input.Source))
	assert.Equal(t, []string{"alice@example.com"}, client.input.Destination.ToAddresses)
	assert.Equal(t, "<p>hi</p>", aws.ToString(client.input.Message.Body.Html.Data))
	assert.Equal(t, "hi", aws.ToString(client.input.Message.Body.Text.Data))
}

func TestSESMailer_Send_text_only(t *testing.T) {
	client := &fakeSES{}
	m := newSESMailer(client, "noreply@example.com", "", discardLogger())

	require.NoError(t, m.Send(context.Background(), "alice@example.com", "subject", "", "hi"))
	assert.Equal(t, "noreply@example.com", aws.ToString(client.input.Source))
	assert.Nil(t, client.input.Message.Body.Html)
}

func TestSESMailer_Send_error(t *testing.T) {
	client := &fakeSES{err: errors.New("throttled")}
	m := newSESMailer(client, "noreply@example.com", "", discardLogger())

	err := m.Send(context.Background(), "alice@example.com", "subject", "", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestSESMailer_Send_requires_recipient(t *testing.T) {
	client := &fakeSES{}
	m := newSESMailer(client, "noreply@example.com", "", discardLogger())

	assert.ErrorIs(t, m.Send(context.Background(), " ", "subject", "", "hi"), errNoRecipient)
	assert.Nil(t, client.input)
}

func TestNewMailer(t *testing.T) {
	m, err := NewMailer(MailerConfig{Provider: ProviderNoop}, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &noopMailer{}, m)
	require.NoError(t, m.Send(context.Background(), "a@b.c", "s", "", ""))

	m, err = NewMailer(MailerConfig{Provider: "carrier-pigeon"}, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &noopMailer{}, m)

	_, err = NewMailer(MailerConfig{Provider: "ses"}, discardLogger())
	require.Error(t, err, "ses requires a from address")

	m, err = NewMailer(MailerConfig{Provider: "SES", FromAddress: "noreply@example.com", SES: SESConfig{Region: "us-east-1"}}, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &sesMailer{}, m)
}
