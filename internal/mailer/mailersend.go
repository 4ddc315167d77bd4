package mailer

import (
	"context"

	"github.com/mailersend/mailersend-go"
)

// MailerSend sends verification codes through the MailerSend API.
type MailerSend struct {
	client *mailersend.Mailersend
	from   mailersend.From
}

// NewMailerSend builds the API transport. Callers only construct it when an
// API key is configured.
func NewMailerSend(apiKey, fromName, fromEmail string) *MailerSend {
	return &MailerSend{
		client: mailersend.NewMailersend(apiKey),
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}
}

func (m *MailerSend) Name() string {
	return "mailersend"
}

func (m *MailerSend) SendVerificationCode(ctx context.Context, toEmail, toName, code string) error {
	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject(verificationSubject())
	msg.SetText(verificationText(code))
	msg.SetHTML(verificationHTML(toName, code))

	_, err := m.client.Email.Send(ctx, msg)
	return err
}
