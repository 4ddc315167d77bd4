package mailer

import (
	"context"
	"fmt"
	"log"
)

// Sender delivers a verification code over one transport. Implementations must
// honor ctx deadlines; a single attempt is never allowed to outlive the
// caller's timeout budget.
type Sender interface {
	SendVerificationCode(ctx context.Context, toEmail, toName, code string) error
	Name() string
}

// Dispatcher tries each configured transport in order and returns the last
// error when all of them fail. Delivery failure is never fatal for the
// operation that issued the code; callers log the code as the fallback channel.
type Dispatcher struct {
	transports []Sender
}

// NewDispatcher builds a dispatcher over the given transports. An empty list
// is valid and makes every delivery attempt fail, which the verification
// service treats as the signal to rely on the log fallback.
func NewDispatcher(transports ...Sender) *Dispatcher {
	return &Dispatcher{transports: transports}
}

// SendVerificationCode attempts delivery over each transport in order.
func (d *Dispatcher) SendVerificationCode(ctx context.Context, toEmail, toName, code string) error {
	if len(d.transports) == 0 {
		return fmt.Errorf("no mail transport configured")
	}

	var lastErr error
	for _, t := range d.transports {
		if err := t.SendVerificationCode(ctx, toEmail, toName, code); err != nil {
			log.Printf("mail: %s delivery to %s failed: %v", t.Name(), toEmail, err)
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

func verificationSubject() string {
	return "Home Needs - Email Verification Code"
}

func verificationText(code string) string {
	return fmt.Sprintf("Your Home Needs verification code is: %s\n\nThis code expires in 10 minutes.", code)
}

func verificationHTML(toName, code string) string {
	greeting := ""
	if toName != "" {
		greeting = fmt.Sprintf("<p>Hi %s,</p>", toName)
	}
	return fmt.Sprintf(`
		<h2>Home Needs</h2>
		%s
		<p>Your verification code is:</p>
		<p style="font-size: 32px; font-weight: bold; letter-spacing: 8px;">%s</p>
		<p>This code expires in 10 minutes.</p>
		<p>If you didn't create an account, please ignore this email.</p>
	`, greeting, code)
}
