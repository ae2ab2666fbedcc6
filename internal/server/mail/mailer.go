// Package mail implements the activation-code mailer. The service only
// depends on the Mailer interface; the SMTP implementation renders an HTML
// body from an embedded template and delivers it via gomail.
package mail

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"

	gomail "gopkg.in/gomail.v2"

	"github.com/stnkworkshop/auth-service/internal/server/config"
)

// Mailer delivers an activation code to an address. Delivery can fail; the
// caller decides what a failed dispatch means.
type Mailer interface {
	SendActivationCode(ctx context.Context, to string, code int, username string) error
}

//go:embed activation_code.html
var activationTemplate string

// activationContext feeds the template. The code is rendered digit by digit,
// matching the verification email layout.
type activationContext struct {
	Num1, Num2, Num3, Num4, Num5 string
	Username                     string
}

// SMTPMailer sends activation emails over SMTP.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	tmpl   *template.Template
}

// NewSMTPMailer builds a mailer from the SMTP settings in cfg.
func NewSMTPMailer(cfg *config.Config) (*SMTPMailer, error) {
	tmpl, err := template.New("activation").Parse(activationTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing activation template: %w", err)
	}

	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	dialer.SSL = true

	return &SMTPMailer{
		dialer: dialer,
		from:   cfg.SMTPUser,
		tmpl:   tmpl,
	}, nil
}

// SendActivationCode renders the verification email and delivers it.
func (m *SMTPMailer) SendActivationCode(ctx context.Context, to string, code int, username string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := renderActivationBody(m.tmpl, code, username)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Email Verification | stnkWorkshop")
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}

func renderActivationBody(tmpl *template.Template, code int, username string) (string, error) {
	digits := fmt.Sprintf("%05d", code)

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, activationContext{
		Num1:     string(digits[0]),
		Num2:     string(digits[1]),
		Num3:     string(digits[2]),
		Num4:     string(digits[3]),
		Num5:     string(digits[4]),
		Username: username,
	})
	if err != nil {
		return "", fmt.Errorf("rendering activation template: %w", err)
	}
	return buf.String(), nil
}
