package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"stockroom/internal/config"
	"stockroom/internal/models"
	"stockroom/internal/utils/logger"
)

// Mailer sends transactional mail over SMTP.
type Mailer struct {
	addr      string
	auth      smtp.Auth
	from      string
	publicURL string
	log       *logger.Logger
}

func NewMailer(cfg config.SMTPConfig, publicURL string) *Mailer {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &Mailer{
		addr:      fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth:      auth,
		from:      cfg.From,
		publicURL: strings.TrimRight(publicURL, "/"),
		log:       logger.New("mailer"),
	}
}

// SendActivationEmail mails the activation link to a freshly registered
// employee.
func (m *Mailer) SendActivationEmail(ctx context.Context, employee *models.Employee, activationToken string) error {
	link := fmt.Sprintf("%s/api/v1/employees/activate?token=%s", m.publicURL, activationToken)
	subject := "Activate your account"
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\n"+
			"Your account has been created. Open the link below to activate it:\r\n\r\n"+
			"%s\r\n\r\n"+
			"The link is valid for 24 hours.\r\n",
		employee.Username, link)

	if err := m.send(ctx, employee.Email, subject, body); err != nil {
		return m.log.Error("failed to send activation email to %s: %v", err, employee.Email)
	}
	m.log.Info("sent activation email to %s", employee.Email)
	return nil
}

func (m *Mailer) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, to, subject, body)
	return smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg))
}
