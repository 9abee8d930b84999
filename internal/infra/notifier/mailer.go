package notifier

import (
	"fmt"
	"regexp"
	"time"

	"hrbot-connector/internal/config"
	"hrbot-connector/internal/infra/logger"

	"gopkg.in/gomail.v2"
)

var nonDigits = regexp.MustCompile(`\D`)

// MailNotifier delivers handover-queue alerts to the HR team by email.
type MailNotifier struct {
	Logger *logger.Logger
	dialer *gomail.Dialer
	from   string
	to     string
}

func NewMailNotifier(log *logger.Logger) *MailNotifier {
	host := config.GetEnvOr("SMTP_HOST", "smtp.gmail.com")
	port := config.GetEnvInt("SMTP_PORT", 587)
	user := config.GetEnv("SMTP_USER")
	pass := config.GetEnv("SMTP_PASS")

	return &MailNotifier{
		Logger: log,
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   config.GetEnvOr("NOTIFY_FROM", user),
		to:     config.GetEnv("NOTIFY_TO"),
	}
}

// Verify opens and closes an SMTP connection so that credential problems
// show up at startup instead of on the first escalation.
func (n *MailNotifier) Verify() error {
	closer, err := n.dialer.Dial()
	if err != nil {
		return fmt.Errorf("smtp verify failed: %w", err)
	}
	return closer.Close()
}

// Notify emails the HR team about a party waiting for a human, with its
// 1-based queue position and a WhatsApp Web shortcut.
func (n *MailNotifier) Notify(waID string, position int) error {
	subject := fmt.Sprintf("BOT RH - Aguardando Atendimento (#%d) - %s", position, waID)
	body := fmt.Sprintf(`Olá, RH

Há um novo contato aguardando atendimento humano no WhatsApp.

- Número: %s
- Posição na fila: #%d
- Recebido em: %s

Sugestão: responder via WhatsApp Web
https://wa.me/%s

Obs.: quando o atendimento for iniciado ou concluído, o contato sai da fila automaticamente.`,
		waID, position, time.Now().Format("02/01/2006 15:04:05"), nonDigits.ReplaceAllString(waID, ""))

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}
	return nil
}
