package mailservice

import (
	"time"

	"github.com/go-mail/mail/v2"
)

// replyTo is implemented by template data that names an address replies
// should go to.
type replyTo interface {
	ReplyTo() string
}

// ReplyTo lets the moderator answer the commenter directly.
func (n Notification) ReplyTo() string {
	return n.Email
}

// NewMailer creates a new mailer with the given host, port, username, password, sender, and template.
func NewMailer(host string, port int, username, password, sender string, tp *Template) *Mail {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = 5 * time.Second

	return &Mail{
		dialer: dialer,
		sender: sender,
		parser: tp,
	}
}

func (m *Mail) send(recipient string, data any, templateFile string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rendered, err := m.parser.Render(templateFile, data)
	if err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", recipient)
	if r, ok := data.(replyTo); ok && r.ReplyTo() != "" {
		msg.SetHeader("Reply-To", r.ReplyTo())
	}
	msg.SetHeader("Subject", rendered.Subject)
	msg.SetBody("text/plain", rendered.Plain)
	msg.AddAlternative("text/html", rendered.HTML)

	return m.dialer.DialAndSend(msg)
}
