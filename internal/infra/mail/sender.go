package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"

	"gopkg.in/gomail.v2"

	"github.com/skylineestates/leaddesk/internal/infra/queue"
)

func NewEmailSender(host string, port int, user, password, agentTo string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		AgentTo:  agentTo,
	}
}

// SendLeadNotification mails a captured enquiry to the agent inbox.
func (s *EmailSender) SendLeadNotification(payload queue.LeadCapturedPayload) error {
	data := LeadAlertData{
		Name:    payload.Name,
		Phone:   payload.Phone,
		Email:   payload.Email,
		Message: payload.Message,
		Source:  payload.Source,
	}

	tmplPath := filepath.Join("templates", "lead_alert.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("reading mail template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("rendering mail template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.User)
	m.SetHeader("To", s.AgentTo)
	m.SetHeader("Subject", fmt.Sprintf("New enquiry: %s (%s)", payload.Name, payload.Source))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("sending SMTP mail: %w", err)
	}

	return nil
}
