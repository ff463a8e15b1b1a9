package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendEscalationNotice(toEmail, debtorName, accountNumber, reason string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)
	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendEscalationNotice(toEmail, debtorName, accountNumber, reason string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Escalation: account %s needs an agent", accountNumber))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Conversation escalated</h2>
			<p>The conversation with <b>%s</b> (account %s) was handed off to a human agent.</p>
			<p>Reason: %s</p>
			<p>Please pick it up from the agent dashboard.</p>
		</div>
	`, debtorName, accountNumber, reason)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send escalation notice to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Escalation notice sent to %s\n", toEmail)
	return nil
}
