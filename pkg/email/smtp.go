package email

import (
	"fmt"
	"log"
	"strconv"

	"gopkg.in/gomail.v2"
)

type SMTPService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPService(host, port, username, password, from string) (*SMTPService, error) {
	if host == "" {
		return nil, fmt.Errorf("SMTP host is not configured")
	}
	if username == "" {
		return nil, fmt.Errorf("SMTP username is not configured")
	}
	if password == "" {
		return nil, fmt.Errorf("SMTP password is not configured")
	}
	if from == "" {
		return nil, fmt.Errorf("email from address is not configured")
	}

	portNum, err := strconv.Atoi(port)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP port: %s", port)
	}

	return &SMTPService{
		host:     host,
		port:     portNum,
		username: username,
		password: password,
		from:     from,
	}, nil
}

func (s *SMTPService) SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		log.Printf("Failed to send email via SMTP: %v", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("Email sent successfully to: %s", to)
	return nil
}
