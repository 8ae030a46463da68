package email

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type SendGridService struct {
	from   string
	client *sendgrid.Client
}

func NewSendGridService(apiKey, from string) (*SendGridService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("sendgrid API key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("from email address is required")
	}

	return &SendGridService{
		from:   from,
		client: sendgrid.NewSendClient(apiKey),
	}, nil
}

func (s *SendGridService) SendEmail(to, subject, body string) error {
	from := mail.NewEmail("Uni Marketplace", s.from)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, body, body)

	response, err := s.client.Send(message)
	if err != nil {
		log.Printf("Failed to send email via SendGrid: %v", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		log.Printf("SendGrid rejected email. Status Code: %d, Body: %s", response.StatusCode, response.Body)
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}

	log.Printf("Email sent successfully to: %s", to)
	return nil
}
