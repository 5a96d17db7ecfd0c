package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService sends transactional email through SES. With no sender
// address configured the service runs disabled and logs instead of sending,
// which keeps local development working without AWS credentials.
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
}

// NewEmailService creates an SES email service
func NewEmailService(ctx context.Context, region, fromEmail, fromName string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &EmailService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
	}, nil
}

// SendWelcomeEmail greets a freshly registered account
func (s *EmailService) SendWelcomeEmail(toEmail, username string) error {
	subject := "Welcome to ReadQuest!"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour account is ready. Pick a book, start reading, and keep your streak alive.\n\nHappy reading!",
		username,
	)
	return s.send(toEmail, subject, body)
}

// SendNotificationEmail delivers a stored notification by email
func (s *EmailService) SendNotificationEmail(toEmail, subject, body string) error {
	return s.send(toEmail, subject, body)
}

func (s *EmailService) send(toEmail, subject, body string) error {
	if !s.enabled {
		log.Printf("Email disabled, skipping %q to %s", subject, toEmail)
		return nil
	}

	from := s.fromEmail
	if s.fromName != "" {
		from = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	_, err := s.client.SendEmail(context.Background(), &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}
	return nil
}
