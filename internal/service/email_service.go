package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

// EmailService отправляет уведомления по электронной почте
type EmailService interface {
	SendSurveyAdminInvite(ctx context.Context, toEmail, surveyName, idempotencyKey string) error
}

// NoopEmailService используется, когда отправка писем отключена
type NoopEmailService struct{}

func (s *NoopEmailService) SendSurveyAdminInvite(ctx context.Context, toEmail, surveyName, idempotencyKey string) error {
	log.Printf("[EmailService] noop survey admin invite to=%s survey=%q", toEmail, surveyName)
	return nil
}

// ResendEmailService отправляет письма через REST API Resend
type ResendEmailService struct {
	from    string
	client  *resend.Client
	retries int
}

func NewResendEmailService(apiKey, from string) (*ResendEmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from is required")
	}
	return &ResendEmailService{
		from:    from,
		client:  resend.NewClient(apiKey),
		retries: 3,
	}, nil
}

// SendSurveyAdminInvite сообщает пользователю, что он назначен администратором опроса
func (s *ResendEmailService) SendSurveyAdminInvite(ctx context.Context, toEmail, surveyName, idempotencyKey string) error {
	if toEmail == "" {
		return fmt.Errorf("toEmail is required")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: fmt.Sprintf("You are now an admin of %q", surveyName),
		Text:    fmt.Sprintf("You have been added as an administrator of the survey %q.", surveyName),
		Html:    fmt.Sprintf("<p>You have been added as an administrator of the survey <strong>%s</strong>.</p>", html.EscapeString(surveyName)),
	}

	options := &resend.SendEmailOptions{}
	if key := strings.TrimSpace(idempotencyKey); key != "" {
		options.IdempotencyKey = key
	}

	var lastErr error
	for attempt := 0; attempt < s.retries; attempt++ {
		_, err := s.client.Emails.SendWithOptions(ctx, params, options)
		if err == nil {
			return nil
		}
		lastErr = err

		if wait, ok := resendRetryDelay(err, attempt); ok {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
				continue
			}
		}

		return fmt.Errorf("resend send failed: %w", err)
	}

	return fmt.Errorf("resend send failed after retries: %w", lastErr)
}

func resendRetryDelay(err error, attempt int) (time.Duration, bool) {
	var rateLimitErr *resend.RateLimitError
	if errors.As(err, &rateLimitErr) {
		if seconds, convErr := strconv.Atoi(strings.TrimSpace(rateLimitErr.RetryAfter)); convErr == nil && seconds > 0 {
			if seconds > 30 {
				seconds = 30
			}
			return time.Duration(seconds) * time.Second, true
		}
		return time.Duration(attempt+1) * time.Second, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && (netErr.Timeout() || netErr.Temporary()) {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "temporar") {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	return 0, false
}
