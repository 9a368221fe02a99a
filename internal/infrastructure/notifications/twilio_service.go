package notifications

import (
	"context"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/fandressouza/indicacoes/domain"
)

// MessageCreator is the part of the Twilio API the service uses
type MessageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioServiceImpl implements domain.NotificationService
type TwilioServiceImpl struct {
	api           MessageCreator
	fromNumber    string
	countryPrefix string
	logger        *zap.Logger
}

// NewTwilioService creates a new Twilio notification service. Without credentials
// messages are only logged.
func NewTwilioService(accountSID, authToken, fromNumber, countryPrefix string, logger *zap.Logger) domain.NotificationService {
	var api MessageCreator
	if accountSID != "" && authToken != "" && fromNumber != "" {
		client := twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		})
		api = client.Api
	}
	return newTwilioService(api, fromNumber, countryPrefix, logger)
}

func newTwilioService(api MessageCreator, fromNumber, countryPrefix string, logger *zap.Logger) *TwilioServiceImpl {
	return &TwilioServiceImpl{
		api:           api,
		fromNumber:    fromNumber,
		countryPrefix: countryPrefix,
		logger:        logger,
	}
}

// SendSMS implements domain.NotificationService
func (t *TwilioServiceImpl) SendSMS(ctx context.Context, to, message string) error {
	number := NormalizePhone(to, t.countryPrefix)
	if number == "" {
		return fmt.Errorf("invalid phone number %q", to)
	}

	if t.api == nil {
		t.logger.Info("sms not sent, twilio not configured",
			zap.String("to", number),
			zap.String("message", message))
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(number)
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	if _, err := t.api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	t.logger.Debug("sms sent", zap.String("to", number))
	return nil
}

// NormalizePhone keeps the digits of phone and prepends prefix unless the number already
// carries an international "+" prefix. Returns "" when no digits remain.
func NormalizePhone(phone, prefix string) string {
	phone = strings.TrimSpace(phone)
	international := strings.HasPrefix(phone, "+")

	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return ""
	}
	if international {
		return "+" + digits.String()
	}
	return prefix + digits.String()
}
