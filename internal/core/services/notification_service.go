package services

import (
	"context"
	"time"

	"bdmart/internal/pkg/rabbitmq"
)

const passcodeRoutingKey = "sms.otp"

// NotificationService publishes outbound notification events to the message
// broker. The SMS gateway worker consumes them; this service never talks to
// the carrier directly.
type NotificationService struct {
	producer rabbitmq.Publisher
	exchange string
}

// NewNotificationService creates a new notification service
func NewNotificationService(producer rabbitmq.Publisher, exchange string) *NotificationService {
	return &NotificationService{producer: producer, exchange: exchange}
}

type passcodeEvent struct {
	Phone    string    `json:"phone"`
	Code     string    `json:"code"`
	Purpose  string    `json:"purpose"`
	IssuedAt time.Time `json:"issued_at"`
}

// SendPasscode publishes a one-time passcode delivery event
func (s *NotificationService) SendPasscode(ctx context.Context, phone, code, purpose string) error {
	return s.producer.Publish(ctx, s.exchange, passcodeRoutingKey, passcodeEvent{
		Phone:    phone,
		Code:     code,
		Purpose:  purpose,
		IssuedAt: time.Now(),
	})
}
