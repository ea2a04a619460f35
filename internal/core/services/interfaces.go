package services

import "context"

// Passcode delivery purposes
const (
	PurposeRegistration  = "registration"
	PurposePasswordReset = "password_reset"
)

// PasscodeNotifier delivers a one-time passcode over an out-of-band channel
// (SMS gateway fed from the message broker). The passcode must never travel
// back to the caller in an API response.
type PasscodeNotifier interface {
	SendPasscode(ctx context.Context, phone, code, purpose string) error
}
