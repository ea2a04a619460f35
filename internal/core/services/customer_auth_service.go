package services

import (
	"context"
	"crypto/rand"
	"errors"
	"log"
	"math/big"
	"strconv"
	"strings"
	"time"

	"bdmart/internal/adapters/persistence/models"
	"bdmart/internal/adapters/persistence/repositories"
	"bdmart/internal/config"
	"bdmart/internal/pkg/jwt"
	"bdmart/internal/pkg/metrics"
	"bdmart/internal/pkg/password"

	"gorm.io/gorm"
)

// Customer auth errors
var (
	ErrDuplicatePhone      = errors.New("phone number already registered")
	ErrUnknownPhone        = errors.New("phone number not registered")
	ErrInvalidPasscode     = errors.New("invalid passcode")
	ErrCustomerNotVerified = errors.New("customer account not verified")
)

// PasscodeTTL bounds how long an issued passcode stays valid. The cron
// sweeper clears stale codes on the same cutoff.
const PasscodeTTL = 15 * time.Minute

// CustomerAuthService drives a customer from phone submission through
// passcode verification to a usable, password-protected account. The same
// passcode cycle backs password reset.
type CustomerAuthService struct {
	customerRepo repositories.CustomerRepository
	notifier     PasscodeNotifier
	metrics      *metrics.Metrics
	cfg          *config.Config
}

// NewCustomerAuthService creates a new customer auth service
func NewCustomerAuthService(
	customerRepo repositories.CustomerRepository,
	notifier PasscodeNotifier,
	m *metrics.Metrics,
	cfg *config.Config,
) *CustomerAuthService {
	return &CustomerAuthService{
		customerRepo: customerRepo,
		notifier:     notifier,
		metrics:      m,
		cfg:          cfg,
	}
}

// Register creates a new customer in the not-verified state with a fresh
// passcode. Fails when the phone is registered in any verification state.
// The passcode leaves the system only via the notifier.
func (s *CustomerAuthService) Register(ctx context.Context, phone, name string) error {
	phone = NormalizePhone(phone)

	exists, err := s.customerRepo.ExistsByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicatePhone
	}

	code, err := generatePasscode()
	if err != nil {
		return err
	}

	now := time.Now()
	customer := &models.Customer{
		Phone:       phone,
		Name:        strings.TrimSpace(name),
		OTPCode:     &code,
		OTPIssuedAt: &now,
		OTPStatus:   models.OTPStatusNotVerified,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return err
	}

	s.deliverPasscode(ctx, phone, code, PurposeRegistration)

	log.Printf("✅ Customer registered: %s (pending verification)", phone)
	return nil
}

// Verify checks the submitted passcode and, on match, stores the password
// hash, flips the account to verified and clears the passcode so it cannot
// be replayed. A wrong passcode mutates nothing.
func (s *CustomerAuthService) Verify(ctx context.Context, phone, otp, plainPassword string) error {
	phone = NormalizePhone(phone)

	customer, err := s.customerRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownPhone
		}
		return err
	}

	if err := matchPasscode(customer, otp); err != nil {
		return err
	}

	hashed, err := password.Hash(plainPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	customer.Password = &hashed
	customer.OTPStatus = models.OTPStatusVerified
	customer.VerifiedAt = &now
	customer.OTPCode = nil
	customer.OTPIssuedAt = nil

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return err
	}

	log.Printf("✅ Customer verified: %s", phone)
	return nil
}

// RequestPasscodeReset overwrites the stored passcode with a fresh one,
// invalidating any previously issued code. The verification flag is untouched,
// so a verified customer stays verified through a password reset.
func (s *CustomerAuthService) RequestPasscodeReset(ctx context.Context, phone string) error {
	phone = NormalizePhone(phone)

	if _, err := s.customerRepo.GetByPhone(ctx, phone); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownPhone
		}
		return err
	}

	code, err := generatePasscode()
	if err != nil {
		return err
	}

	if err := s.customerRepo.UpdatePasscode(ctx, phone, code, time.Now()); err != nil {
		return err
	}

	s.deliverPasscode(ctx, phone, code, PurposePasswordReset)
	return nil
}

// ChangePassword replaces the password hash after passcode proof, re-stamps
// the verification timestamp and clears the passcode.
func (s *CustomerAuthService) ChangePassword(ctx context.Context, phone, otp, newPassword string) error {
	phone = NormalizePhone(phone)

	customer, err := s.customerRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownPhone
		}
		return err
	}

	if err := matchPasscode(customer, otp); err != nil {
		return err
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	customer.Password = &hashed
	customer.OTPStatus = models.OTPStatusVerified
	customer.VerifiedAt = &now
	customer.OTPCode = nil
	customer.OTPIssuedAt = nil

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return err
	}

	log.Printf("✅ Customer password changed: %s", phone)
	return nil
}

// Login authenticates a verified customer and issues a bearer token.
// Missing accounts, unset passwords and wrong passwords all collapse into
// ErrInvalidCredentials so login responses do not reveal which it was.
func (s *CustomerAuthService) Login(ctx context.Context, phone, plainPassword string) (*models.CustomerResponse, string, error) {
	phone = NormalizePhone(phone)

	customer, err := s.customerRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if customer.Password == nil || !password.Verify(plainPassword, *customer.Password) {
		return nil, "", ErrInvalidCredentials
	}

	if !customer.IsVerified() {
		return nil, "", ErrCustomerNotVerified
	}

	token, err := jwt.GenerateCustomerToken(
		customer.ID,
		customer.Phone,
		s.cfg.JWT.CustomerSecret,
		s.cfg.JWT.CustomerTokenDays,
	)
	if err != nil {
		return nil, "", err
	}

	log.Printf("✅ Customer logged in: %s", phone)
	return customer.ToResponse(), token, nil
}

// GetByID gets a customer account by ID
func (s *CustomerAuthService) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownPhone
		}
		return nil, err
	}
	return customer, nil
}

// matchPasscode validates a submitted passcode against the stored one.
// Cleared, expired and mismatched codes are all ErrInvalidPasscode.
func matchPasscode(customer *models.Customer, otp string) error {
	if customer.OTPCode == nil || *customer.OTPCode != otp {
		return ErrInvalidPasscode
	}
	if customer.OTPIssuedAt != nil && time.Since(*customer.OTPIssuedAt) > PasscodeTTL {
		return ErrInvalidPasscode
	}
	return nil
}

// deliverPasscode hands the code to the out-of-band channel. Delivery
// problems are logged, not surfaced: the account state is already correct
// and the customer can request a fresh code.
func (s *CustomerAuthService) deliverPasscode(ctx context.Context, phone, code, purpose string) {
	if err := s.notifier.SendPasscode(ctx, phone, code, purpose); err != nil {
		log.Printf("⚠️ Passcode delivery failed for %s: %v", phone, err)
		return
	}
	if s.metrics != nil {
		s.metrics.PasscodesIssued.WithLabelValues(purpose).Inc()
	}
}

// NormalizePhone canonicalizes Bangladeshi mobile numbers to the local
// 11-digit form ("01XXXXXXXXX"). Inputs that do not look like a BD country
// prefix pass through unchanged.
func NormalizePhone(phone string) string {
	p := strings.TrimSpace(phone)
	p = strings.TrimPrefix(p, "+")
	if strings.HasPrefix(p, "880") && len(p) == 13 {
		p = "0" + p[3:]
	}
	return p
}

// generatePasscode draws a uniformly distributed 6-digit code
// (inclusive range 100000-999999) from crypto/rand.
func generatePasscode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
