package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"bdmart/internal/adapters/persistence/models"
	"bdmart/internal/config"

	"gorm.io/gorm"
)

// fakeCustomerRepo is an in-memory CustomerRepository keyed by phone.
// Reads return copies so service-side mutation is only visible after Update.
type fakeCustomerRepo struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]*models.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{nextID: 1, byID: make(map[uint]*models.Customer)}
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.Phone == customer.Phone {
			return gorm.ErrDuplicatedKey
		}
	}
	customer.ID = r.nextID
	r.nextID++
	clone := *customer
	r.byID[customer.ID] = &clone
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *fakeCustomerRepo) GetByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.Phone == phone {
			clone := *c
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCustomerRepo) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	_, err := r.GetByPhone(ctx, phone)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *fakeCustomerRepo) Update(ctx context.Context, customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[customer.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *customer
	r.byID[customer.ID] = &clone
	return nil
}

func (r *fakeCustomerRepo) UpdatePasscode(ctx context.Context, phone, code string, issuedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.Phone == phone {
			c.OTPCode = &code
			c.OTPIssuedAt = &issuedAt
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeCustomerRepo) ClearExpiredPasscodes(ctx context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var cleared int64
	for _, c := range r.byID {
		if c.OTPCode != nil && c.OTPIssuedAt != nil && c.OTPIssuedAt.Before(before) {
			c.OTPCode = nil
			c.OTPIssuedAt = nil
			cleared++
		}
	}
	return cleared, nil
}

// capturingNotifier records every passcode handed to the out-of-band channel.
type capturingNotifier struct {
	mu    sync.Mutex
	sent  []string
	codes map[string]string // phone -> last code
}

func newCapturingNotifier() *capturingNotifier {
	return &capturingNotifier{codes: make(map[string]string)}
}

func (n *capturingNotifier) SendPasscode(ctx context.Context, phone, code, purpose string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, code)
	n.codes[phone] = code
	return nil
}

func (n *capturingNotifier) lastCode(phone string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.codes[phone]
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			AdminSecret:       "admin-test-secret",
			CustomerSecret:    "customer-test-secret",
			AdminTokenHours:   24,
			CustomerTokenDays: 7,
		},
	}
}

func newTestCustomerService() (*CustomerAuthService, *fakeCustomerRepo, *capturingNotifier) {
	repo := newFakeCustomerRepo()
	notifier := newCapturingNotifier()
	return NewCustomerAuthService(repo, notifier, nil, testConfig()), repo, notifier
}

func TestRegisterDuplicatePhone(t *testing.T) {
	svc, _, _ := newTestCustomerService()
	ctx := context.Background()

	if err := svc.Register(ctx, "01712345678", "Rahim"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := svc.Register(ctx, "01712345678", "Karim"); !errors.Is(err, ErrDuplicatePhone) {
		t.Fatalf("expected ErrDuplicatePhone, got %v", err)
	}
	// Same number in international form is the same account.
	if err := svc.Register(ctx, "+8801712345678", "Karim"); !errors.Is(err, ErrDuplicatePhone) {
		t.Fatalf("expected ErrDuplicatePhone for +880 form, got %v", err)
	}
}

func TestRegisterIssuesSixDigitPasscode(t *testing.T) {
	svc, repo, notifier := newTestCustomerService()
	ctx := context.Background()

	if err := svc.Register(ctx, "01712345678", "Rahim"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	code := notifier.lastCode("01712345678")
	if len(code) != 6 {
		t.Fatalf("expected a 6-digit passcode, got %q", code)
	}
	for _, ch := range code {
		if ch < '0' || ch > '9' {
			t.Fatalf("passcode contains non-digit: %q", code)
		}
	}

	stored, err := repo.GetByPhone(ctx, "01712345678")
	if err != nil {
		t.Fatalf("stored customer not found: %v", err)
	}
	if stored.IsVerified() {
		t.Fatal("fresh registration must not be verified")
	}
	if stored.Password != nil {
		t.Fatal("fresh registration must have no password")
	}
}

func TestVerifyWrongPasscodeMutatesNothing(t *testing.T) {
	svc, repo, _ := newTestCustomerService()
	ctx := context.Background()

	if err := svc.Register(ctx, "01712345678", "Rahim"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	err := svc.Verify(ctx, "01712345678", "000000", "a strong password")
	if !errors.Is(err, ErrInvalidPasscode) {
		t.Fatalf("expected ErrInvalidPasscode, got %v", err)
	}

	stored, err := repo.GetByPhone(ctx, "01712345678")
	if err != nil {
		t.Fatalf("stored customer not found: %v", err)
	}
	if stored.IsVerified() {
		t.Fatal("failed verification must not flip the verified flag")
	}
	if stored.Password != nil {
		t.Fatal("failed verification must not store a password")
	}
	if stored.OTPCode == nil {
		t.Fatal("failed verification must keep the passcode for a retry")
	}
}

func TestVerifyExpiredPasscode(t *testing.T) {
	svc, repo, notifier := newTestCustomerService()
	ctx := context.Background()

	if err := svc.Register(ctx, "01712345678", "Rahim"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	// Backdate the issue instant past the TTL.
	stored, _ := repo.GetByPhone(ctx, "01712345678")
	stale := time.Now().Add(-PasscodeTTL - time.Minute)
	if err := repo.UpdatePasscode(ctx, "01712345678", *stored.OTPCode, stale); err != nil {
		t.Fatalf("backdate failed: %v", err)
	}

	err := svc.Verify(ctx, "01712345678", notifier.lastCode("01712345678"), "a strong password")
	if !errors.Is(err, ErrInvalidPasscode) {
		t.Fatalf("expected ErrInvalidPasscode for expired code, got %v", err)
	}
}

func TestRegisterVerifyLoginScenario(t *testing.T) {
	svc, repo, notifier := newTestCustomerService()
	ctx := context.Background()

	if err := svc.Register(ctx, "+8801712345678", "Rahim"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	// Login before verification fails without leaking account state.
	if _, _, err := svc.Login(ctx, "01712345678", "a strong password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials before verification, got %v", err)
	}

	code := notifier.lastCode("01712345678")
	if err := svc.Verify(ctx, "01712345678", code, "a strong password"); err != nil {
		t.Fatalf("verification failed: %v", err)
	}

	stored, _ := repo.GetByPhone(ctx, "01712345678")
	if !stored.IsVerified() {
		t.Fatal("expected the account to be verified")
	}
	if stored.OTPCode != nil || stored.OTPIssuedAt != nil {
		t.Fatal("passcode must be cleared after use")
	}

	// The used passcode cannot be replayed.
	if err := svc.Verify(ctx, "01712345678", code, "another password"); !errors.Is(err, ErrInvalidPasscode) {
		t.Fatalf("expected ErrInvalidPasscode on replay, got %v", err)
	}

	customer, token, err := svc.Login(ctx, "01712345678", "a strong password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a bearer token")
	}
	if customer.Phone != "01712345678" {
		t.Fatalf("unexpected login phone: %s", customer.Phone)
	}

	if _, _, err := svc.Login(ctx, "01712345678", "wrong password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
}

func TestPasswordResetKeepsVerifiedState(t *testing.T) {
	svc, repo, notifier := newTestCustomerService()
	ctx := context.Background()

	if err := svc.Register(ctx, "01712345678", "Rahim"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	if err := svc.Verify(ctx, "01712345678", notifier.lastCode("01712345678"), "old password 1"); err != nil {
		t.Fatalf("verification failed: %v", err)
	}

	if err := svc.RequestPasscodeReset(ctx, "01712345678"); err != nil {
		t.Fatalf("reset request failed: %v", err)
	}

	stored, _ := repo.GetByPhone(ctx, "01712345678")
	if !stored.IsVerified() {
		t.Fatal("reset request must not drop the verified flag")
	}

	if err := svc.ChangePassword(ctx, "01712345678", notifier.lastCode("01712345678"), "new password 1"); err != nil {
		t.Fatalf("password change failed: %v", err)
	}

	if _, _, err := svc.Login(ctx, "01712345678", "old password 1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected the old password to stop working, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "01712345678", "new password 1"); err != nil {
		t.Fatalf("login with the new password failed: %v", err)
	}
}

func TestRequestPasscodeResetUnknownPhone(t *testing.T) {
	svc, _, _ := newTestCustomerService()
	if err := svc.RequestPasscodeReset(context.Background(), "01999999999"); !errors.Is(err, ErrUnknownPhone) {
		t.Fatalf("expected ErrUnknownPhone, got %v", err)
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"local form unchanged", "01712345678", "01712345678"},
		{"international with plus", "+8801712345678", "01712345678"},
		{"international without plus", "8801712345678", "01712345678"},
		{"surrounding whitespace", " 01712345678 ", "01712345678"},
		{"foreign number unchanged", "+14155551234", "14155551234"},
		{"short 880 lookalike unchanged", "8801", "8801"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.input); got != tt.want {
				t.Fatalf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
