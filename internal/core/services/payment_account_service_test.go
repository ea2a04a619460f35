package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"bdmart/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// fakeAccountRepo is an in-memory PaymentAccountRepository with upsert
// semantics keyed on provider.
type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*models.PaymentAccount
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*models.PaymentAccount)}
}

func (r *fakeAccountRepo) Upsert(ctx context.Context, account *models.PaymentAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *account
	r.accounts[account.Provider] = &clone
	return nil
}

func (r *fakeAccountRepo) GetByProvider(ctx context.Context, provider string) (*models.PaymentAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[provider]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *account
	return &clone, nil
}

func (r *fakeAccountRepo) List(ctx context.Context) ([]*models.PaymentAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.PaymentAccount
	for _, account := range r.accounts {
		clone := *account
		out = append(out, &clone)
	}
	return out, nil
}

func TestSetAccountRejectsUnknownProvider(t *testing.T) {
	svc := NewPaymentAccountService(newFakeAccountRepo(), nil, 0)

	_, err := svc.SetAccount(context.Background(), "Rocket", "01712345678")
	if !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestSetAccountKeepsOneRowPerProvider(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewPaymentAccountService(repo, nil, 0)
	ctx := context.Background()

	if _, err := svc.SetAccount(ctx, models.ProviderBkash, "01711111111"); err != nil {
		t.Fatalf("first set failed: %v", err)
	}
	if _, err := svc.SetAccount(ctx, models.ProviderBkash, "01722222222"); err != nil {
		t.Fatalf("second set failed: %v", err)
	}
	if _, err := svc.SetAccount(ctx, models.ProviderNagad, "01733333333"); err != nil {
		t.Fatalf("nagad set failed: %v", err)
	}

	accounts, err := svc.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected one account per provider, got %d rows", len(accounts))
	}

	bkash, err := repo.GetByProvider(ctx, models.ProviderBkash)
	if err != nil {
		t.Fatalf("bkash lookup failed: %v", err)
	}
	if bkash.AccountNumber != "01722222222" {
		t.Fatalf("expected the later number to win, got %q", bkash.AccountNumber)
	}
}

func TestSetAccountTrimsWhitespace(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewPaymentAccountService(repo, nil, 0)

	account, err := svc.SetAccount(context.Background(), models.ProviderNagad, "  01744444444  ")
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if account.AccountNumber != "01744444444" {
		t.Fatalf("expected a trimmed number, got %q", account.AccountNumber)
	}
}
