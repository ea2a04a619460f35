package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"bdmart/internal/adapters/persistence/models"
	"bdmart/internal/adapters/persistence/repositories"
	"bdmart/internal/pkg/cache"
)

// Payment account errors
var ErrUnknownProvider = errors.New("unknown payment provider")

const accountsCacheKey = "payment_accounts"

// PaymentAccountService maintains the administrator-configured mapping of
// receiving numbers per provider. The read path goes through a TTL-bounded
// cache when Redis is configured; the directory is read-mostly and stale
// reads of it are harmless, unlike the payment ledger which is never cached.
type PaymentAccountService struct {
	accountRepo repositories.PaymentAccountRepository
	cache       *cache.Client
	cacheTTL    time.Duration
}

// NewPaymentAccountService creates a new payment account service.
// cacheClient may be nil; the service then reads straight from the store.
func NewPaymentAccountService(accountRepo repositories.PaymentAccountRepository, cacheClient *cache.Client, cacheTTL time.Duration) *PaymentAccountService {
	return &PaymentAccountService{
		accountRepo: accountRepo,
		cache:       cacheClient,
		cacheTTL:    cacheTTL,
	}
}

// SetAccount upserts the receiving number for one provider from the closed
// provider set, then invalidates the cached directory.
func (s *PaymentAccountService) SetAccount(ctx context.Context, provider, accountNumber string) (*models.PaymentAccount, error) {
	accountNumber = strings.TrimSpace(accountNumber)
	if !models.ValidProvider(provider) {
		return nil, ErrUnknownProvider
	}

	account := &models.PaymentAccount{
		Provider:      provider,
		AccountNumber: accountNumber,
	}

	if err := s.accountRepo.Upsert(ctx, account); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, accountsCacheKey); err != nil {
			log.Printf("⚠️ Payment account cache invalidation failed: %v", err)
		}
	}

	log.Printf("✅ Payment account set: %s -> %s", provider, accountNumber)
	return account, nil
}

// ListAccounts returns the current provider mapping, read through the cache
// when one is configured.
func (s *PaymentAccountService) ListAccounts(ctx context.Context) ([]*models.PaymentAccount, error) {
	if s.cache != nil {
		var cached []*models.PaymentAccount
		hit, err := s.cache.GetJSON(ctx, accountsCacheKey, &cached)
		if err != nil {
			log.Printf("⚠️ Payment account cache read failed: %v", err)
		} else if hit {
			return cached, nil
		}
	}

	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, accountsCacheKey, accounts, s.cacheTTL); err != nil {
			log.Printf("⚠️ Payment account cache write failed: %v", err)
		}
	}

	return accounts, nil
}
