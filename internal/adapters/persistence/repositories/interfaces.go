package repositories

import (
	"context"
	"time"

	"bdmart/internal/adapters/persistence/models"
)

// AdminRepository defines admin account persistence
type AdminRepository interface {
	Create(ctx context.Context, admin *models.AdminUser) error
	GetByID(ctx context.Context, id uint) (*models.AdminUser, error)
	GetByUsername(ctx context.Context, username string) (*models.AdminUser, error)
	Update(ctx context.Context, admin *models.AdminUser) error
	UpdateStatus(ctx context.Context, id uint, status string) error
	List(ctx context.Context, offset, limit int) ([]*models.AdminUser, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// CustomerRepository defines customer account persistence
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uint) (*models.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*models.Customer, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	Update(ctx context.Context, customer *models.Customer) error
	UpdatePasscode(ctx context.Context, phone, code string, issuedAt time.Time) error
	ClearExpiredPasscodes(ctx context.Context, before time.Time) (int64, error)
}

// LedgerFilter narrows and orders the admin ledger listing
type LedgerFilter struct {
	Provider string // empty = all providers
	Status   string // empty = all statuses
	SortBy   string // "recent" (default) or "amount"
}

// LedgerSummary aggregates ledger rows for reporting
type LedgerSummary struct {
	Total          int64
	Verified       int64
	VerifiedAmount float64
}

// PaymentLedgerRepository defines ledger persistence. Consume is the single
// mutation path: a conditional update that succeeds at most once per entry.
type PaymentLedgerRepository interface {
	Create(ctx context.Context, entry *models.PaymentLedgerEntry) error
	GetByTransactionID(ctx context.Context, transactionID string) (*models.PaymentLedgerEntry, error)
	Consume(ctx context.Context, transactionID string, by models.PaymentConsumer, at time.Time) (bool, error)
	List(ctx context.Context, filter LedgerFilter, offset, limit int) ([]*models.PaymentLedgerEntry, int64, error)
	Summary(ctx context.Context, since time.Time) (*LedgerSummary, error)
}

// PaymentAccountRepository defines the provider account directory
type PaymentAccountRepository interface {
	Upsert(ctx context.Context, account *models.PaymentAccount) error
	GetByProvider(ctx context.Context, provider string) (*models.PaymentAccount, error)
	List(ctx context.Context) ([]*models.PaymentAccount, error)
}
