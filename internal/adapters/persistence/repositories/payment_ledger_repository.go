package repositories

import (
	"context"
	"time"

	"bdmart/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// paymentLedgerRepository implements PaymentLedgerRepository
type paymentLedgerRepository struct {
	db *gorm.DB
}

// NewPaymentLedgerRepository creates a new payment ledger repository
func NewPaymentLedgerRepository(db *gorm.DB) PaymentLedgerRepository {
	return &paymentLedgerRepository{db: db}
}

// Create inserts a ledger entry (ingestion path)
func (r *paymentLedgerRepository) Create(ctx context.Context, entry *models.PaymentLedgerEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// GetByTransactionID gets a ledger entry by its transaction identifier
func (r *paymentLedgerRepository) GetByTransactionID(ctx context.Context, transactionID string) (*models.PaymentLedgerEntry, error) {
	var entry models.PaymentLedgerEntry
	err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Consume marks the entry verified and attaches the consumer identity in one
// conditional UPDATE. The WHERE predicate excludes already-consumed rows, so
// of two racing calls for the same transaction id exactly one can match.
// Returns false when the row was already consumed (or does not exist).
func (r *paymentLedgerRepository) Consume(ctx context.Context, transactionID string, by models.PaymentConsumer, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.PaymentLedgerEntry{}).
		Where("transaction_id = ?", transactionID).
		Where("status <> ? OR customer_phone = '' OR customer_phone IS NULL", models.PaymentStatusVerified).
		Updates(map[string]interface{}{
			"status":         models.PaymentStatusVerified,
			"customer_id":    by.CustomerID,
			"customer_name":  by.Name,
			"customer_phone": by.Phone,
			"verified_at":    at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// List returns ledger entries for the admin audit view, filtered by provider
// and status and sorted by recency or amount. Read-only.
func (r *paymentLedgerRepository) List(ctx context.Context, filter LedgerFilter, offset, limit int) ([]*models.PaymentLedgerEntry, int64, error) {
	var entries []*models.PaymentLedgerEntry
	var total int64

	query := r.db.WithContext(ctx).Model(&models.PaymentLedgerEntry{})
	if filter.Provider != "" {
		query = query.Where("provider = ?", filter.Provider)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if filter.SortBy == "amount" {
		order = "amount DESC"
	}

	if err := query.Order(order).Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// Summary aggregates entries recorded since the cutoff
func (r *paymentLedgerRepository) Summary(ctx context.Context, since time.Time) (*LedgerSummary, error) {
	summary := &LedgerSummary{}

	base := r.db.WithContext(ctx).Model(&models.PaymentLedgerEntry{}).Where("created_at >= ?", since)

	if err := base.Session(&gorm.Session{}).Count(&summary.Total).Error; err != nil {
		return nil, err
	}

	row := r.db.WithContext(ctx).Model(&models.PaymentLedgerEntry{}).
		Where("created_at >= ? AND status = ?", since, models.PaymentStatusVerified).
		Select("COUNT(*) AS verified, COALESCE(SUM(amount), 0) AS verified_amount").
		Row()
	if err := row.Scan(&summary.Verified, &summary.VerifiedAmount); err != nil {
		return nil, err
	}

	return summary, nil
}
