package repositories

import (
	"context"

	"bdmart/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// paymentAccountRepository implements PaymentAccountRepository
type paymentAccountRepository struct {
	db *gorm.DB
}

// NewPaymentAccountRepository creates a new payment account repository
func NewPaymentAccountRepository(db *gorm.DB) PaymentAccountRepository {
	return &paymentAccountRepository{db: db}
}

// Upsert inserts or replaces the receiving number for a provider. The unique
// index on provider enforces one row per provider.
func (r *paymentAccountRepository) Upsert(ctx context.Context, account *models.PaymentAccount) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "provider"}},
		DoUpdates: clause.AssignmentColumns([]string{"account_number", "updated_at"}),
	}).Create(account).Error
}

// GetByProvider gets the account configured for one provider
func (r *paymentAccountRepository) GetByProvider(ctx context.Context, provider string) (*models.PaymentAccount, error) {
	var account models.PaymentAccount
	err := r.db.WithContext(ctx).Where("provider = ?", provider).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// List returns the current provider-to-account mapping
func (r *paymentAccountRepository) List(ctx context.Context) ([]*models.PaymentAccount, error) {
	var accounts []*models.PaymentAccount
	err := r.db.WithContext(ctx).Order("provider ASC").Find(&accounts).Error
	return accounts, err
}
