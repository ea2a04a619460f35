package repositories

import (
	"context"
	"time"

	"bdmart/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// customerRepository implements CustomerRepository
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// Create creates a new customer account
func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// GetByID gets a customer by ID
func (r *customerRepository) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetByPhone gets a customer by phone number
func (r *customerRepository) GetByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// ExistsByPhone checks if a phone number is registered, in any verification state
func (r *customerRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Customer{}).Where("phone = ?", phone).Count(&count).Error
	return count > 0, err
}

// Update updates a customer account
func (r *customerRepository) Update(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// UpdatePasscode overwrites the stored passcode without touching the
// verification flag. Any previously issued passcode becomes invalid.
func (r *customerRepository) UpdatePasscode(ctx context.Context, phone, code string, issuedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Customer{}).
		Where("phone = ?", phone).
		Updates(map[string]interface{}{
			"otp_code":      code,
			"otp_issued_at": issuedAt,
		}).Error
}

// ClearExpiredPasscodes blanks passcodes issued before the cutoff and returns
// how many rows were swept.
func (r *customerRepository) ClearExpiredPasscodes(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Customer{}).
		Where("otp_code IS NOT NULL AND otp_issued_at < ?", before).
		Updates(map[string]interface{}{
			"otp_code":      nil,
			"otp_issued_at": nil,
		})
	return res.RowsAffected, res.Error
}
