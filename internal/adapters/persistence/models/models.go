package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Admin & Customer Accounts
// ============================================================

// Admin roles. The set is closed; new staff roles get a constant here.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Admin account status
const (
	AdminStatusActive   = "active"
	AdminStatusInactive = "inactive"
)

// AdminUser represents the admin_users table.
// Admin accounts are never hard-deleted; status is toggled instead.
type AdminUser struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'admin'" json:"role"`
	Status    string         `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}

// IsActive reports whether the account may authenticate.
func (a *AdminUser) IsActive() bool {
	return a.Status == AdminStatusActive
}

// AdminUserResponse DTO
type AdminUserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *AdminUser) ToResponse() *AdminUserResponse {
	return &AdminUserResponse{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		Role:      a.Role,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
	}
}

// Customer OTP status
const (
	OTPStatusNotVerified = "not_verified"
	OTPStatusVerified    = "verified"
)

// Customer represents the customers table.
// Phone is the natural key; password stays NULL until the phone is verified.
type Customer struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Phone       string     `gorm:"uniqueIndex;size:20;not null" json:"phone"`
	Name        string     `gorm:"size:100" json:"name"`
	Password    *string    `gorm:"size:255" json:"-"`
	OTPCode     *string    `gorm:"size:10" json:"-"`
	OTPIssuedAt *time.Time `json:"-"`
	OTPStatus   string     `gorm:"size:20;default:'not_verified'" json:"otp_status"`
	VerifiedAt  *time.Time `json:"verified_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}

// IsVerified reports whether the customer completed phone verification.
func (c *Customer) IsVerified() bool {
	return c.OTPStatus == OTPStatusVerified
}

// CustomerResponse DTO
type CustomerResponse struct {
	ID         uint       `json:"id"`
	Phone      string     `json:"phone"`
	Name       string     `json:"name"`
	OTPStatus  string     `json:"otp_status"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (c *Customer) ToResponse() *CustomerResponse {
	return &CustomerResponse{
		ID:         c.ID,
		Phone:      c.Phone,
		Name:       c.Name,
		OTPStatus:  c.OTPStatus,
		VerifiedAt: c.VerifiedAt,
		CreatedAt:  c.CreatedAt,
	}
}

// ============================================================
// Payment Ledger & Payment Accounts
// ============================================================

// Mobile-money providers. Closed set; one payment account row per provider.
const (
	ProviderBkash = "bKash"
	ProviderNagad = "Nagad"
)

// ValidProvider reports whether name is a known payment provider.
func ValidProvider(name string) bool {
	return name == ProviderBkash || name == ProviderNagad
}

// Payment ledger status
const (
	PaymentStatusNotVerified = "not_verified"
	PaymentStatusVerified    = "verified"
)

// PaymentLedgerEntry represents one externally recorded incoming mobile-money
// transaction. Rows are inserted by the ingestion process and mutated exactly
// once, when a checkout claim is reconciled against them. Never deleted.
type PaymentLedgerEntry struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	TransactionID string     `gorm:"uniqueIndex;size:50;not null" json:"transaction_id"`
	Provider      string     `gorm:"size:20;not null;index" json:"provider"`
	Amount        float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	Status        string     `gorm:"size:20;not null;default:'not_verified';index" json:"status"`
	CustomerID    *uint      `gorm:"index" json:"customer_id"`
	CustomerName  string     `gorm:"size:100" json:"customer_name"`
	CustomerPhone string     `gorm:"size:20" json:"customer_phone"`
	VerifiedAt    *time.Time `json:"verified_at"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (PaymentLedgerEntry) TableName() string {
	return "payment_ledger_entries"
}

// IsConsumed reports whether the entry has already backed a checkout claim.
// A verified entry with a recorded consumer identity must never be accepted
// as proof of payment again.
func (e *PaymentLedgerEntry) IsConsumed() bool {
	return e.Status == PaymentStatusVerified && e.CustomerPhone != ""
}

// PaymentConsumer is the customer identity attached to a ledger entry at the
// moment of reconciliation.
type PaymentConsumer struct {
	CustomerID *uint
	Name       string
	Phone      string
}

// PaymentAccount represents the payment_accounts table: the receiving number
// an administrator configured for one provider. One row per provider.
type PaymentAccount struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Provider      string    `gorm:"uniqueIndex;size:20;not null" json:"provider"`
	AccountNumber string    `gorm:"size:20;not null" json:"account_number"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PaymentAccount) TableName() string {
	return "payment_accounts"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates tables that do not exist yet.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&AdminUser{},
		&Customer{},
		&PaymentLedgerEntry{},
		&PaymentAccount{},
	)
}
