package services

import (
	"context"
	"errors"
	"log"
	"time"

	"bdmart/internal/adapters/persistence/models"
	"bdmart/internal/adapters/persistence/repositories"
	"bdmart/internal/pkg/metrics"

	"gorm.io/gorm"
)

// Reconciliation errors
var (
	ErrTransactionNotFound = errors.New("transaction id not found")
	ErrAmountMismatch      = errors.New("claimed amount exceeds recorded amount")
	ErrTransactionConsumed = errors.New("transaction id already used")
)

// PaymentService matches claimed mobile-money transactions against the
// ledger of externally recorded incoming payments and marks them consumed.
type PaymentService struct {
	ledgerRepo repositories.PaymentLedgerRepository
	metrics    *metrics.Metrics
}

// NewPaymentService creates a new payment service
func NewPaymentService(ledgerRepo repositories.PaymentLedgerRepository, m *metrics.Metrics) *PaymentService {
	return &PaymentService{ledgerRepo: ledgerRepo, metrics: m}
}

// ReconcileInput represents one checkout payment claim
type ReconcileInput struct {
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
	CustomerID    *uint   `json:"customer_id"`
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
}

// Reconcile validates a claimed transaction id and amount and atomically
// consumes the matching ledger entry.
//
// The consumption itself is a single conditional update keyed on the
// transaction id plus a not-yet-consumed predicate, so two racing claims for
// the same transaction cannot both succeed: the loser sees zero rows updated
// and gets ErrTransactionConsumed.
func (s *PaymentService) Reconcile(ctx context.Context, input *ReconcileInput) error {
	entry, err := s.ledgerRepo.GetByTransactionID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.outcome(ErrTransactionNotFound, "not_found")
		}
		return err
	}

	// A claim above the recorded amount is rejected; the customer claims to
	// have paid more than was received. Recorded amount above the claim is an
	// accepted overpayment.
	if entry.Amount < input.Amount {
		return s.outcome(ErrAmountMismatch, "amount_mismatch")
	}

	if entry.IsConsumed() {
		return s.outcome(ErrTransactionConsumed, "already_consumed")
	}

	consumer := models.PaymentConsumer{
		CustomerID: input.CustomerID,
		Name:       input.CustomerName,
		Phone:      input.CustomerPhone,
	}

	ok, err := s.ledgerRepo.Consume(ctx, input.TransactionID, consumer, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		// Lost the race: another claim consumed the entry between our read
		// and the conditional update.
		return s.outcome(ErrTransactionConsumed, "already_consumed")
	}

	log.Printf("✅ Payment reconciled: trx=%s amount=%.2f", input.TransactionID, input.Amount)
	if s.metrics != nil {
		s.metrics.Reconciliations.WithLabelValues("success").Inc()
	}
	return nil
}

// ListLedger returns the paginated admin audit view of the ledger
func (s *PaymentService) ListLedger(ctx context.Context, filter repositories.LedgerFilter, offset, limit int) ([]*models.PaymentLedgerEntry, int64, error) {
	return s.ledgerRepo.List(ctx, filter, offset, limit)
}

// Summary aggregates ledger activity since the cutoff (cron reporting)
func (s *PaymentService) Summary(ctx context.Context, since time.Time) (*repositories.LedgerSummary, error) {
	return s.ledgerRepo.Summary(ctx, since)
}

func (s *PaymentService) outcome(err error, label string) error {
	if s.metrics != nil {
		s.metrics.Reconciliations.WithLabelValues(label).Inc()
	}
	return err
}
