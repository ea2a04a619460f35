package services

import (
	"context"
	"log"
	"time"

	"bdmart/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs the background maintenance jobs: an hourly sweep of
// expired one-time passcodes and a daily payment-ledger summary (08:30).
type CronService struct {
	c            *cron.Cron
	customerRepo repositories.CustomerRepository
	ledgerRepo   repositories.PaymentLedgerRepository
}

// NewCronService creates a new cron service
func NewCronService(customerRepo repositories.CustomerRepository, ledgerRepo repositories.PaymentLedgerRepository) *CronService {
	return &CronService{
		c:            cron.New(),
		customerRepo: customerRepo,
		ledgerRepo:   ledgerRepo,
	}
}

// Start registers and launches the scheduled jobs
func (s *CronService) Start() {
	s.c.AddFunc("0 * * * *", s.sweepPasscodes)
	s.c.AddFunc("30 8 * * *", s.logLedgerSummary)
	s.c.Start()
	log.Println("🚀 Cron service started")
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.c.Stop()
	<-ctx.Done()
	log.Println("🛑 Cron service stopped")
}

func (s *CronService) sweepPasscodes() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-PasscodeTTL)
	swept, err := s.customerRepo.ClearExpiredPasscodes(ctx, cutoff)
	if err != nil {
		log.Printf("❌ Passcode sweep failed: %v", err)
		return
	}
	if swept > 0 {
		log.Printf("🗑️ Cleared %d expired passcodes", swept)
	}
}

func (s *CronService) logLedgerSummary() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	since := time.Now().Add(-24 * time.Hour)
	summary, err := s.ledgerRepo.Summary(ctx, since)
	if err != nil {
		log.Printf("❌ Ledger summary failed: %v", err)
		return
	}

	log.Printf("📊 Ledger last 24h: %d entries, %d verified, %.2f BDT reconciled",
		summary.Total, summary.Verified, summary.VerifiedAmount)
}
