package jwt

import (
	"errors"
	"testing"
	"time"
)

const (
	adminSecret    = "test-admin-secret"
	customerSecret = "test-customer-secret"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	token, expiresAt, err := GenerateAdminToken(42, "alice", "admin", adminSecret, 24)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}
	if until := time.Until(expiresAt); until < 23*time.Hour || until > 25*time.Hour {
		t.Fatalf("expected ~24h expiry, got %v", until)
	}

	claims, err := ValidateAdminToken(token, adminSecret)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "alice" || claims.Role != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestCustomerTokenRoundTrip(t *testing.T) {
	token, err := GenerateCustomerToken(7, "01712345678", customerSecret, 7)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ValidateCustomerToken(token, customerSecret)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.CustomerID != 7 || claims.Phone != "01712345678" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestValidateAdminTokenFailuresCollapse(t *testing.T) {
	valid, _, err := GenerateAdminToken(1, "admin", "admin", adminSecret, 24)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	expired, _, err := GenerateAdminToken(1, "admin", "admin", adminSecret, -1)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"garbage token", "not-a-jwt", adminSecret},
		{"empty token", "", adminSecret},
		{"wrong secret", valid, "some-other-secret"},
		{"expired token", expired, adminSecret},
		{"truncated token", valid[:len(valid)-10], adminSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAdminToken(tt.token, tt.secret)
			if !errors.Is(err, ErrTokenInvalid) {
				t.Fatalf("expected ErrTokenInvalid, got %v", err)
			}
		})
	}
}

func TestTokenFamiliesAreNotInterchangeable(t *testing.T) {
	adminToken, _, err := GenerateAdminToken(1, "admin", "admin", adminSecret, 24)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	customerToken, err := GenerateCustomerToken(5, "01712345678", customerSecret, 7)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	t.Run("admin token rejected by customer validator", func(t *testing.T) {
		if _, err := ValidateCustomerToken(adminToken, customerSecret); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("expected ErrTokenInvalid, got %v", err)
		}
	})

	t.Run("customer token rejected by admin validator", func(t *testing.T) {
		if _, err := ValidateAdminToken(customerToken, adminSecret); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("expected ErrTokenInvalid, got %v", err)
		}
	})

	// Even with a shared secret the claim shapes keep the families apart.
	t.Run("cross family fails on claim shape with shared secret", func(t *testing.T) {
		shared := "one-secret-for-both"
		adminShared, _, err := GenerateAdminToken(1, "admin", "admin", shared, 24)
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if _, err := ValidateCustomerToken(adminShared, shared); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("expected ErrTokenInvalid, got %v", err)
		}
	})
}
