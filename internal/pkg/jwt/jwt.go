package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrTokenInvalid is the only error this package returns for a failed
// verification. Expired, malformed and badly signed tokens are deliberately
// indistinguishable to callers.
var ErrTokenInvalid = errors.New("token is invalid")

const issuer = "bdmart"

// AdminClaims is the claim set for the admin session token family.
// Delivered via an HTTP-only cookie.
type AdminClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// CustomerClaims is the claim set for the customer bearer token family.
// Delivered via the Authorization header.
type CustomerClaims struct {
	CustomerID uint   `json:"customer_id"`
	Phone      string `json:"phone"`
	jwt.RegisteredClaims
}

// GenerateAdminToken produces a signed admin session token valid for
// expiryHours. Returns the token and its expiry instant so the caller can
// align the cookie lifetime.
func GenerateAdminToken(userID uint, username, role, secret string, expiryHours int) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(expiryHours) * time.Hour)
	claims := AdminClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// GenerateCustomerToken produces a signed customer bearer token valid for
// expiryDays. Customers re-authenticate rarely, so the window is longer than
// the admin one.
func GenerateCustomerToken(customerID uint, phone, secret string, expiryDays int) (string, error) {
	claims := CustomerClaims{
		CustomerID: customerID,
		Phone:      phone,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expiryDays) * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
			Subject:   phone,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAdminToken verifies signature and expiry of an admin session token.
func ValidateAdminToken(tokenString, secret string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	// Reject tokens of the wrong claim shape even when secrets overlap.
	if claims.UserID == 0 || claims.Role == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// ValidateCustomerToken verifies signature and expiry of a customer bearer token.
func ValidateCustomerToken(tokenString, secret string) (*CustomerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomerClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*CustomerClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.CustomerID == 0 || claims.Phone == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
