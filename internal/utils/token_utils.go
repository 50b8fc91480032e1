package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	"github.com/awqaf-platform/waqf_ledger/internal/middleware"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT signs an HS256 token for userID that grants the given approver
// roles. Unknown role names are rejected here rather than silently dropped at
// request time.
func GenerateJWT(userID string, roles []string, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", fmt.Errorf("user id is required")
	}
	normalized := make([]string, 0, len(roles))
	for _, raw := range roles {
		role, err := domain.ParseApproverRole(raw)
		if err != nil {
			return "", err
		}
		normalized = append(normalized, string(role))
	}

	now := time.Now()
	claims := middleware.Claims{
		Roles: normalized,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
