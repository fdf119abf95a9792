package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingTenant is returned for a valid token that carries no tenant.
var ErrMissingTenant = errors.New("token has no tenant")

// TenantClaims are the JWT claims identifying the tenant a caller acts for.
type TenantClaims struct {
	TenantID string `json:"tenant_id"`
	jwt.RegisteredClaims
}

// GenerateTenantJWT generates a signed HS256 token for tenantID.
func GenerateTenantJWT(tenantID domain.TenantID, subject, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	if tenantID == "" {
		return "", ErrMissingTenant
	}
	now := time.Now()
	claims := TenantClaims{
		TenantID: string(tenantID),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateTenantJWT parses a token string, validates its signature, standard claims
// and issuer (when issuer is not empty) and returns its claims.
func ParseAndValidateTenantJWT(tokenString, secretKey, issuer string) (*TenantClaims, error) {
	claims := &TenantClaims{}

	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method %v", jwt.ErrSignatureInvalid, token.Header["alg"])
		}
		return []byte(secretKey), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.TenantID == "" {
		return nil, ErrMissingTenant
	}

	return claims, nil
}
