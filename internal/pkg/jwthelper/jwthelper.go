package jwthelper

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	jwt.RegisteredClaims

	AdminID   uint   `json:"admin_id"`
	UserAgent string `json:"user_agent"`
}

// GenerateToken signs an HS256 token for adminID that expires after ttl.
func GenerateToken(key []byte, adminID uint, userAgent string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(adminID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		AdminID:   adminID,
		UserAgent: userAgent,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("token.SignedString -> %w", err)
	}

	return token, expiresAt, nil
}

// ParseToken verifies signature and expiry. Every failure is ErrInvalidToken.
func ParseToken(key []byte, tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err.Error())
	}
	if !token.Valid || claims.AdminID == 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Issuer binds a signing key and lifetime for the login flow.
type Issuer struct {
	key []byte
	ttl time.Duration
}

func NewIssuer(key []byte, ttl time.Duration) *Issuer {
	return &Issuer{
		key: key,
		ttl: ttl,
	}
}

func (i *Issuer) Issue(adminID uint, userAgent string) (string, time.Time, error) {
	return GenerateToken(i.key, adminID, userAgent, i.ttl)
}
