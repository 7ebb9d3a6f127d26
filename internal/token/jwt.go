package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL bounds the lifetime of caller tokens.
const DefaultTTL = 15 * time.Minute

// Claims identifies a trigger caller (e.g. a user pool or an internal service).
type Claims struct {
	jwt.RegisteredClaims
}

// JWT issues and verifies HS256 caller tokens.
type JWT struct {
	secretKey string
	issuer    string
}

// NewJWT creates a new JWT with the shared secret and expected issuer.
func NewJWT(secretKey, issuer string) *JWT {
	return &JWT{secretKey: secretKey, issuer: issuer}
}

// Issue signs a token for caller valid for ttl.
func (j *JWT) Issue(caller string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   caller,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign caller token: %w", err)
	}

	return tokenString, nil
}

// Verify validates tokenString and returns the caller it was issued to.
func (j *JWT) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, jwt.WithIssuer(j.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("failed to parse caller token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("caller token is invalid")
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("caller token has no subject")
	}

	return claims.Subject, nil
}
