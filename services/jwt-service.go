package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	authTokenTTL   = 30 * time.Minute
	verifyTokenTTL = 24 * time.Hour
)

// Claims carries the token subject as the "id" field, matching what the
// clients decode out of the payload.
type Claims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

// JWTService signs and validates the HS256 tokens used for login sessions and
// email verification links.
type JWTService struct {
	secret []byte
}

func NewJWTService(secret string) *JWTService {
	return &JWTService{secret: []byte(secret)}
}

// GenerateAuthToken issues a short-lived session token for the given user.
func (s *JWTService) GenerateAuthToken(userID string) (string, error) {
	return s.sign(userID, authTokenTTL)
}

// GenerateEmailVerificationToken issues the token embedded in the
// verification link mailed at registration.
func (s *JWTService) GenerateEmailVerificationToken(userID string) (string, error) {
	return s.sign(userID, verifyTokenTTL)
}

func (s *JWTService) sign(userID string, ttl time.Duration) (string, error) {
	claims := &Claims{
		ID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken returns the user ID a valid token was issued for.
func (s *JWTService) ValidateToken(tokenStr string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	if claims.ID == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return claims.ID, nil
}
