package services

import (
	"fmt"
	"time"

	"main/config"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenTypeAuth  = "auth"
	tokenTypeReset = "reset"
)

// TokenClaims are the JWT claims minted by the identity provider.
type TokenClaims struct {
	Email     string `json:"email,omitempty"`
	Name      string `json:"name,omitempty"`
	Picture   string `json:"picture,omitempty"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

func signToken(cfg config.AuthConfig, claims *TokenClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func mintAuthToken(cfg config.AuthConfig, subject, email, name, picture string) (string, error) {
	now := time.Now()
	return signToken(cfg, &TokenClaims{
		Email:     email,
		Name:      name,
		Picture:   picture,
		TokenType: tokenTypeAuth,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TokenExpiration)),
		},
	})
}

func mintResetToken(cfg config.AuthConfig, subject, email string) (string, error) {
	now := time.Now()
	return signToken(cfg, &TokenClaims{
		Email:     email,
		TokenType: tokenTypeReset,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.ResetExpiration)),
		},
	})
}

// parseToken verifies the signature, signing method, issuer and expiry of a
// token and returns its claims.
func parseToken(cfg config.AuthConfig, tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.SecretKey), nil
	}, jwt.WithIssuer(cfg.Issuer))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
