package service

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/logger"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/serviceerrors"
)

// AuthService is a deliberately small login stub: one configured admin
// identity, checked against the request and exchanged for a signed
// token. It is not a security boundary.
type AuthService struct {
	username string
	password string
	secret   []byte
	tokenTTL time.Duration
}

type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func NewAuthService(username, password, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		username: username,
		password: password,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !userOK || !passOK {
		logger.Warn(ctx, "login rejected", map[string]any{"username": username})
		return "", serviceerrors.NewUnauthorizedError("invalid credentials")
	}

	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}

	logger.Info(ctx, "Admin logged in", map[string]any{"username": username})
	return token, nil
}

// ValidateToken parses a bearer token issued by Login.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, serviceerrors.NewUnauthorizedError("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, serviceerrors.NewUnauthorizedError("invalid token")
	}
	return claims, nil
}
