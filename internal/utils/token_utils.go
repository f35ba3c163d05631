package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rurasogoodo/notes_app/internal/core/domain"
)

// ErrInvalidAccessToken wraps every parse or verification failure of an access token.
var ErrInvalidAccessToken = errors.New("invalid access token")

// accessClaims is the JWT body: the user claims plus the registered ones.
type accessClaims struct {
	UserID   string `json:"userID"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// JWTSigner signs and parses HS256 access tokens. It is immutable once built.
type JWTSigner struct {
	secret []byte
	issuer string
}

// NewJWTSigner creates a signer for the given HMAC secret and issuer.
func NewJWTSigner(secret string, issuer string) (*JWTSigner, error) {
	if secret == "" {
		return nil, errors.New("jwt secret cannot be empty")
	}
	return &JWTSigner{secret: []byte(secret), issuer: issuer}, nil
}

// Sign serializes the payload into a signed token.
func (s *JWTSigner) Sign(payload domain.AccessTokenPayload) (string, error) {
	claims := accessClaims{
		UserID:   payload.UserID,
		Username: payload.Username,
		Email:    payload.Email,
		IsAdmin:  payload.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   payload.UserID,
			ExpiresAt: jwt.NewNumericDate(payload.ExpiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// Parse validates the signature, then checks expiry against now.
func (s *JWTSigner) Parse(tokenString string, now time.Time) (*domain.AccessTokenPayload, error) {
	claims := &accessClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAccessToken, domain.ErrAccessTokenExpired)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidAccessToken, err)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidAccessToken)
	}

	payload := &domain.AccessTokenPayload{
		UserID:    claims.UserID,
		Username:  claims.Username,
		Email:     claims.Email,
		IsAdmin:   claims.IsAdmin,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if err := payload.Verify(now); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAccessToken, err)
	}
	return payload, nil
}
