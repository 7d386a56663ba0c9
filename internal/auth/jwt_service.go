package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "atelier/internal/errors"
)

// SessionTokenExpiry is the fixed lifetime of a session token. Tokens are
// stateless; there is no server-side revocation before expiry.
const SessionTokenExpiry = 30 * 24 * time.Hour

// Claims represents the session token payload.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies session tokens.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// Secret exposes the raw signing key for the echo-jwt middleware config.
func (s *JWTService) Secret() []byte {
	return s.secret
}

// IssueSessionToken signs a token carrying the subject and role.
func (s *JWTService) IssueSessionToken(userID uuid.UUID, role string) (string, error) {
	if len(s.secret) == 0 {
		return "", apperrors.ErrMissingSecret
	}

	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifySessionToken validates a token string and returns its claims. Bad
// signature, malformed payload, and expiry all map to ErrUnauthenticated.
func (s *JWTService) VerifySessionToken(tokenString string) (*Claims, error) {
	if len(s.secret) == 0 {
		return nil, apperrors.ErrMissingSecret
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrUnauthenticated
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrUnauthenticated
	}

	return claims, nil
}
