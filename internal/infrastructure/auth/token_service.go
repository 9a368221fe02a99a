package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fandressouza/indicacoes/domain"
)

// TokenServiceImpl implements domain.TokenService. The token handed to clients is an
// HS256-signed wrapper around the opaque session id; the session itself stays in the
// session store.
type TokenServiceImpl struct {
	secretKey []byte
	issuer    string
}

// NewTokenService creates a new token service
func NewTokenService(secretKey, issuer string) domain.TokenService {
	return &TokenServiceImpl{
		secretKey: []byte(secretKey),
		issuer:    issuer,
	}
}

// Issue implements domain.TokenService
func (s *TokenServiceImpl) Issue(sessionID string, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// Parse implements domain.TokenService and returns the session id
func (s *TokenServiceImpl) Parse(tokenString string) (string, error) {
	if tokenString == "" {
		return "", domain.ErrTokenInvalid
	}

	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", domain.ErrTokenInvalid
	}

	if claims.ID == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.ID, nil
}
