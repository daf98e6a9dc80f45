package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "portfolio/internal/errors"
)

// SessionTTL is how long a session token stays valid. There is no renewal.
const SessionTTL = 24 * time.Hour

// Claims represents the session token claims.
type Claims struct {
	jwt.RegisteredClaims
}

// SessionService issues and verifies signed session tokens.
type SessionService struct {
	secret []byte
	ttl    time.Duration
	store  TokenStoreInterface
	now    func() time.Time
}

// NewSessionService creates a session service signing with secret. store may
// be nil, in which case logout cannot revoke tokens server side.
func NewSessionService(secret string, store TokenStoreInterface) *SessionService {
	return &SessionService{
		secret: []byte(secret),
		ttl:    SessionTTL,
		store:  store,
		now:    time.Now,
	}
}

// Issue creates a token for the admin with iat = now and exp = now + SessionTTL.
func (s *SessionService) Issue(adminID string) (string, error) {
	now := s.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        generateTokenID(),
			Subject:   adminID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature, expiry and revocation. Every failure is reported
// as ErrInvalidSession.
func (s *SessionService) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperrors.ErrInvalidSession
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, apperrors.ErrInvalidSession
	}

	if s.store != nil && claims.ID != "" {
		revoked, _ := s.store.IsRevoked(ctx, claims.ID)
		if revoked {
			return nil, apperrors.ErrInvalidSession
		}
	}

	return claims, nil
}

// Revoke marks a still-valid token as unusable until it expires. Invalid
// tokens are ignored, so logout stays idempotent.
func (s *SessionService) Revoke(ctx context.Context, tokenString string) error {
	if s.store == nil {
		return nil
	}
	claims, err := s.Verify(ctx, tokenString)
	if err != nil || claims.ID == "" {
		return nil
	}
	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return s.store.Revoke(ctx, claims.ID, ttl)
}

// generateTokenID generates a unique token ID (jti).
func generateTokenID() string {
	return uuid.New().String()
}
