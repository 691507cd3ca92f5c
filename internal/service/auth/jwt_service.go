package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lyra-ai/lyra-backend/internal/domain"
	"github.com/lyra-ai/lyra-backend/internal/ports"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
	revokedPrefix    = "revoked_token:"
)

// Claims are the JWT claims issued by Lyra.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
	Type string `json:"type"`
}

// JWTService signs, parses and revokes HS256 tokens. Revoked token IDs live
// in the cache until the token would have expired anyway.
type JWTService struct {
	secret          []byte
	accessDuration  time.Duration
	refreshDuration time.Duration
	cache           ports.Cache
	log             *zap.Logger
	now             func() time.Time
}

func NewJWTService(secret string, accessDuration, refreshDuration time.Duration, cache ports.Cache, log *zap.Logger) *JWTService {
	return &JWTService{
		secret:          []byte(secret),
		accessDuration:  accessDuration,
		refreshDuration: refreshDuration,
		cache:           cache,
		log:             log,
		now:             time.Now,
	}
}

func (s *JWTService) GenerateAccessToken(user *domain.User) (string, error) {
	return s.sign(user, tokenTypeAccess, s.accessDuration)
}

func (s *JWTService) GenerateRefreshToken(user *domain.User) (string, error) {
	return s.sign(user, tokenTypeRefresh, s.refreshDuration)
}

func (s *JWTService) sign(user *domain.User, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
		Type: tokenType,
	}
	if tokenType == tokenTypeAccess {
		claims.Role = string(user.Role)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

// Parse validates signature, expiry and token type, then checks revocation.
func (s *JWTService) Parse(ctx context.Context, tokenString, wantType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		s.log.Debug("Token validation failed", zap.Error(err))
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}
	if claims.Type != wantType {
		return nil, domain.ErrInvalidToken
	}
	if s.IsTokenRevoked(ctx, claims.ID) {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

// RevokeToken blacklists a token ID for the remaining lifetime of the token.
func (s *JWTService) RevokeToken(ctx context.Context, claims *Claims) error {
	ttl := s.refreshDuration
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
	}
	if ttl <= 0 {
		return nil
	}

	if err := s.cache.Set(ctx, revokedPrefix+claims.ID, "revoked", ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.log.Info("Token revoked", zap.String("jti", claims.ID), zap.String("user_id", claims.Subject))
	return nil
}

// IsTokenRevoked treats cache errors other than a miss as not revoked.
func (s *JWTService) IsTokenRevoked(ctx context.Context, tokenID string) bool {
	val, err := s.cache.Get(ctx, revokedPrefix+tokenID)
	if err != nil {
		if !errors.Is(err, ports.ErrCacheMiss) {
			s.log.Warn("Revocation lookup failed", zap.String("jti", tokenID), zap.Error(err))
		}
		return false
	}
	return val == "revoked"
}
