package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lyra-ai/lyra-backend/internal/domain"
	"github.com/lyra-ai/lyra-backend/internal/ports"
)

const minPasswordLength = 8

type Service struct {
	userRepo ports.UserRepository
	tokens   *JWTService
	log      *zap.Logger
}

func NewService(userRepo ports.UserRepository, tokens *JWTService, log *zap.Logger) ports.AuthService {
	return &Service{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log,
	}
}

func (s *Service) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must have at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Email:     email,
		Password:  string(hashed),
		Role:      domain.UserRoleUser,
		Status:    "Active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("User registered", zap.String("user_id", user.ID))
	return user, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil || user == nil {
		return "", "", domain.ErrInvalidCredentials
	}
	if user.Status != "Active" {
		return "", "", domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", domain.ErrInvalidCredentials
	}

	access, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.Parse(ctx, refreshToken, tokenTypeRefresh)
	if err != nil {
		return "", err
	}

	user, err := s.userRepo.FindByID(ctx, claims.Subject)
	if err != nil || user == nil {
		return "", domain.ErrInvalidToken
	}
	return s.tokens.GenerateAccessToken(user)
}

func (s *Service) ValidateToken(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Parse(ctx, token, tokenTypeAccess)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidToken
	}
	return user, nil
}

// Logout revokes an access or refresh token.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(ctx, token, tokenTypeAccess)
	if err != nil {
		claims, err = s.tokens.Parse(ctx, token, tokenTypeRefresh)
		if err != nil {
			return err
		}
	}
	return s.tokens.RevokeToken(ctx, claims)
}
