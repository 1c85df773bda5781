package service

import (
	"context"
	"errors"
	"fmt"
	"photo_contest/internal/common"
	"photo_contest/internal/common/security"
	"photo_contest/internal/domain/model"
	"photo_contest/internal/domain/repository"
	"photo_contest/internal/platform/cache"
	"photo_contest/internal/platform/config"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo  repository.UserRepository
	adminRepo repository.AdminRepository
	revoker   cache.TokenRevoker
}

func NewAuthService(userRepo repository.UserRepository, adminRepo repository.AdminRepository, revoker cache.TokenRevoker) *AuthService {
	return &AuthService{userRepo: userRepo, adminRepo: adminRepo, revoker: revoker}
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  *model.User  `json:"user,omitempty"`
	Admin *model.Admin `json:"admin,omitempty"`
	Token string       `json:"token"`
}

func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, common.Errorf("name, email and password are required: %w", common.ErrValidation)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		Coins:          config.AppConfig.SignupBonusCoins,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := security.GenerateToken(user.ID, model.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, common.Errorf("email and password are required: %w", common.ErrValidation)
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // Generic message for security
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := security.GenerateToken(user.ID, model.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token}, nil
}

// Logout places the presented token on the revocation list until it would
// have expired anyway.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return common.ErrUnauthorized
	}
	if err := s.revoker.Revoke(ctx, token, config.AppConfig.JWTExp); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

type AdminSignupRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	AdminSecret string `json:"admin_secret"`
}

// AdminSignup is gated by a static shared secret, carried over unchanged
// from the original system and flagged as a known weakness.
func (s *AuthService) AdminSignup(ctx context.Context, req AdminSignupRequest) (*AuthResponse, error) {
	if req.AdminSecret != config.AppConfig.AdminRegistrationSecret {
		return nil, common.Errorf("invalid admin secret: %w", common.ErrForbidden)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, common.Errorf("name, email and password are required: %w", common.ErrValidation)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.Admin{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: hashedPassword,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	token, err := security.GenerateToken(admin.ID, model.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	admin.HashedPassword = ""
	return &AuthResponse{Admin: admin, Token: token}, nil
}

func (s *AuthService) AdminLogin(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, common.Errorf("email and password are required: %w", common.ErrValidation)
	}

	admin, err := s.adminRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, admin.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := security.GenerateToken(admin.ID, model.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	admin.HashedPassword = ""
	return &AuthResponse{Admin: admin, Token: token}, nil
}
