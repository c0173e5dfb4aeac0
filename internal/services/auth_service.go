package services

import (
	"context"
	"errors"
	"fmt"

	"todoapp/backend/internal/models"
	"todoapp/backend/internal/repositories"
	"todoapp/backend/internal/validation"
)

// ErrInvalidCredentials はメールアドレスかパスワードが一致しないことを表します。
// どちらが違ったかは区別しません。
var ErrInvalidCredentials = errors.New("invalid credentials")

// 存在しないメールでも bcrypt の比較を1回行い、応答時間を揃えるためのハッシュ。
var dummyPasswordHash, _ = repositories.HashPassword("dummy-password-for-timing")

// AuthService はユーザー登録とログインを扱います。
type AuthService struct {
	userRepo   *repositories.UserRepository
	jwtService *JWTService
}

// NewAuthService は新しいAuthServiceを作成します。
func NewAuthService(userRepo *repositories.UserRepository, jwtService *JWTService) *AuthService {
	return &AuthService{userRepo: userRepo, jwtService: jwtService}
}

// Register は入力を検証し、パスワードをハッシュ化してユーザーを作成します。
func (s *AuthService) Register(ctx context.Context, req models.UserRegisterRequest) (*models.User, error) {
	if err := validation.ValidateRegistration(req.Email, req.Password, req.FirstName, req.LastName); err != nil {
		return nil, err
	}

	hashedPassword, err := repositories.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(ctx, &models.User{
		Email:        req.Email,
		PasswordHash: hashedPassword,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login は認証に成功するとセッショントークンとユーザー情報を返します。
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			_ = repositories.VerifyPassword(dummyPasswordHash, password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("could not look up user: %w", err)
	}

	if err := repositories.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{
		Token:     token,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}
