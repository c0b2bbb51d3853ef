package services

import (
	"podcast_backend/internal/auth"
	"podcast_backend/internal/repositories"
	"podcast_backend/internal/services/dto"
	"podcast_backend/pkg/apperrors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService authenticates admins and issues session tokens.
type AuthService interface {
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Verify(tokenStr string) *dto.VerifyResponse
}

type authService struct {
	adminRepo repositories.AdminRepository
	tokens    *auth.TokenManager
}

func NewAuthService(adminRepo repositories.AdminRepository, tokens *auth.TokenManager) AuthService {
	return &authService{
		adminRepo: adminRepo,
		tokens:    tokens,
	}
}

// Login checks the credentials and returns a signed session token. Unknown
// usernames and wrong passwords produce the same error.
func (s *authService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	admin, err := s.adminRepo.FindByUsername(db, req.Username)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAdminNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(admin.ID, admin.Username)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		Success: true,
		Token:   token,
		User: dto.AdminResponse{
			ID:       admin.ID,
			Username: admin.Username,
		},
	}, nil
}

// Verify reports whether the token is a valid, unexpired admin session.
func (s *authService) Verify(tokenStr string) *dto.VerifyResponse {
	if tokenStr == "" {
		return &dto.VerifyResponse{Authenticated: false}
	}

	claims, err := s.tokens.Parse(tokenStr)
	if err != nil {
		return &dto.VerifyResponse{Authenticated: false}
	}

	return &dto.VerifyResponse{
		Authenticated: true,
		User: &dto.AdminResponse{
			ID:       claims.AdminID,
			Username: claims.Username,
		},
	}
}
