package services

import (
	"testing"
	"time"

	"podcast_backend/internal/auth"
	"podcast_backend/internal/models"
	"podcast_backend/internal/repositories"
	"podcast_backend/internal/services/dto"
	"podcast_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAdminRepo struct {
	admins map[string]models.Admin
}

func (r *fakeAdminRepo) Create(db *gorm.DB, admin *models.Admin) error {
	r.admins[admin.Username] = *admin
	return nil
}

func (r *fakeAdminRepo) FindByUsername(db *gorm.DB, username string) (*models.Admin, error) {
	admin, ok := r.admins[username]
	if !ok {
		return nil, repositories.ErrAdminNotFound
	}
	return &admin, nil
}

func newAuthFixture(t *testing.T) (AuthService, *auth.TokenManager) {
	t.Helper()

	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)

	admin := models.Admin{Username: "admin", PasswordHash: hash}
	admin.ID = "admin-1"

	repo := &fakeAdminRepo{admins: map[string]models.Admin{"admin": admin}}
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(repo, tokens), tokens
}

func TestLoginSuccess(t *testing.T) {
	svc, tokens := newAuthFixture(t)

	resp, err := svc.Login(nil, &dto.LoginRequest{Username: "admin", Password: "correct-horse"})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "admin-1", resp.User.ID)

	claims, err := tokens.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.AdminID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, wrongPassword := svc.Login(nil, &dto.LoginRequest{Username: "admin", Password: "wrong"})
	_, unknownUser := svc.Login(nil, &dto.LoginRequest{Username: "nobody", Password: "correct-horse"})

	// Unknown usernames and wrong passwords are indistinguishable.
	assert.ErrorIs(t, wrongPassword, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, apperrors.ErrInvalidCredentials)
}

func TestVerify(t *testing.T) {
	svc, tokens := newAuthFixture(t)

	token, err := tokens.Generate("admin-1", "admin")
	require.NoError(t, err)

	valid := svc.Verify(token)
	assert.True(t, valid.Authenticated)
	require.NotNil(t, valid.User)
	assert.Equal(t, "admin", valid.User.Username)

	assert.False(t, svc.Verify("").Authenticated)
	assert.False(t, svc.Verify("garbage").Authenticated)

	expired, err := auth.NewTokenManager("test-secret", -time.Minute).Generate("admin-1", "admin")
	require.NoError(t, err)
	assert.False(t, svc.Verify(expired).Authenticated)
}
