package repositories

import (
	"errors"

	"podcast_backend/internal/models"

	"gorm.io/gorm"
)

// ErrAdminNotFound is returned when no admin matches the given username.
var ErrAdminNotFound = errors.New("admin not found")

// AdminRepository wraps access to the admin credentials table.
type AdminRepository interface {
	Create(db *gorm.DB, admin *models.Admin) error
	FindByUsername(db *gorm.DB, username string) (*models.Admin, error)
}

type adminRepository struct{}

func NewAdminRepository() AdminRepository {
	return &adminRepository{}
}

func (r *adminRepository) Create(db *gorm.DB, admin *models.Admin) error {
	return db.Create(admin).Error
}

func (r *adminRepository) FindByUsername(db *gorm.DB, username string) (*models.Admin, error) {
	var admin models.Admin
	if err := db.First(&admin, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}
