package models

// Admin holds the credentials consulted by the login flow. Admins are
// provisioned at startup, never through the API.
type Admin struct {
	BaseModel
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
}
