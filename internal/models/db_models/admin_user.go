package db_models

// AdminUser carries its single active session inline; re-login
// overwrites the token. LegacyPasswordHash is the old SHA-256 scheme,
// cleared when the record is migrated to bcrypt on login.
type AdminUser struct {
	BaseModel
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string

	LegacyPasswordHash *string

	SessionToken     *string `gorm:"index"`
	SessionExpiresAt *int64
}
