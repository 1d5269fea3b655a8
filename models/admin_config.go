package models

import "time"

// AdminConfigID is the well-known key of the single credential record.
const AdminConfigID = "default-config"

// AdminConfig holds the admin password hash and the last issued session
// token. Exactly one row exists, keyed by AdminConfigID; it is created
// lazily on the first successful login.
type AdminConfig struct {
	ID           string `gorm:"primaryKey;size:64"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	PasswordHash []byte `gorm:"not null"`
	// SessionToken records the most recently issued token for auditing.
	// Token validity is decided by signature and expiry, not this column.
	SessionToken string `gorm:"size:1024"`
}
