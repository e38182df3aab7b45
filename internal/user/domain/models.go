// Package domain contains core types for the user directory.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	sessiondomain "github.com/impactlink/engage/internal/session/domain"
	"gorm.io/datatypes"
)

// User represents a platform account: an individual, an NGO or a company.
type User struct {
	ID                 snowflake.ID           `gorm:"primaryKey"`
	Email              string                 `gorm:"column:email;type:text;not null;uniqueIndex"`
	DisplayName        string                 `gorm:"column:display_name;type:text;not null"`
	Role               sessiondomain.UserRole `gorm:"column:role;type:text;not null"`
	AvatarURL          string                 `gorm:"column:avatar_url;type:text"`
	VerificationStatus string                 `gorm:"column:verification_status;type:text;not null;default:'unverified'"`
	PasswordHash       *string                `gorm:"column:password_hash;type:text"`
	Metadata           datatypes.JSONMap      `gorm:"column:metadata;type:jsonb"`
	LastLoginAt        *time.Time             `gorm:"column:last_login_at"`
	CreatedAt          time.Time              `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt          time.Time              `gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }
