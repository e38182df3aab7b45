// Package domain contains core types for the session engine.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// UserRole is the account role carried in session claims.
type UserRole string

const (
	RoleIndividual UserRole = "individual"
	RoleNGO        UserRole = "ngo"
	RoleCompany    UserRole = "company"
)

// Valid reports whether the role is one of the closed set.
func (r UserRole) Valid() bool {
	switch r {
	case RoleIndividual, RoleNGO, RoleCompany:
		return true
	}
	return false
}

// Session represents a persisted login session. A session is valid iff
// Active is true and ExpiresAt is in the future.
type Session struct {
	ID             snowflake.ID `gorm:"primaryKey"`
	UserID         snowflake.ID `gorm:"column:user_id;not null;index"`
	UserRole       UserRole     `gorm:"column:user_role;type:text;not null"`
	Email          string       `gorm:"column:email;type:text;not null"`
	DisplayName    string       `gorm:"column:display_name;type:text"`
	Browser        string       `gorm:"column:browser;type:text"`
	OS             string       `gorm:"column:os;type:text"`
	FormFactor     string       `gorm:"column:form_factor;type:text"`
	IsMobile       bool         `gorm:"column:is_mobile"`
	IPAddress      string       `gorm:"column:ip_address;type:text"`
	Active         bool         `gorm:"column:active;not null;default:true"`
	ExpiresAt      time.Time    `gorm:"column:expires_at;not null;index"`
	CreatedAt      time.Time    `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	LastActivityAt time.Time    `gorm:"column:last_activity_at;not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Session) TableName() string { return "sessions" }

// LoginAttempt is an append-only audit row for a login, successful or not.
type LoginAttempt struct {
	ID        snowflake.ID  `gorm:"primaryKey"`
	UserID    snowflake.ID  `gorm:"column:user_id;not null;index"`
	SessionID *snowflake.ID `gorm:"column:session_id"`
	IPAddress string        `gorm:"column:ip_address;type:text"`
	UserAgent string        `gorm:"column:user_agent;type:text"`
	Outcome   string        `gorm:"column:outcome;type:text;not null"`
	CreatedAt time.Time     `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (LoginAttempt) TableName() string { return "login_attempts" }

const (
	AttemptSuccess = "success"
	AttemptFailed  = "failed"
)

// SessionData is the business payload returned by Validate. It never
// carries the token or signing material.
type SessionData struct {
	SessionID   snowflake.ID
	UserID      snowflake.ID
	Role        UserRole
	Email       string
	DisplayName string
}

// SessionView is returned to clients auditing their devices.
type SessionView struct {
	SessionID      snowflake.ID `json:"session_id"`
	Browser        string       `json:"browser"`
	OS             string       `json:"os"`
	FormFactor     string       `json:"form_factor"`
	IsMobile       bool         `json:"is_mobile"`
	IPAddress      string       `json:"ip_address"`
	CreatedAt      time.Time    `json:"created_at"`
	LastActivityAt time.Time    `json:"last_activity_at"`
}
