// Package domain contains core types for the activity ledger.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// EventKind is the closed set of recordable user actions.
type EventKind string

const (
	KindProfileUpdate EventKind = "profile_update"
	KindPostCreate    EventKind = "post_create"
	KindSkillAdd      EventKind = "skill_add"
	KindVerification  EventKind = "verification"
	KindServiceCreate EventKind = "service_create"
	KindHashtagUse    EventKind = "hashtag_use"
)

// EntityType classifies the optional referenced entity.
type EntityType string

const (
	EntityUser           EntityType = "user"
	EntityPost           EntityType = "post"
	EntitySkill          EntityType = "skill"
	EntityServiceRequest EntityType = "service_request"
	EntityServiceOffer   EntityType = "service_offer"
)

// Visibility gates who may read an event back.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityFollowers Visibility = "followers"
	VisibilityPrivate   Visibility = "private"
)

// ActivityEvent is one append-only ledger row. Events are never updated;
// only the retention sweeper deletes them, by age.
type ActivityEvent struct {
	ID         snowflake.ID      `gorm:"primaryKey"`
	ActorID    snowflake.ID      `gorm:"column:actor_id;not null;index"`
	Kind       EventKind         `gorm:"column:kind;type:text;not null;index:idx_activity_kind_created"`
	EntityType *EntityType       `gorm:"column:entity_type;type:text"`
	EntityID   *snowflake.ID     `gorm:"column:entity_id"`
	Payload    datatypes.JSONMap `gorm:"column:payload;type:jsonb"`
	Visibility Visibility        `gorm:"column:visibility;type:text;not null;default:'public'"`
	CreatedAt  time.Time         `gorm:"column:created_at;not null;index:idx_activity_kind_created"`
}

// TableName sets the database table name.
func (ActivityEvent) TableName() string { return "activity_events" }

// FeedItem is a public event joined to minimal actor display fields.
type FeedItem struct {
	ID                snowflake.ID      `json:"id"`
	ActorID           snowflake.ID      `json:"actor_id"`
	ActorName         string            `json:"actor_name"`
	ActorAvatarURL    string            `json:"actor_avatar_url"`
	ActorRole         string            `json:"actor_role"`
	ActorVerification string            `json:"actor_verification"`
	Kind              EventKind         `json:"kind"`
	EntityType        *EntityType       `json:"entity_type,omitempty"`
	EntityID          *snowflake.ID     `json:"entity_id,omitempty"`
	Payload           datatypes.JSONMap `json:"payload"`
	CreatedAt         time.Time         `json:"created_at"`
}
