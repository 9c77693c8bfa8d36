package models

import (
	"database/sql"
	"time"
)

// Post represents the live (current) state of a generated post
type Post struct {
	ID              string        `gorm:"primaryKey;type:varchar(36);column:id"`
	Topic           string        `gorm:"type:varchar(255);not null;column:topic"`
	Tone            string        `gorm:"type:varchar(64);not null;column:tone"`
	Content         string        `gorm:"type:text;not null;column:content"`
	Hashtags        string        `gorm:"type:text;column:hashtags"`
	EngagementScore sql.NullInt64 `gorm:"column:engagement_score"`
	PlanTier        string        `gorm:"type:varchar(16);not null;default:'free';column:plan_tier"`
	CreatedAt       time.Time     `gorm:"not null;column:created_at"`
	UpdatedAt       time.Time     `gorm:"not null;column:updated_at"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "forge_posts"
}
