package models

import (
	"database/sql"
	"time"
)

// CacheEntry represents a cached generation response keyed by request fingerprint
type CacheEntry struct {
	// CacheKey is the hex SHA-256 fingerprint of the normalized request
	CacheKey string `gorm:"primaryKey;type:varchar(64);column:cache_key"`

	// Normalized request fields, stored for inspection only; lookups go
	// through CacheKey.
	Topic        string `gorm:"type:varchar(255);not null;column:topic"`
	Tone         string `gorm:"type:varchar(64);not null;column:tone"`
	Audience     string `gorm:"type:varchar(255);column:audience"`
	Length       string `gorm:"type:varchar(32);not null;column:length"`
	CallToAction string `gorm:"type:varchar(255);column:call_to_action"`
	TemplateID   string `gorm:"type:varchar(64);column:template_id"`

	Content         string        `gorm:"type:text;not null;column:content"`
	Hashtags        string        `gorm:"type:text;column:hashtags"`
	EngagementScore sql.NullInt64 `gorm:"column:engagement_score"`

	HitCount  int64        `gorm:"not null;default:0;column:hit_count"`
	LastHitAt sql.NullTime `gorm:"column:last_hit_at"`
	CreatedAt time.Time    `gorm:"not null;column:created_at"`
	ExpiresAt time.Time    `gorm:"not null;index;column:expires_at"`
}

// TableName specifies the table name for CacheEntry
func (CacheEntry) TableName() string {
	return "forge_response_cache"
}
