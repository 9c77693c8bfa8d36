package models

import (
	"time"
)

// HashtagInsight represents a persisted hashtag analysis for a post
type HashtagInsight struct {
	ID               int64     `gorm:"primaryKey;autoIncrement;column:id"`
	PostID           string    `gorm:"type:varchar(36);not null;index;column:post_id"`
	Tag              string    `gorm:"type:varchar(128);not null;column:tag"`
	Category         string    `gorm:"type:varchar(16);not null;column:category"`
	RelevanceScore   int       `gorm:"not null;column:relevance_score"`
	EstimatedReach   string    `gorm:"type:varchar(8);not null;column:estimated_reach"`
	CompetitionLevel string    `gorm:"type:varchar(8);not null;column:competition_level"`
	CreatedAt        time.Time `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for HashtagInsight
func (HashtagInsight) TableName() string {
	return "forge_hashtag_insights"
}
