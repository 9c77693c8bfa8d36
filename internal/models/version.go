package models

import (
	"database/sql"
	"time"
)

// Change types recorded against a post version
const (
	ChangeTypeInitial    = "initial"
	ChangeTypeRegenerate = "regenerate"
	ChangeTypeRefine     = "refine"
	ChangeTypeManualEdit = "manual_edit"
)

// PostVersion represents one entry in a post's append-only version history
type PostVersion struct {
	ID                int64         `gorm:"primaryKey;autoIncrement;column:id"`
	PostID            string        `gorm:"type:varchar(36);not null;uniqueIndex:idx_post_version,priority:1;column:post_id"`
	VersionNumber     int           `gorm:"not null;uniqueIndex:idx_post_version,priority:2;column:version_number"`
	Content           string        `gorm:"type:text;not null;column:content"`
	Hashtags          string        `gorm:"type:text;column:hashtags"`
	EngagementScore   sql.NullInt64 `gorm:"column:engagement_score"`
	ChangeType        string        `gorm:"type:varchar(16);not null;column:change_type"`
	ChangeDescription string        `gorm:"type:varchar(255);column:change_description"`
	CreatedAt         time.Time     `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for PostVersion
func (PostVersion) TableName() string {
	return "forge_post_versions"
}
