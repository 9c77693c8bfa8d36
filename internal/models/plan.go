package models

// Plan tiers
const (
	PlanTierFree = "free"
	PlanTierPro  = "pro"
)

// Plan represents a subscription tier and its limits
type Plan struct {
	Tier         string `gorm:"primaryKey;type:varchar(16);column:tier"`
	VersionLimit int    `gorm:"not null;column:version_limit"`
	HashtagLimit int    `gorm:"not null;column:hashtag_limit"`
}

// TableName specifies the table name for Plan
func (Plan) TableName() string {
	return "forge_plans"
}
