package domain

import "time"

// BasePromptKey is the site_configs key for the shared wakuwaku prompt.
const BasePromptKey = "wakuwaku_base_prompt"

// DefaultBasePrompt is returned when no prompt has been stored yet.
const DefaultBasePrompt = "プロンプトが設定されていません"

type SiteConfig struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

type Stats struct {
	Users    int64
	Issues   int64
	Products int64
	Comments int64
}

type ActivityType string

const (
	ActivityIssue   ActivityType = "コマラボ"
	ActivityProduct ActivityType = "ワクワク"
)

// Activity is one row of the admin recent-activity feed.
type Activity struct {
	Title     string
	CreatedAt time.Time
	UserHash  string
	Type      ActivityType
}
