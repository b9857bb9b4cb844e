// Package entity はadvertisingフィーチャーのドメインモデルを定義します。
package entity

import "time"

// Status values for a campaign.
const (
	StatusDraft  = "draft"
	StatusActive = "active"
	StatusPaused = "paused"
	StatusEnded  = "ended"
)

// Campaign は広告キャンペーンを表します。
type Campaign struct {
	ID          uint
	OwnerID     uint // brandロールのユーザーID
	Name        string
	Budget      int64 // 最小通貨単位
	Currency    string
	StartAt     time.Time
	EndAt       time.Time
	Status      string
	Impressions int64
	Clicks      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the campaign is currently serving.
func (c *Campaign) IsActive() bool {
	return c.Status == StatusActive
}
