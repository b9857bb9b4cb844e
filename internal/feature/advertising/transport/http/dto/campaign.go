// Package dto はadvertisingフィーチャーのリクエスト/レスポンスDTOを定義します。
package dto

import "time"

// CampaignReq はキャンペーン作成・更新リクエストのボディです。
type CampaignReq struct {
	Name     string    `json:"name" binding:"required,max=255"`
	Budget   int64     `json:"budget" binding:"required,gt=0"`
	Currency string    `json:"currency" binding:"required,len=3"`
	StartAt  time.Time `json:"start_at" binding:"required"`
	EndAt    time.Time `json:"end_at" binding:"required"`
}

// CampaignRes はキャンペーンレスポンスです。
type CampaignRes struct {
	ID          uint      `json:"id"`
	OwnerID     uint      `json:"owner_id"`
	Name        string    `json:"name"`
	Budget      int64     `json:"budget"`
	Currency    string    `json:"currency"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Status      string    `json:"status"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	CreatedAt   time.Time `json:"created_at"`
}
