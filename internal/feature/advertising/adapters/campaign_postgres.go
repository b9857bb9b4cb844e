// Package adapters はadvertisingフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"vufs_backend/internal/feature/advertising/domain/entity"
	"vufs_backend/internal/feature/advertising/usecase"
)

type campaignPostgres struct {
	db *gorm.DB
}

var _ usecase.CampaignRepository = (*campaignPostgres)(nil)

// NewCampaignRepository は指定されたgorm.DB接続でcampaignPostgresの新しいインスタンスを生成します。
func NewCampaignRepository(db *gorm.DB) *campaignPostgres {
	return &campaignPostgres{db: db}
}

// CampaignModel はcampaignsテーブルのGORMモデルです。
type CampaignModel struct {
	ID          uint   `gorm:"primaryKey"`
	OwnerID     uint   `gorm:"index;not null"`
	Name        string `gorm:"size:255;not null"`
	Budget      int64  `gorm:"not null"`
	Currency    string `gorm:"size:3;not null"`
	StartAt     time.Time
	EndAt       time.Time
	Status      string `gorm:"size:16;not null;index;default:draft"`
	Impressions int64  `gorm:"not null;default:0"`
	Clicks      int64  `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM.
func (CampaignModel) TableName() string {
	return "campaigns"
}

func campaignToModel(e *entity.Campaign) CampaignModel {
	return CampaignModel{
		ID:          e.ID,
		OwnerID:     e.OwnerID,
		Name:        e.Name,
		Budget:      e.Budget,
		Currency:    e.Currency,
		StartAt:     e.StartAt,
		EndAt:       e.EndAt,
		Status:      e.Status,
		Impressions: e.Impressions,
		Clicks:      e.Clicks,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (m *CampaignModel) toEntity() entity.Campaign {
	return entity.Campaign{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Name:        m.Name,
		Budget:      m.Budget,
		Currency:    m.Currency,
		StartAt:     m.StartAt,
		EndAt:       m.EndAt,
		Status:      m.Status,
		Impressions: m.Impressions,
		Clicks:      m.Clicks,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// Create はキャンペーンを追加し、採番されたIDをエンティティに書き戻します。
func (r *campaignPostgres) Create(ctx context.Context, campaign *entity.Campaign) error {
	m := campaignToModel(campaign)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	campaign.ID = m.ID
	campaign.CreatedAt = m.CreatedAt
	campaign.UpdatedAt = m.UpdatedAt
	return nil
}

// FindByID はIDでキャンペーンを取得します。
// 存在しない場合、usecase.ErrCampaignNotFoundを返します。
func (r *campaignPostgres) FindByID(ctx context.Context, id uint) (*entity.Campaign, error) {
	var m CampaignModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCampaignNotFound
		}
		return nil, err
	}
	e := m.toEntity()
	return &e, nil
}

// FindByOwner は所有者のキャンペーンを新しい順に返します。
func (r *campaignPostgres) FindByOwner(ctx context.Context, ownerID uint) ([]entity.Campaign, error) {
	var rows []CampaignModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Campaign, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

// Update はキャンペーン内容を保存します。
func (r *campaignPostgres) Update(ctx context.Context, campaign *entity.Campaign) error {
	m := campaignToModel(campaign)
	result := r.db.WithContext(ctx).Model(&CampaignModel{}).Where("id = ?", m.ID).Updates(map[string]any{
		"name":     m.Name,
		"budget":   m.Budget,
		"currency": m.Currency,
		"start_at": m.StartAt,
		"end_at":   m.EndAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrCampaignNotFound
	}
	return nil
}

// UpdateStatus はキャンペーンのステータスを更新します。
func (r *campaignPostgres) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).Model(&CampaignModel{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrCampaignNotFound
	}
	return nil
}

// IncrementImpressions はインプレッション数を単一のUPDATEでアトミックに加算します。
func (r *campaignPostgres) IncrementImpressions(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&CampaignModel{}).Where("id = ?", id).
		Update("impressions", gorm.Expr("impressions + 1")).Error
}

// IncrementClicks はクリック数を単一のUPDATEでアトミックに加算します。
func (r *campaignPostgres) IncrementClicks(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&CampaignModel{}).Where("id = ?", id).
		Update("clicks", gorm.Expr("clicks + 1")).Error
}
