// Package adapters はadminconfigフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vufs_backend/internal/feature/adminconfig/domain/entity"
	"vufs_backend/internal/feature/adminconfig/usecase"
)

type sizeStandardPostgres struct {
	db *gorm.DB
}

var _ usecase.SizeStandardRepository = (*sizeStandardPostgres)(nil)

// NewSizeStandardRepository は指定されたgorm.DB接続でsizeStandardPostgresの新しいインスタンスを生成します。
func NewSizeStandardRepository(db *gorm.DB) *sizeStandardPostgres {
	return &sizeStandardPostgres{db: db}
}

// SizeStandardModel はsize_standardsテーブルのGORMモデルです。
// (region, category, label) の複合ユニーク制約で重複を防ぎます。
type SizeStandardModel struct {
	ID        uint   `gorm:"primaryKey"`
	Region    string `gorm:"uniqueIndex:idx_region_category_label;size:8;not null"`
	Category  string `gorm:"uniqueIndex:idx_region_category_label;size:64;not null"`
	Label     string `gorm:"uniqueIndex:idx_region_category_label;size:32;not null"`
	SortOrder int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM.
func (SizeStandardModel) TableName() string {
	return "size_standards"
}

func standardToModel(e *entity.SizeStandard) SizeStandardModel {
	return SizeStandardModel{
		ID:        e.ID,
		Region:    e.Region,
		Category:  e.Category,
		Label:     e.Label,
		SortOrder: e.SortOrder,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (m *SizeStandardModel) toEntity() entity.SizeStandard {
	return entity.SizeStandard{
		ID:        m.ID,
		Region:    m.Region,
		Category:  m.Category,
		Label:     m.Label,
		SortOrder: m.SortOrder,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// Create はサイズ規格を追加し、採番されたIDをエンティティに書き戻します。
func (r *sizeStandardPostgres) Create(ctx context.Context, standard *entity.SizeStandard) error {
	m := standardToModel(standard)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	standard.ID = m.ID
	return nil
}

// Update はサイズ規格を保存します。
func (r *sizeStandardPostgres) Update(ctx context.Context, standard *entity.SizeStandard) error {
	m := standardToModel(standard)
	result := r.db.WithContext(ctx).Model(&SizeStandardModel{}).Where("id = ?", m.ID).Updates(map[string]any{
		"region":     m.Region,
		"category":   m.Category,
		"label":      m.Label,
		"sort_order": m.SortOrder,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrSizeStandardNotFound
	}
	return nil
}

// Delete はサイズ規格を削除します。
func (r *sizeStandardPostgres) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&SizeStandardModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrSizeStandardNotFound
	}
	return nil
}

// List は任意で地域・カテゴリで絞り込み、sort_order順に返します。
func (r *sizeStandardPostgres) List(ctx context.Context, region, category string) ([]entity.SizeStandard, error) {
	q := r.db.WithContext(ctx).Model(&SizeStandardModel{})
	if region != "" {
		q = q.Where("region = ?", region)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var rows []SizeStandardModel
	if err := q.Order("region, category, sort_order").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.SizeStandard, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

// UpsertBatch はシーダー用の一括投入です。既存行はsort_orderのみ更新します。
func (r *sizeStandardPostgres) UpsertBatch(ctx context.Context, standards []entity.SizeStandard) error {
	if len(standards) == 0 {
		return nil
	}
	rows := make([]SizeStandardModel, 0, len(standards))
	for i := range standards {
		rows = append(rows, standardToModel(&standards[i]))
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "region"}, {Name: "category"}, {Name: "label"}},
		DoUpdates: clause.AssignmentColumns([]string{"sort_order", "updated_at"}),
	}).Create(&rows).Error
}
