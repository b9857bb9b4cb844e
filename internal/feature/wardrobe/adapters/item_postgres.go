// Package adapters はwardrobeフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"vufs_backend/internal/feature/wardrobe/domain/entity"
	"vufs_backend/internal/feature/wardrobe/usecase"
)

type itemPostgres struct {
	db *gorm.DB
}

var _ usecase.ItemRepository = (*itemPostgres)(nil)

// NewItemRepository は指定されたgorm.DB接続でitemPostgresの新しいインスタンスを生成します。
func NewItemRepository(db *gorm.DB) *itemPostgres {
	return &itemPostgres{db: db}
}

// ItemModel はitemsテーブルのGORMモデルです。
type ItemModel struct {
	ID                uint   `gorm:"primaryKey"`
	OwnerID           uint   `gorm:"index;not null"`
	VUFSCode          string `gorm:"size:128;index;not null"`
	Name              string `gorm:"size:255;not null"`
	Brand             string `gorm:"size:128;index"`
	Category          string `gorm:"size:64;index"`
	Subcategory       string `gorm:"size:64"`
	Color             string `gorm:"size:32"`
	Material          string `gorm:"size:64"`
	SizeLabel         string `gorm:"size:16"`
	SizeRegion        string `gorm:"size:8"`
	PhotoURL          string `gorm:"size:512"`
	ProcessedPhotoURL string `gorm:"size:512"`
	Visibility        string `gorm:"size:16;not null;default:private"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName returns the table name for GORM.
func (ItemModel) TableName() string {
	return "items"
}

func itemToModel(e *entity.Item) ItemModel {
	return ItemModel{
		ID:                e.ID,
		OwnerID:           e.OwnerID,
		VUFSCode:          e.VUFSCode,
		Name:              e.Name,
		Brand:             e.Brand,
		Category:          e.Category,
		Subcategory:       e.Subcategory,
		Color:             e.Color,
		Material:          e.Material,
		SizeLabel:         e.SizeLabel,
		SizeRegion:        e.SizeRegion,
		PhotoURL:          e.PhotoURL,
		ProcessedPhotoURL: e.ProcessedPhotoURL,
		Visibility:        e.Visibility,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func (m *ItemModel) toEntity() entity.Item {
	return entity.Item{
		ID:                m.ID,
		OwnerID:           m.OwnerID,
		VUFSCode:          m.VUFSCode,
		Name:              m.Name,
		Brand:             m.Brand,
		Category:          m.Category,
		Subcategory:       m.Subcategory,
		Color:             m.Color,
		Material:          m.Material,
		SizeLabel:         m.SizeLabel,
		SizeRegion:        m.SizeRegion,
		PhotoURL:          m.PhotoURL,
		ProcessedPhotoURL: m.ProcessedPhotoURL,
		Visibility:        m.Visibility,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// Create はアイテムをデータベースに追加し、採番されたIDをエンティティに書き戻します。
func (r *itemPostgres) Create(ctx context.Context, item *entity.Item) error {
	m := itemToModel(item)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	item.ID = m.ID
	item.CreatedAt = m.CreatedAt
	item.UpdatedAt = m.UpdatedAt
	return nil
}

// FindByID はIDでアイテムを取得します。
// 存在しない場合、usecase.ErrItemNotFoundを返します。
func (r *itemPostgres) FindByID(ctx context.Context, id uint) (*entity.Item, error) {
	var m ItemModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrItemNotFound
		}
		return nil, err
	}
	e := m.toEntity()
	return &e, nil
}

// FindByOwner は所有者のアイテム一覧を新しい順に取得します。
func (r *itemPostgres) FindByOwner(ctx context.Context, ownerID uint, filter usecase.ItemFilter) ([]entity.Item, error) {
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Brand != "" {
		q = q.Where("brand = ?", filter.Brand)
	}

	var rows []ItemModel
	if err := q.Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entity.Item, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

// Update はアイテム全体を保存します。
func (r *itemPostgres) Update(ctx context.Context, item *entity.Item) error {
	m := itemToModel(item)
	result := r.db.WithContext(ctx).Model(&ItemModel{}).Where("id = ?", m.ID).Updates(map[string]any{
		"vufs_code":           m.VUFSCode,
		"name":                m.Name,
		"brand":               m.Brand,
		"category":            m.Category,
		"subcategory":         m.Subcategory,
		"color":               m.Color,
		"material":            m.Material,
		"size_label":          m.SizeLabel,
		"size_region":         m.SizeRegion,
		"photo_url":           m.PhotoURL,
		"processed_photo_url": m.ProcessedPhotoURL,
		"visibility":          m.Visibility,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrItemNotFound
	}
	return nil
}

// Delete はアイテムを物理削除します。
func (r *itemPostgres) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&ItemModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrItemNotFound
	}
	return nil
}
