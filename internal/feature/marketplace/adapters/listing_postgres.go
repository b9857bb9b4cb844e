// Package adapters はmarketplaceフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"vufs_backend/internal/feature/marketplace/domain/entity"
	"vufs_backend/internal/feature/marketplace/usecase"
)

type listingPostgres struct {
	db *gorm.DB
}

var _ usecase.ListingRepository = (*listingPostgres)(nil)

// NewListingRepository は指定されたgorm.DB接続でlistingPostgresの新しいインスタンスを生成します。
func NewListingRepository(db *gorm.DB) *listingPostgres {
	return &listingPostgres{db: db}
}

// ListingModel はlistingsテーブルのGORMモデルです。
type ListingModel struct {
	ID          uint   `gorm:"primaryKey"`
	SellerID    uint   `gorm:"index;not null"`
	ItemID      uint   `gorm:"index;not null"`
	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"size:2000"`
	Brand       string `gorm:"size:128;index"`
	Category    string `gorm:"size:64;index"`
	Price       int64  `gorm:"not null"`
	Currency    string `gorm:"size:3;not null"`
	Condition   string `gorm:"size:16;not null"`
	Status      string `gorm:"size:16;not null;index;default:active"`
	LikeCount   int64  `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM.
func (ListingModel) TableName() string {
	return "listings"
}

func listingToModel(e *entity.Listing) ListingModel {
	return ListingModel{
		ID:          e.ID,
		SellerID:    e.SellerID,
		ItemID:      e.ItemID,
		Title:       e.Title,
		Description: e.Description,
		Brand:       e.Brand,
		Category:    e.Category,
		Price:       e.Price,
		Currency:    e.Currency,
		Condition:   e.Condition,
		Status:      e.Status,
		LikeCount:   e.LikeCount,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (m *ListingModel) toEntity() entity.Listing {
	return entity.Listing{
		ID:          m.ID,
		SellerID:    m.SellerID,
		ItemID:      m.ItemID,
		Title:       m.Title,
		Description: m.Description,
		Brand:       m.Brand,
		Category:    m.Category,
		Price:       m.Price,
		Currency:    m.Currency,
		Condition:   m.Condition,
		Status:      m.Status,
		LikeCount:   m.LikeCount,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// Create は出品をデータベースに追加し、採番されたIDをエンティティに書き戻します。
func (r *listingPostgres) Create(ctx context.Context, listing *entity.Listing) error {
	m := listingToModel(listing)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	listing.ID = m.ID
	listing.CreatedAt = m.CreatedAt
	listing.UpdatedAt = m.UpdatedAt
	return nil
}

// FindByID はIDで出品を取得します。
// 存在しない場合、usecase.ErrListingNotFoundを返します。
func (r *listingPostgres) FindByID(ctx context.Context, id uint) (*entity.Listing, error) {
	var m ListingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrListingNotFound
		}
		return nil, err
	}
	e := m.toEntity()
	return &e, nil
}

// Search は絞り込み条件付きで出品を新しい順に検索します。
func (r *listingPostgres) Search(ctx context.Context, filter usecase.SearchFilter) ([]entity.Listing, error) {
	q := r.db.WithContext(ctx).Model(&ListingModel{}).Where("status = ?", filter.Status)

	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		q = q.Where("title ILIKE ? OR brand ILIKE ?", like, like)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Condition != "" {
		q = q.Where("condition = ?", filter.Condition)
	}
	if filter.PriceMin > 0 {
		q = q.Where("price >= ?", filter.PriceMin)
	}
	if filter.PriceMax > 0 {
		q = q.Where("price <= ?", filter.PriceMax)
	}

	var rows []ListingModel
	if err := q.Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entity.Listing, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

// Update は出品内容を保存します。
func (r *listingPostgres) Update(ctx context.Context, listing *entity.Listing) error {
	m := listingToModel(listing)
	result := r.db.WithContext(ctx).Model(&ListingModel{}).Where("id = ?", m.ID).Updates(map[string]any{
		"title":       m.Title,
		"description": m.Description,
		"brand":       m.Brand,
		"category":    m.Category,
		"price":       m.Price,
		"currency":    m.Currency,
		"condition":   m.Condition,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrListingNotFound
	}
	return nil
}

// UpdateStatus は出品のステータスを更新します。
func (r *listingPostgres) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).Model(&ListingModel{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrListingNotFound
	}
	return nil
}
