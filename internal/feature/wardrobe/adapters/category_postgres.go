package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vufs_backend/internal/feature/wardrobe/domain/entity"
	"vufs_backend/internal/feature/wardrobe/usecase"
)

type categoryPostgres struct {
	db *gorm.DB
}

var _ usecase.CategoryRepository = (*categoryPostgres)(nil)

// NewCategoryRepository は指定されたgorm.DB接続でcategoryPostgresの新しいインスタンスを生成します。
func NewCategoryRepository(db *gorm.DB) *categoryPostgres {
	return &categoryPostgres{db: db}
}

// CategoryModel はvufs_categoriesテーブルのGORMモデルです。
type CategoryModel struct {
	Code       string `gorm:"primaryKey;size:128"`
	Label      string `gorm:"size:128;not null"`
	ParentCode string `gorm:"size:128;index"`
	Depth      int    `gorm:"not null"`
	Leaf       bool   `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (CategoryModel) TableName() string {
	return "vufs_categories"
}

func (m *CategoryModel) toEntity() entity.Category {
	return entity.Category{
		Code:       m.Code,
		Label:      m.Label,
		ParentCode: m.ParentCode,
		Depth:      m.Depth,
		Leaf:       m.Leaf,
	}
}

// FindByCode はVUFSコードでタクソノミーノードを取得します。
// 存在しない場合、usecase.ErrUnknownCategoryを返します。
func (r *categoryPostgres) FindByCode(ctx context.Context, code string) (*entity.Category, error) {
	var m CategoryModel
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUnknownCategory
		}
		return nil, err
	}
	e := m.toEntity()
	return &e, nil
}

// ListAll はタクソノミー全体を階層順（depth, code）で取得します。
func (r *categoryPostgres) ListAll(ctx context.Context) ([]entity.Category, error) {
	var rows []CategoryModel
	if err := r.db.WithContext(ctx).
		Order("depth ASC, code ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Category, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

// UpsertBatch はタクソノミーノードを一括で挿入または更新します（シーダーが使用）。
func (r *categoryPostgres) UpsertBatch(ctx context.Context, categories []entity.Category) error {
	if len(categories) == 0 {
		return nil
	}
	ms := make([]CategoryModel, 0, len(categories))
	for _, c := range categories {
		ms = append(ms, CategoryModel{
			Code:       c.Code,
			Label:      c.Label,
			ParentCode: c.ParentCode,
			Depth:      c.Depth,
			Leaf:       c.Leaf,
		})
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"label", "parent_code", "depth", "leaf"}),
	}).Create(&ms).Error
}
