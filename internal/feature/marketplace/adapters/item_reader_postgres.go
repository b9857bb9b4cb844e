package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"vufs_backend/internal/feature/marketplace/usecase"
)

type itemReaderPostgres struct {
	db *gorm.DB
}

var _ usecase.ItemReader = (*itemReaderPostgres)(nil)

// NewItemReader は指定されたgorm.DB接続でitemReaderPostgresの新しいインスタンスを生成します。
func NewItemReader(db *gorm.DB) *itemReaderPostgres {
	return &itemReaderPostgres{db: db}
}

// itemOwnerRow はitemsテーブルの所有者参照に必要な列のみを読み取ります。
type itemOwnerRow struct {
	ID      uint
	OwnerID uint
}

// OwnerOf はワードローブアイテムの所有者IDを返します。
// アイテムが存在しない場合、usecase.ErrNotItemOwnerを返します。
func (r *itemReaderPostgres) OwnerOf(ctx context.Context, itemID uint) (uint, error) {
	var row itemOwnerRow
	if err := r.db.WithContext(ctx).Table("items").
		Select("id", "owner_id").
		Where("id = ?", itemID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, usecase.ErrNotItemOwner
		}
		return 0, err
	}
	return row.OwnerID, nil
}
