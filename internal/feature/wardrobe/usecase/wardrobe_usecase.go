package usecase

import (
	"context"
	"fmt"

	"vufs_backend/internal/feature/wardrobe/domain/entity"
)

const (
	// DefaultListLimit はアイテム一覧のデフォルト返却件数です。
	DefaultListLimit = 20
	// MaxListLimit はアイテム一覧の最大返却件数です。
	MaxListLimit = 100
)

// ItemFilter はアイテム一覧の絞り込み条件です。
type ItemFilter struct {
	Category string
	Brand    string
	Limit    int
	Offset   int
}

// ItemRepository はワードローブアイテムの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	FindByID(ctx context.Context, id uint) (*entity.Item, error)
	FindByOwner(ctx context.Context, ownerID uint, filter ItemFilter) ([]entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id uint) error
}

// CategoryRepository はVUFSタクソノミーの読み取りレイヤーを抽象化します。
type CategoryRepository interface {
	FindByCode(ctx context.Context, code string) (*entity.Category, error)
	ListAll(ctx context.Context) ([]entity.Category, error)
}

// wardrobeUsecase はワードローブ管理のビジネスロジックを提供します。
type wardrobeUsecase struct {
	items      ItemRepository
	categories CategoryRepository
}

// NewWardrobeUsecase はwardrobeUsecaseの新しいインスタンスを生成します。
func NewWardrobeUsecase(items ItemRepository, categories CategoryRepository) *wardrobeUsecase {
	return &wardrobeUsecase{items: items, categories: categories}
}

// validateVUFSCode はVUFSコードがタクソノミーのリーフを参照しているかを検証します。
func (u *wardrobeUsecase) validateVUFSCode(ctx context.Context, code string) error {
	cat, err := u.categories.FindByCode(ctx, code)
	if err != nil {
		return err
	}
	if !cat.Leaf {
		return ErrNotAssignable
	}
	return nil
}

// CreateItem は新しいワードローブアイテムを登録します。
// VUFSコードはタクソノミーの割り当て可能なリーフでなければなりません。
func (u *wardrobeUsecase) CreateItem(ctx context.Context, item *entity.Item) error {
	if item.Name == "" {
		return fmt.Errorf("item name is required")
	}
	if err := u.validateVUFSCode(ctx, item.VUFSCode); err != nil {
		return err
	}
	if item.Visibility == "" {
		item.Visibility = entity.VisibilityPrivate
	}
	return u.items.Create(ctx, item)
}

// GetItem はアイテムを取得します。非公開アイテムは所有者のみ取得できます。
func (u *wardrobeUsecase) GetItem(ctx context.Context, id, requesterID uint) (*entity.Item, error) {
	item, err := u.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Visibility != entity.VisibilityPublic && item.OwnerID != requesterID {
		return nil, ErrNotOwner
	}
	return item, nil
}

// ListItems は所有者のアイテム一覧を絞り込み条件付きで取得します。
func (u *wardrobeUsecase) ListItems(ctx context.Context, ownerID uint, filter ItemFilter) ([]entity.Item, error) {
	if filter.Limit <= 0 || filter.Limit > MaxListLimit {
		filter.Limit = DefaultListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return u.items.FindByOwner(ctx, ownerID, filter)
}

// UpdateItem はアイテムを更新します。所有者のみ更新できます。
// VUFSコードが変更される場合は再検証します。
func (u *wardrobeUsecase) UpdateItem(ctx context.Context, requesterID uint, item *entity.Item) error {
	current, err := u.items.FindByID(ctx, item.ID)
	if err != nil {
		return err
	}
	if current.OwnerID != requesterID {
		return ErrNotOwner
	}
	if item.VUFSCode != current.VUFSCode {
		if err := u.validateVUFSCode(ctx, item.VUFSCode); err != nil {
			return err
		}
	}
	item.OwnerID = current.OwnerID
	item.CreatedAt = current.CreatedAt
	return u.items.Update(ctx, item)
}

// DeleteItem はアイテムを物理削除します。所有者のみ削除できます。
func (u *wardrobeUsecase) DeleteItem(ctx context.Context, id, requesterID uint) error {
	item, err := u.items.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if item.OwnerID != requesterID {
		return ErrNotOwner
	}
	return u.items.Delete(ctx, id)
}

// ListCategories はVUFSタクソノミー全体を返します。
func (u *wardrobeUsecase) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return u.categories.ListAll(ctx)
}
