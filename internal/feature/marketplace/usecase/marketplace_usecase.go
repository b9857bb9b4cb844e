package usecase

import (
	"context"
	"fmt"

	"vufs_backend/internal/feature/marketplace/domain/entity"
)

const (
	// DefaultSearchLimit は検索結果のデフォルト返却件数です。
	DefaultSearchLimit = 20
	// MaxSearchLimit は検索結果の最大返却件数です。
	MaxSearchLimit = 100
)

// SearchFilter は出品検索の絞り込み条件です。
type SearchFilter struct {
	Query     string // タイトル・ブランドに対する部分一致
	Category  string
	Condition string
	Status    string // 未指定の場合はactiveのみ
	PriceMin  int64
	PriceMax  int64 // 0は上限なし
	Limit     int
	Offset    int
}

// ListingRepository は出品の永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	FindByID(ctx context.Context, id uint) (*entity.Listing, error)
	Search(ctx context.Context, filter SearchFilter) ([]entity.Listing, error)
	Update(ctx context.Context, listing *entity.Listing) error
	UpdateStatus(ctx context.Context, id uint, status string) error
}

// LikeRepository はいいねの永続化層を抽象化します。操作は冪等です。
type LikeRepository interface {
	// Like はいいねを記録します。既にいいね済みの場合は何もしません。
	Like(ctx context.Context, listingID, userID uint) error
	// Unlike はいいねを取り消します。いいねしていない場合は何もしません。
	Unlike(ctx context.Context, listingID, userID uint) error
}

// ItemReader はワードローブアイテムの所有者参照を抽象化します。
// 出品時に自分のアイテムであることを検証するために使用します。
type ItemReader interface {
	// OwnerOf はアイテムの所有者IDを返します。
	OwnerOf(ctx context.Context, itemID uint) (uint, error)
}

// marketplaceUsecase はマーケットプレイスのビジネスロジックを提供します。
type marketplaceUsecase struct {
	listings ListingRepository
	likes    LikeRepository
	items    ItemReader
}

// NewMarketplaceUsecase はmarketplaceUsecaseの新しいインスタンスを生成します。
func NewMarketplaceUsecase(listings ListingRepository, likes LikeRepository, items ItemReader) *marketplaceUsecase {
	return &marketplaceUsecase{listings: listings, likes: likes, items: items}
}

// CreateListing はワードローブアイテムから新しい出品を作成します。
// 自分のアイテムのみ出品できます。
func (u *marketplaceUsecase) CreateListing(ctx context.Context, listing *entity.Listing) error {
	if listing.Title == "" {
		return fmt.Errorf("listing title is required")
	}
	if listing.Price <= 0 {
		return fmt.Errorf("listing price must be positive")
	}
	if len(listing.Currency) != 3 {
		return fmt.Errorf("currency must be a 3-letter ISO code")
	}

	ownerID, err := u.items.OwnerOf(ctx, listing.ItemID)
	if err != nil {
		return err
	}
	if ownerID != listing.SellerID {
		return ErrNotItemOwner
	}

	listing.Status = entity.StatusActive
	listing.LikeCount = 0
	return u.listings.Create(ctx, listing)
}

// GetListing は出品を取得します。取り下げ済みの出品は出品者のみ取得できます。
func (u *marketplaceUsecase) GetListing(ctx context.Context, id, requesterID uint) (*entity.Listing, error) {
	listing, err := u.listings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.Status == entity.StatusWithdrawn && listing.SellerID != requesterID {
		return nil, ErrListingNotFound
	}
	return listing, nil
}

// Search は絞り込み条件付きで出品を検索します。
// ステータス未指定の場合はactiveのみを対象とします。
func (u *marketplaceUsecase) Search(ctx context.Context, filter SearchFilter) ([]entity.Listing, error) {
	if filter.PriceMax > 0 && filter.PriceMin > filter.PriceMax {
		return nil, ErrInvalidPriceRange
	}
	if filter.Limit <= 0 || filter.Limit > MaxSearchLimit {
		filter.Limit = DefaultSearchLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.Status == "" {
		filter.Status = entity.StatusActive
	}
	return u.listings.Search(ctx, filter)
}

// UpdateListing は出品内容を更新します。販売中の出品を出品者のみ更新できます。
func (u *marketplaceUsecase) UpdateListing(ctx context.Context, requesterID uint, listing *entity.Listing) error {
	current, err := u.listings.FindByID(ctx, listing.ID)
	if err != nil {
		return err
	}
	if current.SellerID != requesterID {
		return ErrNotSeller
	}
	if !current.IsActive() {
		return ErrListingNotActive
	}
	if listing.Price <= 0 {
		return fmt.Errorf("listing price must be positive")
	}

	listing.SellerID = current.SellerID
	listing.ItemID = current.ItemID
	listing.Status = current.Status
	listing.LikeCount = current.LikeCount
	listing.CreatedAt = current.CreatedAt
	return u.listings.Update(ctx, listing)
}

// Withdraw は出品を取り下げます。販売中の出品を出品者のみ取り下げられます。
func (u *marketplaceUsecase) Withdraw(ctx context.Context, id, requesterID uint) error {
	return u.transition(ctx, id, requesterID, entity.StatusWithdrawn)
}

// MarkSold は出品を売却済みにします。
func (u *marketplaceUsecase) MarkSold(ctx context.Context, id, requesterID uint) error {
	return u.transition(ctx, id, requesterID, entity.StatusSold)
}

// transition は出品者本人によるactiveからのステータス遷移を実行します。
func (u *marketplaceUsecase) transition(ctx context.Context, id, requesterID uint, status string) error {
	listing, err := u.listings.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if listing.SellerID != requesterID {
		return ErrNotSeller
	}
	if !listing.IsActive() {
		return ErrListingNotActive
	}
	return u.listings.UpdateStatus(ctx, id, status)
}

// Like は出品にいいねを付けます。冪等です。
func (u *marketplaceUsecase) Like(ctx context.Context, listingID, userID uint) error {
	if _, err := u.listings.FindByID(ctx, listingID); err != nil {
		return err
	}
	return u.likes.Like(ctx, listingID, userID)
}

// Unlike は出品のいいねを取り消します。冪等です。
func (u *marketplaceUsecase) Unlike(ctx context.Context, listingID, userID uint) error {
	if _, err := u.listings.FindByID(ctx, listingID); err != nil {
		return err
	}
	return u.likes.Unlike(ctx, listingID, userID)
}
