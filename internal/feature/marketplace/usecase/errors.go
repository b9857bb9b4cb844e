// Package usecase はmarketplaceフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrListingNotFound は出品が存在しない場合に返されます。
	ErrListingNotFound = errors.New("listing not found")

	// ErrNotSeller は出品者以外が出品を操作しようとした場合に返されます。
	ErrNotSeller = errors.New("listing does not belong to user")

	// ErrNotItemOwner は自分のアイテム以外を出品しようとした場合に返されます。
	ErrNotItemOwner = errors.New("item does not belong to user")

	// ErrListingNotActive は販売中でない出品を操作しようとした場合に返されます。
	ErrListingNotActive = errors.New("listing is not active")

	// ErrInvalidPriceRange は価格フィルタの下限が上限を上回る場合に返されます。
	ErrInvalidPriceRange = errors.New("price minimum exceeds maximum")
)
