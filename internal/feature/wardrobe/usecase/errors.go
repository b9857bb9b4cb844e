// Package usecase はwardrobeフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrItemNotFound はアイテムが存在しない場合に返されます。
	ErrItemNotFound = errors.New("item not found")

	// ErrNotOwner は所有者以外がアイテムを操作しようとした場合に返されます。
	ErrNotOwner = errors.New("item does not belong to user")

	// ErrUnknownCategory はVUFSコードがタクソノミーに存在しない場合に返されます。
	ErrUnknownCategory = errors.New("unknown VUFS category code")

	// ErrNotAssignable はVUFSコードがリーフノードでない場合に返されます。
	ErrNotAssignable = errors.New("VUFS category is not assignable to items")
)
