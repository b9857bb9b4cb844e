// Package usecase はadvertisingフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrCampaignNotFound はキャンペーンが存在しない場合に返されます。
	ErrCampaignNotFound = errors.New("campaign not found")

	// ErrNotCampaignOwner は所有者以外がキャンペーンを操作しようとした場合に返されます。
	ErrNotCampaignOwner = errors.New("campaign does not belong to user")

	// ErrInvalidDateWindow は配信期間が不正な場合に返されます。
	ErrInvalidDateWindow = errors.New("campaign date window is invalid")

	// ErrInvalidBudget は予算が正でない場合に返されます。
	ErrInvalidBudget = errors.New("campaign budget must be positive")

	// ErrInvalidTransition は許可されていないステータス遷移の場合に返されます。
	ErrInvalidTransition = errors.New("invalid campaign status transition")
)
