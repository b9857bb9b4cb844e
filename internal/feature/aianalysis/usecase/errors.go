// Package usecase はaianalysisフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrEmptyImage は画像データが空の場合に返されます。
	ErrEmptyImage = errors.New("image data is empty")

	// ErrImageTooLarge は画像サイズが上限を超えた場合に返されます。
	ErrImageTooLarge = errors.New("image size exceeds maximum")

	// ErrEmptyBatch はバッチのURLリストが空の場合に返されます。
	ErrEmptyBatch = errors.New("url list is empty")

	// ErrBatchTooLarge はバッチのURL数が上限を超えた場合に返されます。
	ErrBatchTooLarge = errors.New("url list exceeds maximum batch size")
)
