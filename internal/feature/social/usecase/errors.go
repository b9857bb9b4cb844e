// Package usecase はsocialフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrPostNotFound は投稿が存在しない場合に返されます。
	ErrPostNotFound = errors.New("post not found")

	// ErrCommentNotFound はコメントが存在しない場合に返されます。
	ErrCommentNotFound = errors.New("comment not found")

	// ErrNotAuthor は投稿者・コメント投稿者以外が削除しようとした場合に返されます。
	ErrNotAuthor = errors.New("resource does not belong to user")

	// ErrSelfFollow は自分自身をフォローしようとした場合に返されます。
	ErrSelfFollow = errors.New("cannot follow yourself")
)
