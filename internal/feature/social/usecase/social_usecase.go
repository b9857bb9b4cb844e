package usecase

import (
	"context"
	"fmt"

	"vufs_backend/internal/feature/social/domain/entity"
)

const (
	// DefaultFeedLimit はフィードのデフォルト返却件数です。
	DefaultFeedLimit = 20
	// MaxFeedLimit はフィードの最大返却件数です。
	MaxFeedLimit = 100
	// MaxPostBodyLength は投稿本文の最大文字数です。
	MaxPostBodyLength = 2000
	// MaxCommentBodyLength はコメント本文の最大文字数です。
	MaxCommentBodyLength = 500
)

// PostRepository は投稿の永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	FindByID(ctx context.Context, id uint) (*entity.Post, error)
	Delete(ctx context.Context, id uint) error
	// FindByAuthors は指定した投稿者群の投稿を新しい順に返します。
	FindByAuthors(ctx context.Context, authorIDs []uint, limit, offset int) ([]entity.Post, error)
}

// FollowRepository はフォロー関係の永続化層を抽象化します。操作は冪等です。
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followeeID uint) error
	Unfollow(ctx context.Context, followerID, followeeID uint) error
	// FolloweeIDs はユーザーがフォローしている相手のID一覧を返します。
	FolloweeIDs(ctx context.Context, followerID uint) ([]uint, error)
	// FollowerIDs はユーザーをフォローしているユーザーのID一覧を返します。
	FollowerIDs(ctx context.Context, followeeID uint) ([]uint, error)
}

// CommentRepository はコメントの永続化層を抽象化します。
type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	FindByID(ctx context.Context, id uint) (*entity.Comment, error)
	Delete(ctx context.Context, id uint) error
	FindByPost(ctx context.Context, postID uint, limit, offset int) ([]entity.Comment, error)
}

// PostLikeRepository は投稿いいねの永続化層を抽象化します。操作は冪等です。
type PostLikeRepository interface {
	Like(ctx context.Context, postID, userID uint) error
	Unlike(ctx context.Context, postID, userID uint) error
}

// socialUsecase はソーシャルフィードのビジネスロジックを提供します。
type socialUsecase struct {
	posts    PostRepository
	follows  FollowRepository
	comments CommentRepository
	likes    PostLikeRepository
}

// NewSocialUsecase はsocialUsecaseの新しいインスタンスを生成します。
func NewSocialUsecase(posts PostRepository, follows FollowRepository, comments CommentRepository, likes PostLikeRepository) *socialUsecase {
	return &socialUsecase{posts: posts, follows: follows, comments: comments, likes: likes}
}

// CreatePost は新しい投稿を作成します。
func (u *socialUsecase) CreatePost(ctx context.Context, post *entity.Post) error {
	if post.Body == "" {
		return fmt.Errorf("post body is required")
	}
	if len(post.Body) > MaxPostBodyLength {
		return fmt.Errorf("post body exceeds %d characters", MaxPostBodyLength)
	}
	post.LikeCount = 0
	post.CommentCount = 0
	return u.posts.Create(ctx, post)
}

// GetPost は投稿を取得します。
func (u *socialUsecase) GetPost(ctx context.Context, id uint) (*entity.Post, error) {
	return u.posts.FindByID(ctx, id)
}

// DeletePost は投稿を削除します。投稿者のみ削除できます。
func (u *socialUsecase) DeletePost(ctx context.Context, id, requesterID uint) error {
	post, err := u.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != requesterID {
		return ErrNotAuthor
	}
	return u.posts.Delete(ctx, id)
}

// Feed はホームフィードを返します。
// フォローしているユーザーと自分自身の投稿を新しい順に返します。
func (u *socialUsecase) Feed(ctx context.Context, userID uint, limit, offset int) ([]entity.Post, error) {
	if limit <= 0 || limit > MaxFeedLimit {
		limit = DefaultFeedLimit
	}
	if offset < 0 {
		offset = 0
	}

	followees, err := u.follows.FolloweeIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve followees: %w", err)
	}
	authors := append(followees, userID)
	return u.posts.FindByAuthors(ctx, authors, limit, offset)
}

// Follow はユーザーをフォローします。自分自身はフォローできません。冪等です。
func (u *socialUsecase) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}
	return u.follows.Follow(ctx, followerID, followeeID)
}

// Unfollow はフォローを解除します。冪等です。
func (u *socialUsecase) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}
	return u.follows.Unfollow(ctx, followerID, followeeID)
}

// Followers はユーザーのフォロワーID一覧を返します。
func (u *socialUsecase) Followers(ctx context.Context, userID uint) ([]uint, error) {
	return u.follows.FollowerIDs(ctx, userID)
}

// Following はユーザーがフォローしている相手のID一覧を返します。
func (u *socialUsecase) Following(ctx context.Context, userID uint) ([]uint, error) {
	return u.follows.FolloweeIDs(ctx, userID)
}

// Comment は投稿にコメントを付けます。
func (u *socialUsecase) Comment(ctx context.Context, comment *entity.Comment) error {
	if comment.Body == "" {
		return fmt.Errorf("comment body is required")
	}
	if len(comment.Body) > MaxCommentBodyLength {
		return fmt.Errorf("comment body exceeds %d characters", MaxCommentBodyLength)
	}
	if _, err := u.posts.FindByID(ctx, comment.PostID); err != nil {
		return err
	}
	return u.comments.Create(ctx, comment)
}

// DeleteComment はコメントを削除します。コメント投稿者のみ削除できます。
func (u *socialUsecase) DeleteComment(ctx context.Context, id, requesterID uint) error {
	comment, err := u.comments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if comment.AuthorID != requesterID {
		return ErrNotAuthor
	}
	return u.comments.Delete(ctx, id)
}

// ListComments は投稿のコメント一覧を返します。
func (u *socialUsecase) ListComments(ctx context.Context, postID uint, limit, offset int) ([]entity.Comment, error) {
	if limit <= 0 || limit > MaxFeedLimit {
		limit = DefaultFeedLimit
	}
	if offset < 0 {
		offset = 0
	}
	if _, err := u.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	return u.comments.FindByPost(ctx, postID, limit, offset)
}

// LikePost は投稿にいいねを付けます。冪等です。
func (u *socialUsecase) LikePost(ctx context.Context, postID, userID uint) error {
	if _, err := u.posts.FindByID(ctx, postID); err != nil {
		return err
	}
	return u.likes.Like(ctx, postID, userID)
}

// UnlikePost は投稿のいいねを取り消します。冪等です。
func (u *socialUsecase) UnlikePost(ctx context.Context, postID, userID uint) error {
	if _, err := u.posts.FindByID(ctx, postID); err != nil {
		return err
	}
	return u.likes.Unlike(ctx, postID, userID)
}
