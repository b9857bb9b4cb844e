// Package handler はsocialフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	jwtmw "vufs_backend/internal/platform/jwt"

	"vufs_backend/internal/feature/social/domain/entity"
	"vufs_backend/internal/feature/social/transport/http/dto"
	"vufs_backend/internal/feature/social/usecase"
)

// SocialUsecase はソーシャルフィードのユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SocialUsecase interface {
	CreatePost(ctx context.Context, post *entity.Post) error
	GetPost(ctx context.Context, id uint) (*entity.Post, error)
	DeletePost(ctx context.Context, id, requesterID uint) error
	Feed(ctx context.Context, userID uint, limit, offset int) ([]entity.Post, error)
	Follow(ctx context.Context, followerID, followeeID uint) error
	Unfollow(ctx context.Context, followerID, followeeID uint) error
	Followers(ctx context.Context, userID uint) ([]uint, error)
	Following(ctx context.Context, userID uint) ([]uint, error)
	Comment(ctx context.Context, comment *entity.Comment) error
	DeleteComment(ctx context.Context, id, requesterID uint) error
	ListComments(ctx context.Context, postID uint, limit, offset int) ([]entity.Comment, error)
	LikePost(ctx context.Context, postID, userID uint) error
	UnlikePost(ctx context.Context, postID, userID uint) error
}

// SocialHandler はソーシャルフィードのHTTPリクエストを処理します。
type SocialHandler struct {
	uc SocialUsecase
}

// NewSocialHandler はSocialHandlerの新しいインスタンスを生成します。
func NewSocialHandler(uc SocialUsecase) *SocialHandler {
	return &SocialHandler{uc: uc}
}

func postRes(e *entity.Post) dto.PostRes {
	return dto.PostRes{
		ID:           e.ID,
		AuthorID:     e.AuthorID,
		Body:         e.Body,
		ItemID:       e.ItemID,
		PhotoURL:     e.PhotoURL,
		LikeCount:    e.LikeCount,
		CommentCount: e.CommentCount,
		CreatedAt:    e.CreatedAt,
	}
}

// writeSocialError はユースケースのエラーをHTTPステータスに変換します。
func writeSocialError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
	case errors.Is(err, usecase.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
	case errors.Is(err, usecase.ErrNotAuthor):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, usecase.ErrSelfFollow):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slog.Error("social operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func pagination(c *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}

// CreatePost は投稿作成APIです。
//
// エンドポイント: POST /posts
func (h *SocialHandler) CreatePost(c *gin.Context) {
	var req dto.PostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("post validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	post := &entity.Post{
		AuthorID: c.GetUint(jwtmw.ContextUserID),
		Body:     req.Body,
		ItemID:   req.ItemID,
		PhotoURL: req.PhotoURL,
	}
	if err := h.uc.CreatePost(c.Request.Context(), post); err != nil {
		writeSocialError(c, err)
		return
	}
	c.JSON(http.StatusCreated, postRes(post))
}

// GetPost は投稿取得APIです。
//
// エンドポイント: GET /posts/:id
func (h *SocialHandler) GetPost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	post, err := h.uc.GetPost(c.Request.Context(), id)
	if err != nil {
		writeSocialError(c, err)
		return
	}
	c.JSON(http.StatusOK, postRes(post))
}

// DeletePost は投稿削除APIです。
//
// エンドポイント: DELETE /posts/:id
func (h *SocialHandler) DeletePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.uc.DeletePost(c.Request.Context(), id, c.GetUint(jwtmw.ContextUserID)); err != nil {
		writeSocialError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Feed はホームフィードAPIです。
// フォロー中のユーザーと自分の投稿を新しい順に返します。
//
// エンドポイント例: GET /feed?limit=20&offset=0
func (h *SocialHandler) Feed(c *gin.Context) {
	limit, offset := pagination(c)
	posts, err := h.uc.Feed(c.Request.Context(), c.GetUint(jwtmw.ContextUserID), limit, offset)
	if err != nil {
		writeSocialError(c, err)
		return
	}
	out := make([]dto.PostRes, 0, len(posts))
	for i := range posts {
		out = append(out, postRes(&posts[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Follow はフォローAPIです。冪等です。
//
// エンドポイント: POST /users/:id/follow
func (h *SocialHandler) Follow(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.uc.Follow(c.Request.Context(), c.GetUint(jwtmw.ContextUserID), id); err != nil {
		writeSocialError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Unfollow はフォロー解除APIです。冪等です。
//
// エンドポイント: DELETE /users/:id/follow
func (h *SocialHandler) Unfollow(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.uc.Unfollow(c.Request.Context(), c.GetUint(jwtmw.ContextUserID), id); err != nil {
		writeSocialError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Followers はフォロワー一覧APIです。
//
// エンドポイント: GET /users/:id/followers
func (h *SocialHandler) Followers(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ids, err := h.uc.Followers(c.Request.Context(), id)
	if err != nil {
		writeSocialError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FollowListRes{UserIDs: ids})
}

// Following はフォロー中一覧APIです。
//
// エンドポイント: GET /users/:id/following
func (h *SocialHandler) Following(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ids, err := h.uc.Following(c.Request.Context(), id)
	if err != nil {
		writeSocialError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FollowListRes{UserIDs: ids})
}

// Comment はコメント作成APIです。
//
// エンドポイント: POST /posts/:id/comments
func (h *SocialHandler) Comment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	comment := &entity.Comment{
		PostID:   id,
		AuthorID: c.GetUint(jwtmw.ContextUserID),
		Body:     req.Body,
	}
	if err := h.uc.Comment(c.Request.Context(), comment); err != nil {
		writeSocialError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CommentRes{
		ID:        comment.ID,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
	})
}

// DeleteComment はコメント削除APIです。
//
// エンドポイント: DELETE /comments/:id
func (h *SocialHandler) DeleteComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.uc.DeleteComment(c.Request.Context(), id, c.GetUint(jwtmw.ContextUserID)); err != nil {
		writeSocialError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListComments はコメント一覧APIです。
//
// エンドポイント: GET /posts/:id/comments
func (h *SocialHandler) ListComments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	limit, offset := pagination(c)
	comments, err := h.uc.ListComments(c.Request.Context(), id, limit, offset)
	if err != nil {
		writeSocialError(c, err)
		return
	}
	out := make([]dto.CommentRes, 0, len(comments))
	for _, cm := range comments {
		out = append(out, dto.CommentRes{
			ID:        cm.ID,
			PostID:    cm.PostID,
			AuthorID:  cm.AuthorID,
			Body:      cm.Body,
			CreatedAt: cm.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

// LikePost はいいねAPIです。冪等です。
//
// エンドポイント: POST /posts/:id/like
func (h *SocialHandler) LikePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.uc.LikePost(c.Request.Context(), id, c.GetUint(jwtmw.ContextUserID)); err != nil {
		writeSocialError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UnlikePost はいいね取り消しAPIです。冪等です。
//
// エンドポイント: DELETE /posts/:id/like
func (h *SocialHandler) UnlikePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.uc.UnlikePost(c.Request.Context(), id, c.GetUint(jwtmw.ContextUserID)); err != nil {
		writeSocialError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
