// Package handler はwardrobeフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	jwtmw "vufs_backend/internal/platform/jwt"

	"vufs_backend/internal/feature/wardrobe/domain/entity"
	"vufs_backend/internal/feature/wardrobe/transport/http/dto"
	"vufs_backend/internal/feature/wardrobe/usecase"
)

// WardrobeUsecase はワードローブ管理のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type WardrobeUsecase interface {
	CreateItem(ctx context.Context, item *entity.Item) error
	GetItem(ctx context.Context, id, requesterID uint) (*entity.Item, error)
	ListItems(ctx context.Context, ownerID uint, filter usecase.ItemFilter) ([]entity.Item, error)
	UpdateItem(ctx context.Context, requesterID uint, item *entity.Item) error
	DeleteItem(ctx context.Context, id, requesterID uint) error
	ListCategories(ctx context.Context) ([]entity.Category, error)
}

// WardrobeHandler はワードローブのHTTPリクエストを処理します。
type WardrobeHandler struct {
	uc WardrobeUsecase
}

// NewWardrobeHandler はWardrobeHandlerの新しいインスタンスを生成します。
func NewWardrobeHandler(uc WardrobeUsecase) *WardrobeHandler {
	return &WardrobeHandler{uc: uc}
}

func itemRes(e *entity.Item) dto.ItemRes {
	return dto.ItemRes{
		ID:                e.ID,
		VUFSCode:          e.VUFSCode,
		Name:              e.Name,
		Brand:             e.Brand,
		Category:          e.Category,
		Subcategory:       e.Subcategory,
		Color:             e.Color,
		Material:          e.Material,
		SizeLabel:         e.SizeLabel,
		SizeRegion:        e.SizeRegion,
		PhotoURL:          e.PhotoURL,
		ProcessedPhotoURL: e.ProcessedPhotoURL,
		Visibility:        e.Visibility,
		CreatedAt:         e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// writeItemError はユースケースのエラーをHTTPステータスに変換します。
func writeItemError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
	case errors.Is(err, usecase.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, usecase.ErrUnknownCategory), errors.Is(err, usecase.ErrNotAssignable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slog.Error("wardrobe operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// Create はアイテム登録APIです。
//
// エンドポイント: POST /items
func (h *WardrobeHandler) Create(c *gin.Context) {
	var req dto.ItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("item validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	item := &entity.Item{
		OwnerID:           c.GetUint(jwtmw.ContextUserID),
		VUFSCode:          req.VUFSCode,
		Name:              req.Name,
		Brand:             req.Brand,
		Category:          req.Category,
		Subcategory:       req.Subcategory,
		Color:             req.Color,
		Material:          req.Material,
		SizeLabel:         req.SizeLabel,
		SizeRegion:        req.SizeRegion,
		PhotoURL:          req.PhotoURL,
		ProcessedPhotoURL: req.ProcessedPhotoURL,
		Visibility:        req.Visibility,
	}
	if err := h.uc.CreateItem(c.Request.Context(), item); err != nil {
		writeItemError(c, err)
		return
	}
	c.JSON(http.StatusCreated, itemRes(item))
}

// Get はアイテム取得APIです。
//
// エンドポイント: GET /items/:id
func (h *WardrobeHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	item, err := h.uc.GetItem(c.Request.Context(), uint(id), c.GetUint(jwtmw.ContextUserID))
	if err != nil {
		writeItemError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemRes(item))
}

// List は自分のアイテム一覧APIです。
//
// エンドポイント例: GET /items?category=tops&brand=UNIQLO&limit=20&offset=0
func (h *WardrobeHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.uc.ListItems(c.Request.Context(), c.GetUint(jwtmw.ContextUserID), usecase.ItemFilter{
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeItemError(c, err)
		return
	}

	out := make([]dto.ItemRes, 0, len(items))
	for i := range items {
		out = append(out, itemRes(&items[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Update はアイテム更新APIです。
//
// エンドポイント: PUT /items/:id
func (h *WardrobeHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	var req dto.ItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	item := &entity.Item{
		ID:                uint(id),
		VUFSCode:          req.VUFSCode,
		Name:              req.Name,
		Brand:             req.Brand,
		Category:          req.Category,
		Subcategory:       req.Subcategory,
		Color:             req.Color,
		Material:          req.Material,
		SizeLabel:         req.SizeLabel,
		SizeRegion:        req.SizeRegion,
		PhotoURL:          req.PhotoURL,
		ProcessedPhotoURL: req.ProcessedPhotoURL,
		Visibility:        req.Visibility,
	}
	if err := h.uc.UpdateItem(c.Request.Context(), c.GetUint(jwtmw.ContextUserID), item); err != nil {
		writeItemError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemRes(item))
}

// Delete はアイテム削除APIです。
//
// エンドポイント: DELETE /items/:id
func (h *WardrobeHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	if err := h.uc.DeleteItem(c.Request.Context(), uint(id), c.GetUint(jwtmw.ContextUserID)); err != nil {
		writeItemError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCategories はVUFSタクソノミー一覧APIです。認証不要です。
//
// エンドポイント: GET /vufs/categories
func (h *WardrobeHandler) ListCategories(c *gin.Context) {
	categories, err := h.uc.ListCategories(c.Request.Context())
	if err != nil {
		slog.Error("failed to list categories", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	out := make([]dto.CategoryItem, 0, len(categories))
	for _, cat := range categories {
		out = append(out, dto.CategoryItem{
			Code:       cat.Code,
			Label:      cat.Label,
			ParentCode: cat.ParentCode,
			Depth:      cat.Depth,
			Leaf:       cat.Leaf,
		})
	}
	c.JSON(http.StatusOK, out)
}
