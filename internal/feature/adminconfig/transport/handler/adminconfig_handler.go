// Package handler はadminconfigフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vufs_backend/internal/feature/adminconfig/domain/entity"
	"vufs_backend/internal/feature/adminconfig/transport/http/dto"
	"vufs_backend/internal/feature/adminconfig/usecase"
)

// AdminConfigUsecase は管理設定のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AdminConfigUsecase interface {
	CreateSizeStandard(ctx context.Context, standard *entity.SizeStandard) error
	UpdateSizeStandard(ctx context.Context, standard *entity.SizeStandard) error
	DeleteSizeStandard(ctx context.Context, id uint) error
	ListSizeStandards(ctx context.Context, region, category string) ([]entity.SizeStandard, error)
}

// AdminConfigHandler は管理設定のHTTPリクエストを処理します。
// 書き込み系はルーティング層でadminロールのみに制限されます。
type AdminConfigHandler struct {
	uc AdminConfigUsecase
}

// NewAdminConfigHandler はAdminConfigHandlerの新しいインスタンスを生成します。
func NewAdminConfigHandler(uc AdminConfigUsecase) *AdminConfigHandler {
	return &AdminConfigHandler{uc: uc}
}

func standardRes(e *entity.SizeStandard) dto.SizeStandardRes {
	return dto.SizeStandardRes{
		ID:        e.ID,
		Region:    e.Region,
		Category:  e.Category,
		Label:     e.Label,
		SortOrder: e.SortOrder,
	}
}

// CreateSizeStandard はサイズ規格作成APIです。
//
// エンドポイント: POST /admin/sizes（adminのみ）
func (h *AdminConfigHandler) CreateSizeStandard(c *gin.Context) {
	var req dto.SizeStandardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	standard := &entity.SizeStandard{
		Region:    req.Region,
		Category:  req.Category,
		Label:     req.Label,
		SortOrder: req.SortOrder,
	}
	if err := h.uc.CreateSizeStandard(c.Request.Context(), standard); err != nil {
		slog.Error("failed to create size standard", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, standardRes(standard))
}

// UpdateSizeStandard はサイズ規格更新APIです。
//
// エンドポイント: PUT /admin/sizes/:id（adminのみ）
func (h *AdminConfigHandler) UpdateSizeStandard(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid size standard id"})
		return
	}
	var req dto.SizeStandardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	standard := &entity.SizeStandard{
		ID:        uint(id),
		Region:    req.Region,
		Category:  req.Category,
		Label:     req.Label,
		SortOrder: req.SortOrder,
	}
	if err := h.uc.UpdateSizeStandard(c.Request.Context(), standard); err != nil {
		if errors.Is(err, usecase.ErrSizeStandardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "size standard not found"})
			return
		}
		slog.Error("failed to update size standard", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, standardRes(standard))
}

// DeleteSizeStandard はサイズ規格削除APIです。
//
// エンドポイント: DELETE /admin/sizes/:id（adminのみ）
func (h *AdminConfigHandler) DeleteSizeStandard(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid size standard id"})
		return
	}
	if err := h.uc.DeleteSizeStandard(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, usecase.ErrSizeStandardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "size standard not found"})
			return
		}
		slog.Error("failed to delete size standard", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListSizeStandards はサイズ規格一覧APIです。認証不要です。
//
// エンドポイント例: GET /sizes?region=JP&category=tops
func (h *AdminConfigHandler) ListSizeStandards(c *gin.Context) {
	standards, err := h.uc.ListSizeStandards(c.Request.Context(), c.Query("region"), c.Query("category"))
	if err != nil {
		slog.Error("failed to list size standards", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	out := make([]dto.SizeStandardRes, 0, len(standards))
	for i := range standards {
		out = append(out, standardRes(&standards[i]))
	}
	c.JSON(http.StatusOK, out)
}
