// Package handler はadvertisingフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	jwtmw "vufs_backend/internal/platform/jwt"

	"vufs_backend/internal/feature/advertising/domain/entity"
	"vufs_backend/internal/feature/advertising/transport/http/dto"
	"vufs_backend/internal/feature/advertising/usecase"
)

// AdvertisingUsecase は広告キャンペーンのユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AdvertisingUsecase interface {
	CreateCampaign(ctx context.Context, campaign *entity.Campaign) error
	GetCampaign(ctx context.Context, id, requesterID uint) (*entity.Campaign, error)
	ListCampaigns(ctx context.Context, ownerID uint) ([]entity.Campaign, error)
	UpdateCampaign(ctx context.Context, requesterID uint, campaign *entity.Campaign) error
	Activate(ctx context.Context, id, requesterID uint) error
	Pause(ctx context.Context, id, requesterID uint) error
	End(ctx context.Context, id, requesterID uint) error
	RecordImpression(ctx context.Context, id uint) error
	RecordClick(ctx context.Context, id uint) error
}

// AdvertisingHandler は広告キャンペーンのHTTPリクエストを処理します。
// ルーティング層でbrand/adminロールのみに制限されます。
type AdvertisingHandler struct {
	uc AdvertisingUsecase
}

// NewAdvertisingHandler はAdvertisingHandlerの新しいインスタンスを生成します。
func NewAdvertisingHandler(uc AdvertisingUsecase) *AdvertisingHandler {
	return &AdvertisingHandler{uc: uc}
}

func campaignRes(e *entity.Campaign) dto.CampaignRes {
	return dto.CampaignRes{
		ID:          e.ID,
		OwnerID:     e.OwnerID,
		Name:        e.Name,
		Budget:      e.Budget,
		Currency:    e.Currency,
		StartAt:     e.StartAt,
		EndAt:       e.EndAt,
		Status:      e.Status,
		Impressions: e.Impressions,
		Clicks:      e.Clicks,
		CreatedAt:   e.CreatedAt,
	}
}

// writeCampaignError はユースケースのエラーをHTTPステータスに変換します。
func writeCampaignError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrCampaignNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
	case errors.Is(err, usecase.ErrNotCampaignOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, usecase.ErrInvalidDateWindow),
		errors.Is(err, usecase.ErrInvalidBudget),
		errors.Is(err, usecase.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slog.Error("advertising operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func campaignID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign id"})
		return 0, false
	}
	return uint(id), true
}

// Create はキャンペーン作成APIです。
//
// エンドポイント: POST /campaigns（brand/adminのみ）
func (h *AdvertisingHandler) Create(c *gin.Context) {
	var req dto.CampaignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("campaign validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	campaign := &entity.Campaign{
		OwnerID:  c.GetUint(jwtmw.ContextUserID),
		Name:     req.Name,
		Budget:   req.Budget,
		Currency: req.Currency,
		StartAt:  req.StartAt,
		EndAt:    req.EndAt,
	}
	if err := h.uc.CreateCampaign(c.Request.Context(), campaign); err != nil {
		writeCampaignError(c, err)
		return
	}
	c.JSON(http.StatusCreated, campaignRes(campaign))
}

// Get はキャンペーン取得APIです。
//
// エンドポイント: GET /campaigns/:id
func (h *AdvertisingHandler) Get(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	campaign, err := h.uc.GetCampaign(c.Request.Context(), id, c.GetUint(jwtmw.ContextUserID))
	if err != nil {
		writeCampaignError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaignRes(campaign))
}

// List は所有キャンペーン一覧APIです。
//
// エンドポイント: GET /campaigns
func (h *AdvertisingHandler) List(c *gin.Context) {
	campaigns, err := h.uc.ListCampaigns(c.Request.Context(), c.GetUint(jwtmw.ContextUserID))
	if err != nil {
		writeCampaignError(c, err)
		return
	}
	out := make([]dto.CampaignRes, 0, len(campaigns))
	for i := range campaigns {
		out = append(out, campaignRes(&campaigns[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Update はキャンペーン更新APIです。ドラフト状態のみ更新できます。
//
// エンドポイント: PUT /campaigns/:id
func (h *AdvertisingHandler) Update(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	var req dto.CampaignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	campaign := &entity.Campaign{
		ID:       id,
		Name:     req.Name,
		Budget:   req.Budget,
		Currency: req.Currency,
		StartAt:  req.StartAt,
		EndAt:    req.EndAt,
	}
	if err := h.uc.UpdateCampaign(c.Request.Context(), c.GetUint(jwtmw.ContextUserID), campaign); err != nil {
		writeCampaignError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaignRes(campaign))
}

// Activate は配信開始APIです。配信期間と予算を検証します。
//
// エンドポイント: POST /campaigns/:id/activate
func (h *AdvertisingHandler) Activate(c *gin.Context) {
	h.transition(c, h.uc.Activate)
}

// Pause は一時停止APIです。
//
// エンドポイント: POST /campaigns/:id/pause
func (h *AdvertisingHandler) Pause(c *gin.Context) {
	h.transition(c, h.uc.Pause)
}

// End は終了APIです。終了後の再開はできません。
//
// エンドポイント: POST /campaigns/:id/end
func (h *AdvertisingHandler) End(c *gin.Context) {
	h.transition(c, h.uc.End)
}

func (h *AdvertisingHandler) transition(c *gin.Context, op func(ctx context.Context, id, requesterID uint) error) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	if err := op(c.Request.Context(), id, c.GetUint(jwtmw.ContextUserID)); err != nil {
		writeCampaignError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RecordImpression はインプレッション記録APIです。
//
// エンドポイント: POST /campaigns/:id/impressions
func (h *AdvertisingHandler) RecordImpression(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	if err := h.uc.RecordImpression(c.Request.Context(), id); err != nil {
		writeCampaignError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RecordClick はクリック記録APIです。
//
// エンドポイント: POST /campaigns/:id/clicks
func (h *AdvertisingHandler) RecordClick(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	if err := h.uc.RecordClick(c.Request.Context(), id); err != nil {
		writeCampaignError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
