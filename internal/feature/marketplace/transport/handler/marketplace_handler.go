// Package handler はmarketplaceフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	jwtmw "vufs_backend/internal/platform/jwt"

	"vufs_backend/internal/feature/marketplace/domain/entity"
	"vufs_backend/internal/feature/marketplace/transport/http/dto"
	"vufs_backend/internal/feature/marketplace/usecase"
)

// MarketplaceUsecase はマーケットプレイスのユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type MarketplaceUsecase interface {
	CreateListing(ctx context.Context, listing *entity.Listing) error
	GetListing(ctx context.Context, id, requesterID uint) (*entity.Listing, error)
	Search(ctx context.Context, filter usecase.SearchFilter) ([]entity.Listing, error)
	UpdateListing(ctx context.Context, requesterID uint, listing *entity.Listing) error
	Withdraw(ctx context.Context, id, requesterID uint) error
	MarkSold(ctx context.Context, id, requesterID uint) error
	Like(ctx context.Context, listingID, userID uint) error
	Unlike(ctx context.Context, listingID, userID uint) error
}

// MarketplaceHandler はマーケットプレイスのHTTPリクエストを処理します。
type MarketplaceHandler struct {
	uc MarketplaceUsecase
}

// NewMarketplaceHandler はMarketplaceHandlerの新しいインスタンスを生成します。
func NewMarketplaceHandler(uc MarketplaceUsecase) *MarketplaceHandler {
	return &MarketplaceHandler{uc: uc}
}

func listingRes(e *entity.Listing) dto.ListingRes {
	return dto.ListingRes{
		ID:          e.ID,
		SellerID:    e.SellerID,
		ItemID:      e.ItemID,
		Title:       e.Title,
		Description: e.Description,
		Brand:       e.Brand,
		Category:    e.Category,
		Price:       e.Price,
		Currency:    e.Currency,
		Condition:   e.Condition,
		Status:      e.Status,
		LikeCount:   e.LikeCount,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// writeListingError はユースケースのエラーをHTTPステータスに変換します。
func writeListingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrListingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
	case errors.Is(err, usecase.ErrNotSeller), errors.Is(err, usecase.ErrNotItemOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, usecase.ErrListingNotActive), errors.Is(err, usecase.ErrInvalidPriceRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slog.Error("marketplace operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func listingID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return 0, false
	}
	return uint(id), true
}

// Create は出品作成APIです。
//
// エンドポイント: POST /listings
func (h *MarketplaceHandler) Create(c *gin.Context) {
	var req dto.ListingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("listing validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	listing := &entity.Listing{
		SellerID:    c.GetUint(jwtmw.ContextUserID),
		ItemID:      req.ItemID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		Condition:   req.Condition,
	}
	if err := h.uc.CreateListing(c.Request.Context(), listing); err != nil {
		writeListingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, listingRes(listing))
}

// Get は出品取得APIです。
//
// エンドポイント: GET /listings/:id
func (h *MarketplaceHandler) Get(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	listing, err := h.uc.GetListing(c.Request.Context(), id, c.GetUint(jwtmw.ContextUserID))
	if err != nil {
		writeListingError(c, err)
		return
	}
	c.JSON(http.StatusOK, listingRes(listing))
}

// Search は出品検索APIです。認証不要です。
//
// エンドポイント例: GET /listings?q=denim&category=bottoms&price_max=10000
func (h *MarketplaceHandler) Search(c *gin.Context) {
	var q dto.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid search parameters"})
		return
	}

	listings, err := h.uc.Search(c.Request.Context(), usecase.SearchFilter{
		Query:     q.Query,
		Category:  q.Category,
		Condition: q.Condition,
		PriceMin:  q.PriceMin,
		PriceMax:  q.PriceMax,
		Limit:     q.Limit,
		Offset:    q.Offset,
	})
	if err != nil {
		writeListingError(c, err)
		return
	}

	out := make([]dto.ListingRes, 0, len(listings))
	for i := range listings {
		out = append(out, listingRes(&listings[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Update は出品更新APIです。
//
// エンドポイント: PUT /listings/:id
func (h *MarketplaceHandler) Update(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	var req dto.ListingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	listing := &entity.Listing{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		Condition:   req.Condition,
	}
	if err := h.uc.UpdateListing(c.Request.Context(), c.GetUint(jwtmw.ContextUserID), listing); err != nil {
		writeListingError(c, err)
		return
	}
	c.JSON(http.StatusOK, listingRes(listing))
}

// Withdraw は出品取り下げAPIです。
//
// エンドポイント: POST /listings/:id/withdraw
func (h *MarketplaceHandler) Withdraw(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	if err := h.uc.Withdraw(c.Request.Context(), id, c.GetUint(jwtmw.ContextUserID)); err != nil {
		writeListingError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkSold は売却済みマークAPIです。
//
// エンドポイント: POST /listings/:id/sold
func (h *MarketplaceHandler) MarkSold(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	if err := h.uc.MarkSold(c.Request.Context(), id, c.GetUint(jwtmw.ContextUserID)); err != nil {
		writeListingError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Like はいいねAPIです。冪等です。
//
// エンドポイント: POST /listings/:id/like
func (h *MarketplaceHandler) Like(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	if err := h.uc.Like(c.Request.Context(), id, c.GetUint(jwtmw.ContextUserID)); err != nil {
		writeListingError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Unlike はいいね取り消しAPIです。冪等です。
//
// エンドポイント: DELETE /listings/:id/like
func (h *MarketplaceHandler) Unlike(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	if err := h.uc.Unlike(c.Request.Context(), id, c.GetUint(jwtmw.ContextUserID)); err != nil {
		writeListingError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
