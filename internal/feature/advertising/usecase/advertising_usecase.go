package usecase

import (
	"context"
	"fmt"
	"time"

	"vufs_backend/internal/feature/advertising/domain/entity"
)

// CampaignRepository はキャンペーンの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type CampaignRepository interface {
	Create(ctx context.Context, campaign *entity.Campaign) error
	FindByID(ctx context.Context, id uint) (*entity.Campaign, error)
	FindByOwner(ctx context.Context, ownerID uint) ([]entity.Campaign, error)
	Update(ctx context.Context, campaign *entity.Campaign) error
	UpdateStatus(ctx context.Context, id uint, status string) error
	// IncrementImpressions はインプレッション数をアトミックに加算します。
	IncrementImpressions(ctx context.Context, id uint) error
	// IncrementClicks はクリック数をアトミックに加算します。
	IncrementClicks(ctx context.Context, id uint) error
}

// validTransitions は許可されるステータス遷移を定義します。
var validTransitions = map[string][]string{
	entity.StatusDraft:  {entity.StatusActive},
	entity.StatusActive: {entity.StatusPaused, entity.StatusEnded},
	entity.StatusPaused: {entity.StatusActive, entity.StatusEnded},
}

// advertisingUsecase は広告キャンペーンのビジネスロジックを提供します。
type advertisingUsecase struct {
	campaigns CampaignRepository
	now       func() time.Time
}

// NewAdvertisingUsecase はadvertisingUsecaseの新しいインスタンスを生成します。
func NewAdvertisingUsecase(campaigns CampaignRepository) *advertisingUsecase {
	return &advertisingUsecase{campaigns: campaigns, now: time.Now}
}

// CreateCampaign は新しいキャンペーンをドラフト状態で作成します。
func (u *advertisingUsecase) CreateCampaign(ctx context.Context, campaign *entity.Campaign) error {
	if campaign.Name == "" {
		return fmt.Errorf("campaign name is required")
	}
	if campaign.Budget <= 0 {
		return ErrInvalidBudget
	}
	if len(campaign.Currency) != 3 {
		return fmt.Errorf("currency must be a 3-letter ISO code")
	}
	if !campaign.EndAt.After(campaign.StartAt) {
		return ErrInvalidDateWindow
	}
	campaign.Status = entity.StatusDraft
	campaign.Impressions = 0
	campaign.Clicks = 0
	return u.campaigns.Create(ctx, campaign)
}

// GetCampaign はキャンペーンを取得します。所有者のみ取得できます。
func (u *advertisingUsecase) GetCampaign(ctx context.Context, id, requesterID uint) (*entity.Campaign, error) {
	campaign, err := u.campaigns.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if campaign.OwnerID != requesterID {
		return nil, ErrNotCampaignOwner
	}
	return campaign, nil
}

// ListCampaigns は所有するキャンペーン一覧を返します。
func (u *advertisingUsecase) ListCampaigns(ctx context.Context, ownerID uint) ([]entity.Campaign, error) {
	return u.campaigns.FindByOwner(ctx, ownerID)
}

// UpdateCampaign はドラフト状態のキャンペーンを更新します。
func (u *advertisingUsecase) UpdateCampaign(ctx context.Context, requesterID uint, campaign *entity.Campaign) error {
	current, err := u.campaigns.FindByID(ctx, campaign.ID)
	if err != nil {
		return err
	}
	if current.OwnerID != requesterID {
		return ErrNotCampaignOwner
	}
	if current.Status != entity.StatusDraft {
		return ErrInvalidTransition
	}
	if campaign.Budget <= 0 {
		return ErrInvalidBudget
	}
	if !campaign.EndAt.After(campaign.StartAt) {
		return ErrInvalidDateWindow
	}

	campaign.OwnerID = current.OwnerID
	campaign.Status = current.Status
	campaign.Impressions = current.Impressions
	campaign.Clicks = current.Clicks
	campaign.CreatedAt = current.CreatedAt
	return u.campaigns.Update(ctx, campaign)
}

// Activate はキャンペーンを配信開始します。
// 配信期間が現在を含み、予算が正であることを検証します。
func (u *advertisingUsecase) Activate(ctx context.Context, id, requesterID uint) error {
	campaign, err := u.ownedCampaign(ctx, id, requesterID)
	if err != nil {
		return err
	}
	if !u.canTransition(campaign.Status, entity.StatusActive) {
		return ErrInvalidTransition
	}
	if campaign.Budget <= 0 {
		return ErrInvalidBudget
	}
	now := u.now()
	if now.Before(campaign.StartAt) || now.After(campaign.EndAt) {
		return ErrInvalidDateWindow
	}
	return u.campaigns.UpdateStatus(ctx, id, entity.StatusActive)
}

// Pause はキャンペーンを一時停止します。
func (u *advertisingUsecase) Pause(ctx context.Context, id, requesterID uint) error {
	return u.transition(ctx, id, requesterID, entity.StatusPaused)
}

// End はキャンペーンを終了します。終了後の再開はできません。
func (u *advertisingUsecase) End(ctx context.Context, id, requesterID uint) error {
	return u.transition(ctx, id, requesterID, entity.StatusEnded)
}

// RecordImpression は配信中キャンペーンのインプレッションを記録します。
func (u *advertisingUsecase) RecordImpression(ctx context.Context, id uint) error {
	campaign, err := u.campaigns.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !campaign.IsActive() {
		return ErrInvalidTransition
	}
	return u.campaigns.IncrementImpressions(ctx, id)
}

// RecordClick は配信中キャンペーンのクリックを記録します。
func (u *advertisingUsecase) RecordClick(ctx context.Context, id uint) error {
	campaign, err := u.campaigns.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !campaign.IsActive() {
		return ErrInvalidTransition
	}
	return u.campaigns.IncrementClicks(ctx, id)
}

func (u *advertisingUsecase) transition(ctx context.Context, id, requesterID uint, status string) error {
	campaign, err := u.ownedCampaign(ctx, id, requesterID)
	if err != nil {
		return err
	}
	if !u.canTransition(campaign.Status, status) {
		return ErrInvalidTransition
	}
	return u.campaigns.UpdateStatus(ctx, id, status)
}

func (u *advertisingUsecase) ownedCampaign(ctx context.Context, id, requesterID uint) (*entity.Campaign, error) {
	campaign, err := u.campaigns.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if campaign.OwnerID != requesterID {
		return nil, ErrNotCampaignOwner
	}
	return campaign, nil
}

func (u *advertisingUsecase) canTransition(from, to string) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
