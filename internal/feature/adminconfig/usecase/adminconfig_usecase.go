// Package usecase はadminconfigフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"vufs_backend/internal/feature/adminconfig/domain/entity"
)

// ErrSizeStandardNotFound はサイズ規格が存在しない場合に返されます。
var ErrSizeStandardNotFound = errors.New("size standard not found")

// SizeStandardRepository はサイズ規格の永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type SizeStandardRepository interface {
	Create(ctx context.Context, standard *entity.SizeStandard) error
	Update(ctx context.Context, standard *entity.SizeStandard) error
	Delete(ctx context.Context, id uint) error
	// List は任意で地域・カテゴリで絞り込み、sort_order順に返します。
	List(ctx context.Context, region, category string) ([]entity.SizeStandard, error)
	// UpsertBatch はシーダー用の一括投入です。(region, category, label)で重複を判定します。
	UpsertBatch(ctx context.Context, standards []entity.SizeStandard) error
}

// adminConfigUsecase は管理設定のビジネスロジックを提供します。
type adminConfigUsecase struct {
	standards SizeStandardRepository
}

// NewAdminConfigUsecase はadminConfigUsecaseの新しいインスタンスを生成します。
func NewAdminConfigUsecase(standards SizeStandardRepository) *adminConfigUsecase {
	return &adminConfigUsecase{standards: standards}
}

// CreateSizeStandard は新しいサイズ規格を作成します。adminのみ実行できます。
func (u *adminConfigUsecase) CreateSizeStandard(ctx context.Context, standard *entity.SizeStandard) error {
	if err := validateStandard(standard); err != nil {
		return err
	}
	return u.standards.Create(ctx, standard)
}

// UpdateSizeStandard はサイズ規格を更新します。adminのみ実行できます。
func (u *adminConfigUsecase) UpdateSizeStandard(ctx context.Context, standard *entity.SizeStandard) error {
	if err := validateStandard(standard); err != nil {
		return err
	}
	return u.standards.Update(ctx, standard)
}

// DeleteSizeStandard はサイズ規格を削除します。adminのみ実行できます。
func (u *adminConfigUsecase) DeleteSizeStandard(ctx context.Context, id uint) error {
	return u.standards.Delete(ctx, id)
}

// ListSizeStandards はサイズ規格一覧を返します。認証不要です。
func (u *adminConfigUsecase) ListSizeStandards(ctx context.Context, region, category string) ([]entity.SizeStandard, error) {
	return u.standards.List(ctx, region, category)
}

func validateStandard(s *entity.SizeStandard) error {
	if s.Region == "" {
		return fmt.Errorf("size standard region is required")
	}
	if s.Category == "" {
		return fmt.Errorf("size standard category is required")
	}
	if s.Label == "" {
		return fmt.Errorf("size standard label is required")
	}
	return nil
}
