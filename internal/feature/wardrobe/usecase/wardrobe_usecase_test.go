package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"vufs_backend/internal/feature/wardrobe/domain/entity"
)

// mockItemRepository はテスト用のItemRepositoryモック実装です。
type mockItemRepository struct {
	createCalls int
	deleteCalls int

	CreateFunc      func(ctx context.Context, item *entity.Item) error
	FindByIDFunc    func(ctx context.Context, id uint) (*entity.Item, error)
	FindByOwnerFunc func(ctx context.Context, ownerID uint, filter ItemFilter) ([]entity.Item, error)
	UpdateFunc      func(ctx context.Context, item *entity.Item) error
	DeleteFunc      func(ctx context.Context, id uint) error
}

func (m *mockItemRepository) Create(ctx context.Context, item *entity.Item) error {
	m.createCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	return nil
}

func (m *mockItemRepository) FindByID(ctx context.Context, id uint) (*entity.Item, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrItemNotFound
}

func (m *mockItemRepository) FindByOwner(ctx context.Context, ownerID uint, filter ItemFilter) ([]entity.Item, error) {
	if m.FindByOwnerFunc != nil {
		return m.FindByOwnerFunc(ctx, ownerID, filter)
	}
	return nil, nil
}

func (m *mockItemRepository) Update(ctx context.Context, item *entity.Item) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, item)
	}
	return nil
}

func (m *mockItemRepository) Delete(ctx context.Context, id uint) error {
	m.deleteCalls++
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// mockCategoryRepository はテスト用のCategoryRepositoryモック実装です。
// タクソノミーをコード→Categoryのマップで保持します。
type mockCategoryRepository struct {
	categories map[string]entity.Category
}

func (m *mockCategoryRepository) FindByCode(ctx context.Context, code string) (*entity.Category, error) {
	cat, ok := m.categories[code]
	if !ok {
		return nil, ErrUnknownCategory
	}
	return &cat, nil
}

func (m *mockCategoryRepository) ListAll(ctx context.Context) ([]entity.Category, error) {
	out := make([]entity.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	return out, nil
}

func testTaxonomy() *mockCategoryRepository {
	return &mockCategoryRepository{categories: map[string]entity.Category{
		"tops":        {Code: "tops", Label: "トップス", Depth: 0},
		"tops.tshirt": {Code: "tops.tshirt", Label: "Tシャツ", ParentCode: "tops", Depth: 1, Leaf: true},
		"shoes":       {Code: "shoes", Label: "シューズ", Depth: 0},
		"shoes.boots": {Code: "shoes.boots", Label: "ブーツ", ParentCode: "shoes", Depth: 1, Leaf: true},
	}}
}

func validItem() *entity.Item {
	return &entity.Item{
		OwnerID:  1,
		VUFSCode: "tops.tshirt",
		Name:     "White graphic tee",
	}
}

func TestWardrobeUsecase_CreateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("creates item with leaf code", func(t *testing.T) {
		items := &mockItemRepository{}
		uc := NewWardrobeUsecase(items, testTaxonomy())

		item := validItem()
		if err := uc.CreateItem(ctx, item); err != nil {
			t.Fatalf("CreateItem() error = %v", err)
		}
		if items.createCalls != 1 {
			t.Errorf("createCalls = %d, want 1", items.createCalls)
		}
		if item.Visibility != entity.VisibilityPrivate {
			t.Errorf("Visibility = %q, want default %q", item.Visibility, entity.VisibilityPrivate)
		}
	})

	t.Run("keeps explicit visibility", func(t *testing.T) {
		uc := NewWardrobeUsecase(&mockItemRepository{}, testTaxonomy())

		item := validItem()
		item.Visibility = entity.VisibilityPublic
		if err := uc.CreateItem(ctx, item); err != nil {
			t.Fatalf("CreateItem() error = %v", err)
		}
		if item.Visibility != entity.VisibilityPublic {
			t.Errorf("Visibility = %q, want %q", item.Visibility, entity.VisibilityPublic)
		}
	})

	t.Run("rejects non-leaf code", func(t *testing.T) {
		items := &mockItemRepository{}
		uc := NewWardrobeUsecase(items, testTaxonomy())

		item := validItem()
		item.VUFSCode = "tops"
		if err := uc.CreateItem(ctx, item); !errors.Is(err, ErrNotAssignable) {
			t.Errorf("CreateItem() error = %v, want ErrNotAssignable", err)
		}
		if items.createCalls != 0 {
			t.Errorf("createCalls = %d, want 0", items.createCalls)
		}
	})

	t.Run("rejects unknown code", func(t *testing.T) {
		uc := NewWardrobeUsecase(&mockItemRepository{}, testTaxonomy())

		item := validItem()
		item.VUFSCode = "hats.fedora"
		if err := uc.CreateItem(ctx, item); !errors.Is(err, ErrUnknownCategory) {
			t.Errorf("CreateItem() error = %v, want ErrUnknownCategory", err)
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		uc := NewWardrobeUsecase(&mockItemRepository{}, testTaxonomy())

		item := validItem()
		item.Name = ""
		if err := uc.CreateItem(ctx, item); err == nil {
			t.Error("CreateItem() error = nil, want validation error")
		}
	})
}

func TestWardrobeUsecase_GetItem(t *testing.T) {
	ctx := context.Background()

	private := &entity.Item{ID: 5, OwnerID: 1, Visibility: entity.VisibilityPrivate}
	public := &entity.Item{ID: 6, OwnerID: 1, Visibility: entity.VisibilityPublic}
	items := &mockItemRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*entity.Item, error) {
			switch id {
			case 5:
				return private, nil
			case 6:
				return public, nil
			default:
				return nil, ErrItemNotFound
			}
		},
	}
	uc := NewWardrobeUsecase(items, testTaxonomy())

	t.Run("private item visible to owner", func(t *testing.T) {
		got, err := uc.GetItem(ctx, 5, 1)
		if err != nil {
			t.Fatalf("GetItem() error = %v", err)
		}
		if got.ID != 5 {
			t.Errorf("ID = %d, want 5", got.ID)
		}
	})

	t.Run("private item hidden from others", func(t *testing.T) {
		if _, err := uc.GetItem(ctx, 5, 2); !errors.Is(err, ErrNotOwner) {
			t.Errorf("GetItem() error = %v, want ErrNotOwner", err)
		}
	})

	t.Run("public item visible to anyone", func(t *testing.T) {
		got, err := uc.GetItem(ctx, 6, 2)
		if err != nil {
			t.Fatalf("GetItem() error = %v", err)
		}
		if got.ID != 6 {
			t.Errorf("ID = %d, want 6", got.ID)
		}
	})

	t.Run("missing item", func(t *testing.T) {
		if _, err := uc.GetItem(ctx, 404, 1); !errors.Is(err, ErrItemNotFound) {
			t.Errorf("GetItem() error = %v, want ErrItemNotFound", err)
		}
	})
}

func TestWardrobeUsecase_ListItems(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		filter     ItemFilter
		wantLimit  int
		wantOffset int
	}{
		{"defaults applied", ItemFilter{}, DefaultListLimit, 0},
		{"negative offset reset", ItemFilter{Limit: 10, Offset: -5}, 10, 0},
		{"oversized limit reset", ItemFilter{Limit: MaxListLimit + 1}, DefaultListLimit, 0},
		{"valid filter passed through", ItemFilter{Limit: 50, Offset: 100}, 50, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got ItemFilter
			items := &mockItemRepository{
				FindByOwnerFunc: func(ctx context.Context, ownerID uint, filter ItemFilter) ([]entity.Item, error) {
					got = filter
					return nil, nil
				},
			}
			uc := NewWardrobeUsecase(items, testTaxonomy())

			if _, err := uc.ListItems(ctx, 1, tt.filter); err != nil {
				t.Fatalf("ListItems() error = %v", err)
			}
			if got.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", got.Limit, tt.wantLimit)
			}
			if got.Offset != tt.wantOffset {
				t.Errorf("Offset = %d, want %d", got.Offset, tt.wantOffset)
			}
		})
	}
}

func TestWardrobeUsecase_UpdateItem(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	current := &entity.Item{ID: 5, OwnerID: 1, VUFSCode: "tops.tshirt", CreatedAt: createdAt}

	t.Run("owner can update and immutable fields are preserved", func(t *testing.T) {
		var updated *entity.Item
		items := &mockItemRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Item, error) { return current, nil },
			UpdateFunc: func(ctx context.Context, item *entity.Item) error {
				updated = item
				return nil
			},
		}
		uc := NewWardrobeUsecase(items, testTaxonomy())

		err := uc.UpdateItem(ctx, 1, &entity.Item{
			ID: 5, OwnerID: 999, VUFSCode: "tops.tshirt", Name: "Renamed tee",
		})
		if err != nil {
			t.Fatalf("UpdateItem() error = %v", err)
		}
		if updated.OwnerID != 1 {
			t.Errorf("OwnerID = %d, want 1", updated.OwnerID)
		}
		if !updated.CreatedAt.Equal(createdAt) {
			t.Errorf("CreatedAt = %v, want %v", updated.CreatedAt, createdAt)
		}
	})

	t.Run("changed code is revalidated", func(t *testing.T) {
		items := &mockItemRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Item, error) { return current, nil },
		}
		uc := NewWardrobeUsecase(items, testTaxonomy())

		err := uc.UpdateItem(ctx, 1, &entity.Item{ID: 5, VUFSCode: "shoes", Name: "x"})
		if !errors.Is(err, ErrNotAssignable) {
			t.Errorf("UpdateItem() error = %v, want ErrNotAssignable", err)
		}
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		items := &mockItemRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Item, error) { return current, nil },
		}
		uc := NewWardrobeUsecase(items, testTaxonomy())

		err := uc.UpdateItem(ctx, 2, &entity.Item{ID: 5, VUFSCode: "tops.tshirt", Name: "x"})
		if !errors.Is(err, ErrNotOwner) {
			t.Errorf("UpdateItem() error = %v, want ErrNotOwner", err)
		}
	})
}

func TestWardrobeUsecase_DeleteItem(t *testing.T) {
	ctx := context.Background()

	t.Run("owner can delete", func(t *testing.T) {
		items := &mockItemRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Item, error) {
				return &entity.Item{ID: 5, OwnerID: 1}, nil
			},
		}
		uc := NewWardrobeUsecase(items, testTaxonomy())

		if err := uc.DeleteItem(ctx, 5, 1); err != nil {
			t.Fatalf("DeleteItem() error = %v", err)
		}
		if items.deleteCalls != 1 {
			t.Errorf("deleteCalls = %d, want 1", items.deleteCalls)
		}
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		items := &mockItemRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Item, error) {
				return &entity.Item{ID: 5, OwnerID: 1}, nil
			},
		}
		uc := NewWardrobeUsecase(items, testTaxonomy())

		if err := uc.DeleteItem(ctx, 5, 2); !errors.Is(err, ErrNotOwner) {
			t.Errorf("DeleteItem() error = %v, want ErrNotOwner", err)
		}
		if items.deleteCalls != 0 {
			t.Errorf("deleteCalls = %d, want 0", items.deleteCalls)
		}
	})
}
