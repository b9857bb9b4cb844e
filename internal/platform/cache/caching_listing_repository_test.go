package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"vufs_backend/internal/feature/marketplace/domain/entity"
	"vufs_backend/internal/feature/marketplace/usecase"
)

// mockListingRepository はテスト用のListingRepositoryモック実装です。
type mockListingRepository struct {
	createFn       func(ctx context.Context, listing *entity.Listing) error
	findByIDFn     func(ctx context.Context, id uint) (*entity.Listing, error)
	searchFn       func(ctx context.Context, filter usecase.SearchFilter) ([]entity.Listing, error)
	updateFn       func(ctx context.Context, listing *entity.Listing) error
	updateStatusFn func(ctx context.Context, id uint, status string) error
}

func (m *mockListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	if m.createFn != nil {
		return m.createFn(ctx, listing)
	}
	return nil
}

func (m *mockListingRepository) FindByID(ctx context.Context, id uint) (*entity.Listing, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockListingRepository) Search(ctx context.Context, filter usecase.SearchFilter) ([]entity.Listing, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockListingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, listing)
	}
	return nil
}

func (m *mockListingRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return nil
}

func testFilter() usecase.SearchFilter {
	return usecase.SearchFilter{
		Query:    "denim",
		Category: "bottoms",
		Status:   entity.StatusActive,
		Limit:    20,
		Offset:   0,
	}
}

// testFilterに対応するキャッシュキー
const testFilterKey = "listings:denim:bottoms::active:0:0:20:0"

// TestNewCachingListingRepository_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingListingRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{
			name:              "default values when zero/empty",
			ttl:               0,
			namespace:         "",
			expectedTTL:       5 * time.Minute,
			expectedNamespace: "listings",
		},
		{
			name:              "negative ttl uses default",
			ttl:               -1 * time.Minute,
			namespace:         "",
			expectedTTL:       5 * time.Minute,
			expectedNamespace: "listings",
		},
		{
			name:              "custom values preserved",
			ttl:               10 * time.Minute,
			namespace:         "custom",
			expectedTTL:       10 * time.Minute,
			expectedNamespace: "custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingListingRepository(nil, tt.ttl, &mockListingRepository{}, tt.namespace)

			if repo.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, repo.ttl)
			}
			if repo.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, repo.namespace)
			}
		})
	}
}

// TestCachingListingRepository_Search_NilRedis はRedisがnilの場合にキャッシュをバイパスして内部リポジトリを直接呼び出すことを検証します。
func TestCachingListingRepository_Search_NilRedis(t *testing.T) {
	t.Parallel()

	expected := []entity.Listing{
		{ID: 1, Title: "vintage denim jacket", Price: 8500, Currency: "JPY"},
	}

	inner := &mockListingRepository{
		searchFn: func(ctx context.Context, filter usecase.SearchFilter) ([]entity.Listing, error) {
			return expected, nil
		},
	}

	// Redis is nil - should bypass cache and call inner directly
	repo := NewCachingListingRepository(nil, 5*time.Minute, inner, "listings")

	listings, err := repo.Search(context.Background(), testFilter())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != len(expected) {
		t.Errorf("expected %d listings, got %d", len(expected), len(listings))
	}
}

// TestCachingListingRepository_Search_CacheHit はキャッシュヒット時にRedisからデータを返し、内部リポジトリを呼ばないことを検証します。
func TestCachingListingRepository_Search_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cached := []entity.Listing{
		{ID: 1, Title: "vintage denim jacket", Price: 8500, Currency: "JPY"},
	}
	cachedJSON, _ := json.Marshal(cached)

	mock.ExpectGet(testFilterKey).SetVal(string(cachedJSON))

	innerCalled := false
	inner := &mockListingRepository{
		searchFn: func(ctx context.Context, filter usecase.SearchFilter) ([]entity.Listing, error) {
			innerCalled = true
			return nil, nil
		},
	}

	repo := NewCachingListingRepository(rdb, 5*time.Minute, inner, "listings")
	listings, err := repo.Search(context.Background(), testFilter())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalled {
		t.Error("inner repository should not be called on cache hit")
	}
	if len(listings) != 1 {
		t.Errorf("expected 1 listing, got %d", len(listings))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingListingRepository_Search_CacheMiss はキャッシュミス時にDBからデータを取得し、キャッシュに保存することを検証します。
func TestCachingListingRepository_Search_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := []entity.Listing{
		{ID: 1, Title: "vintage denim jacket", Price: 8500, Currency: "JPY"},
	}
	expectedJSON, _ := json.Marshal(expected)

	// Cache miss
	mock.ExpectGet(testFilterKey).RedisNil()
	// Set cache after fetching from inner
	mock.ExpectSet(testFilterKey, expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockListingRepository{
		searchFn: func(ctx context.Context, filter usecase.SearchFilter) ([]entity.Listing, error) {
			return expected, nil
		},
	}

	repo := NewCachingListingRepository(rdb, 5*time.Minute, inner, "listings")
	listings, err := repo.Search(context.Background(), testFilter())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 1 {
		t.Errorf("expected 1 listing, got %d", len(listings))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingListingRepository_Search_InnerError は内部リポジトリがエラーを返した場合にそのエラーが伝播されることを検証します。
func TestCachingListingRepository_Search_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("database error")

	mock.ExpectGet(testFilterKey).RedisNil()

	inner := &mockListingRepository{
		searchFn: func(ctx context.Context, filter usecase.SearchFilter) ([]entity.Listing, error) {
			return nil, expectedErr
		},
	}

	repo := NewCachingListingRepository(rdb, 5*time.Minute, inner, "listings")
	_, err := repo.Search(context.Background(), testFilter())

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
}

// TestCachingListingRepository_Search_CorruptedCache は破損したキャッシュを検出・削除し、DBにフォールバックすることを検証します。
func TestCachingListingRepository_Search_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := []entity.Listing{
		{ID: 1, Title: "vintage denim jacket", Price: 8500, Currency: "JPY"},
	}
	expectedJSON, _ := json.Marshal(expected)

	// Return invalid JSON from cache
	mock.ExpectGet(testFilterKey).SetVal("invalid json")
	// Delete corrupted cache
	mock.ExpectDel(testFilterKey).SetVal(1)
	// Set new cache after fetching from inner
	mock.ExpectSet(testFilterKey, expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockListingRepository{
		searchFn: func(ctx context.Context, filter usecase.SearchFilter) ([]entity.Listing, error) {
			return expected, nil
		},
	}

	repo := NewCachingListingRepository(rdb, 5*time.Minute, inner, "listings")
	listings, err := repo.Search(context.Background(), testFilter())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 1 {
		t.Errorf("expected 1 listing, got %d", len(listings))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingListingRepository_Create_Invalidates はCreate後に検索キャッシュが無効化されることを検証します。
func TestCachingListingRepository_Create_Invalidates(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	innerCalled := false
	inner := &mockListingRepository{
		createFn: func(ctx context.Context, listing *entity.Listing) error {
			innerCalled = true
			return nil
		},
	}

	// Expect cache invalidation via SCAN and DEL
	mock.ExpectScan(0, "listings:*", 200).SetVal([]string{testFilterKey}, 0)
	mock.ExpectDel(testFilterKey).SetVal(1)

	repo := NewCachingListingRepository(rdb, 5*time.Minute, inner, "listings")
	err := repo.Create(context.Background(), &entity.Listing{Title: "wool coat", Price: 12000, Currency: "JPY"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !innerCalled {
		t.Error("expected inner repository to be called")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingListingRepository_Create_InnerError は内部リポジトリのCreateエラーが伝播され、キャッシュ無効化が行われないことを検証します。
func TestCachingListingRepository_Create_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("insert error")
	inner := &mockListingRepository{
		createFn: func(ctx context.Context, listing *entity.Listing) error {
			return expectedErr
		},
	}

	repo := NewCachingListingRepository(rdb, 5*time.Minute, inner, "listings")
	err := repo.Create(context.Background(), &entity.Listing{Title: "wool coat"})

	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingListingRepository_UpdateStatus_Invalidates はUpdateStatus後に検索キャッシュが無効化されることを検証します。
func TestCachingListingRepository_UpdateStatus_Invalidates(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &mockListingRepository{
		updateStatusFn: func(ctx context.Context, id uint, status string) error {
			return nil
		},
	}

	mock.ExpectScan(0, "listings:*", 200).SetVal([]string{}, 0)

	repo := NewCachingListingRepository(rdb, 5*time.Minute, inner, "listings")
	err := repo.UpdateStatus(context.Background(), 1, entity.StatusSold)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingListingRepository_FindByID_Passthrough はFindByIDがキャッシュを介さず内部リポジトリを呼び出すことを検証します。
func TestCachingListingRepository_FindByID_Passthrough(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := &entity.Listing{ID: 7, Title: "leather boots"}
	inner := &mockListingRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.Listing, error) {
			return expected, nil
		},
	}

	repo := NewCachingListingRepository(rdb, 5*time.Minute, inner, "listings")
	got, err := repo.FindByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != expected.ID {
		t.Errorf("expected listing ID %d, got %d", expected.ID, got.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestSafe はsafe関数がRedisキーで問題となる文字を正しくエスケープすることを検証します。
func TestSafe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"denim", "denim"},
		{"denim jacket", "denim_jacket"},
		{"key:value", "key_value"},
		{"a b:c", "a_b_c"},
		{"", ""},
		{"::", "__"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			result := safe(tt.input)
			if result != tt.expected {
				t.Errorf("safe(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}
