package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"vufs_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
// It simulates database operations during testing.
type mockUserRepository struct {
	// CreateFunc is called when the Create method is invoked.
	CreateFunc func(ctx context.Context, user *entity.User) error
	// FindByEmailFunc is called when the FindByEmail method is invoked.
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	// FindByIDFunc is called when the FindByID method is invoked.
	FindByIDFunc func(ctx context.Context, id uint) (*entity.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

// mockSessionRepository is a mock implementation of the SessionRepository interface.
type mockSessionRepository struct {
	CreateFunc              func(ctx context.Context, session *entity.Session) error
	FindByIDFunc            func(ctx context.Context, id string) (*entity.Session, error)
	RevokeFunc              func(ctx context.Context, id string) error
	RevokeAllByUserIDFunc   func(ctx context.Context, userID uint) error
	CountByUserIDFunc       func(ctx context.Context, userID uint) (int64, error)
	DeleteOldestByUserIDFunc func(ctx context.Context, userID uint) error

	createCalls       int
	revokeCalls       int
	deleteOldestCalls int
}

func (m *mockSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	m.createCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	return nil
}

func (m *mockSessionRepository) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrSessionNotFound
}

func (m *mockSessionRepository) Revoke(ctx context.Context, id string) error {
	m.revokeCalls++
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, id)
	}
	return nil
}

func (m *mockSessionRepository) RevokeAllByUserID(ctx context.Context, userID uint) error {
	if m.RevokeAllByUserIDFunc != nil {
		return m.RevokeAllByUserIDFunc(ctx, userID)
	}
	return nil
}

func (m *mockSessionRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	if m.CountByUserIDFunc != nil {
		return m.CountByUserIDFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockSessionRepository) DeleteOldestByUserID(ctx context.Context, userID uint) error {
	m.deleteOldestCalls++
	if m.DeleteOldestByUserIDFunc != nil {
		return m.DeleteOldestByUserIDFunc(ctx, userID)
	}
	return nil
}

// mockJWTGenerator is a mock implementation of the JWTGenerator interface.
type mockJWTGenerator struct {
	GenerateTokenFunc func(userID uint, email, role string) (string, error)
}

func (m *mockJWTGenerator) GenerateToken(userID uint, email, role string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, email, role)
	}
	return "mock-jwt-token", nil
}

func newTestUsecase(users *mockUserRepository, sessions *mockSessionRepository, jwt *mockJWTGenerator) *authUsecase {
	return NewAuthUsecase(users, sessions, jwt, 15*time.Minute)
}

func TestAuthUsecase_Signup(t *testing.T) {
	t.Run("successful signup hashes password and assigns user role", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				if len(user.Password) == 0 || user.Password == "password123" {
					t.Errorf("password is not hashed")
				}
				if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")); err != nil {
					t.Errorf("invalid bcrypt hash: %v", err)
				}
				if user.Role != entity.RoleUser {
					t.Errorf("expected role %q, got %q", entity.RoleUser, user.Role)
				}
				if user.DisplayName != "taro" {
					t.Errorf("expected display name taro, got %q", user.DisplayName)
				}
				return nil
			},
		}

		uc := newTestUsecase(mockRepo, &mockSessionRepository{}, &mockJWTGenerator{})
		err := uc.Signup(context.Background(), "test@example.com", "password123", "taro")

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("rejects password shorter than 8 characters", func(t *testing.T) {
		uc := newTestUsecase(&mockUserRepository{}, &mockSessionRepository{}, &mockJWTGenerator{})
		err := uc.Signup(context.Background(), "test@example.com", "short", "taro")

		if err == nil {
			t.Error("expected error for short password, got nil")
		}
	})

	t.Run("repository create failure", func(t *testing.T) {
		expectedErr := errors.New("database error")
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return expectedErr
			},
		}

		uc := newTestUsecase(mockRepo, &mockSessionRepository{}, &mockJWTGenerator{})
		err := uc.Signup(context.Background(), "test@example.com", "password123", "taro")

		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error '%v', got: %v", expectedErr, err)
		}
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	password := "password123"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	testUser := &entity.User{
		ID:       1,
		Email:    "test@example.com",
		Password: string(hashedPassword),
		Role:     entity.RoleUser,
	}

	t.Run("successful login returns token pair and creates session", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				if email == testUser.Email {
					return testUser, nil
				}
				return nil, ErrUserNotFound
			},
		}
		sessions := &mockSessionRepository{}

		uc := newTestUsecase(mockRepo, sessions, &mockJWTGenerator{})
		pair, err := uc.Login(context.Background(), testUser.Email, password, ClientInfo{UserAgent: "test", IPAddress: "127.0.0.1"})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pair.AccessToken != "mock-jwt-token" {
			t.Errorf("unexpected access token: %q", pair.AccessToken)
		}
		if len(pair.RefreshToken) != refreshTokenBytes*2 {
			t.Errorf("expected %d-char refresh token, got %d", refreshTokenBytes*2, len(pair.RefreshToken))
		}
		if pair.ExpiresIn != int64((15 * time.Minute).Seconds()) {
			t.Errorf("unexpected ExpiresIn: %d", pair.ExpiresIn)
		}
		if sessions.createCalls != 1 {
			t.Errorf("expected 1 session create, got %d", sessions.createCalls)
		}
	})

	t.Run("unknown user returns generic credentials error", func(t *testing.T) {
		uc := newTestUsecase(&mockUserRepository{}, &mockSessionRepository{}, &mockJWTGenerator{})
		_, err := uc.Login(context.Background(), "missing@example.com", password, ClientInfo{})

		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got: %v", err)
		}
	})

	t.Run("wrong password returns generic credentials error", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return testUser, nil
			},
		}

		uc := newTestUsecase(mockRepo, &mockSessionRepository{}, &mockJWTGenerator{})
		_, err := uc.Login(context.Background(), testUser.Email, "wrongpassword", ClientInfo{})

		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got: %v", err)
		}
	})

	t.Run("evicts oldest session when cap is reached", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return testUser, nil
			},
		}
		sessions := &mockSessionRepository{
			CountByUserIDFunc: func(ctx context.Context, userID uint) (int64, error) {
				return maxSessionsPerUser, nil
			},
		}

		uc := newTestUsecase(mockRepo, sessions, &mockJWTGenerator{})
		_, err := uc.Login(context.Background(), testUser.Email, password, ClientInfo{})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sessions.deleteOldestCalls != 1 {
			t.Errorf("expected 1 oldest-session eviction, got %d", sessions.deleteOldestCalls)
		}
	})
}

func TestAuthUsecase_Refresh(t *testing.T) {
	testUser := &entity.User{ID: 1, Email: "test@example.com", Role: entity.RoleUser}
	validToken := strings.Repeat("ab", refreshTokenBytes)

	validSession := func() *entity.Session {
		return &entity.Session{
			ID:        validToken,
			UserID:    testUser.ID,
			CreatedAt: time.Now().Add(-time.Hour),
			ExpiresAt: time.Now().Add(time.Hour),
		}
	}

	t.Run("successful refresh rotates session", func(t *testing.T) {
		sessions := &mockSessionRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*entity.Session, error) {
				return validSession(), nil
			},
		}
		users := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
				return testUser, nil
			},
		}

		uc := newTestUsecase(users, sessions, &mockJWTGenerator{})
		pair, err := uc.Refresh(context.Background(), validToken, ClientInfo{})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sessions.revokeCalls != 1 {
			t.Errorf("expected old session to be revoked once, got %d", sessions.revokeCalls)
		}
		if sessions.createCalls != 1 {
			t.Errorf("expected new session to be created once, got %d", sessions.createCalls)
		}
		if pair.RefreshToken == validToken {
			t.Error("refresh token was not rotated")
		}
	})

	t.Run("malformed token is rejected without repository lookup", func(t *testing.T) {
		sessions := &mockSessionRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*entity.Session, error) {
				t.Error("FindByID should not be called for malformed token")
				return nil, ErrSessionNotFound
			},
		}

		uc := newTestUsecase(&mockUserRepository{}, sessions, &mockJWTGenerator{})
		_, err := uc.Refresh(context.Background(), "short", ClientInfo{})

		if !errors.Is(err, ErrInvalidRefreshToken) {
			t.Errorf("expected ErrInvalidRefreshToken, got: %v", err)
		}
	})

	t.Run("unknown token maps to invalid refresh token", func(t *testing.T) {
		uc := newTestUsecase(&mockUserRepository{}, &mockSessionRepository{}, &mockJWTGenerator{})
		_, err := uc.Refresh(context.Background(), validToken, ClientInfo{})

		if !errors.Is(err, ErrInvalidRefreshToken) {
			t.Errorf("expected ErrInvalidRefreshToken, got: %v", err)
		}
	})

	t.Run("revoked session is rejected", func(t *testing.T) {
		revoked := time.Now().Add(-time.Minute)
		sessions := &mockSessionRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*entity.Session, error) {
				s := validSession()
				s.RevokedAt = &revoked
				return s, nil
			},
		}

		uc := newTestUsecase(&mockUserRepository{}, sessions, &mockJWTGenerator{})
		_, err := uc.Refresh(context.Background(), validToken, ClientInfo{})

		if !errors.Is(err, ErrSessionRevoked) {
			t.Errorf("expected ErrSessionRevoked, got: %v", err)
		}
	})

	t.Run("expired session is rejected", func(t *testing.T) {
		sessions := &mockSessionRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*entity.Session, error) {
				s := validSession()
				s.ExpiresAt = time.Now().Add(-time.Minute)
				return s, nil
			},
		}

		uc := newTestUsecase(&mockUserRepository{}, sessions, &mockJWTGenerator{})
		_, err := uc.Refresh(context.Background(), validToken, ClientInfo{})

		if !errors.Is(err, ErrSessionExpired) {
			t.Errorf("expected ErrSessionExpired, got: %v", err)
		}
	})
}

func TestAuthUsecase_Logout(t *testing.T) {
	t.Run("revokes session", func(t *testing.T) {
		sessions := &mockSessionRepository{}

		uc := newTestUsecase(&mockUserRepository{}, sessions, &mockJWTGenerator{})
		if err := uc.Logout(context.Background(), "some-token"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if sessions.revokeCalls != 1 {
			t.Errorf("expected 1 revoke call, got %d", sessions.revokeCalls)
		}
	})

	t.Run("unknown token is idempotent", func(t *testing.T) {
		sessions := &mockSessionRepository{
			RevokeFunc: func(ctx context.Context, id string) error {
				return ErrSessionNotFound
			},
		}

		uc := newTestUsecase(&mockUserRepository{}, sessions, &mockJWTGenerator{})
		if err := uc.Logout(context.Background(), "unknown-token"); err != nil {
			t.Errorf("expected nil for unknown token, got: %v", err)
		}
	})
}
