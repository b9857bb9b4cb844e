// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Role values assignable to a user account.
const (
	RoleUser  = "user"  // 一般ユーザー
	RoleBrand = "brand" // ブランド/パートナーダッシュボード利用者
	RoleAdmin = "admin" // 管理者
)

// User represents a registered user in the system.
// It contains authentication credentials and metadata for user management.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the hashed password for the user.
	// This should never store plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// DisplayName is the public profile name shown on posts and listings.
	DisplayName string `gorm:"size:64"`

	// Role controls access to brand and admin routes (user/brand/admin).
	Role string `gorm:"size:16;not null;default:user"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
