package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	adminadapters "vufs_backend/internal/feature/adminconfig/adapters"
	adadapters "vufs_backend/internal/feature/advertising/adapters"
	authadapters "vufs_backend/internal/feature/auth/adapters"
	"vufs_backend/internal/feature/auth/domain/entity"
	marketadapters "vufs_backend/internal/feature/marketplace/adapters"
	msgadapters "vufs_backend/internal/feature/messaging/adapters"
	socialadapters "vufs_backend/internal/feature/social/adapters"
	wardrobeadapters "vufs_backend/internal/feature/wardrobe/adapters"
)

// OpenDB はPostgreSQLへの接続を確立し、gorm.DBを返します。
// Cloud SQLのUNIXソケット接続（INSTANCE_CONNECTION_NAME）とTCP接続の両方に対応します。
// 起動直後のDB未準備に備えて60秒間リトライします。
func OpenDB() *gorm.DB {
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")

	instance := os.Getenv("INSTANCE_CONNECTION_NAME")

	var dsn string
	if instance != "" {
		dsn = fmt.Sprintf("host=/cloudsql/%s user=%s password=%s dbname=%s sslmode=disable",
			instance, user, pass, name)
	} else {
		host := os.Getenv("DB_HOST")
		port := os.Getenv("DB_PORT")
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=Asia/Tokyo",
			host, port, user, pass, name)
	}

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(gpostgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（User, Item, Listing など）
		if err := db.AutoMigrate(
			&entity.User{},
			&authadapters.SessionModel{},
			&wardrobeadapters.CategoryModel{},
			&wardrobeadapters.ItemModel{},
			&marketadapters.ListingModel{},
			&marketadapters.ListingLikeModel{},
			&socialadapters.PostModel{},
			&socialadapters.FollowModel{},
			&socialadapters.CommentModel{},
			&socialadapters.PostLikeModel{},
			&msgadapters.ConversationModel{},
			&msgadapters.ParticipantModel{},
			&msgadapters.MessageModel{},
			&adadapters.CampaignModel{},
			&adminadapters.SizeStandardModel{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
