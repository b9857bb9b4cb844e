package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"vufs_backend/internal/app/di"
	"vufs_backend/internal/app/router"
	adminadapters "vufs_backend/internal/feature/adminconfig/adapters"
	adminhandler "vufs_backend/internal/feature/adminconfig/transport/handler"
	adminusecase "vufs_backend/internal/feature/adminconfig/usecase"
	adadapters "vufs_backend/internal/feature/advertising/adapters"
	adhandler "vufs_backend/internal/feature/advertising/transport/handler"
	adusecase "vufs_backend/internal/feature/advertising/usecase"
	authadapters "vufs_backend/internal/feature/auth/adapters"
	authhandler "vufs_backend/internal/feature/auth/transport/handler"
	authusecase "vufs_backend/internal/feature/auth/usecase"
	marketadapters "vufs_backend/internal/feature/marketplace/adapters"
	markethandler "vufs_backend/internal/feature/marketplace/transport/handler"
	marketusecase "vufs_backend/internal/feature/marketplace/usecase"
	msgadapters "vufs_backend/internal/feature/messaging/adapters"
	msghandler "vufs_backend/internal/feature/messaging/transport/handler"
	"vufs_backend/internal/feature/messaging/transport/ws"
	msgusecase "vufs_backend/internal/feature/messaging/usecase"
	socialadapters "vufs_backend/internal/feature/social/adapters"
	socialhandler "vufs_backend/internal/feature/social/transport/handler"
	socialusecase "vufs_backend/internal/feature/social/usecase"
	wardrobeadapters "vufs_backend/internal/feature/wardrobe/adapters"
	wardrobehandler "vufs_backend/internal/feature/wardrobe/transport/handler"
	wardrobeusecase "vufs_backend/internal/feature/wardrobe/usecase"
	"vufs_backend/internal/platform/cache"
	infradb "vufs_backend/internal/platform/db"
	jwtmw "vufs_backend/internal/platform/jwt"
	infraredis "vufs_backend/internal/platform/redis"
)

// accessTokenTTL はアクセストークンの有効期限です。
const accessTokenTTL = 15 * time.Minute

func main() {
	// .envは開発環境のみ。本番は環境変数で渡す。
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] .env not found. Using environment variables.")
	}

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserPostgres(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	itemRepo := wardrobeadapters.NewItemRepository(db)
	categoryRepo := wardrobeadapters.NewCategoryRepository(db)
	listingRepo := marketadapters.NewListingRepository(db)
	likeRepo := marketadapters.NewLikeRepository(db)
	itemReader := marketadapters.NewItemReader(db)
	postRepo := socialadapters.NewPostRepository(db)
	followRepo := socialadapters.NewFollowRepository(db)
	commentRepo := socialadapters.NewCommentRepository(db)
	postLikeRepo := socialadapters.NewPostLikeRepository(db)
	conversationRepo := msgadapters.NewConversationRepository(db)
	messageRepo := msgadapters.NewMessageRepository(db)
	campaignRepo := adadapters.NewCampaignRepository(db)
	sizeRepo := adminadapters.NewSizeStandardRepository(db)

	// 出品検索をRedisキャッシュでラップ（書き込み時に無効化）
	cachedListingRepo := cache.NewCachingListingRepository(rdb, 5*time.Minute, listingRepo, "listings")

	// WebSocketハブ
	hub := ws.NewHub()

	// Usecase
	jwtGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), accessTokenTTL)
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, jwtGen, accessTokenTTL)
	wardrobeUC := wardrobeusecase.NewWardrobeUsecase(itemRepo, categoryRepo)
	marketUC := marketusecase.NewMarketplaceUsecase(cachedListingRepo, likeRepo, itemReader)
	socialUC := socialusecase.NewSocialUsecase(postRepo, followRepo, commentRepo, postLikeRepo)
	msgUC := msgusecase.NewMessagingUsecase(conversationRepo, messageRepo, hub)
	adUC := adusecase.NewAdvertisingUsecase(campaignRepo)
	adminUC := adminusecase.NewAdminConfigUsecase(sizeRepo)

	// AI画像解析パイプライン（Vision + Gemini + GCS）
	aiHandler, aiCleanup, err := di.NewAIAnalysis(context.Background())
	if err != nil {
		log.Fatal("[ERROR] Failed to initialize AI analysis pipeline: ", err)
	}
	defer aiCleanup()

	// Handler
	handlers := router.Handlers{
		Auth:        authhandler.NewAuthHandler(authUC),
		Wardrobe:    wardrobehandler.NewWardrobeHandler(wardrobeUC),
		AIAnalysis:  aiHandler,
		Marketplace: markethandler.NewMarketplaceHandler(marketUC),
		Social:      socialhandler.NewSocialHandler(socialUC),
		Messaging:   msghandler.NewMessagingHandler(msgUC),
		WS:          ws.NewWSHandler(hub, msgUC),
		Advertising: adhandler.NewAdvertisingHandler(adUC),
		AdminConfig: adminhandler.NewAdminConfigHandler(adminUC),
	}

	// ルータ生成
	r := router.NewRouter(handlers)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
