package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	adminhandler "vufs_backend/internal/feature/adminconfig/transport/handler"
	adhandler "vufs_backend/internal/feature/advertising/transport/handler"
	aihandler "vufs_backend/internal/feature/aianalysis/transport/handler"
	authhandler "vufs_backend/internal/feature/auth/transport/handler"
	"vufs_backend/internal/feature/auth/domain/entity"
	markethandler "vufs_backend/internal/feature/marketplace/transport/handler"
	msghandler "vufs_backend/internal/feature/messaging/transport/handler"
	"vufs_backend/internal/feature/messaging/transport/ws"
	socialhandler "vufs_backend/internal/feature/social/transport/handler"
	wardrobehandler "vufs_backend/internal/feature/wardrobe/transport/handler"
	"vufs_backend/internal/platform/http/handler"
	jwtmw "vufs_backend/internal/platform/jwt"
)

// Handlers はルーティングに必要な全ハンドラーをまとめます。
type Handlers struct {
	Auth        *authhandler.AuthHandler
	Wardrobe    *wardrobehandler.WardrobeHandler
	AIAnalysis  *aihandler.AIAnalysisHandler
	Marketplace *markethandler.MarketplaceHandler
	Social      *socialhandler.SocialHandler
	Messaging   *msghandler.MessagingHandler
	WS          *ws.WSHandler
	Advertising *adhandler.AdvertisingHandler
	AdminConfig *adminhandler.AdminConfigHandler
}

// NewRouter は全ルートを登録したgin.Engineを返します。
func NewRouter(h Handlers) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/signup", h.Auth.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", h.Auth.Login)
	// リフレッシュトークンによるアクセストークン再発行
	r.POST("/refresh", h.Auth.Refresh)
	// VUFSタクソノミーとサイズ規格（アイテム登録フォームが参照）
	r.GET("/vufs/categories", h.Wardrobe.ListCategories)
	r.GET("/sizes", h.AdminConfig.ListSizeStandards)
	// 出品検索は未ログインでも可能
	r.GET("/listings", h.Marketplace.Search)
	r.GET("/listings/:id", h.Marketplace.Get)

	// 認証必須のルート
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.POST("/logout", h.Auth.Logout)

		// ワードローブ
		auth.POST("/items", h.Wardrobe.Create)
		auth.GET("/items", h.Wardrobe.List)
		auth.GET("/items/:id", h.Wardrobe.Get)
		auth.PUT("/items/:id", h.Wardrobe.Update)
		auth.DELETE("/items/:id", h.Wardrobe.Delete)

		// AI画像解析
		auth.POST("/ai/process", h.AIAnalysis.Process)
		auth.POST("/ai/analyze-url", h.AIAnalysis.AnalyzeURL)
		auth.POST("/ai/batch-process", h.AIAnalysis.BatchProcess)

		// マーケットプレイス
		auth.POST("/listings", h.Marketplace.Create)
		auth.PUT("/listings/:id", h.Marketplace.Update)
		auth.POST("/listings/:id/withdraw", h.Marketplace.Withdraw)
		auth.POST("/listings/:id/sold", h.Marketplace.MarkSold)
		auth.POST("/listings/:id/like", h.Marketplace.Like)
		auth.DELETE("/listings/:id/like", h.Marketplace.Unlike)

		// ソーシャル
		auth.POST("/posts", h.Social.CreatePost)
		auth.GET("/posts/:id", h.Social.GetPost)
		auth.DELETE("/posts/:id", h.Social.DeletePost)
		auth.GET("/feed", h.Social.Feed)
		auth.POST("/posts/:id/like", h.Social.LikePost)
		auth.DELETE("/posts/:id/like", h.Social.UnlikePost)
		auth.POST("/posts/:id/comments", h.Social.Comment)
		auth.GET("/posts/:id/comments", h.Social.ListComments)
		auth.DELETE("/comments/:id", h.Social.DeleteComment)
		auth.POST("/users/:id/follow", h.Social.Follow)
		auth.DELETE("/users/:id/follow", h.Social.Unfollow)
		auth.GET("/users/:id/followers", h.Social.Followers)
		auth.GET("/users/:id/following", h.Social.Following)

		// メッセージング
		auth.POST("/conversations", h.Messaging.CreateConversation)
		auth.GET("/conversations", h.Messaging.ListConversations)
		auth.GET("/conversations/:id/messages", h.Messaging.ListMessages)
		auth.POST("/conversations/:id/messages", h.Messaging.PostMessage)
		auth.GET("/ws", h.WS.Serve)
	}

	// 広告キャンペーン（brand/adminロールのみ）
	campaigns := r.Group("/campaigns")
	campaigns.Use(jwtmw.AuthRequired(), jwtmw.RoleRequired(entity.RoleBrand, entity.RoleAdmin))
	{
		campaigns.POST("", h.Advertising.Create)
		campaigns.GET("", h.Advertising.List)
		campaigns.GET("/:id", h.Advertising.Get)
		campaigns.PUT("/:id", h.Advertising.Update)
		campaigns.POST("/:id/activate", h.Advertising.Activate)
		campaigns.POST("/:id/pause", h.Advertising.Pause)
		campaigns.POST("/:id/end", h.Advertising.End)
		campaigns.POST("/:id/impressions", h.Advertising.RecordImpression)
		campaigns.POST("/:id/clicks", h.Advertising.RecordClick)
	}

	// 管理設定（adminロールのみ）
	admin := r.Group("/admin")
	admin.Use(jwtmw.AuthRequired(), jwtmw.RoleRequired(entity.RoleAdmin))
	{
		admin.POST("/sizes", h.AdminConfig.CreateSizeStandard)
		admin.PUT("/sizes/:id", h.AdminConfig.UpdateSizeStandard)
		admin.DELETE("/sizes/:id", h.AdminConfig.DeleteSizeStandard)
	}

	return r
}
