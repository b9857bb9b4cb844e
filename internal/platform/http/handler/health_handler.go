// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import "github.com/gin-gonic/gin"

// Health は /healthz を処理します。ロードバランサーやアップタイム監視からの
// 死活確認に使われ、認証なしで常に即時応答します。
func Health(c *gin.Context) {
	// 監視系が古い結果を掴まないようキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case "HEAD":
		c.Status(200)
	case "OPTIONS":
		c.Status(204)
	default:
		c.JSON(200, gin.H{"status": "ok"})
	}
}
