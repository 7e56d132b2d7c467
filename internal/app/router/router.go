package router

import (
	"github.com/gin-gonic/gin"

	logshandler "rates_backend/internal/feature/logs/transport/handler"
)

// NewRouter wires the centralized logger service routes.
func NewRouter(logs *logshandler.LogsHandler) *gin.Engine {
	r := gin.Default()

	// 導通確認用
	r.GET("/healthz", logshandler.Health)

	api := r.Group("/api")
	{
		// ワーカーからのログ受信
		api.POST("/logs", logs.Post)
		// 直近8時間のログ
		api.GET("/logs/recent", logs.Recent)
		// 各テーブル件数の最新レポート
		api.GET("/logs/summary", logs.Summary)
	}

	return r
}
