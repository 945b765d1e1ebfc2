package server

import (
	"github.com/gin-gonic/gin"

	"github.com/lvdund/ueprofiles/apps/profile-api/internal/handler"
)

// SetupRouter はルーティングを設定する。
func SetupRouter(engine *gin.Engine, h *handler.Handler, m *Metrics) {
	// ヘルスチェック・メトリクス
	engine.GET("/health", h.HandleHealth)
	engine.GET("/metrics", m.Handler())

	// 認証
	engine.POST("/register", h.HandleRegister)
	engine.POST("/login", h.HandleLogin)

	authed := engine.Group("/", AuthMiddleware(h.Tokens()))
	{
		authed.POST("/logout", h.HandleLogout)

		profiles := authed.Group("/ue_profiles")
		profiles.GET("", h.HandleListProfiles)
		profiles.POST("", h.HandleCreateProfiles)
		profiles.POST("/generate", h.HandleGenerateProfiles)
		profiles.GET("/:supi", h.HandleGetProfile)
		profiles.PUT("/:supi", h.HandleUpdateProfile)
		profiles.DELETE("/:supi", h.HandleDeleteProfile)
	}
}
