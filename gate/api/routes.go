package api

import (
	comhttp "agari/common/http"
	"agari/gate/application/service"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(server *comhttp.HttpServer, svc service.ScoreService) {
	h := NewScoreHandler(svc)

	server.GET("/ping", PingHandler)
	server.GET("/health", h.HealthHandler)
	server.NoRoute(NotFoundHandler)

	// API v1 路由组
	v1 := server.Group("/api/v1")
	{
		v1.POST("/score", h.Score)
		v1.POST("/agari", h.Agari)
		v1.POST("/yaku", h.Yaku)
		v1.POST("/fu", h.Fu)
		v1.POST("/points", h.Points)

		v1.GET("/history", h.History)
		v1.DELETE("/history", h.ClearHistory)

		v1.GET("/quiz", h.Quiz)
	}
}
