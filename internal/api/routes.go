package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, s *Server) {
	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("/categories", s.categories)
		api.GET("/image", s.imageHandler)
		api.GET("/caption", s.captionHandler)
		api.GET("/qr", s.qrHandler)
	}
	if s.Config.Paths.Assets != "" {
		r.Static("/static", s.Config.Paths.Assets)
	}
}
