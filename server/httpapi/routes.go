package httpapi

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.Engine, h *Handler) {
	router.GET("/", h.Health)

	api := router.Group("/api/v1")
	{
		api.POST("/execute", h.Execute)
		api.GET("/tables", h.ListTables)
		api.GET("/tables/:name", h.GetTable)
	}
}
