package routes

import (
	"github.com/gin-gonic/gin"
	"tubescribe/internal/api/v1/handlers"
	"tubescribe/internal/api/v1/services"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	TranscribeService services.TranscribeService
	DocumentService   services.DocumentService
}

// RegisterRoutes registers the service's HTTP surface
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	transcribeHandler := handlers.NewTranscribeHandler(container.TranscribeService)
	router.POST("/transcribe", transcribeHandler.Transcribe)

	documentHandler := handlers.NewDocumentHandler(container.DocumentService)
	transcriptions := router.Group("/transcriptions")
	{
		transcriptions.GET("", documentHandler.List)
		transcriptions.GET("/:id", documentHandler.Get)
		transcriptions.PUT("/:id", documentHandler.Update)
		transcriptions.DELETE("/:id", documentHandler.Delete)
	}
}
