package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/voyagehq/sofdesk/internal/middleware"
)

type RouterDeps struct {
	Documents      *DocumentHandler
	ThrottleWindow time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.Use(middleware.RequestID())
	api.POST("/documents/process",
		middleware.UploadThrottle(deps.ThrottleWindow),
		deps.Documents.Process,
	)
}
