package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/voyagehq/sofdesk/internal/pkg/errcode"
	"github.com/voyagehq/sofdesk/internal/pkg/response"
)

const throttleCacheSize = 4096

// UploadThrottle enforces a minimum interval between uploads per session.
// An entry's presence in the expirable cache means the window is still open.
// A zero window disables throttling.
func UploadThrottle(window time.Duration) gin.HandlerFunc {
	if window <= 0 {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	seen := expirable.NewLRU[string, time.Time](throttleCacheSize, nil, window)
	return func(c *gin.Context) {
		key := c.PostForm("session_id")
		if key == "" {
			key = c.ClientIP()
		}
		if _, open := seen.Get(key); open {
			logutil.GetLogger(c.Request.Context()).Warn("upload throttled",
				zap.String("session_id", key),
				zap.String("path", c.Request.URL.Path),
			)
			response.Error(c, http.StatusTooManyRequests, errcode.ErrTooMany, http.StatusText(http.StatusTooManyRequests))
			c.Abort()
			return
		}
		seen.Add(key, time.Now())
		c.Next()
	}
}
