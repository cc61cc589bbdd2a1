package response

import "github.com/gin-gonic/gin"

// Success writes the payload as-is; the processed document is the body.
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, data)
}

// Error writes the {error} body shape consumed by the upload UI.
func Error(c *gin.Context, status int, code int, message string) {
	c.JSON(status, gin.H{"error": message, "code": code})
}
