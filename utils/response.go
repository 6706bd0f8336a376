package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data gin.H) {
	c.JSON(code, data)
}

// JSONError writes the stable error envelope: {"error": {"code", "message"}}.
func JSONError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// JSONErrorDetails adds field-level validation details to the envelope.
func JSONErrorDetails(c *gin.Context, status int, code, message string, details interface{}) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
