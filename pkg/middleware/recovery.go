package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sealjuli/Library/pkg/reporting"
)

// Recovery turns a panic into a 500 response and reports it.
func Recovery(reporter reporting.Reporter) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		reporter.Capture(c.Request.Context(), fmt.Errorf("panic: %v", recovered), map[string]string{
			"route":  c.FullPath(),
			"method": c.Request.Method,
		})
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}
