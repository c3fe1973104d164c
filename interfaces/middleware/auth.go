package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Auth enforces the static X-API-Key header for every protected route
func Auth(apiKey string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		provided := ctx.Request.Header.Get("X-API-Key")
		if apiKey == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing API key"})
			return
		}
		ctx.Next()
	}
}
