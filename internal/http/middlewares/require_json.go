package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// "application/json; charset=utf-8" counts as JSON too
func isJSONContentType(ct string) bool {
	return strings.HasPrefix(strings.ToLower(ct), "application/json")
}

// RequireJSON rejects mutating requests with a non-JSON payload. An empty
// Content-Type passes through because reset-password is a bodyless PUT.
func RequireJSON() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		switch ctx.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			ct := ctx.GetHeader("Content-Type")

			if ct != "" && !isJSONContentType(ct) {
				ctx.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{
					"error": "Content-Type must be application/json",
				})
				return
			}
		}

		ctx.Next()
	}
}
