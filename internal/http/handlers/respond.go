package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error bodies are always {"error": string} or {"errors": [string]},
// success messages {"message": string}. Nothing else leaks to the client.

func RespondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"error": message})
}

func RespondFieldErrors(ctx *gin.Context, errs []string) {
	ctx.JSON(http.StatusBadRequest, gin.H{"errors": errs})
}

func RespondMessage(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"message": message})
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, message)
}

func RespondUnauthorized(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusUnauthorized, message)
}

// RespondInternal hides the detail from the client; the caller logs it.
func RespondInternal(ctx *gin.Context) {
	RespondError(ctx, http.StatusInternalServerError, "Something went wrong. Please try again.")
}
