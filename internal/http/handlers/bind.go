package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BindJSON binds the request body and, on a binding-tag failure, answers with
// a field -> message map the way the original API reported them. Returns
// false when it already wrote the response.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	err := ctx.ShouldBindJSON(out)

	if err == nil {
		return true
	}

	var validatorErrs validator.ValidationErrors

	if errors.As(err, &validatorErrs) {
		fields := make(map[string]string, len(validatorErrs))

		for _, fieldErr := range validatorErrs {
			// request DTO fields are single words, lowercasing matches the json tag
			fields[strings.ToLower(fieldErr.Field())] = bindingMessage(fieldErr.Tag(), fieldErr.Param())
		}

		ctx.JSON(http.StatusBadRequest, fields)
		return false
	}

	RespondError(ctx, http.StatusBadRequest, "Invalid request body")
	return false
}

func bindingMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + param + " characters"
	default:
		return "failed " + rule + " validation"
	}
}
