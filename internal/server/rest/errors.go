package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/gin-gonic/gin"
)

const internalMessage = "Something went wrong!"

func statusFor(kind error) int {
	switch kind {
	case common.ErrorInvalidInput:
		return http.StatusBadRequest
	case common.ErrorUnauthorized:
		return http.StatusUnauthorized
	case common.ErrorForbidden:
		return http.StatusForbidden
	case common.ErrorNotFound:
		return http.StatusNotFound
	case common.ErrorConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as {"error": message, ...fields} and aborts the chain.
// Errors that are not *common.Error never reach the body.
func fail(c *gin.Context, err error) {
	kind := common.KindOf(err)
	body := gin.H{"error": internalMessage}

	var ce *common.Error
	if errors.As(err, &ce) {
		for k, v := range ce.Fields {
			body[k] = v
		}
		body["error"] = ce.Message
	}
	if kind == common.ErrorInternal {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(statusFor(kind), body)
}

func invalid(c *gin.Context, message string) {
	fail(c, common.NewError(common.ErrorInvalidInput, message))
}
