package httputil

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/medrec/records-api/pkg/errors"
)

// genericMessage is the only text a client sees for unclassified failures.
// Internal detail stays in the server log.
const genericMessage = "an error occurred while processing the request"

// Response wraps all API responses
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{
		Status: "success",
		Data:   data,
	})
}

// RespondWithError translates a service error to its HTTP status and a fixed
// client-facing message. DuplicateKey->400, NotFound->404,
// InvalidCredentials->401, everything else->400 with a generic string.
func RespondWithError(c *gin.Context, err error) {
	status := http.StatusBadRequest
	message := genericMessage

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case apperrors.KindValidation, apperrors.KindDuplicateKey:
			message = appErr.Message
		case apperrors.KindNotFound:
			status = http.StatusNotFound
			message = appErr.Message
		case apperrors.KindInvalidCredentials:
			status = http.StatusUnauthorized
			message = appErr.Message
		default:
			logInternal(c, err)
		}
	} else {
		logInternal(c, err)
	}

	c.JSON(status, Response{
		Status:  "error",
		Message: message,
	})
}

func logInternal(c *gin.Context, err error) {
	log.Error().
		Err(err).
		Str("path", c.Request.URL.Path).
		Str("method", c.Request.Method).
		Str("request_id", c.GetString("request_id")).
		Msg("unhandled service error")
}
