package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/example/carhub/internal/db"
	"github.com/example/carhub/internal/models"
)

// ErrUnauthorized is returned when a handler runs without a verified identity.
var ErrUnauthorized = errors.New("User not authenticated")

const (
	msgMalformedBody   = "Malformed request body"
	msgDatabaseFailure = "Database operation failed"
	msgUnexpected      = "An unexpected error occurred"
)

// BadRequestError reports a request that could not be decoded.
type BadRequestError struct {
	Message string
	Err     error
}

func (e *BadRequestError) Error() string {
	return e.Message
}

func (e *BadRequestError) Unwrap() error {
	return e.Err
}

// respondError is the single place where errors become HTTP responses.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	_ = c.Error(err)
	status, body := translateError(err)

	fields := []zap.Field{
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", fields...)
	} else {
		logger.Warn("Request rejected", fields...)
	}
	c.AbortWithStatusJSON(status, body)
}

func translateError(err error) (int, models.APIResponse) {
	var validationErrs validator.ValidationErrors
	var badRequest *BadRequestError
	var notFound *db.NotFoundError

	switch {
	case errors.As(err, &validationErrs):
		return http.StatusBadRequest, models.Failure(validationMessage(validationErrs), models.CodeValidationError)
	case errors.As(err, &badRequest):
		return http.StatusBadRequest, models.Failure(badRequest.Message, models.CodeBadRequest)
	case errors.As(err, &notFound):
		return http.StatusNotFound, models.Failure(notFound.Error(), models.CodeNotFound)
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound, models.Failure(err.Error(), models.CodeNotFound)
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, models.Failure(err.Error(), models.CodeUnauthorized)
	case errors.Is(err, db.ErrPersistence):
		return http.StatusInternalServerError, models.Failure(msgDatabaseFailure, models.CodeFirestoreError)
	default:
		return http.StatusInternalServerError, models.Failure(msgUnexpected, models.CodeInternalError)
	}
}
