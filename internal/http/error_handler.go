package http

import (
	"errors"
	"fmt"
	"net/http"

	"invoice-service/internal/http/handler"
	"invoice-service/internal/http/middleware"
	apperrors "invoice-service/pkg/errors"
	"invoice-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CustomHTTPErrorHandler handles all errors returned by handlers and middleware.
// It maps sentinel errors to HTTP status codes, hides internal errors and
// logs with the request id.
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		message = fmt.Sprintf("%v", httpErr.Message)
	} else {
		code, message = handler.MapToPublicError(err)

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && code < http.StatusInternalServerError {
			message = appErr.Message
		}
	}

	requestID := middleware.GetRequestID(c)
	if requestID == "" {
		requestID = "unknown"
	}

	log := middleware.Logger(c).With(
		zap.Int("status", code),
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.String("error", logger.SanitizeLogMessage(err.Error())))

	if code >= http.StatusInternalServerError {
		log.Error("internal_server_error")
		message = "Internal server error"
	} else {
		log.Warn("client_error")
	}

	if err := c.JSON(code, map[string]interface{}{
		"error":      message,
		"request_id": requestID,
	}); err != nil {
		middleware.Logger(c).Error("failed to write error response", zap.Error(err))
	}
}
