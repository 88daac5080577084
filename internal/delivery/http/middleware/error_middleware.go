package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/pkg/apperror"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				if appErr.Code >= http.StatusInternalServerError {
					slog.Error("request failed",
						"path", c.FullPath(),
						"request_id", c.GetString("RequestID"),
						"error", appErr.Err,
					)
				}
				response.Error(c, appErr.Code, appErr.Message, nil)
				return
			}

			// Never expose internal error details to clients.
			slog.Error("unhandled error",
				"path", c.FullPath(),
				"request_id", c.GetString("RequestID"),
				"error", err,
			)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
		}
	}
}
