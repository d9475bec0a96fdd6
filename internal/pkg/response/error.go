package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peershare/item-sharing-backend/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error sends a JSON error response. Sentinel AppErrors determine the
// status code; anything else becomes a 500 with a generic message so
// internals never leak to the client.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
