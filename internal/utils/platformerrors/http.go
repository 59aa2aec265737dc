package platformerrors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HTTPErrorResponse represents the standard error response format.
type HTTPErrorResponse struct {
	Error *HTTPErrorDetail `json:"error"`
}

// HTTPErrorDetail contains error details for HTTP responses.
type HTTPErrorDetail struct {
	Message   string `json:"message"`
	Type      string `json:"type"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteHTTPError writes a PlatformError as an HTTP response.
func WriteHTTPError(c *gin.Context, err *PlatformError, log zerolog.Logger) {
	if err == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, HTTPErrorResponse{
			Error: &HTTPErrorDetail{Message: "unknown error", Type: "internal_error"},
		})
		return
	}

	LogError(log, err)

	c.AbortWithStatusJSON(ErrorTypeToHTTPStatus(err.Type), HTTPErrorResponse{
		Error: &HTTPErrorDetail{
			Message:   err.Message,
			Type:      strings.ToLower(string(err.Type)) + "_error",
			RequestID: err.RequestID,
		},
	})
}

// WriteError writes a generic error as an HTTP response, treating anything
// that is not a PlatformError as internal.
func WriteError(c *gin.Context, err error, log zerolog.Logger) {
	var platformErr *PlatformError
	if errors.As(err, &platformErr) {
		WriteHTTPError(c, platformErr, log)
		return
	}
	if err == nil {
		WriteHTTPError(c, nil, log)
		return
	}
	WriteHTTPError(c, NewError(c.Request.Context(), LayerHandler, ErrorTypeInternal, "internal error", err), log)
}
