package responses

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jalshakti/sahayak/internal/infrastructure/logger"
	"github.com/jalshakti/sahayak/internal/utils/platformerrors"
)

// ErrorResponse is the error envelope every endpoint returns.
type ErrorResponse = platformerrors.HTTPErrorResponse

// HandleError writes err, keeping its PlatformError type when it has one.
func HandleError(reqCtx *gin.Context, err error, message string) {
	log := logger.GetLogger().With().Str("path", reqCtx.Request.URL.Path).Logger()
	var platformErr *platformerrors.PlatformError
	if errors.As(err, &platformErr) {
		platformerrors.WriteHTTPError(reqCtx, platformErr, log)
		return
	}
	platformerrors.WriteError(reqCtx, platformerrors.AsError(reqCtx.Request.Context(), platformerrors.LayerRoute, err, message), log)
}

// HandleNewError writes a route-level error such as a binding failure.
func HandleNewError(reqCtx *gin.Context, errorType platformerrors.ErrorType, message string) {
	log := logger.GetLogger().With().Str("path", reqCtx.Request.URL.Path).Logger()
	platformerrors.WriteHTTPError(reqCtx,
		platformerrors.NewError(reqCtx.Request.Context(), platformerrors.LayerRoute, errorType, message, nil), log)
}
