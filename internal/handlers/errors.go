package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/awqaf-platform/waqf_ledger/internal/apperrors"
	"github.com/awqaf-platform/waqf_ledger/internal/dto"
	"github.com/awqaf-platform/waqf_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusForKind maps an error kind to its HTTP status.
var statusForKind = map[apperrors.Kind]int{
	apperrors.KindValidation:  http.StatusBadRequest,
	apperrors.KindNotFound:    http.StatusNotFound,
	apperrors.KindForbidden:   http.StatusForbidden,
	apperrors.KindState:       http.StatusConflict,
	apperrors.KindConflict:    http.StatusConflict,
	apperrors.KindIntegrity:   http.StatusUnprocessableEntity,
	apperrors.KindUnavailable: http.StatusServiceUnavailable,
	apperrors.KindInternal:    http.StatusInternalServerError,
}

// respondError writes err as a dto.ErrorResponse. Internal failures are
// logged at error level and their message is not exposed.
func respondError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if appErr, ok := apperrors.AsAppError(err); ok {
		status, known := statusForKind[appErr.Kind]
		if !known {
			status = http.StatusInternalServerError
		}
		body := dto.ErrorResponse{
			Error:        appErr.Message,
			Code:         string(appErr.Code),
			Kind:         string(appErr.Kind),
			EntityID:     appErr.EntityID,
			CurrentState: appErr.CurrentState,
			Delta:        appErr.Delta,
			Details:      appErr.Details,
		}
		if status >= http.StatusInternalServerError {
			logger.Error("Failed to "+action, slog.String("error", err.Error()))
			if status == http.StatusInternalServerError {
				body.Error = "Failed to " + action
				body.Details = nil
			}
		} else {
			logger.Warn("Rejected request to "+action,
				slog.String("kind", body.Kind),
				slog.String("code", body.Code),
				slog.String("error", err.Error()))
		}
		c.JSON(status, body)
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error(), Kind: string(apperrors.KindNotFound)})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error(), Kind: string(apperrors.KindConflict)})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Kind: string(apperrors.KindValidation)})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to " + action, Kind: string(apperrors.KindInternal)})
	}
}

// respondBindError reports a request that could not be bound.
func respondBindError(c *gin.Context, err error, what string) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid request format: " + err.Error(),
		Code:  string(apperrors.CodeInvalidInput),
		Kind:  string(apperrors.KindValidation),
	})
}

// requireUser returns the authenticated user ID, writing a 401 when absent.
func requireUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
