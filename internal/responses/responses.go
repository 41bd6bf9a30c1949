// Package responses writes the JSON envelope shared by every endpoint.
package responses

import (
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-user-service/internal/apperrors"
	"github.com/sbilibin2017/gw-user-service/internal/logger"
	"github.com/sbilibin2017/gw-user-service/internal/models"
)

const internalErrorMessage = "Internal server error"

// JSON writes a successful envelope with the given status and payload.
func JSON(w http.ResponseWriter, status int, data any, message string) {
	write(w, models.APIResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < http.StatusBadRequest,
	})
}

// Error writes the failure envelope for err.
// Errors that are not *apperrors.Error are reported as a masked 500.
func Error(w http.ResponseWriter, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		logger.Log.Errorw("unhandled error", "error", err)
		appErr = apperrors.Internal(internalErrorMessage, err)
	}

	message := appErr.Message
	if appErr.Kind == apperrors.KindInternal {
		logger.Log.Errorw(appErr.Message, "error", appErr.Err)
		message = internalErrorMessage
	}

	write(w, models.APIResponse{
		StatusCode: appErr.Status,
		Data:       nil,
		Message:    message,
		Success:    false,
	})
}

func write(w http.ResponseWriter, resp models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Log.Errorw("failed to encode response", "error", err)
	}
}
