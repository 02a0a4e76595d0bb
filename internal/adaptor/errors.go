package adaptor

import (
	"errors"
	"net/http"

	"glam-booking/internal/apperrors"
	"glam-booking/pkg/utils"

	"go.uber.org/zap"
)

// respondServiceError maps the core error taxonomy to HTTP statuses.
// Conflict and forbidden cases keep their specific messages so the
// client can show something actionable instead of a generic failure.
func respondServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *apperrors.ValidationError
	var transitionErr *apperrors.InvalidTransitionError

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.Is(err, apperrors.ErrDuplicatePendingBooking):
		log.Warn(operation+" failed - duplicate booking", zap.Error(err))
		utils.ResponseConflict(w, "Duplicate booking: "+err.Error())

	case errors.Is(err, apperrors.ErrBookingNotFound),
		errors.Is(err, apperrors.ErrListingNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, apperrors.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.As(err, &transitionErr):
		log.Warn(operation+" failed - invalid transition",
			zap.String("from", transitionErr.From),
			zap.String("to", transitionErr.To),
		)
		utils.ResponseUnprocessable(w, transitionErr.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
