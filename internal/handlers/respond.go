// internal/handlers/respond.go
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/stockline/stockline-be/internal/core/domain"
)

// respondJSON writes data as a JSON response with the given status.
func respondJSON(logger *slog.Logger, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

// respondError writes an error message as a JSON response.
func respondError(logger *slog.Logger, w http.ResponseWriter, status int, message string) {
	respondJSON(logger, w, status, map[string]string{"error": message})
}

// respondDomainError maps engine errors to HTTP statuses. Rule violations
// surface the domain message verbatim so clients can show it as-is;
// anything unrecognized falls through as a 500 with a generic message.
func respondDomainError(logger *slog.Logger, w http.ResponseWriter, err error) {
	var (
		invalidTransition *domain.InvalidTransitionError
		mixedSource       *domain.MixedSourceTagError
		confirmRequired   *domain.ConfirmationRequiredError
		insufficient      *domain.InsufficientStockError
		stale             *domain.ReservationStaleError
		exceedsAvailable  *domain.ExceedsAvailableError
	)

	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(logger, w, http.StatusNotFound, err.Error())
	case errors.As(err, &invalidTransition),
		errors.As(err, &mixedSource),
		errors.Is(err, domain.ErrNothingToMoveOut):
		respondError(logger, w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &confirmRequired):
		respondError(logger, w, http.StatusPreconditionRequired, err.Error())
	case errors.As(err, &insufficient),
		errors.As(err, &stale),
		errors.As(err, &exceedsAvailable):
		respondError(logger, w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrContended):
		respondError(logger, w, http.StatusLocked, err.Error())
	default:
		respondError(logger, w, http.StatusInternalServerError, "Internal server error")
	}
}
