package adaptor

import (
	"encoding/json"
	"net/http"

	"paramount-autos/pkg/utils"
	"paramount-autos/pkg/xerrors"

	"go.uber.org/zap"
)

// handleServiceError maps service errors onto HTTP responses. Client
// errors keep their message and are logged at warn; anything unclassified
// is a 500 with a generic message.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	fields := []zap.Field{zap.Error(err), zap.String("operation", operation)}
	errMsg := err.Error()

	switch {
	case xerrors.Is(err, xerrors.ErrValidation):
		log.Warn(operation+" validation failed", fields...)
		utils.ResponseBadRequest(w, errMsg, nil)

	case xerrors.Is(err, xerrors.ErrNotFound):
		log.Warn(operation+" failed - not found", fields...)
		utils.ResponseNotFound(w, errMsg)

	case xerrors.Is(err, xerrors.ErrInvalidTransition):
		log.Warn(operation+" failed - invalid state", fields...)
		utils.ResponseConflict(w, errMsg)

	case xerrors.Is(err, xerrors.ErrConflict):
		log.Warn(operation+" failed - conflict", fields...)
		utils.ResponseConflict(w, errMsg)

	case xerrors.Is(err, xerrors.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", fields...)
		utils.ResponseUnauthorized(w, errMsg)

	case xerrors.Is(err, xerrors.ErrForbidden):
		log.Warn(operation+" failed - forbidden", fields...)
		utils.ResponseForbidden(w, errMsg)

	case xerrors.Is(err, xerrors.ErrRateLimited):
		utils.ResponseTooManyRequests(w, errMsg)

	case xerrors.Is(err, xerrors.ErrTransient):
		log.Error(operation+" failed - store unavailable", fields...)
		utils.ResponseUnavailable(w, "Service temporarily unavailable, please retry")

	default:
		log.Error(operation+" failed", fields...)
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// normalizer is implemented by request bodies that canonicalise their
// fields before validation.
type normalizer interface {
	Normalize()
}

// decodeAndValidate reads a JSON body into dst and runs its validate tags.
// It writes the 400 itself and reports false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	if n, ok := dst.(normalizer); ok {
		n.Normalize()
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}
	return true
}
