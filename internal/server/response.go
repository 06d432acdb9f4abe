package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/paulogil93/habitua-te-api/internal/repository"
	"github.com/rs/zerolog"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"status":  "error",
		"message": message,
	})
}

func writeDeleted(w http.ResponseWriter, entity string, id uint) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": entity + " " + formatID(id) + " deleted successfully.",
	})
}

// writeRepoError turns a repository error into the matching HTTP status.
// Unexpected errors are logged with the request id.
func writeRepoError(w http.ResponseWriter, r *http.Request, log *zerolog.Logger, err error, entity string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, repository.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Missing required parameters")
	case errors.Is(err, repository.ErrDuplicateKey):
		writeError(w, http.StatusConflict, entity+" already exists")
	case errors.Is(err, repository.ErrForeignKeyViolation):
		writeError(w, http.StatusConflict, "Referenced record does not exist")
	default:
		log.Error().Err(err).
			Str("request_id", requestIDFrom(r.Context())).
			Str("path", r.URL.Path).
			Msg("Request failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
