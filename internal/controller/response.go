package controller

import (
	"encoding/json"
	"net/http"

	"github.com/zacxu/internship_hub/internal/apperr"
)

// actorHeader carries the acting user's id. Authentication lives in
// front of this service; the engine only authorizes role and
// ownership.
const actorHeader = "X-User-ID"

func actorID(r *http.Request) (string, bool) {
	id := r.Header.Get(actorHeader)
	return id, id != ""
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{"data": data})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case apperr.IsNotFound(err):
		status = http.StatusNotFound
	case apperr.IsInvalidOperation(err):
		status = http.StatusConflict
	}
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

func writeUnauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "missing " + actorHeader + " header"})
}

// writeMutation reports the result of an engine mutation. A save
// failure still carries the mutated entity: the in-memory change is
// applied, only its durability is uncertain, and the caller gets told
// exactly that.
func writeMutation(w http.ResponseWriter, status int, data any, err error) {
	if err != nil && !apperr.IsSaveFailure(err) {
		writeError(w, err)
		return
	}
	payload := map[string]any{"data": data}
	if err != nil {
		payload["warning"] = err.Error()
		payload["durability"] = "uncertain"
	}
	writeJSON(w, status, payload)
}

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}
