package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"insa-partnership-backend/internal/apperr"
	"insa-partnership-backend/internal/logger"
)

type errorBody struct {
	Kind    apperr.Kind `json:"kind"`
	Message string      `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps an application error kind to an HTTP status and renders
// the structured failure body. Unknown errors become opaque 500s.
func writeError(w http.ResponseWriter, err error) {
	var e *apperr.Error
	status := http.StatusInternalServerError
	body := errorBody{Kind: apperr.KindInternal, Message: "internal error"}

	if errors.As(err, &e) {
		body = errorBody{Kind: e.Kind, Message: e.Message}
		switch e.Kind {
		case apperr.KindNotFound:
			status = http.StatusNotFound
		case apperr.KindInvalidInput, apperr.KindInvalidPrivilege:
			status = http.StatusBadRequest
		case apperr.KindForbidden:
			status = http.StatusForbidden
		case apperr.KindConflict, apperr.KindAlreadyApproved, apperr.KindDuplicateApprover,
			apperr.KindWrongStage, apperr.KindAlreadyTerminal, apperr.KindInvalidState,
			apperr.KindNotOperational, apperr.KindPartnerNotSigned, apperr.KindDurationMissing:
			status = http.StatusConflict
		default:
			status = http.StatusInternalServerError
		}
	} else {
		logger.Error("Unhandled error at API boundary", "error", err)
	}

	writeJSON(w, status, body)
}

func decodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.InvalidInput("body", "malformed JSON request body")
	}
	return nil
}
