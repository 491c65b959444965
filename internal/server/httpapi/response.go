package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/microblog/internal/common"
)

const (
	statusSuccess = "success"
	statusFailure = "failure"
)

// failureResponse is the uniform failure envelope: a human-readable message
// plus an internal error detail string.
type failureResponse struct {
	Status string `json:"status"`
	Msg    string `json:"msg"`
	Error  string `json:"error,omitempty"`
}

type messageResponse struct {
	Status string `json:"status"`
	Msg    string `json:"msg"`
}

type dataResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

type userResponse struct {
	Status string `json:"status"`
	User   any    `json:"user"`
}

type postResponse struct {
	Status string `json:"status"`
	Post   any    `json:"post"`
}

type postsResponse struct {
	Status string `json:"status"`
	Posts  any    `json:"posts"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeFailure(w http.ResponseWriter, status int, msg string, detail string) {
	writeJSON(w, status, failureResponse{Status: statusFailure, Msg: msg, Error: detail})
}

// writeError maps sentinel errors to the failure envelope. Unexpected
// lower-level failures are reported as a generic internal failure instead of
// being propagated raw.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeFailure(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, common.ErrorDuplicateEmail):
		writeFailure(w, http.StatusBadRequest, "Email already exists", "")
	case errors.Is(err, common.ErrorInvalidID):
		writeFailure(w, http.StatusBadRequest, "Invalid user ID", "")
	case errors.Is(err, common.ErrorNotFound):
		writeFailure(w, http.StatusNotFound, "User not found", "")
	case errors.Is(err, common.ErrorInvalidPassword):
		writeFailure(w, http.StatusUnauthorized, "Invalid Password", "")
	case errors.Is(err, common.ErrorInvalidToken):
		writeFailure(w, http.StatusUnauthorized, "Invalid token", "")
	case errors.Is(err, common.ErrorUnauthenticated):
		writeFailure(w, http.StatusUnauthorized, "Unauthorized", "")
	default:
		writeFailure(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}
