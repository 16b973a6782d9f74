package errors

import (
	"encoding/json"
	"net/http"
)

// WriteError serializes an error as the API error shape:
//
//	{"error": "...", "message": "...", "requiredRoles": [...], "availableRoles": [...]}
//
// Non-AppError values become the generic 500 body; the cause stays
// server-side.
func WriteError(w http.ResponseWriter, err error) {
	appErr := FromError(err)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(appErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(appErr)
}
