package errors

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, ErrAccessDenied.
		WithMessage("Role 'wali' tidak memiliki akses ke resource ini").
		WithRequiredRoles([]string{"admin", "guru"}))

	require.Equal(t, 403, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Access denied", body["error"])
	require.Equal(t, "Role 'wali' tidak memiliki akses ke resource ini", body["message"])
	require.Equal(t, []any{"admin", "guru"}, body["requiredRoles"])
	require.NotContains(t, body, "availableRoles")
}

func TestWriteError_UnknownErrorBecomesGeneric500(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New("pgx: connection refused at 10.0.0.3"))

	require.Equal(t, 500, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Server error", body["error"])
	// Internals must never reach the client.
	require.NotContains(t, rec.Body.String(), "pgx")
	require.NotContains(t, rec.Body.String(), "10.0.0.3")
}

func TestAppError_CopiesDoNotMutateBase(t *testing.T) {
	withRoles := ErrAccessDenied.WithRequiredRoles([]string{"admin"})
	require.Nil(t, ErrAccessDenied.RequiredRoles)
	require.Equal(t, []string{"admin"}, withRoles.RequiredRoles)
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := ErrServerError.WithCause(cause)
	require.ErrorIs(t, err, cause)
}
