// Package roles exposes the roles API over HTTP.
package roles

import (
	"encoding/json"
	"errors"
	"net/http"

	httperrors "github.com/pondokdigital/pesantren-api/internal/http/errors"
	mw "github.com/pondokdigital/pesantren-api/internal/http/middlewares"
	svc "github.com/pondokdigital/pesantren-api/internal/http/services/roles"
	"github.com/pondokdigital/pesantren-api/internal/observability/logger"
	"github.com/pondokdigital/pesantren-api/internal/rbac"
)

// Controller handles /api/roles/*.
type Controller struct {
	svc svc.Service
}

// NewController creates a roles controller.
func NewController(s svc.Service) *Controller {
	return &Controller{svc: s}
}

// Me handles GET /api/roles/me.
func (c *Controller) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	u := mw.GetUser(ctx)
	if u == nil {
		httperrors.WriteError(w, httperrors.ErrTokenMissing)
		return
	}

	resp, err := c.svc.Me(ctx, u.ID)
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Switch handles POST /api/roles/switch.
func (c *Controller) Switch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	u := mw.GetUser(ctx)
	if u == nil {
		httperrors.WriteError(w, httperrors.ErrTokenMissing)
		return
	}

	var req struct {
		NewRole string `json:"newRole"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	resp, err := c.svc.Switch(ctx, u.ID, req.NewRole)
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// DashboardRedirect handles GET /api/roles/dashboard-redirect.
func (c *Controller) DashboardRedirect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	u := mw.GetUser(ctx)
	if u == nil {
		httperrors.WriteError(w, httperrors.ErrTokenMissing)
		return
	}

	resp, err := c.svc.DashboardRedirect(ctx, u.ID)
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Menu handles GET /api/roles/menu.
func (c *Controller) Menu(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	u := mw.GetUser(ctx)
	if u == nil {
		httperrors.WriteError(w, httperrors.ErrTokenMissing)
		return
	}

	resp, err := c.svc.Menu(ctx, u.ID)
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleError maps service errors to wire errors.
func (c *Controller) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var notAssigned *svc.RoleNotAssignedError

	switch {
	case errors.Is(err, svc.ErrRoleRequired):
		httperrors.WriteError(w, httperrors.ErrValidation.WithMessage("newRole is required"))

	case errors.As(err, &notAssigned):
		httperrors.WriteError(w, httperrors.ErrAccessDenied.
			WithMessage("User tidak memiliki role ini").
			WithAvailableRoles(rbac.Strings(notAssigned.Available)))

	case errors.Is(err, svc.ErrProfileNotFound):
		httperrors.WriteError(w, httperrors.ErrProfileNotFoundBody)

	default:
		logger.From(r.Context()).Error("roles controller failure",
			logger.Layer("controller"),
			logger.Err(err),
		)
		httperrors.WriteError(w, httperrors.ErrServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
