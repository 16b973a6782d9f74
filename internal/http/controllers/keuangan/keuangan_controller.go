// Package keuangan exposes the finance summary over HTTP.
package keuangan

import (
	"encoding/json"
	"net/http"

	httperrors "github.com/pondokdigital/pesantren-api/internal/http/errors"
	"github.com/pondokdigital/pesantren-api/internal/keuangan"
	"github.com/pondokdigital/pesantren-api/internal/observability/logger"
)

// Controller handles /api/keuangan.
type Controller struct {
	store keuangan.Store
}

func NewController(store keuangan.Store) *Controller {
	return &Controller{store: store}
}

// Summary handles GET /api/keuangan/summary. Guarded for admin, bendahara
// and pengasuh by the route chain.
func (c *Controller) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sum, err := c.store.Summary(ctx)
	if err != nil {
		logger.From(ctx).Error("keuangan summary failed",
			logger.Layer("controller"),
			logger.Err(err),
		)
		httperrors.WriteError(w, httperrors.ErrServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(sum)
}
