// Package santri exposes the student roster over HTTP.
package santri

import (
	"encoding/json"
	"net/http"

	httperrors "github.com/pondokdigital/pesantren-api/internal/http/errors"
	"github.com/pondokdigital/pesantren-api/internal/observability/logger"
	"github.com/pondokdigital/pesantren-api/internal/santri"
)

// Controller handles /api/santri.
type Controller struct {
	store santri.Store
}

func NewController(store santri.Store) *Controller {
	return &Controller{store: store}
}

// List handles GET /api/santri. Admin only; the route guard enforces that.
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rows, err := c.store.List(ctx)
	if err != nil {
		logger.From(ctx).Error("santri list failed",
			logger.Layer("controller"),
			logger.Err(err),
		)
		httperrors.WriteError(w, httperrors.ErrServerError)
		return
	}
	if rows == nil {
		rows = []santri.Santri{}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(struct {
		Data  []santri.Santri `json:"data"`
		Count int             `json:"count"`
	}{Data: rows, Count: len(rows)})
}
