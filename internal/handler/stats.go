package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hospitalq/bed-allocation/internal/engine"
)

// StatsHandler serves the derived operational metrics.
type StatsHandler struct {
	Engine *engine.Engine
}

// NewStatsHandler constructs a StatsHandler and panics if the engine
// is nil.
func NewStatsHandler(eng *engine.Engine) *StatsHandler {
	if eng == nil {
		panic("nil engine passed to NewStatsHandler")
	}
	return &StatsHandler{Engine: eng}
}

// Get handles GET /v1/stats. Every figure is derived from the
// registries at request time; nothing is precomputed or pushed on
// write, so the numbers always match the state a subsequent query
// would show.
func (h *StatsHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Engine.Stats())
}
