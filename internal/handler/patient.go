package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hospitalq/bed-allocation/internal/engine"
)

// PatientHandler exposes the waiting queue: admission, withdrawal,
// listing and the AHP-SAW ranking commands.
type PatientHandler struct {
	Engine *engine.Engine
}

// NewPatientHandler constructs a PatientHandler and panics if the
// engine is nil.
func NewPatientHandler(eng *engine.Engine) *PatientHandler {
	if eng == nil {
		panic("nil engine passed to NewPatientHandler")
	}
	return &PatientHandler{Engine: eng}
}

// List handles GET /v1/patients. The order is the ranked order when a
// ranking pass is current, otherwise admission order.
func (h *PatientHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"items": toPatientViews(h.Engine.ListPatients()),
	})
}

// Create handles POST /v1/patients. Invalid input returns 400 with
// every failing field named, so the intake form can highlight them
// all at once.
func (h *PatientHandler) Create(c echo.Context) error {
	var req engine.NewPatient
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	p, err := h.Engine.AddPatient(req)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": toPatientView(p)})
}

// Delete handles DELETE /v1/patients/:id. Withdrawing an id that is
// not queued is a no-op and still answers 204, so retries are safe.
func (h *PatientHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid patient id"})
	}
	h.Engine.RemovePatient(id)
	return c.NoContent(http.StatusNoContent)
}

// Rank handles POST /v1/queue/rank. It runs a full AHP-SAW pass over
// the current queue and returns the ranked view.
func (h *PatientHandler) Rank(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"items": toPatientViews(h.Engine.RankQueue()),
	})
}

// ResetRank handles POST /v1/queue/rank/reset, clearing rank and
// score for every queued patient.
func (h *PatientHandler) ResetRank(c echo.Context) error {
	h.Engine.ResetRanking()
	return c.JSON(http.StatusOK, echo.Map{
		"items": toPatientViews(h.Engine.ListPatients()),
	})
}
