package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hospitalq/bed-allocation/internal/engine"
)

// BedHandler exposes the bed registry: listings, ward summaries and
// the status transitions outside the placement flow.
type BedHandler struct {
	Engine *engine.Engine
}

// NewBedHandler constructs a BedHandler and panics if the engine is
// nil.
func NewBedHandler(eng *engine.Engine) *BedHandler {
	if eng == nil {
		panic("nil engine passed to NewBedHandler")
	}
	return &BedHandler{Engine: eng}
}

// List handles GET /v1/beds, returning every bed in registry order.
func (h *BedHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"items": toBedViews(h.Engine.ListBeds()),
	})
}

// ListAvailable handles GET /v1/beds/available.
func (h *BedHandler) ListAvailable(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"items": toBedViews(h.Engine.ListAvailableBeds()),
	})
}

// WardSummary handles GET /v1/wards/summary, returning per-ward
// status counts recomputed on every call.
func (h *BedHandler) WardSummary(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"wards": h.Engine.WardSummary(),
	})
}

type setStatusReq struct {
	Status      string `json:"status"`
	PatientName string `json:"patient_name"`
}

// SetStatus handles PUT /v1/beds/:id/status for direct status
// changes: discharging to available, flagging maintenance or
// admitting a walk-in by name. Placing a queued patient goes through
// POST /v1/allocations instead so the queue side stays consistent.
func (h *BedHandler) SetStatus(c echo.Context) error {
	id := c.Param("id")
	var req setStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	b, err := h.Engine.SetBedStatus(id, engine.BedStatus(req.Status), req.PatientName)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toBedView(b)})
}

// Release handles POST /v1/beds/:id/release, discharging the bed back
// to available. Releasing a bed that is not occupied is an idempotent
// no-op.
func (h *BedHandler) Release(c echo.Context) error {
	b, err := h.Engine.Release(c.Param("id"))
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toBedView(b)})
}

// SetMaintenance handles POST /v1/beds/:id/maintenance. An occupied
// bed must be released first, otherwise 409.
func (h *BedHandler) SetMaintenance(c echo.Context) error {
	b, err := h.Engine.SetMaintenance(c.Param("id"))
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toBedView(b)})
}

// ClearMaintenance handles DELETE /v1/beds/:id/maintenance, returning
// the bed to available.
func (h *BedHandler) ClearMaintenance(c echo.Context) error {
	b, err := h.Engine.ClearMaintenance(c.Param("id"))
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toBedView(b)})
}
