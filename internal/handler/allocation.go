package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hospitalq/bed-allocation/internal/engine"
	"github.com/hospitalq/bed-allocation/internal/queue"
	queue_publisher "github.com/hospitalq/bed-allocation/internal/service"
)

// AllocationHandler owns the operations that couple the two
// registries: placing a queued patient into a bed, and the explicit
// wait-clock tick.
type AllocationHandler struct {
	Engine *engine.Engine
}

// NewAllocationHandler constructs an AllocationHandler and panics if
// the engine is nil.
func NewAllocationHandler(eng *engine.Engine) *AllocationHandler {
	if eng == nil {
		panic("nil engine passed to NewAllocationHandler")
	}
	return &AllocationHandler{Engine: eng}
}

type placeReq struct {
	PatientID string `json:"patient_id"`
	BedID     string `json:"bed_id"`
}

// Place handles POST /v1/allocations. The engine executes the
// placement as one transaction; on success a placement.confirmed
// event is published best effort, so a broker outage never fails the
// placement itself.
func (h *AllocationHandler) Place(c echo.Context) error {
	var req placeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.PatientID == "" || req.BedID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "patient_id and bed_id are required"})
	}

	res, err := h.Engine.Place(req.PatientID, req.BedID)
	if err != nil {
		return engineError(c, err)
	}

	ev := queue.PlacementConfirmedEvent{
		PatientID:    res.Patient.ID,
		PatientName:  res.Patient.Name,
		BedID:        res.Bed.ID,
		BedNumber:    res.Bed.Number,
		Ward:         res.Bed.Ward,
		Severity:     res.Patient.Severity,
		Condition:    res.Patient.Condition,
		WaitingHours: res.Patient.WaitingTime,
		PlacedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if res.Bed.Occupant != nil {
		ev.AdmissionDate = res.Bed.Occupant.AdmissionDate
		ev.ExpectedDischarge = res.Bed.Occupant.ExpectedDischarge
	}
	_ = queue_publisher.PublishPlacementConfirmed(c.Request().Context(), ev)

	return c.JSON(http.StatusCreated, echo.Map{
		"bed":     toBedView(res.Bed),
		"patient": toPatientView(res.Patient),
	})
}

type tickReq struct {
	DeltaHours float64 `json:"delta_hours"`
}

// Tick handles POST /v1/clock/tick, advancing every queued patient's
// waiting time. The scheduler in cmd/server calls the engine
// directly; this endpoint exists so tests and operators can advance
// the clock by arbitrary deltas without waiting on wall time.
func (h *AllocationHandler) Tick(c echo.Context) error {
	var req tickReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.Engine.Tick(req.DeltaHours); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "delta_hours must be non-negative"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": toPatientViews(h.Engine.ListPatients()),
	})
}
