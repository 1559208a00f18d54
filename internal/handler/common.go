package handler // handler defines http handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hospitalq/bed-allocation/internal/engine"
)

// engineError translates an engine error into the HTTP response for
// it: validation problems carry their field map with a 400, unknown
// ids map to 404, state-machine conflicts to 409 and anything else,
// which would mean a broken engine invariant, to 500.
func engineError(c echo.Context, err error) error {
	var verr *engine.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, engine.ErrBedNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "bed not found"})
	case errors.Is(err, engine.ErrPatientNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "patient not found"})
	case errors.Is(err, engine.ErrBedNotAvailable):
		return c.JSON(http.StatusConflict, echo.Map{"error": "bed not available"})
	case errors.Is(err, engine.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, echo.Map{"error": "invalid bed status transition"})
	default:
		c.Logger().Errorf("engine error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// bedView is the JSON shape of a bed. Occupant fields are only
// present while the bed is occupied.
type bedView struct {
	ID                string `json:"id"`
	Number            string `json:"number"`
	Ward              string `json:"ward"`
	Status            string `json:"status"`
	PatientName       string `json:"patient_name,omitempty"`
	AdmissionDate     string `json:"admission_date,omitempty"`
	ExpectedDischarge string `json:"expected_discharge,omitempty"`
}

func toBedView(b engine.Bed) bedView {
	v := bedView{
		ID:     b.ID,
		Number: b.Number,
		Ward:   b.Ward,
		Status: string(b.Status),
	}
	if b.Occupant != nil {
		v.PatientName = b.Occupant.PatientName
		v.AdmissionDate = b.Occupant.AdmissionDate
		v.ExpectedDischarge = b.Occupant.ExpectedDischarge
	}
	return v
}

// patientView is the JSON shape of a queued patient. Priority and
// score appear together after a ranking pass and disappear together
// when it is invalidated.
type patientView struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Age           int      `json:"age"`
	Severity      int      `json:"severity"`
	SeverityLabel string   `json:"severity_label"`
	Condition     string   `json:"condition"`
	WaitingTime   float64  `json:"waiting_time"`
	Priority      *int     `json:"priority,omitempty"`
	Score         *float64 `json:"score,omitempty"`
}

func toPatientView(p engine.Patient) patientView {
	v := patientView{
		ID:            p.ID,
		Name:          p.Name,
		Age:           p.Age,
		Severity:      p.Severity,
		SeverityLabel: engine.SeverityLabel(p.Severity),
		Condition:     p.Condition,
		WaitingTime:   p.WaitingTime,
	}
	if p.Rank > 0 {
		rank, score := p.Rank, p.Score
		v.Priority = &rank
		v.Score = &score
	}
	return v
}

func toPatientViews(ps []engine.Patient) []patientView {
	out := make([]patientView, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPatientView(p))
	}
	return out
}

func toBedViews(bs []engine.Bed) []bedView {
	out := make([]bedView, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBedView(b))
	}
	return out
}
