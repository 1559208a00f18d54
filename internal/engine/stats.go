package engine

import "math"

// criticalSeverity is the severity threshold at or above which a
// queued patient counts as critical.
const criticalSeverity = 4

// Stats is the derived operational snapshot of the system. Every
// field is recomputed from the registries at the instant Stats is
// called; nothing is cached, so callers must re-read after any
// mutation.
//
// BOR is the bed occupancy rate as a whole percentage. Efficiency is
// the dashboard's headroom figure, 100 minus BOR floored at zero.
type Stats struct {
	TotalBeds        int `json:"total_beds"`
	AvailableBeds    int `json:"available_beds"`
	OccupiedBeds     int `json:"occupied_beds"`
	MaintenanceBeds  int `json:"maintenance_beds"`
	BOR              int `json:"bor"`
	WaitingPatients  int `json:"waiting_patients"`
	CriticalPatients int `json:"critical_patients"`
	AverageWaitTime  int `json:"average_wait_time"`
	Efficiency       int `json:"efficiency"`
}

// Stats derives the current summary metrics from the bed registry and
// the patient queue.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	var s Stats
	s.TotalBeds = len(e.beds.beds)
	for _, b := range e.beds.beds {
		switch b.Status {
		case BedAvailable:
			s.AvailableBeds++
		case BedOccupied:
			s.OccupiedBeds++
		case BedMaintenance:
			s.MaintenanceBeds++
		}
	}
	if s.TotalBeds > 0 {
		s.BOR = int(math.Round(float64(s.OccupiedBeds) / float64(s.TotalBeds) * 100))
	}
	s.Efficiency = 100 - s.BOR
	if s.Efficiency < 0 {
		s.Efficiency = 0
	}

	s.WaitingPatients = e.queue.Len()
	totalWait := 0.0
	for _, p := range e.queue.patients {
		if p.Severity >= criticalSeverity {
			s.CriticalPatients++
		}
		totalWait += p.WaitingTime
	}
	if s.WaitingPatients > 0 {
		s.AverageWaitTime = int(math.Round(totalWait / float64(s.WaitingPatients)))
	}
	return s
}

// SeverityLabel maps a 1..5 severity to the band name shown beside a
// patient: Minimal, Low, Medium, High or Critical.
func SeverityLabel(severity int) string {
	switch {
	case severity >= 5:
		return "Critical"
	case severity >= 4:
		return "High"
	case severity >= 3:
		return "Medium"
	case severity >= 2:
		return "Low"
	default:
		return "Minimal"
	}
}
