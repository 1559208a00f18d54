package queue

// PlacementConfirmedEvent is published when a patient is successfully
// placed into a bed. It carries enough information for downstream
// consumers to audit or notify without querying the engine.
type PlacementConfirmedEvent struct {
	PatientID         string  `json:"patient_id"`
	PatientName       string  `json:"patient_name"`
	BedID             string  `json:"bed_id"`
	BedNumber         string  `json:"bed_number"`
	Ward              string  `json:"ward"`
	Severity          int     `json:"severity"`
	Condition         string  `json:"condition"`
	WaitingHours      float64 `json:"waiting_hours"`
	AdmissionDate     string  `json:"admission_date"`
	ExpectedDischarge string  `json:"expected_discharge"`
	PlacedAt          string  `json:"placed_at"`
}
