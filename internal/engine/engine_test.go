package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addPatient(t *testing.T, e *Engine, name string, severity int) Patient {
	t.Helper()
	p, err := e.AddPatient(NewPatient{Name: name, Age: 40, Severity: severity, Condition: "Observation"})
	require.NoError(t, err)
	return p
}

func TestPlace_MovesPatientIntoBed(t *testing.T) {
	e := New(5, 5)
	p := addPatient(t, e, "Ahmad Rizki", 4)

	res, err := e.Place(p.ID, "bed-1")
	require.NoError(t, err)

	assert.Equal(t, p.ID, res.Patient.ID)
	assert.Equal(t, BedOccupied, res.Bed.Status)
	require.NotNil(t, res.Bed.Occupant)
	assert.Equal(t, "Ahmad Rizki", res.Bed.Occupant.PatientName)
	assert.NotEmpty(t, res.Bed.Occupant.AdmissionDate)
	assert.NotEmpty(t, res.Bed.Occupant.ExpectedDischarge)

	// Patient left the queue, bed shows occupied in listings.
	assert.Empty(t, e.ListPatients())
	beds := e.ListBeds()
	assert.Equal(t, BedOccupied, beds[0].Status)
	assert.Len(t, e.ListAvailableBeds(), 4)
}

func TestPlace_FailuresLeaveStateUntouched(t *testing.T) {
	e := New(2, 5)
	p := addPatient(t, e, "Ahmad Rizki", 4)
	_, err := e.SetBedStatus("bed-2", BedMaintenance, "")
	require.NoError(t, err)

	tests := []struct {
		name      string
		patientID string
		bedID     string
		wantErr   error
	}{
		{"unknown patient", "p-999", "bed-1", ErrPatientNotFound},
		{"unknown bed", p.ID, "bed-999", ErrBedNotFound},
		{"bed in maintenance", p.ID, "bed-2", ErrBedNotAvailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Place(tt.patientID, tt.bedID)
			require.ErrorIs(t, err, tt.wantErr)

			// Neither side of the transaction may be half-applied.
			assert.Len(t, e.ListPatients(), 1)
			assert.Equal(t, BedAvailable, e.ListBeds()[0].Status)
		})
	}
}

func TestPlace_OccupiedBedRejectsSecondPatient(t *testing.T) {
	e := New(1, 5)
	first := addPatient(t, e, "Ahmad Rizki", 4)
	second := addPatient(t, e, "Siti Nurhaliza", 2)

	_, err := e.Place(first.ID, "bed-1")
	require.NoError(t, err)

	_, err = e.Place(second.ID, "bed-1")
	assert.ErrorIs(t, err, ErrBedNotAvailable)
	assert.Len(t, e.ListPatients(), 1)
}

func TestPlace_InvalidatesRanking(t *testing.T) {
	e := New(5, 5)
	p := addPatient(t, e, "Ahmad Rizki", 4)
	addPatient(t, e, "Siti Nurhaliza", 2)

	e.RankQueue()
	_, err := e.Place(p.ID, "bed-1")
	require.NoError(t, err)

	for _, rest := range e.ListPatients() {
		assert.Zero(t, rest.Rank, "placement must invalidate the remaining ranking")
	}
}

func TestPlace_ConcurrentSameBed(t *testing.T) {
	e := New(1, 5)
	p1 := addPatient(t, e, "Ahmad Rizki", 4)
	p2 := addPatient(t, e, "Siti Nurhaliza", 2)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); _, errs[0] = e.Place(p1.ID, "bed-1") }()
	go func() { defer wg.Done(); _, errs[1] = e.Place(p2.ID, "bed-1") }()
	wg.Wait()

	// Exactly one placement wins the bed.
	if errs[0] == nil {
		assert.ErrorIs(t, errs[1], ErrBedNotAvailable)
	} else {
		require.NoError(t, errs[1])
		assert.ErrorIs(t, errs[0], ErrBedNotAvailable)
	}
	assert.Len(t, e.ListPatients(), 1)
	assert.Equal(t, BedOccupied, e.ListBeds()[0].Status)
}

func TestPlace_ConcurrentSamePatient(t *testing.T) {
	e := New(2, 5)
	p := addPatient(t, e, "Ahmad Rizki", 4)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); _, errs[0] = e.Place(p.ID, "bed-1") }()
	go func() { defer wg.Done(); _, errs[1] = e.Place(p.ID, "bed-2") }()
	wg.Wait()

	// Exactly one placement wins the patient; the loser sees the
	// patient already gone from the queue.
	if errs[0] == nil {
		assert.ErrorIs(t, errs[1], ErrPatientNotFound)
	} else {
		require.NoError(t, errs[1])
		assert.ErrorIs(t, errs[0], ErrPatientNotFound)
	}
	occupied := 0
	for _, b := range e.ListBeds() {
		if b.Status == BedOccupied {
			occupied++
		}
	}
	assert.Equal(t, 1, occupied)
}

func TestRelease_IdempotentDischarge(t *testing.T) {
	e := New(2, 5)
	p := addPatient(t, e, "Ahmad Rizki", 4)
	_, err := e.Place(p.ID, "bed-1")
	require.NoError(t, err)

	b, err := e.Release("bed-1")
	require.NoError(t, err)
	assert.Equal(t, BedAvailable, b.Status)
	assert.Nil(t, b.Occupant)

	// Releasing again, or releasing a never-occupied bed, is a no-op.
	b, err = e.Release("bed-1")
	require.NoError(t, err)
	assert.Equal(t, BedAvailable, b.Status)

	_, err = e.Release("bed-99")
	assert.ErrorIs(t, err, ErrBedNotFound)
}

func TestMaintenance_RequiresDischargeFirst(t *testing.T) {
	e := New(2, 5)
	p := addPatient(t, e, "Ahmad Rizki", 4)
	_, err := e.Place(p.ID, "bed-1")
	require.NoError(t, err)

	_, err = e.SetMaintenance("bed-1")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = e.Release("bed-1")
	require.NoError(t, err)
	b, err := e.SetMaintenance("bed-1")
	require.NoError(t, err)
	assert.Equal(t, BedMaintenance, b.Status)

	b, err = e.ClearMaintenance("bed-1")
	require.NoError(t, err)
	assert.Equal(t, BedAvailable, b.Status)
}

func TestStats_OccupancyMath(t *testing.T) {
	e := New(20, 5)
	for i := 0; i < 8; i++ {
		p := addPatient(t, e, "Occupant", 3)
		_, err := e.Place(p.ID, e.ListAvailableBeds()[0].ID)
		require.NoError(t, err)
	}
	_, err := e.SetMaintenance(e.ListAvailableBeds()[0].ID)
	require.NoError(t, err)

	addPatient(t, e, "Budi Santoso", 5)
	addPatient(t, e, "Siti Nurhaliza", 2)
	require.NoError(t, e.Tick(3))

	s := e.Stats()
	assert.Equal(t, 20, s.TotalBeds)
	assert.Equal(t, 8, s.OccupiedBeds)
	assert.Equal(t, 1, s.MaintenanceBeds)
	assert.Equal(t, 11, s.AvailableBeds)
	assert.Equal(t, 40, s.BOR)
	assert.Equal(t, 60, s.Efficiency)
	assert.Equal(t, 2, s.WaitingPatients)
	assert.Equal(t, 1, s.CriticalPatients)
	assert.Equal(t, 3, s.AverageWaitTime)
	assert.Len(t, e.ListAvailableBeds(), s.AvailableBeds)
}

func TestStats_EmptyEngine(t *testing.T) {
	e := New(0, 5)
	s := e.Stats()
	assert.Zero(t, s.BOR)
	assert.Zero(t, s.AverageWaitTime)
	assert.Equal(t, 100, s.Efficiency)
}

func TestTick_RejectsNegativeDelta(t *testing.T) {
	e := New(1, 5)
	assert.Error(t, e.Tick(-1))
	assert.NoError(t, e.Tick(0))
}

func TestEndToEnd_RankThenPlace(t *testing.T) {
	e := New(5, 5)
	p1, err := e.AddPatient(NewPatient{Name: "P1", Age: 50, Severity: 5, Condition: "Critical care"})
	require.NoError(t, err)

	ranked := e.RankQueue()
	require.Len(t, ranked, 1)
	assert.Equal(t, 1, ranked[0].Rank)
	// maxWait is zero, so the score is the severity term alone.
	assert.Equal(t, 0.60, ranked[0].Score)

	_, err = e.Place(p1.ID, "bed-1")
	require.NoError(t, err)

	assert.Empty(t, e.ListPatients())
	bed := e.ListBeds()[0]
	assert.Equal(t, BedOccupied, bed.Status)
	require.NotNil(t, bed.Occupant)
	assert.Equal(t, "P1", bed.Occupant.PatientName)
}
