package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	at := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestNewBedRegistry_Layout(t *testing.T) {
	r := NewBedRegistry(20, 5, fixedClock())

	beds := r.List()
	require.Len(t, beds, 20)

	// First ward.
	assert.Equal(t, "bed-1", beds[0].ID)
	assert.Equal(t, "1A", beds[0].Number)
	assert.Equal(t, "Ward 1", beds[0].Ward)
	assert.Equal(t, BedAvailable, beds[0].Status)

	// Ward boundary: bed 6 opens Ward 2.
	assert.Equal(t, "1E", beds[4].Number)
	assert.Equal(t, "2A", beds[5].Number)
	assert.Equal(t, "Ward 2", beds[5].Ward)

	// Last bed of the pool.
	assert.Equal(t, "4E", beds[19].Number)
	assert.Equal(t, "Ward 4", beds[19].Ward)
}

func TestSetStatus_OccupyStampsDates(t *testing.T) {
	r := NewBedRegistry(5, 5, fixedClock())

	b, err := r.SetStatus("bed-1", BedOccupied, "Ahmad Rizki")
	require.NoError(t, err)

	require.NotNil(t, b.Occupant)
	assert.Equal(t, "Ahmad Rizki", b.Occupant.PatientName)
	assert.Equal(t, "2025-03-10", b.Occupant.AdmissionDate)
	assert.Equal(t, "2025-03-13", b.Occupant.ExpectedDischarge)
	assert.Equal(t, BedOccupied, b.Status)
}

func TestSetStatus_LeavingOccupiedClearsOccupant(t *testing.T) {
	r := NewBedRegistry(5, 5, fixedClock())
	_, err := r.SetStatus("bed-1", BedOccupied, "Ahmad Rizki")
	require.NoError(t, err)

	b, err := r.SetStatus("bed-1", BedAvailable, "")
	require.NoError(t, err)
	assert.Equal(t, BedAvailable, b.Status)
	assert.Nil(t, b.Occupant)
}

func TestSetStatus_InvalidTransitions(t *testing.T) {
	r := NewBedRegistry(5, 5, fixedClock())

	tests := []struct {
		name     string
		status   BedStatus
		occupant string
	}{
		{"occupied without occupant", BedOccupied, ""},
		{"available with occupant", BedAvailable, "Someone"},
		{"maintenance with occupant", BedMaintenance, "Someone"},
		{"unknown status", BedStatus("reserved"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.SetStatus("bed-1", tt.status, tt.occupant)
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}

	// The failed transitions left the bed untouched.
	b, err := r.Get("bed-1")
	require.NoError(t, err)
	assert.Equal(t, BedAvailable, b.Status)
	assert.Nil(t, b.Occupant)
}

func TestSetStatus_UnknownBed(t *testing.T) {
	r := NewBedRegistry(5, 5, fixedClock())
	_, err := r.SetStatus("bed-99", BedAvailable, "")
	assert.ErrorIs(t, err, ErrBedNotFound)

	_, err = r.Get("bed-99")
	assert.ErrorIs(t, err, ErrBedNotFound)
}

func TestListAvailable_KeepsRegistryOrder(t *testing.T) {
	r := NewBedRegistry(5, 5, fixedClock())
	_, err := r.SetStatus("bed-2", BedOccupied, "Someone")
	require.NoError(t, err)
	_, err = r.SetStatus("bed-4", BedMaintenance, "")
	require.NoError(t, err)

	avail := r.ListAvailable()
	require.Len(t, avail, 3)
	assert.Equal(t, "bed-1", avail[0].ID)
	assert.Equal(t, "bed-3", avail[1].ID)
	assert.Equal(t, "bed-5", avail[2].ID)
}

func TestWardSummary(t *testing.T) {
	r := NewBedRegistry(10, 5, fixedClock())
	_, err := r.SetStatus("bed-1", BedOccupied, "A")
	require.NoError(t, err)
	_, err = r.SetStatus("bed-2", BedOccupied, "B")
	require.NoError(t, err)
	_, err = r.SetStatus("bed-6", BedMaintenance, "")
	require.NoError(t, err)

	sum := r.WardSummary()
	require.Len(t, sum, 2)
	assert.Equal(t, WardCounts{Total: 5, Occupied: 2, Available: 3}, sum["Ward 1"])
	assert.Equal(t, WardCounts{Total: 5, Available: 4, Maintenance: 1}, sum["Ward 2"])
}

func TestList_ReturnsCopies(t *testing.T) {
	r := NewBedRegistry(2, 5, fixedClock())
	_, err := r.SetStatus("bed-1", BedOccupied, "A")
	require.NoError(t, err)

	list := r.List()
	list[0].Status = BedMaintenance
	list[0].Occupant.PatientName = "tampered"

	b, err := r.Get("bed-1")
	require.NoError(t, err)
	assert.Equal(t, BedOccupied, b.Status)
	assert.Equal(t, "A", b.Occupant.PatientName)
}
