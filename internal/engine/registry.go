package engine

import (
	"fmt"
	"time"
)

// BedStatus enumerates the mutually exclusive states of a bed.
type BedStatus string

const (
	BedAvailable   BedStatus = "available"
	BedOccupied    BedStatus = "occupied"
	BedMaintenance BedStatus = "maintenance"
)

// valid reports whether s is one of the three known statuses.
func (s BedStatus) valid() bool {
	switch s {
	case BedAvailable, BedOccupied, BedMaintenance:
		return true
	}
	return false
}

// dischargeHorizon is the fixed expected-stay policy applied when a
// bed becomes occupied: discharge is projected three days out.
const dischargeHorizon = 3 * 24 * time.Hour

// dateLayout is how admission and discharge dates are rendered.
const dateLayout = "2006-01-02"

// Occupant is the denormalized snapshot a bed keeps about its current
// patient. Once placed, the patient leaves the queue domain entirely;
// the bed stores a value copy rather than a reference so that nothing
// can dangle when the queue entry is gone.
//
// Fields:
//
//	PatientName       – display name of the admitted patient.
//	AdmissionDate     – date the bed became occupied (YYYY-MM-DD).
//	ExpectedDischarge – projected discharge date (YYYY-MM-DD).
type Occupant struct {
	PatientName       string
	AdmissionDate     string
	ExpectedDischarge string
}

// Bed describes one bed of the fixed pool. Beds are created at
// registry initialization and never destroyed during a run; only
// their status and occupant snapshot change.
//
// Fields:
//
//	ID       – stable identifier, "bed-1" .. "bed-n".
//	Number   – display label such as "1A"; unique under the
//	           generation scheme used here.
//	Ward     – grouping label shared by several beds.
//	Status   – available, occupied or maintenance.
//	Occupant – present if and only if Status is occupied.
type Bed struct {
	ID       string
	Number   string
	Ward     string
	Status   BedStatus
	Occupant *Occupant
}

// WardCounts summarizes one ward for capacity reporting.
type WardCounts struct {
	Total       int `json:"total"`
	Occupied    int `json:"occupied"`
	Available   int `json:"available"`
	Maintenance int `json:"maintenance"`
}

// BedRegistry owns the fixed pool of beds. It carries no lock of its
// own: the Engine serializes all access behind a single mutex so that
// placement stays an indivisible transaction.
type BedRegistry struct {
	beds []*Bed
	byID map[string]*Bed
	now  func() time.Time
}

// NewBedRegistry builds n beds grouped perWard to a ward. Bed numbers
// follow the ward-index-plus-letter scheme ("1A".."1E", "2A", ...)
// and every bed starts Available. Seeding occupied or maintenance
// beds is a caller concern.
func NewBedRegistry(n, perWard int, now func() time.Time) *BedRegistry {
	if perWard < 1 {
		perWard = 1
	}
	if now == nil {
		now = time.Now
	}
	r := &BedRegistry{
		beds: make([]*Bed, 0, n),
		byID: make(map[string]*Bed, n),
		now:  now,
	}
	for i := 0; i < n; i++ {
		ward := i / perWard
		b := &Bed{
			ID:     fmt.Sprintf("bed-%d", i+1),
			Number: fmt.Sprintf("%d%c", ward+1, 'A'+i%perWard),
			Ward:   fmt.Sprintf("Ward %d", ward+1),
			Status: BedAvailable,
		}
		r.beds = append(r.beds, b)
		r.byID[b.ID] = b
	}
	return r
}

// Get returns the bed with the given id or ErrBedNotFound.
func (r *BedRegistry) Get(id string) (*Bed, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, ErrBedNotFound
	}
	return b, nil
}

// SetStatus replaces a bed's status and occupant snapshot atomically.
// Occupying requires an occupant name and stamps the admission date
// with "now" and the expected discharge with the fixed three-day
// horizon; leaving the occupied state clears the snapshot. Passing an
// occupant name together with a non-occupied status, or none with
// occupied, fails with ErrInvalidTransition.
func (r *BedRegistry) SetStatus(id string, status BedStatus, occupantName string) (*Bed, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, ErrBedNotFound
	}
	if !status.valid() {
		return nil, ErrInvalidTransition
	}
	if status == BedOccupied && occupantName == "" {
		return nil, ErrInvalidTransition
	}
	if status != BedOccupied && occupantName != "" {
		return nil, ErrInvalidTransition
	}
	if status == BedOccupied {
		now := r.now().UTC()
		b.Occupant = &Occupant{
			PatientName:       occupantName,
			AdmissionDate:     now.Format(dateLayout),
			ExpectedDischarge: now.Add(dischargeHorizon).Format(dateLayout),
		}
	} else {
		b.Occupant = nil
	}
	b.Status = status
	return b, nil
}

// List returns a copy of every bed in registry insertion order.
func (r *BedRegistry) List() []Bed {
	out := make([]Bed, 0, len(r.beds))
	for _, b := range r.beds {
		out = append(out, copyBed(b))
	}
	return out
}

// ListAvailable returns the beds currently Available, preserving
// registry insertion order. The list is stable, not ranked.
func (r *BedRegistry) ListAvailable() []Bed {
	var out []Bed
	for _, b := range r.beds {
		if b.Status == BedAvailable {
			out = append(out, copyBed(b))
		}
	}
	return out
}

// WardSummary recomputes the per-ward status counts from scratch on
// every call so the report can never go stale.
func (r *BedRegistry) WardSummary() map[string]WardCounts {
	out := make(map[string]WardCounts)
	for _, b := range r.beds {
		c := out[b.Ward]
		c.Total++
		switch b.Status {
		case BedOccupied:
			c.Occupied++
		case BedAvailable:
			c.Available++
		case BedMaintenance:
			c.Maintenance++
		}
		out[b.Ward] = c
	}
	return out
}

// copyBed returns a value copy of a bed, duplicating the occupant
// snapshot so callers cannot mutate registry state through it.
func copyBed(b *Bed) Bed {
	cp := *b
	if b.Occupant != nil {
		occ := *b.Occupant
		cp.Occupant = &occ
	}
	return cp
}
