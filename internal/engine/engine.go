package engine

import (
	"fmt"
	"sync"
	"time"
)

// Engine is the single mutual-exclusion domain around the bed
// registry and the patient queue. Every operation takes the one lock,
// so a placement is indivisible relative to admissions, removals,
// releases and concurrent placements: two callers racing for the same
// bed see exactly one success and one ErrBedNotAvailable, and two
// racing for the same patient see one success and one
// ErrPatientNotFound. All operations are in-memory and complete in
// bounded time; nothing blocks on I/O while holding the lock.
type Engine struct {
	mu    sync.Mutex
	beds  *BedRegistry
	queue *PatientQueue
	now   func() time.Time
}

// Placement is the snapshot returned by a successful Place, carrying
// enough detail for callers to respond and to publish an event without
// touching engine state again.
type Placement struct {
	Patient Patient
	Bed     Bed
}

// New builds an engine with bedCount beds grouped bedsPerWard to a
// ward, an empty queue and the wall clock.
func New(bedCount, bedsPerWard int) *Engine {
	now := time.Now
	return &Engine{
		beds:  NewBedRegistry(bedCount, bedsPerWard, now),
		queue: NewPatientQueue(),
		now:   now,
	}
}

// AddPatient validates and appends a patient to the waiting queue.
func (e *Engine) AddPatient(in NewPatient) (Patient, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, err := e.queue.Add(in)
	if err != nil {
		return Patient{}, err
	}
	return *p, nil
}

// RemovePatient withdraws a patient from the queue. Removing an
// absent id is a no-op; the returned bool reports whether an entry
// was removed.
func (e *Engine) RemovePatient(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.Remove(id)
}

// Tick advances every queued patient's waiting time by deltaHours.
// The engine keeps no timer of its own; an external scheduler drives
// this, which also makes wait-time behavior trivially testable.
func (e *Engine) Tick(deltaHours float64) error {
	if deltaHours < 0 {
		return fmt.Errorf("tick: negative delta %v", deltaHours)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.queue.AdvanceTime(deltaHours)
	return nil
}

// RankQueue runs a full AHP-SAW ranking pass over the current queue
// and returns the ranked view. Ranking an empty queue is a no-op.
func (e *Engine) RankQueue() []Patient {
	e.mu.Lock()
	defer e.mu.Unlock()
	rankPatients(e.queue.patients)
	return e.queue.List()
}

// ResetRanking clears rank and score for every queued patient.
func (e *Engine) ResetRanking() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.queue.ClearRanking()
}

// ListPatients returns the queue in ranked order if a ranking pass is
// current, otherwise insertion order.
func (e *Engine) ListPatients() []Patient {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.List()
}

// ListBeds returns every bed in registry order.
func (e *Engine) ListBeds() []Bed {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.beds.List()
}

// ListAvailableBeds returns the beds currently accepting a patient.
func (e *Engine) ListAvailableBeds() []Bed {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.beds.ListAvailable()
}

// WardSummary returns per-ward status counts.
func (e *Engine) WardSummary() map[string]WardCounts {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.beds.WardSummary()
}

// Place moves a patient from the queue into an available bed as one
// transaction: the bed becomes occupied with the patient's snapshot,
// the patient leaves the queue and any current ranking is cleared.
// A failure leaves both sides untouched.
func (e *Engine) Place(patientID, bedID string) (Placement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p := e.queue.get(patientID)
	if p == nil {
		return Placement{}, ErrPatientNotFound
	}
	b, err := e.beds.Get(bedID)
	if err != nil {
		return Placement{}, err
	}
	if b.Status != BedAvailable {
		return Placement{}, ErrBedNotAvailable
	}
	// All checks passed; nothing below can fail, so the two-sided
	// mutation is never observable half-applied.
	placed := *p
	if _, err := e.beds.SetStatus(bedID, BedOccupied, p.Name); err != nil {
		return Placement{}, err
	}
	e.queue.Remove(patientID)
	return Placement{Patient: placed, Bed: copyBed(b)}, nil
}

// Release discharges a bed back to Available, clearing the occupant
// snapshot. Releasing a bed that is not occupied is a permitted
// idempotent no-op that still lands on Available.
func (e *Engine) Release(bedID string) (Bed, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, err := e.beds.SetStatus(bedID, BedAvailable, "")
	if err != nil {
		return Bed{}, err
	}
	return copyBed(b), nil
}

// SetMaintenance takes an available bed out of service. An occupied
// bed must be released first.
func (e *Engine) SetMaintenance(bedID string) (Bed, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.setStatusLocked(bedID, BedMaintenance, "")
}

// ClearMaintenance returns a bed from maintenance to Available.
func (e *Engine) ClearMaintenance(bedID string) (Bed, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.setStatusLocked(bedID, BedAvailable, "")
}

// SetBedStatus applies an arbitrary status change outside the
// placement flow, such as marking a directly admitted patient or
// seeding an initial state. Occupying requires an occupant name;
// sending an occupied bed to maintenance is rejected.
func (e *Engine) SetBedStatus(bedID string, status BedStatus, occupantName string) (Bed, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.setStatusLocked(bedID, status, occupantName)
}

func (e *Engine) setStatusLocked(bedID string, status BedStatus, occupantName string) (Bed, error) {
	b, err := e.beds.Get(bedID)
	if err != nil {
		return Bed{}, err
	}
	if status == BedMaintenance && b.Status == BedOccupied {
		return Bed{}, ErrInvalidTransition
	}
	updated, err := e.beds.SetStatus(bedID, status, occupantName)
	if err != nil {
		return Bed{}, err
	}
	return copyBed(updated), nil
}
