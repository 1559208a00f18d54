package engine

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Patient is one entry of the waiting queue.
//
// Fields:
//
//	ID          – stable identifier assigned at admission ("p-1", ...).
//	Name        – display name.
//	Age         – years, 1 to 120 inclusive.
//	Severity    – urgency on a 1..5 scale, 5 being most severe.
//	Condition   – free-text medical condition.
//	WaitingTime – hours spent in the queue; advanced by the wait
//	              clock and frozen once the patient leaves the queue.
//	Rank        – priority rank assigned by a ranking pass, 1 being
//	              highest. Zero means unranked, in which case Score is
//	              meaningless; the two are always set and cleared
//	              together.
//	Score       – AHP-SAW composite in [0,1], two decimals.
type Patient struct {
	ID          string
	Name        string
	Age         int
	Severity    int
	Condition   string
	WaitingTime float64
	Rank        int
	Score       float64
}

// NewPatient carries the caller-supplied fields of an admission
// request. Validation tags are evaluated all at once so that every
// failing field is reported together rather than short-circuiting on
// the first.
type NewPatient struct {
	Name      string `json:"name" validate:"required"`
	Age       int    `json:"age" validate:"gte=1,lte=120"`
	Severity  int    `json:"severity" validate:"gte=1,lte=5"`
	Condition string `json:"condition" validate:"required"`
}

var validate = validator.New()

// fieldMessages maps a failing field to the message surfaced to the
// caller. The wording mirrors what operators see on the intake form.
var fieldMessages = map[string]string{
	"name":      "Name is required",
	"age":       "Valid age is required (1-120)",
	"severity":  "Severity level is required (1-5)",
	"condition": "Condition is required",
}

// validateNewPatient runs the struct tags and converts the result into
// a ValidationError naming every invalid field.
func validateNewPatient(in NewPatient) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		msg, ok := fieldMessages[name]
		if !ok {
			msg = fmt.Sprintf("invalid %s", name)
		}
		fields[name] = msg
	}
	return &ValidationError{Fields: fields}
}

// PatientQueue holds patients awaiting placement in insertion order.
// Like BedRegistry it carries no lock; the Engine serializes access.
type PatientQueue struct {
	patients []*Patient
	nextID   uint64
}

// NewPatientQueue returns an empty queue.
func NewPatientQueue() *PatientQueue {
	return &PatientQueue{}
}

// Add validates the request, assigns the next id, initializes the
// waiting time to zero and appends the patient to the queue. Any
// prior ranking is cleared because the queue contents changed.
func (q *PatientQueue) Add(in NewPatient) (*Patient, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Condition = strings.TrimSpace(in.Condition)
	if err := validateNewPatient(in); err != nil {
		return nil, err
	}
	q.nextID++
	p := &Patient{
		ID:        fmt.Sprintf("p-%d", q.nextID),
		Name:      in.Name,
		Age:       in.Age,
		Severity:  in.Severity,
		Condition: in.Condition,
	}
	q.patients = append(q.patients, p)
	q.ClearRanking()
	return p, nil
}

// Remove deletes the patient with the given id and reports whether an
// entry was removed. Removing an absent id is a no-op, not an error.
// A successful removal clears any prior ranking.
func (q *PatientQueue) Remove(id string) bool {
	for i, p := range q.patients {
		if p.ID == id {
			q.patients = append(q.patients[:i], q.patients[i+1:]...)
			q.ClearRanking()
			return true
		}
	}
	return false
}

// get returns the queued patient with the given id, or nil.
func (q *PatientQueue) get(id string) *Patient {
	for _, p := range q.patients {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// AdvanceTime adds deltaHours to every queued patient's waiting time.
// Patients already placed have left the queue and are unaffected.
func (q *PatientQueue) AdvanceTime(deltaHours float64) {
	for _, p := range q.patients {
		p.WaitingTime += deltaHours
	}
}

// ClearRanking drops rank and score queue-wide. A stale ranking must
// never be displayed as current, so every mutation funnels through
// this.
func (q *PatientQueue) ClearRanking() {
	for _, p := range q.patients {
		p.Rank = 0
		p.Score = 0
	}
}

// List returns a copy of the queue. The order is the ranked order
// when a ranking pass has run and has not been invalidated since,
// otherwise insertion order; both are maintained in place.
func (q *PatientQueue) List() []Patient {
	out := make([]Patient, 0, len(q.patients))
	for _, p := range q.patients {
		out = append(out, *p)
	}
	return out
}

// Len returns the number of waiting patients.
func (q *PatientQueue) Len() int {
	return len(q.patients)
}
