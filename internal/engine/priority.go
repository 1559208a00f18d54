package engine

import (
	"math"
	"sort"
)

// Criterion weights of the AHP-SAW model. Both criteria are benefit
// criteria: more severe and longer waiting both raise urgency. The
// weights are fixed by the decision model, not per-call parameters.
const (
	WeightSeverity    = 0.6
	WeightWaitingTime = 0.4
)

// rankPatients runs one full AHP-SAW ranking pass over the queue,
// mutating it in place. Each criterion is normalized against its
// maximum over the current queue, combined with the fixed weights and
// rounded half-away-from-zero to two decimals. Patients are then
// reordered by descending score with a stable sort, so equal scores
// keep their insertion order, and ranks 1..N are assigned.
//
// An empty queue is a no-op. When nobody has waited yet the waiting
// criterion contributes zero for everyone instead of dividing by zero.
func rankPatients(patients []*Patient) {
	if len(patients) == 0 {
		return
	}
	maxSeverity := 0
	maxWait := 0.0
	for _, p := range patients {
		if p.Severity > maxSeverity {
			maxSeverity = p.Severity
		}
		if p.WaitingTime > maxWait {
			maxWait = p.WaitingTime
		}
	}
	for _, p := range patients {
		normSeverity := float64(p.Severity) / float64(maxSeverity)
		normWait := 0.0
		if maxWait > 0 {
			normWait = p.WaitingTime / maxWait
		}
		score := WeightSeverity*normSeverity + WeightWaitingTime*normWait
		p.Score = math.Round(score*100) / 100
	}
	sort.SliceStable(patients, func(i, j int) bool {
		return patients[i].Score > patients[j].Score
	})
	for i, p := range patients {
		p.Rank = i + 1
	}
}
