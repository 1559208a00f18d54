package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankPatients_ScoreFormula(t *testing.T) {
	// maxSeverity=5, maxWait=4:
	//   A: 0.6*(5/5) + 0.4*(2/4) = 0.80
	//   B: 0.6*(2/5) + 0.4*(4/4) = 0.64
	a := &Patient{ID: "p-1", Severity: 5, WaitingTime: 2}
	b := &Patient{ID: "p-2", Severity: 2, WaitingTime: 4}
	ps := []*Patient{a, b}

	rankPatients(ps)

	require.Equal(t, "p-1", ps[0].ID)
	require.Equal(t, "p-2", ps[1].ID)
	assert.Equal(t, 1, a.Rank)
	assert.Equal(t, 0.80, a.Score)
	assert.Equal(t, 2, b.Rank)
	assert.Equal(t, 0.64, b.Score)
}

func TestRankPatients_ZeroMaxWait(t *testing.T) {
	// Nobody has waited yet: the waiting criterion contributes zero
	// instead of dividing by zero.
	p := &Patient{ID: "p-1", Severity: 5}
	rankPatients([]*Patient{p})

	assert.Equal(t, 1, p.Rank)
	assert.Equal(t, 0.60, p.Score)
}

func TestRankPatients_TieBreakKeepsInsertionOrder(t *testing.T) {
	// Identical severity and wait produce identical scores; the
	// stable sort must keep the earlier admission first.
	first := &Patient{ID: "p-1", Severity: 3, WaitingTime: 2}
	second := &Patient{ID: "p-2", Severity: 3, WaitingTime: 2}
	ps := []*Patient{first, second}

	rankPatients(ps)

	require.Equal(t, first.Score, second.Score)
	assert.Equal(t, []*Patient{first, second}, ps)
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, 2, second.Rank)
}

func TestRankPatients_EmptyQueueIsNoop(t *testing.T) {
	assert.NotPanics(t, func() { rankPatients(nil) })
}

func TestRankPatients_Deterministic(t *testing.T) {
	mk := func() []*Patient {
		return []*Patient{
			{ID: "p-1", Severity: 4, WaitingTime: 3},
			{ID: "p-2", Severity: 2, WaitingTime: 1},
			{ID: "p-3", Severity: 5, WaitingTime: 2},
			{ID: "p-4", Severity: 3, WaitingTime: 4},
		}
	}
	run := func() []string {
		ps := mk()
		rankPatients(ps)
		ids := make([]string, len(ps))
		for i, p := range ps {
			ids[i] = p.ID
		}
		return ids
	}

	assert.Equal(t, run(), run())
}
