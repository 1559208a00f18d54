package main

import (
	"fmt"
	"log"

	"github.com/hospitalq/bed-allocation/internal/engine"
)

// seedDemo loads a deterministic demo state: a partially occupied bed
// grid and a small waiting queue with staggered waiting times. The
// engine itself never seeds anything; initial state is a caller
// concern, and a fixed layout beats a random one for demos and manual
// testing.
func seedDemo(eng *engine.Engine) {
	beds := eng.ListBeds()
	for i, b := range beds {
		switch {
		case i%5 == 0 || i%5 == 2: // 40% of each ward occupied
			name := fmt.Sprintf("Patient %d", i+1)
			if _, err := eng.SetBedStatus(b.ID, engine.BedOccupied, name); err != nil {
				log.Printf("seed: occupy %s: %v", b.ID, err)
			}
		case i%10 == 9: // one bed per two wards under repair
			if _, err := eng.SetMaintenance(b.ID); err != nil {
				log.Printf("seed: maintenance %s: %v", b.ID, err)
			}
		}
	}

	// Admissions interleaved with one-hour ticks so the queue starts
	// with distinct waiting times (4h, 3h, 2h, 1h).
	demo := []engine.NewPatient{
		{Name: "Maya Sari", Age: 28, Severity: 3, Condition: "Fracture"},
		{Name: "Ahmad Rizki", Age: 45, Severity: 4, Condition: "Chest Pain"},
		{Name: "Budi Santoso", Age: 67, Severity: 5, Condition: "Heart Attack"},
		{Name: "Siti Nurhaliza", Age: 32, Severity: 2, Condition: "Fever"},
	}
	for _, p := range demo {
		if _, err := eng.AddPatient(p); err != nil {
			log.Printf("seed: add %s: %v", p.Name, err)
			continue
		}
		_ = eng.Tick(1)
	}
}
