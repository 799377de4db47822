// pkg/sim/spawn.go
// Copyright(c) 2026 towersim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"log/slog"

	"towersim/pkg/math"
	"towersim/pkg/rand"
)

// Each edge of the field gets an angular cone that points inward, so
// spawned aircraft always start flying toward the field.
type spawnEdge int

const (
	edgeTop spawnEdge = iota
	edgeBottom
	edgeLeft
	edgeRight
	numSpawnEdges
)

func (e spawnEdge) headingRange() (float32, float32) {
	switch e {
	case edgeTop:
		return 120, 240
	case edgeBottom:
		return -60, 60
	case edgeLeft:
		return -30, 30
	default:
		return 150, 210
	}
}

// edgeCandidate draws a position uniformly along the edge, just outside
// the field, and a heading from the edge's inward cone.
func edgeCandidate(e spawnEdge, cfg *Config, r *rand.Rand) ([2]float32, float32) {
	lo, hi := e.headingRange()
	heading := math.NormalizeHeading(r.Float32Range(lo, hi))

	switch e {
	case edgeTop:
		return [2]float32{r.Float32Range(0, cfg.FieldWidth), -cfg.SpawnMargin}, heading
	case edgeBottom:
		return [2]float32{r.Float32Range(0, cfg.FieldWidth), cfg.FieldHeight + cfg.SpawnMargin}, heading
	case edgeLeft:
		return [2]float32{-cfg.SpawnMargin, r.Float32Range(0, cfg.FieldHeight)}, heading
	default:
		return [2]float32{cfg.FieldWidth + cfg.SpawnMargin, r.Float32Range(0, cfg.FieldHeight)}, heading
	}
}

// spawnPosition picks an edge and then rejection-samples position and
// heading until the candidate clears the minimum separation from every
// existing aircraft. Placement is best effort: when the retry cap runs
// out, the last candidate is accepted as is.
func spawnPosition(existing []*Aircraft, cfg *Config, r *rand.Rand) ([2]float32, float32) {
	edge := spawnEdge(r.Intn(int(numSpawnEdges)))

	var pos [2]float32
	var heading float32
	for attempt := 0; attempt < cfg.SpawnRetryCap; attempt++ {
		pos, heading = edgeCandidate(edge, cfg, r)

		separated := true
		for _, ac := range existing {
			if math.Distance2f(ac.Position, pos) <= cfg.SpawnMinSeparation {
				separated = false
				break
			}
		}
		if separated {
			break
		}
	}
	return pos, heading
}

var spawnAltitudes = []int{2000, 3000, 4000, 5000}

// newSpawnAircraft builds a freshly-spawned aircraft with the given id.
// Registering it with the session state is the caller's responsibility.
func newSpawnAircraft(existing []*Aircraft, cfg *Config, r *rand.Rand, id int) *Aircraft {
	pos, heading := spawnPosition(existing, cfg, r)

	return &Aircraft{
		ID:       id,
		Callsign: randomCallsign(r),
		Position: pos,
		Heading:  heading,
		Speed:    r.Float32Range(200, 600),
		Altitude: rand.SampleSlice(r, spawnAltitudes),
		Fuel:     r.Float32Range(40, 100),
	}
}

// SpawnAircraft creates a new aircraft at a field edge and registers it.
func (s *Sim) SpawnAircraft() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State.Ended {
		return
	}
	s.spawnAircraft()
}

func (s *Sim) spawnAircraft() {
	ac := newSpawnAircraft(s.State.Aircraft, s.cfg, s.rand, s.nextID)
	s.nextID++

	s.State.addAircraft(ac)
	s.eventStream.Post(Event{Type: AircraftSpawnedEvent, ID: ac.ID, Callsign: ac.Callsign})
	s.lg.Info("spawned aircraft", slog.Any("aircraft", ac))
}
