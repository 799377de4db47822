// pkg/sim/state.go
// Copyright(c) 2026 towersim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"log/slog"
	"time"

	"github.com/brunoga/deep"

	"towersim/pkg/math"
)

// State is the complete mutable simulation state: the live aircraft
// collection, the score, the current selection, and the static session
// geometry. It is owned by a single Sim; there is no ambient state.
type State struct {
	Aircraft []*Aircraft // insertion order; IDs ascend
	Score    int

	// SelectedID is the id of the aircraft the command layer acts on;
	// zero means no selection.
	SelectedID int

	Ended bool

	Bounds            math.Extent2D
	LandingZoneCenter [2]float32
	LandingZoneRadius float32

	SimTime time.Time
}

func newState(cfg *Config) *State {
	bounds := cfg.Bounds()
	return &State{
		Bounds:            bounds,
		LandingZoneCenter: bounds.Center(),
		LandingZoneRadius: cfg.LandingZoneRadius,
		SimTime:           time.Now(),
	}
}

// FindAircraft returns the aircraft with the given id, if it is still
// tracked.
func (s *State) FindAircraft(id int) (*Aircraft, bool) {
	for _, ac := range s.Aircraft {
		if ac.ID == id {
			return ac, true
		}
	}
	return nil, false
}

// SelectedAircraft returns the currently-selected aircraft, or nil if
// there is no selection.
func (s *State) SelectedAircraft() *Aircraft {
	if s.SelectedID == 0 {
		return nil
	}
	ac, _ := s.FindAircraft(s.SelectedID)
	return ac
}

func (s *State) addAircraft(ac *Aircraft) {
	s.Aircraft = append(s.Aircraft, ac)
}

// removeAircraft deletes the aircraft from the collection; a penalized
// removal costs a point, floored at zero. Removing an id that is no
// longer tracked is a no-op, so deferred removals can fire after an
// aircraft is already gone.
func (s *State) removeAircraft(id int, penalize bool) bool {
	for i, ac := range s.Aircraft {
		if ac.ID == id {
			s.Aircraft = append(s.Aircraft[:i], s.Aircraft[i+1:]...)
			if penalize {
				s.Score = max(0, s.Score-1)
			}
			if s.SelectedID == id {
				s.SelectedID = 0
			}
			return true
		}
	}
	return false
}

func (s *State) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("aircraft", len(s.Aircraft)),
		slog.Int("score", s.Score),
		slog.Int("selected_id", s.SelectedID),
		slog.Bool("ended", s.Ended),
		slog.Time("sim_time", s.SimTime))
}

///////////////////////////////////////////////////////////////////////////
// Snapshot

// Snapshot is a read-only deep copy of the simulation state handed to the
// renderer collaborator each frame; the renderer never sees live Aircraft
// pointers.
type Snapshot struct {
	Aircraft []*Aircraft
	Score    int
	Ended    bool

	Bounds            math.Extent2D
	LandingZoneCenter [2]float32
	LandingZoneRadius float32

	SimTime time.Time
}

func (s *State) snapshot() Snapshot {
	return Snapshot{
		Aircraft:          deep.MustCopy(s.Aircraft),
		Score:             s.Score,
		Ended:             s.Ended,
		Bounds:            s.Bounds,
		LandingZoneCenter: s.LandingZoneCenter,
		LandingZoneRadius: s.LandingZoneRadius,
		SimTime:           s.SimTime,
	}
}
