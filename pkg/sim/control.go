// pkg/sim/control.go
// Copyright(c) 2026 towersim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"log/slog"

	"towersim/pkg/math"
)

// Operator commands. These are invoked synchronously by the UI
// collaborator and act on the currently-selected aircraft. Turn and
// ChangeAltitude are silent no-ops without a valid target; the UI keeps
// its controls disabled in that case, so there is nothing to report.

// SelectAircraft makes the aircraft with the given id the target of
// subsequent commands. Passing zero clears the selection.
func (s *Sim) SelectAircraft(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == 0 {
		s.State.SelectedID = 0
		return nil
	}
	if _, ok := s.State.FindAircraft(id); !ok {
		return ErrUnknownAircraft
	}
	s.State.SelectedID = id
	return nil
}

// selectedActiveAircraft returns the selected aircraft if it can still
// accept commands.
func (s *Sim) selectedActiveAircraft() *Aircraft {
	if s.State.Ended {
		return nil
	}
	ac := s.State.SelectedAircraft()
	if ac == nil || !ac.IsActive() {
		return nil
	}
	return ac
}

// Turn rotates the selected aircraft's heading by the given number of
// degrees (positive is clockwise on screen).
func (s *Sim) Turn(delta float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ac := s.selectedActiveAircraft()
	if ac == nil {
		return
	}
	ac.Heading = math.NormalizeHeading(ac.Heading + delta)
	s.lg.Debug("turn", slog.Any("aircraft", ac), slog.Float64("delta", float64(delta)))
}

// ChangeAltitude adjusts the selected aircraft's altitude by the given
// number of meters, floored at ground level.
func (s *Sim) ChangeAltitude(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ac := s.selectedActiveAircraft()
	if ac == nil {
		return
	}
	ac.Altitude = max(0, ac.Altitude+delta)
	s.lg.Debug("change altitude", slog.Any("aircraft", ac), slog.Int("delta", delta))
}

// AttemptLanding lands the selected aircraft if it is inside the landing
// zone and low enough. A rejected attempt reports why and leaves the
// aircraft untouched, so the operator can maneuver and try again.
func (s *Sim) AttemptLanding() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State.Ended {
		return ErrSessionEnded
	}
	ac := s.State.SelectedAircraft()
	if ac == nil {
		return ErrNoAircraftSelected
	}
	if !ac.IsActive() {
		return ErrAircraftNotActive
	}

	if math.Distance2f(ac.Position, s.State.LandingZoneCenter) > s.State.LandingZoneRadius {
		return ErrOutOfLandingZone
	}
	if ac.Altitude > s.cfg.LandingMaxAltitude {
		return ErrAltitudeTooHigh
	}

	ac.Landed = true
	ac.Speed = 0
	s.State.Score += s.cfg.LandingScore

	s.eventStream.Post(Event{Type: AircraftLandedEvent, ID: ac.ID, Callsign: ac.Callsign})
	s.eventStream.Post(Event{Type: ScoreChangedEvent, Score: s.State.Score})
	s.lg.Info("aircraft landed", slog.Any("aircraft", ac), slog.Int("score", s.State.Score))

	s.scheduleRemoval(ac.ID, s.cfg.LandedRemovalDelay, false)
	return nil
}
