// pkg/sim/sim.go
// Copyright(c) 2026 towersim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"log/slog"
	"sync"
	"time"

	"towersim/pkg/log"
	"towersim/pkg/math"
	"towersim/pkg/rand"
)

// deferredRemoval schedules an aircraft's deletion at a future sim time.
// Entries are inspected each tick, so firing stays on the simulation
// thread; after the session ends they quietly never fire.
type deferredRemoval struct {
	id       int
	fireTime time.Time
	penalize bool
}

// Sim owns the complete simulation: the state, the tick engine, the
// spawner, and command handling. All entry points serialize on a single
// mutex, so callers may drive it from timers and UI callbacks alike.
type Sim struct {
	State *State

	cfg         *Config
	eventStream *EventStream
	rand        *rand.Rand
	lg          *log.Logger
	mu          sync.Mutex

	nextID int

	lastUpdateTime time.Time
	updateTimeSlop time.Duration
	lastSpawnTime  time.Time

	deferred []deferredRemoval
}

// NewSim builds a simulation from the given configuration and spawns the
// initial aircraft. A non-zero seed gives a reproducible session.
func NewSim(cfg *Config, es *EventStream, seed int64, lg *log.Logger) *Sim {
	s := &Sim{
		State:       newState(cfg),
		cfg:         cfg,
		eventStream: es,
		rand:        rand.New(),
		lg:          lg,
		nextID:      1000,
	}
	if seed != 0 {
		s.rand.Seed(seed)
	}

	s.lastUpdateTime = time.Now()
	s.lastSpawnTime = s.State.SimTime

	for range cfg.InitialAircraft {
		s.spawnAircraft()
	}
	return s
}

func (s *Sim) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("state", s.State),
		slog.Int("deferred_removals", len(s.deferred)))
}

///////////////////////////////////////////////////////////////////////////
// Simulation

// Update advances the simulation by however much wallclock time has
// passed since the last call, in whole tick steps; leftover time is
// carried to the next call. It also drives spawning on the spawn period.
// Once the session has ended it does nothing.
func (s *Sim) Update() {
	s.mu.Lock()
	defer s.mu.Unlock()

	startUpdate := time.Now()
	defer func() {
		if d := time.Since(startUpdate); d > 200*time.Millisecond {
			s.lg.Warn("unexpectedly long Sim Update() call", slog.Duration("duration", d),
				slog.Any("sim", s))
		}
	}()

	if s.State.Ended {
		return
	}

	tick := time.Duration(s.cfg.TickPeriod)
	elapsed := time.Since(s.lastUpdateTime) + s.updateTimeSlop
	s.lastUpdateTime = time.Now()

	n := int(elapsed / tick)
	s.updateTimeSlop = elapsed - time.Duration(n)*tick
	if time.Duration(n)*tick > 10*time.Second {
		s.lg.Warn("unexpected hitch in update rate", slog.Duration("elapsed", elapsed),
			slog.Int("steps", n), slog.Duration("slop", s.updateTimeSlop))
	}

	for i := 0; i < n && !s.State.Ended; i++ {
		s.State.SimTime = s.State.SimTime.Add(tick)
		s.updateState(tick)

		if !s.State.Ended && s.State.SimTime.Sub(s.lastSpawnTime) >= time.Duration(s.cfg.SpawnPeriod) {
			s.lastSpawnTime = s.State.SimTime
			s.spawnAircraft()
		}
	}
}

// updateState runs a single simulation tick: due deferred removals, then
// fuel, crash checks, and motion per aircraft, then the collision scan.
// An ended session processes no ticks at all.
func (s *Sim) updateState(dt time.Duration) {
	if s.State.Ended {
		return
	}

	now := s.State.SimTime

	var pending []deferredRemoval
	for _, d := range s.deferred {
		if !now.Before(d.fireTime) {
			s.removeAircraft(d.id, d.penalize)
		} else {
			pending = append(pending, d)
		}
	}
	s.deferred = pending

	// Aircraft that drift past the field margin are deleted without
	// penalty, but only after the collision scan has had its say.
	var outOfBounds []int

	for _, ac := range s.State.Aircraft {
		if !ac.IsActive() {
			continue
		}

		// Fuel burn scales with speed relative to the reference speed.
		ac.Fuel -= s.cfg.FuelBurnPerTick * (ac.Speed / s.cfg.ReferenceSpeed)
		if ac.Fuel <= 0 {
			ac.Fuel = 0
			s.crashAircraft(ac, EmergencyFuelExhausted)
			continue
		}

		if ac.Altitude < s.cfg.GroundThreshold {
			s.crashAircraft(ac, EmergencyGroundImpact)
			continue
		}

		v := math.SpeedUnitsPerSecond(ac.Speed, s.cfg.KmPerUnit)
		rad := math.Radians(ac.Heading)
		step := math.Scale2f([2]float32{math.Cos(rad), math.Sin(rad)}, v*float32(dt.Seconds()))
		ac.Position = math.Add2f(ac.Position, step)

		if !s.State.Bounds.Expand(s.cfg.BoundsMargin).Inside(ac.Position) {
			outOfBounds = append(outOfBounds, ac.ID)
		}
	}

	// All-pairs scan in insertion order. The first qualifying pair ends
	// the session and the tick; the queued out-of-bounds removals above
	// are discarded along with it.
	for i, a := range s.State.Aircraft {
		if !a.IsActive() {
			continue
		}
		for _, b := range s.State.Aircraft[i+1:] {
			if !b.IsActive() {
				continue
			}
			if math.Distance2f(a.Position, b.Position) < s.cfg.SafeDistance &&
				math.Abs(a.Altitude-b.Altitude) < s.cfg.SafeAltitudeDiff {
				s.handleCollision(a, b)
				return
			}
		}
	}

	for _, id := range outOfBounds {
		s.removeAircraft(id, false)
	}
}

// crashAircraft transitions an aircraft to crashed and schedules its
// removal; the wreck remains visible until the removal fires.
func (s *Sim) crashAircraft(ac *Aircraft, reason EmergencyReason) {
	ac.declareEmergency(reason)
	s.eventStream.Post(Event{Type: AircraftCrashedEvent, ID: ac.ID, Callsign: ac.Callsign,
		Reason: reason})
	s.lg.Warn("aircraft crashed", slog.Any("aircraft", ac), slog.String("reason", reason.String()))

	s.scheduleRemoval(ac.ID, s.cfg.CrashRemovalDelay, true)
}

func (s *Sim) handleCollision(a, b *Aircraft) {
	s.eventStream.Post(Event{Type: CollisionEvent, ID: a.ID, Callsign: a.Callsign,
		OtherID: b.ID, OtherCallsign: b.Callsign})
	s.lg.Warn("mid-air collision", slog.Any("a", a), slog.Any("b", b))

	s.endSession()
}

func (s *Sim) scheduleRemoval(id int, delay Duration, penalize bool) {
	s.deferred = append(s.deferred, deferredRemoval{
		id:       id,
		fireTime: s.State.SimTime.Add(time.Duration(delay)),
		penalize: penalize,
	})
}

// removeAircraft deletes an aircraft and reports the removal and any
// score change. Unknown ids are ignored.
func (s *Sim) removeAircraft(id int, penalize bool) {
	ac, ok := s.State.FindAircraft(id)
	if !ok {
		return
	}

	prevScore := s.State.Score
	s.State.removeAircraft(id, penalize)

	s.eventStream.Post(Event{Type: AircraftRemovedEvent, ID: id, Callsign: ac.Callsign})
	if s.State.Score != prevScore {
		s.eventStream.Post(Event{Type: ScoreChangedEvent, Score: s.State.Score})
	}
	s.lg.Info("removed aircraft", slog.Any("aircraft", ac), slog.Bool("penalize", penalize))
}

func (s *Sim) endSession() {
	if s.State.Ended {
		return
	}
	s.State.Ended = true
	s.eventStream.Post(Event{Type: SessionEndedEvent, Score: s.State.Score})
	s.lg.Info("session ended", slog.Int("final_score", s.State.Score))
}

// EndSession terminates the session; no further ticks or commands are
// processed afterwards.
func (s *Sim) EndSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endSession()
}

// GetSnapshot returns a read-only deep copy of the current state for the
// renderer collaborator.
func (s *Sim) GetSnapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.State.snapshot()
}
