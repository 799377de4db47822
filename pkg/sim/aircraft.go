// pkg/sim/aircraft.go
// Copyright(c) 2026 towersim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"log/slog"
	"strconv"

	"towersim/pkg/rand"
)

type Callsign string

// EmergencyReason identifies why an aircraft crashed. It is set exactly
// once, when the aircraft transitions to crashed.
type EmergencyReason int

const (
	EmergencyNone EmergencyReason = iota
	EmergencyFuelExhausted
	EmergencyGroundImpact
)

func (r EmergencyReason) String() string {
	switch r {
	case EmergencyFuelExhausted:
		return "fuel exhausted"
	case EmergencyGroundImpact:
		return "ground impact"
	default:
		return ""
	}
}

// Status is the derived display state of an aircraft; it is computed from
// the aircraft's current state and carries no additional information.
type Status int

const (
	StatusNormal Status = iota
	StatusCaution
	StatusCrashed
	StatusLanded
)

func (s Status) String() string {
	return [...]string{"normal", "caution", "crashed", "landed"}[s]
}

const lowFuelThreshold = 10 // percent

// Aircraft is the per-flight state record. The tick engine and the command
// processor own all mutation; everything else observes.
type Aircraft struct {
	ID       int
	Callsign Callsign
	Position [2]float32
	Heading  float32 // degrees [0,360), 0 along +x, clockwise on screen
	Speed    float32 // km/h
	Altitude int     // meters
	Fuel     float32 // percent [0,100]

	Landed    bool
	Crashed   bool
	Emergency EmergencyReason
}

// Status returns the aircraft's derived status category. Landed and
// crashed are terminal and take precedence over the fuel state.
func (ac *Aircraft) Status() Status {
	switch {
	case ac.Landed:
		return StatusLanded
	case ac.Crashed:
		return StatusCrashed
	case ac.Fuel < lowFuelThreshold || ac.Emergency != EmergencyNone:
		return StatusCaution
	default:
		return StatusNormal
	}
}

// IsActive reports whether the aircraft still receives physics updates and
// operator commands.
func (ac *Aircraft) IsActive() bool {
	return !ac.Landed && !ac.Crashed
}

// declareEmergency marks the aircraft as crashed with the given reason.
// The reason sticks; a second call never overwrites it.
func (ac *Aircraft) declareEmergency(r EmergencyReason) {
	if ac.Crashed {
		return
	}
	ac.Crashed = true
	ac.Emergency = r
}

func (ac Aircraft) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("id", ac.ID),
		slog.String("callsign", string(ac.Callsign)),
		slog.Float64("x", float64(ac.Position[0])),
		slog.Float64("y", float64(ac.Position[1])),
		slog.Float64("heading", float64(ac.Heading)),
		slog.Float64("speed", float64(ac.Speed)),
		slog.Int("altitude", ac.Altitude),
		slog.Float64("fuel", float64(ac.Fuel)),
		slog.String("status", ac.Status().String()))
}

var callsignPrefixes = []string{"AF", "BA", "LH", "EN", "FR", "IP", "QA"}

// randomCallsign returns an airline-style callsign: a prefix from a fixed
// set plus a three-digit suffix. Collisions are possible but harmless;
// aircraft identity is carried by ID.
func randomCallsign(r *rand.Rand) Callsign {
	return Callsign(rand.SampleSlice(r, callsignPrefixes) + strconv.Itoa(100+r.Intn(900)))
}
