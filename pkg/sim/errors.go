// pkg/sim/errors.go
// Copyright(c) 2026 towersim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"errors"
)

var (
	ErrAircraftNotActive  = errors.New("Aircraft is no longer active")
	ErrAltitudeTooHigh    = errors.New("Altitude too high for landing")
	ErrNoAircraftSelected = errors.New("No aircraft selected")
	ErrOutOfLandingZone   = errors.New("Outside the landing zone")
	ErrSessionEnded       = errors.New("Session has ended")
	ErrUnknownAircraft    = errors.New("No aircraft with that id")
)
