// pkg/sim/control_test.go
// Copyright(c) 2026 towersim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"towersim/pkg/math"
)

func TestSelectAircraft(t *testing.T) {
	s := newTestSim(t, nil)
	ac := addTestAircraft(s, &Aircraft{ID: 1})

	assert.ErrorIs(t, s.SelectAircraft(999), ErrUnknownAircraft)
	assert.Nil(t, s.State.SelectedAircraft())

	require.NoError(t, s.SelectAircraft(ac.ID))
	assert.Same(t, ac, s.State.SelectedAircraft())

	require.NoError(t, s.SelectAircraft(0))
	assert.Nil(t, s.State.SelectedAircraft())
}

func TestSelectionClearedOnRemoval(t *testing.T) {
	s := newTestSim(t, nil)
	ac := addTestAircraft(s, &Aircraft{ID: 1})

	require.NoError(t, s.SelectAircraft(ac.ID))
	s.removeAircraft(ac.ID, false)

	assert.Equal(t, 0, s.State.SelectedID)
}

func TestTurnComposition(t *testing.T) {
	type Test struct {
		d1, d2 float32
	}
	for _, test := range []Test{
		Test{d1: 15, d2: 15},
		Test{d1: -15, d2: -15},
		Test{d1: 350, d2: 20},
		Test{d1: -190, d2: -190},
		Test{d1: 0, d2: 360},
		Test{d1: 123.5, d2: -77.25},
	} {
		s := newTestSim(t, nil)
		ac := addTestAircraft(s, &Aircraft{ID: 1, Heading: 42})
		require.NoError(t, s.SelectAircraft(ac.ID))

		s.Turn(test.d1)
		s.Turn(test.d2)
		composed := ac.Heading

		ac.Heading = 42
		s.Turn(test.d1 + test.d2)

		assert.InDelta(t, ac.Heading, composed, 1e-3,
			"turn(%g);turn(%g) differs from turn(%g)", test.d1, test.d2, test.d1+test.d2)
		assert.GreaterOrEqual(t, composed, float32(0))
		assert.Less(t, composed, float32(360))
	}
}

func TestTurnWithoutSelection(t *testing.T) {
	s := newTestSim(t, nil)
	ac := addTestAircraft(s, &Aircraft{ID: 1, Heading: 42})

	// No selection: silent no-op.
	s.Turn(15)
	assert.Equal(t, float32(42), ac.Heading)

	// Inactive selection: also a no-op.
	require.NoError(t, s.SelectAircraft(ac.ID))
	ac.Crashed = true
	s.Turn(15)
	assert.Equal(t, float32(42), ac.Heading)
}

func TestChangeAltitude(t *testing.T) {
	s := newTestSim(t, nil)
	ac := addTestAircraft(s, &Aircraft{ID: 1, Altitude: 3000})
	require.NoError(t, s.SelectAircraft(ac.ID))

	s.ChangeAltitude(500)
	assert.Equal(t, 3500, ac.Altitude)

	s.ChangeAltitude(-500)
	assert.Equal(t, 3000, ac.Altitude)

	// Floor at ground level.
	s.ChangeAltitude(-5000)
	assert.Equal(t, 0, ac.Altitude)
}

func TestAttemptLanding(t *testing.T) {
	s := newTestSim(t, nil)
	sub := s.eventStream.Subscribe()

	center := s.State.LandingZoneCenter
	ac := addTestAircraft(s, &Aircraft{ID: 1, Position: center, Altitude: 700, Speed: 300})
	require.NoError(t, s.SelectAircraft(ac.ID))

	require.NoError(t, s.AttemptLanding())

	assert.True(t, ac.Landed)
	assert.Equal(t, float32(0), ac.Speed)
	assert.Equal(t, 10, s.State.Score)

	types := []EventType{}
	for _, ev := range sub.Get() {
		types = append(types, ev.Type)
	}
	assert.Equal(t, []EventType{AircraftLandedEvent, ScoreChangedEvent}, types)

	// Already landed: no longer a valid command target.
	assert.ErrorIs(t, s.AttemptLanding(), ErrAircraftNotActive)
	assert.Equal(t, 10, s.State.Score)
}

func TestAttemptLandingRejections(t *testing.T) {
	s := newTestSim(t, nil)
	center := s.State.LandingZoneCenter

	assert.ErrorIs(t, s.AttemptLanding(), ErrNoAircraftSelected)

	// Out of zone, even at a legal altitude.
	far := addTestAircraft(s, &Aircraft{ID: 1,
		Position: math.Add2f(center, [2]float32{41, 0}), Altitude: 700})
	require.NoError(t, s.SelectAircraft(far.ID))
	assert.ErrorIs(t, s.AttemptLanding(), ErrOutOfLandingZone)
	assert.False(t, far.Landed)

	// In the zone but too high.
	high := addTestAircraft(s, &Aircraft{ID: 2, Position: center, Altitude: 900})
	require.NoError(t, s.SelectAircraft(high.ID))
	assert.ErrorIs(t, s.AttemptLanding(), ErrAltitudeTooHigh)
	assert.False(t, high.Landed)

	// Failed attempts never mutate: try a few times and re-check.
	for i := 0; i < 3; i++ {
		assert.Error(t, s.AttemptLanding())
	}
	assert.Equal(t, 900, high.Altitude)
	assert.Equal(t, 0, s.State.Score)
}

func TestAttemptLandingBoundary(t *testing.T) {
	s := newTestSim(t, nil)
	center := s.State.LandingZoneCenter

	// Exactly on the zone edge at exactly the altitude limit succeeds.
	edge := addTestAircraft(s, &Aircraft{ID: 1,
		Position: math.Add2f(center, [2]float32{40, 0}), Altitude: 800, Speed: 250})
	require.NoError(t, s.SelectAircraft(edge.ID))
	assert.NoError(t, s.AttemptLanding())
	assert.True(t, edge.Landed)
}

func TestLandingScoreSurvivesUnpenalizedRemoval(t *testing.T) {
	s := newTestSim(t, nil)
	center := s.State.LandingZoneCenter

	ac := addTestAircraft(s, &Aircraft{ID: 1, Position: center, Altitude: 500, Speed: 300})
	require.NoError(t, s.SelectAircraft(ac.ID))
	require.NoError(t, s.AttemptLanding())
	require.Equal(t, 10, s.State.Score)

	// Run out the landed-removal delay.
	for i := 0; i < 21; i++ {
		step(s, tick)
	}

	_, ok := s.State.FindAircraft(ac.ID)
	assert.False(t, ok, "landed aircraft should be cleaned up")
	assert.Equal(t, 10, s.State.Score, "landing removal must not cost a point")
	assert.Equal(t, 0, s.State.SelectedID)
}
