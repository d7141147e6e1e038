package deskbreak

import (
	"io"
	"log"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestSession(t *testing.T, defs []ExerciseDefinition, cfg SessionConfig, seed int64) *Session {
	t.Helper()
	return NewSession(NewCatalog(defs), cfg, rand.New(rand.NewSource(seed)), testLogger())
}

func TestSessionStartsIdle(t *testing.T) {
	s := newTestSession(t, testDefs(), SessionConfig{
		WorkDurationSeconds:     10,
		ExerciseDurationSeconds: 5,
		MaxSegments:             5,
	}, 1)

	state := s.Snapshot()
	assert.Equal(t, PhaseIdle, state.Phase)
	assert.False(t, state.TickStreamActive())
	assert.Empty(t, s.Tick(), "ticks before start must do nothing")
}

func TestSessionWorkCountdownAndTransition(t *testing.T) {
	s := newTestSession(t, testDefs(), SessionConfig{
		WorkDurationSeconds:     3,
		ExerciseDurationSeconds: 5,
		MaxSegments:             5,
	}, 1)

	events := s.Start()
	assert.Equal(t, []Event{EventWorkStarted}, events)
	assert.Equal(t, 3, s.Snapshot().WorkRemaining)
	assert.True(t, s.Snapshot().TickStreamActive())

	assert.Empty(t, s.Tick())
	assert.Equal(t, 2, s.Snapshot().WorkRemaining)
	assert.Empty(t, s.Tick())
	assert.Equal(t, 1, s.Snapshot().WorkRemaining)

	// The third tick both completes the countdown and starts the break.
	events = s.Tick()
	require.NotEmpty(t, events)
	assert.Equal(t, EventWorkComplete, events[0])
	assert.Equal(t, EventSegmentStarted, events[1])

	state := s.Snapshot()
	assert.Equal(t, PhaseExercise, state.Phase)
	assert.Equal(t, 0, state.WorkRemaining)
	assert.Equal(t, 5, state.SegmentRemaining)
	assert.NotEmpty(t, state.Segments)
	assert.Equal(t, SegmentOngoing, state.Segments[0].Status)
}

func TestSessionMinuteMarks(t *testing.T) {
	s := newTestSession(t, testDefs(), SessionConfig{
		WorkDurationSeconds:     121,
		ExerciseDurationSeconds: 5,
		MaxSegments:             5,
	}, 1)
	s.Start()

	var marks []int
	for i := 0; i < 120; i++ {
		events := s.Tick()
		for _, e := range events {
			if e == EventMinuteMark {
				marks = append(marks, s.Snapshot().WorkRemaining)
			}
		}
	}

	// Marks fire when remaining crosses 120 and 60; zero is WorkComplete,
	// not a minute mark.
	assert.Equal(t, []int{120, 60}, marks)
}

func TestSessionWorkPauseSuppressesTicks(t *testing.T) {
	s := newTestSession(t, testDefs(), SessionConfig{
		WorkDurationSeconds:     10,
		ExerciseDurationSeconds: 5,
		MaxSegments:             5,
	}, 1)
	s.Start()

	s.Tick()
	assert.Equal(t, 9, s.Snapshot().WorkRemaining)

	s.ToggleWorkPause()
	state := s.Snapshot()
	assert.True(t, state.Paused)
	assert.False(t, state.TickStreamActive())

	// Ticks delivered while paused are dropped, not banked.
	s.Tick()
	s.Tick()
	assert.Equal(t, 9, s.Snapshot().WorkRemaining)

	s.ToggleWorkPause()
	assert.False(t, s.Snapshot().Paused)
	s.Tick()
	assert.Equal(t, 8, s.Snapshot().WorkRemaining)
}

func TestSessionSkipWorkStartsBreakImmediately(t *testing.T) {
	s := newTestSession(t, testDefs(), SessionConfig{
		WorkDurationSeconds:     2700,
		ExerciseDurationSeconds: 60,
		MaxSegments:             5,
	}, 1)
	s.Start()

	events := s.SkipWork()
	require.NotEmpty(t, events)
	assert.Equal(t, EventWorkComplete, events[0])

	state := s.Snapshot()
	assert.Equal(t, PhaseExercise, state.Phase)
	assert.Equal(t, 0, state.WorkRemaining)
}

func TestSessionSkipMatchesNaturalExpiry(t *testing.T) {
	cfg := SessionConfig{
		WorkDurationSeconds:     5,
		ExerciseDurationSeconds: 3,
		MaxSegments:             5,
	}

	// Same seed, so both sessions draw the same segment list.
	skipped := newTestSession(t, testDefs(), cfg, 42)
	ticked := newTestSession(t, testDefs(), cfg, 42)
	skipped.Start()
	ticked.Start()
	skipped.SkipWork()
	ticked.SkipWork()

	skipEvents := skipped.SkipExercise()
	var tickEvents []Event
	for i := 0; i < 3; i++ {
		tickEvents = ticked.Tick()
	}

	assert.Equal(t, tickEvents, skipEvents)
	require.NotEmpty(t, skipped.Snapshot().Completed)
	assert.Equal(t, ticked.Snapshot().Completed, skipped.Snapshot().Completed)
}

func TestSessionFullBreakRunsToSummary(t *testing.T) {
	s := newTestSession(t, testDefs(), SessionConfig{
		WorkDurationSeconds:     5,
		ExerciseDurationSeconds: 2,
		MaxSegments:             5,
	}, 3)
	s.Start()
	s.SkipWork()

	segmentCount := len(s.Snapshot().Segments)
	require.Greater(t, segmentCount, 0)

	var lastEvents []Event
	for s.Snapshot().Phase == PhaseExercise {
		lastEvents = s.SkipExercise()
	}

	assert.Equal(t, []Event{EventSegmentComplete, EventSequenceComplete}, lastEvents)

	state := s.Snapshot()
	assert.Equal(t, PhaseSummary, state.Phase)
	assert.Len(t, state.Completed, segmentCount)
	for i, rec := range state.Completed {
		seg := state.Segments[i]
		assert.Equal(t, seg.Exercise.Name, rec.Name, "record %d out of order", i)
		assert.Equal(t, seg.Side, rec.Side)
		assert.Equal(t, TagNone, rec.Tag)
		assert.Equal(t, SegmentDone, seg.Status)
	}
}

func TestSessionSegmentAdvanceEmitsBothEvents(t *testing.T) {
	s := newTestSession(t, testDefs(), SessionConfig{
		WorkDurationSeconds:     5,
		ExerciseDurationSeconds: 2,
		MaxSegments:             5,
	}, 3)
	s.Start()
	s.SkipWork()
	require.Greater(t, len(s.Snapshot().Segments), 1)

	events := s.SkipExercise()
	assert.Equal(t, []Event{EventSegmentComplete, EventSegmentStarted}, events)

	state := s.Snapshot()
	assert.Equal(t, 1, state.CurrentIndex)
	assert.Equal(t, SegmentDone, state.Segments[0].Status)
	assert.Equal(t, SegmentOngoing, state.Segments[1].Status)
	assert.Equal(t, 2, state.SegmentRemaining, "segment timer resets for the next segment")
}

func TestSessionExercisePauseClearsOnAdvance(t *testing.T) {
	s := newTestSession(t, testDefs(), SessionConfig{
		WorkDurationSeconds:     5,
		ExerciseDurationSeconds: 3,
		MaxSegments:             5,
	}, 3)
	s.Start()
	s.SkipWork()
	require.Greater(t, len(s.Snapshot().Segments), 1)

	s.ToggleExercisePause()
	assert.True(t, s.Snapshot().Paused)
	remaining := s.Snapshot().SegmentRemaining
	s.Tick()
	assert.Equal(t, remaining, s.Snapshot().SegmentRemaining)

	// Skip works while paused and the next segment starts running.
	s.SkipExercise()
	assert.False(t, s.Snapshot().Paused)
}

func TestSessionEmptyCatalogGoesStraightToSummary(t *testing.T) {
	s := newTestSession(t, nil, SessionConfig{
		WorkDurationSeconds:     5,
		ExerciseDurationSeconds: 2,
		MaxSegments:             5,
	}, 1)
	s.Start()

	events := s.SkipWork()
	assert.Equal(t, []Event{EventWorkComplete, EventSequenceComplete}, events)

	state := s.Snapshot()
	assert.Equal(t, PhaseSummary, state.Phase)
	assert.Empty(t, state.Segments)
	assert.Empty(t, state.Completed)
}

func TestSessionRestartFromSummary(t *testing.T) {
	s := newTestSession(t, nil, SessionConfig{
		WorkDurationSeconds:     5,
		ExerciseDurationSeconds: 2,
		MaxSegments:             5,
	}, 1)
	s.Start()
	s.SkipWork()
	require.Equal(t, PhaseSummary, s.Snapshot().Phase)

	events := s.Restart()
	assert.Equal(t, []Event{EventWorkStarted}, events)
	state := s.Snapshot()
	assert.Equal(t, PhaseWork, state.Phase)
	assert.Equal(t, 5, state.WorkRemaining)
}

func TestSessionStartIgnoredMidPhase(t *testing.T) {
	s := newTestSession(t, testDefs(), SessionConfig{
		WorkDurationSeconds:     5,
		ExerciseDurationSeconds: 2,
		MaxSegments:             5,
	}, 1)
	s.Start()
	assert.Empty(t, s.Start())
	assert.Equal(t, 5, s.Snapshot().WorkRemaining)

	s.SkipWork()
	require.Equal(t, PhaseExercise, s.Snapshot().Phase)
	assert.Empty(t, s.Start())
	assert.Equal(t, PhaseExercise, s.Snapshot().Phase)
}

func TestSessionCycleTagUpdatesRecordAndCatalog(t *testing.T) {
	catalog := NewCatalog(testDefs())
	s := NewSession(catalog, SessionConfig{
		WorkDurationSeconds:     5,
		ExerciseDurationSeconds: 2,
		MaxSegments:             5,
	}, rand.New(rand.NewSource(3)), testLogger())
	s.Start()
	s.SkipWork()
	for s.Snapshot().Phase == PhaseExercise {
		s.SkipExercise()
	}

	state := s.Snapshot()
	require.NotEmpty(t, state.Completed)
	name := state.Completed[0].Name

	assert.Equal(t, TagMore, s.CycleTag(0))
	w, ok := catalog.WeightOf(name)
	require.True(t, ok)
	assert.Equal(t, 2.0, w)

	assert.Equal(t, TagLess, s.CycleTag(0))
	w, _ = catalog.WeightOf(name)
	assert.Equal(t, 0.5, w)

	assert.Equal(t, TagNone, s.CycleTag(0))
	w, _ = catalog.WeightOf(name)
	assert.Equal(t, 1.0, w)

	assert.Equal(t, TagNone, s.Snapshot().Completed[0].Tag)
}

func TestSessionCycleTagOutOfRange(t *testing.T) {
	s := newTestSession(t, testDefs(), SessionConfig{
		WorkDurationSeconds:     5,
		ExerciseDurationSeconds: 2,
		MaxSegments:             5,
	}, 1)

	assert.Equal(t, TagNone, s.CycleTag(0))
	assert.Equal(t, TagNone, s.CycleTag(-1))
	assert.Equal(t, TagNone, s.CycleTag(99))
}

func TestSessionSnapshotIsDeepCopy(t *testing.T) {
	s := newTestSession(t, testDefs(), SessionConfig{
		WorkDurationSeconds:     5,
		ExerciseDurationSeconds: 2,
		MaxSegments:             5,
	}, 3)
	s.Start()
	s.SkipWork()

	state := s.Snapshot()
	require.NotEmpty(t, state.Segments)
	state.Segments[0].Status = SegmentDone
	state.Segments[0].Exercise.Name = "mutated"

	fresh := s.Snapshot()
	assert.Equal(t, SegmentOngoing, fresh.Segments[0].Status)
	assert.NotEqual(t, "mutated", fresh.Segments[0].Exercise.Name)
}

func TestSessionRecordDescriptionIsCopied(t *testing.T) {
	defs := []ExerciseDefinition{{Name: "Neck Rolls", Description: "original"}}
	catalog := NewCatalog(defs)
	s := NewSession(catalog, SessionConfig{
		WorkDurationSeconds:     5,
		ExerciseDurationSeconds: 2,
		MaxSegments:             1,
	}, rand.New(rand.NewSource(1)), testLogger())
	s.Start()
	s.SkipWork()
	s.SkipExercise()

	state := s.Snapshot()
	require.Len(t, state.Completed, 1)
	assert.Equal(t, "original", state.Completed[0].Description)
}

func TestNewSessionValidation(t *testing.T) {
	catalog := NewCatalog(testDefs())
	valid := SessionConfig{WorkDurationSeconds: 1, ExerciseDurationSeconds: 1, MaxSegments: 1}

	assert.Panics(t, func() { NewSession(nil, valid, nil, testLogger()) })
	assert.Panics(t, func() { NewSession(catalog, valid, nil, nil) })
	assert.Panics(t, func() {
		NewSession(catalog, SessionConfig{WorkDurationSeconds: 0, ExerciseDurationSeconds: 1}, nil, testLogger())
	})
	assert.Panics(t, func() {
		NewSession(catalog, SessionConfig{WorkDurationSeconds: 1, ExerciseDurationSeconds: 1, MaxSegments: -1}, nil, testLogger())
	})
	assert.NotPanics(t, func() { NewSession(catalog, valid, nil, testLogger()) })
}
