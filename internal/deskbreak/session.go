package deskbreak

import (
	"log"
	"math/rand"
	"time"
)

// Session is the synchronous state machine at the center of the app. It
// holds no timer and spawns no goroutines: an external scheduler (the
// SessionManager) delivers Tick once per second while the tick stream is
// active and serializes every call. Methods that change state return the
// transition events they caused.
type Session struct {
	catalog *Catalog
	cfg     SessionConfig
	rng     *rand.Rand
	logger  *log.Logger

	phase            Phase
	workRemaining    int
	segmentRemaining int
	paused           bool
	segments         []ExerciseSegment
	index            int
	completed        []CompletedExerciseRecord
}

// NewSession creates a Session in PhaseIdle. The config must already be
// validated; non-positive durations are a programming error here.
func NewSession(catalog *Catalog, cfg SessionConfig, rng *rand.Rand, logger *log.Logger) *Session {
	if catalog == nil {
		panic("Session: catalog cannot be nil")
	}
	if logger == nil {
		panic("Session: logger cannot be nil")
	}
	if cfg.WorkDurationSeconds <= 0 || cfg.ExerciseDurationSeconds <= 0 {
		panic("Session: durations must be positive")
	}
	if cfg.MaxSegments < 0 {
		panic("Session: maxSegments cannot be negative")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Session{
		catalog: catalog,
		cfg:     cfg,
		rng:     rng,
		logger:  logger,
		phase:   PhaseIdle,
	}
}

// Start begins the focus-work countdown. Valid from Idle and, as restart,
// from Summary; anywhere else it is ignored.
func (s *Session) Start() []Event {
	if s.phase != PhaseIdle && s.phase != PhaseSummary {
		s.logger.Printf("Session: Start ignored in phase %s", s.phase)
		return nil
	}
	s.phase = PhaseWork
	s.workRemaining = s.cfg.WorkDurationSeconds
	s.paused = false
	s.logger.Printf("Session: work countdown started (%s)", FormatSecondsMMSS(s.workRemaining))
	return []Event{EventWorkStarted}
}

// Restart has the identical effect to Start; it exists as the named action
// offered from the summary screen.
func (s *Session) Restart() []Event {
	return s.Start()
}

// Tick advances the active countdown by one second. Paused phases and the
// Idle/Summary phases ignore ticks entirely; a missed tick is never made
// up later.
func (s *Session) Tick() []Event {
	switch s.phase {
	case PhaseWork:
		if s.paused {
			return nil
		}
		s.workRemaining--
		if s.workRemaining <= 0 {
			// The tick that would go below zero is the transition itself.
			s.workRemaining = 0
			s.logger.Printf("Session: work countdown complete")
			return append([]Event{EventWorkComplete}, s.beginBreak()...)
		}
		if s.workRemaining%60 == 0 {
			return []Event{EventMinuteMark}
		}
		return nil

	case PhaseExercise:
		if s.paused {
			return nil
		}
		s.segmentRemaining--
		if s.segmentRemaining <= 0 {
			s.segmentRemaining = 0
			return s.completeCurrentSegment()
		}
		return nil

	default:
		return nil
	}
}

// ToggleWorkPause flips the focus countdown between paused and running.
func (s *Session) ToggleWorkPause() []Event {
	if s.phase != PhaseWork {
		s.logger.Printf("Session: work pause toggle ignored in phase %s", s.phase)
		return nil
	}
	s.paused = !s.paused
	s.logger.Printf("Session: work paused=%v", s.paused)
	return nil
}

// SkipWork ends the focus countdown immediately, regardless of remaining
// time, and begins the break sequence.
func (s *Session) SkipWork() []Event {
	if s.phase != PhaseWork {
		s.logger.Printf("Session: work skip ignored in phase %s", s.phase)
		return nil
	}
	s.workRemaining = 0
	s.logger.Printf("Session: work countdown skipped")
	return append([]Event{EventWorkComplete}, s.beginBreak()...)
}

// ToggleExercisePause flips the current segment between paused and running.
func (s *Session) ToggleExercisePause() []Event {
	if s.phase != PhaseExercise {
		s.logger.Printf("Session: exercise pause toggle ignored in phase %s", s.phase)
		return nil
	}
	s.paused = !s.paused
	s.logger.Printf("Session: exercise paused=%v", s.paused)
	return nil
}

// SkipExercise completes the current segment immediately. The resulting
// record is indistinguishable from one produced by natural expiry.
func (s *Session) SkipExercise() []Event {
	if s.phase != PhaseExercise {
		s.logger.Printf("Session: exercise skip ignored in phase %s", s.phase)
		return nil
	}
	return s.completeCurrentSegment()
}

// CycleTag advances the tag of the completed record at index through
// None -> More -> Less -> None and pushes the matching weight into the
// catalog. An out-of-range index is a no-op returning TagNone.
func (s *Session) CycleTag(index int) Tag {
	if index < 0 || index >= len(s.completed) {
		s.logger.Printf("Session: tag cycle ignored, index %d out of range (have %d records)", index, len(s.completed))
		return TagNone
	}
	rec := &s.completed[index]
	rec.Tag = rec.Tag.Next()
	s.catalog.AdjustWeight(rec.Name, rec.Tag)
	s.logger.Printf("Session: %q tagged %s", rec.Name, rec.Tag)
	return rec.Tag
}

// Snapshot returns a deep copy of the observable state.
func (s *Session) Snapshot() SessionState {
	state := SessionState{
		Phase:            s.phase,
		WorkRemaining:    s.workRemaining,
		SegmentRemaining: s.segmentRemaining,
		Paused:           s.paused,
		CurrentIndex:     s.index,
	}
	if len(s.segments) > 0 {
		state.Segments = make([]ExerciseSegment, len(s.segments))
		copy(state.Segments, s.segments)
	}
	if len(s.completed) > 0 {
		state.Completed = make([]CompletedExerciseRecord, len(s.completed))
		copy(state.Completed, s.completed)
	}
	return state
}

// beginBreak generates a fresh segment list and enters the exercise
// sequence, or goes straight to the summary when generation comes back
// empty (empty catalog or a zero segment budget).
func (s *Session) beginBreak() []Event {
	s.segments = GenerateSegments(s.catalog, s.cfg.MaxSegments, s.rng)
	s.completed = nil
	s.index = 0
	s.paused = false

	if len(s.segments) == 0 {
		s.phase = PhaseSummary
		s.logger.Printf("Session: no segments generated, break skipped")
		return []Event{EventSequenceComplete}
	}

	s.phase = PhaseExercise
	s.segments[0].Status = SegmentOngoing
	s.segmentRemaining = s.cfg.ExerciseDurationSeconds
	s.logger.Printf("Session: break started with %d segments, first %q", len(s.segments), s.segments[0].Label())
	return []Event{EventSegmentStarted}
}

// completeCurrentSegment records the current segment as done and advances
// to the next one or to the summary.
func (s *Session) completeCurrentSegment() []Event {
	seg := &s.segments[s.index]
	seg.Status = SegmentDone
	s.completed = append(s.completed, CompletedExerciseRecord{
		Name:        seg.Exercise.Name,
		Side:        seg.Side,
		Description: seg.Exercise.Description,
		Tag:         TagNone,
	})
	s.logger.Printf("Session: segment %q done (%d/%d)", seg.Label(), s.index+1, len(s.segments))

	s.index++
	if s.index >= len(s.segments) {
		s.phase = PhaseSummary
		s.logger.Printf("Session: break complete, %d exercises done", len(s.completed))
		return []Event{EventSegmentComplete, EventSequenceComplete}
	}

	// Display invariant: everything not yet done reads as upcoming before
	// the new current segment is marked.
	for i := range s.segments {
		if s.segments[i].Status != SegmentDone {
			s.segments[i].Status = SegmentUpcoming
		}
	}
	s.segments[s.index].Status = SegmentOngoing
	s.segmentRemaining = s.cfg.ExerciseDurationSeconds
	s.paused = false
	return []Event{EventSegmentComplete, EventSegmentStarted}
}
