package deskbreak

import "fmt"

// Phase represents where the session currently is in its cycle.
type Phase int

const (
	PhaseIdle     Phase = iota // Nothing running yet
	PhaseWork                  // Focus-work countdown in progress
	PhaseExercise              // Exercise break segments in progress
	PhaseSummary               // Break finished, records taggable
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseWork:
		return "Work"
	case PhaseExercise:
		return "Exercise"
	case PhaseSummary:
		return "Summary"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Side distinguishes the two segments a unilateral exercise expands into.
type Side int

const (
	SideNone Side = iota // Bilateral exercise, no side
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "Left"
	case SideRight:
		return "Right"
	default:
		return ""
	}
}

// SegmentStatus tracks a segment through its break sequence.
type SegmentStatus int

const (
	SegmentUpcoming SegmentStatus = iota
	SegmentOngoing
	SegmentDone
)

// Tag is a user preference annotation on a completed exercise.
type Tag int

const (
	TagNone Tag = iota
	TagMore
	TagLess
)

// Next returns the following tag in the None -> More -> Less -> None cycle.
func (t Tag) Next() Tag {
	switch t {
	case TagNone:
		return TagMore
	case TagMore:
		return TagLess
	default:
		return TagNone
	}
}

// Weight is the catalog weight a definition gets while carrying this tag.
func (t Tag) Weight() float64 {
	switch t {
	case TagMore:
		return 2.0
	case TagLess:
		return 0.5
	default:
		return 1.0
	}
}

func (t Tag) String() string {
	switch t {
	case TagMore:
		return "More"
	case TagLess:
		return "Less"
	default:
		return "None"
	}
}

// ExerciseDefinition is one entry of the exercise pool. Name is the unique
// key. Weight biases random selection and is the only field mutated after
// startup (by tag cycling).
type ExerciseDefinition struct {
	Name        string
	Description string
	Unilateral  bool
	AssetRef    string
	Weight      float64
}

// ExerciseSegment is a scheduled instance of a definition within one break
// sequence. A unilateral definition always yields a Left segment directly
// followed by a Right segment; a bilateral one yields a single segment with
// SideNone.
type ExerciseSegment struct {
	Exercise ExerciseDefinition
	Side     Side
	Status   SegmentStatus
}

// Label returns the display name of the segment including its side.
func (seg ExerciseSegment) Label() string {
	if seg.Side == SideNone {
		return seg.Exercise.Name
	}
	return fmt.Sprintf("%s (%s)", seg.Exercise.Name, seg.Side)
}

// CompletedExerciseRecord is a by-value snapshot taken when a segment
// finishes. The description is copied so later catalog edits cannot
// rewrite history. Tag is the only field mutated afterwards.
type CompletedExerciseRecord struct {
	Name        string
	Side        Side
	Description string
	Tag         Tag
}

// SessionConfig holds the durations governing a session. All values are
// validated by the caller before construction; the session itself treats
// them as trusted.
type SessionConfig struct {
	WorkDurationSeconds     int
	ExerciseDurationSeconds int
	MaxSegments             int
}

// Event is a transition emitted by the session core, consumed by the
// feedback dispatcher and the logs.
type Event int

const (
	EventWorkStarted      Event = iota // countdown (re)started
	EventMinuteMark                    // work remaining hit a positive minute boundary
	EventWorkComplete                  // work countdown reached zero or was skipped
	EventSegmentStarted                // a new exercise segment became current
	EventSegmentComplete               // the current segment finished or was skipped
	EventSequenceComplete              // the whole break sequence is over
)

func (e Event) String() string {
	switch e {
	case EventWorkStarted:
		return "work_started"
	case EventMinuteMark:
		return "minute_mark"
	case EventWorkComplete:
		return "work_complete"
	case EventSegmentStarted:
		return "segment_started"
	case EventSegmentComplete:
		return "segment_complete"
	case EventSequenceComplete:
		return "sequence_complete"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

// SessionState is the immutable snapshot published to the UI after every
// command and tick.
type SessionState struct {
	Phase            Phase
	WorkRemaining    int // seconds left in the focus countdown
	SegmentRemaining int // seconds left in the current exercise segment
	Paused           bool
	Segments         []ExerciseSegment
	CurrentIndex     int
	Completed        []CompletedExerciseRecord
}

// CurrentSegment returns the segment being exercised, if any.
func (s SessionState) CurrentSegment() (ExerciseSegment, bool) {
	if s.Phase != PhaseExercise || s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Segments) {
		return ExerciseSegment{}, false
	}
	return s.Segments[s.CurrentIndex], true
}

// TickStreamActive reports whether the session should be receiving clock
// ticks in this state. At most one tick source exists at any instant; the
// manager starts and stops its ticker from this.
func (s SessionState) TickStreamActive() bool {
	if s.Paused {
		return false
	}
	return s.Phase == PhaseWork || s.Phase == PhaseExercise
}

// FormatSecondsMMSS renders a second count as MM:SS, flooring and never
// showing a negative value.
func FormatSecondsMMSS(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// DefaultExercises is the built-in exercise pool. All weights start at 1.0
// and drift with user tagging over the process lifetime.
var DefaultExercises = []ExerciseDefinition{
	{
		Name:        "Neck Rolls",
		Description: "Slowly roll your head in a full circle, alternating direction halfway through.",
		AssetRef:    "assets/exercises/neck_rolls.gif",
	},
	{
		Name:        "Shoulder Shrugs",
		Description: "Raise both shoulders toward your ears, hold briefly, release.",
		AssetRef:    "assets/exercises/shoulder_shrugs.gif",
	},
	{
		Name:        "Desk Squats",
		Description: "Stand up from your chair and squat until your thighs are parallel to the floor.",
		AssetRef:    "assets/exercises/desk_squats.gif",
	},
	{
		Name:        "Calf Raises",
		Description: "Stand and rise onto the balls of your feet, lower slowly.",
		AssetRef:    "assets/exercises/calf_raises.gif",
	},
	{
		Name:        "Wrist Circles",
		Description: "Extend your arms and rotate both wrists, alternating direction.",
		AssetRef:    "assets/exercises/wrist_circles.gif",
	},
	{
		Name:        "Wall Push-Ups",
		Description: "Lean against a wall at arm's length and push yourself away.",
		AssetRef:    "assets/exercises/wall_push_ups.gif",
	},
	{
		Name:        "Arm Circles",
		Description: "Hold both arms straight out and draw small circles, growing larger.",
		AssetRef:    "assets/exercises/arm_circles.gif",
	},
	{
		Name:        "Standing Side Bend",
		Description: "Reach one arm overhead and bend sideways at the waist.",
		Unilateral:  true,
		AssetRef:    "assets/exercises/standing_side_bend.gif",
	},
	{
		Name:        "Single-Leg Balance",
		Description: "Stand on one leg, the other foot lifted off the floor.",
		Unilateral:  true,
		AssetRef:    "assets/exercises/single_leg_balance.gif",
	},
	{
		Name:        "Standing Quad Stretch",
		Description: "Pull one heel toward your glutes and hold, keeping knees together.",
		Unilateral:  true,
		AssetRef:    "assets/exercises/standing_quad_stretch.gif",
	},
	{
		Name:        "Overhead Tricep Stretch",
		Description: "Reach one arm overhead, bend the elbow, and press it gently with the other hand.",
		Unilateral:  true,
		AssetRef:    "assets/exercises/overhead_tricep_stretch.gif",
	},
}
