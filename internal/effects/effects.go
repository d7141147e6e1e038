package effects

// CueID identifies an audio cue the application can request.
type CueID string

const (
	CueTimer      CueID = "timer"      // each minute mark of the focus countdown
	CueTransition CueID = "transition" // a new exercise segment begins
	CueComplete   CueID = "complete"   // a countdown or segment finished
)

// Pattern is a vibration pattern as alternating on/off durations in
// milliseconds, starting with an "on" phase.
type Pattern []int

// Patterns requested by the session for its transitions.
var (
	PatternWorkComplete = Pattern{200, 100, 200}
	PatternSegmentStart = Pattern{100}
	PatternSegmentDone  = Pattern{150, 75, 150}
	PatternSequenceDone = Pattern{300, 100, 300, 100, 300}
)

// Player renders effect requests on whatever the host has available.
// Both calls are fire-and-forget: an implementation without the capability
// silently does nothing, it never reports failure back to the caller.
type Player interface {
	PlayCue(cue CueID)
	Vibrate(pattern Pattern)
}
