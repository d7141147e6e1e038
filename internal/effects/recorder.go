package effects

import "sync"

// Recorder is a Player that captures every request it receives.
// Used by tests to assert on feedback policy without real devices.
type Recorder struct {
	mu       sync.Mutex
	cues     []CueID
	patterns []Pattern
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) PlayCue(cue CueID) {
	r.mu.Lock()
	r.cues = append(r.cues, cue)
	r.mu.Unlock()
}

func (r *Recorder) Vibrate(pattern Pattern) {
	r.mu.Lock()
	r.patterns = append(r.patterns, pattern)
	r.mu.Unlock()
}

// Cues returns a copy of the cues played so far, in order.
func (r *Recorder) Cues() []CueID {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]CueID, len(r.cues))
	copy(out, r.cues)
	return out
}

// Patterns returns a copy of the vibration patterns requested so far.
func (r *Recorder) Patterns() []Pattern {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Pattern, len(r.patterns))
	copy(out, r.patterns)
	return out
}

// Reset clears all recorded requests.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.cues = nil
	r.patterns = nil
	r.mu.Unlock()
}
