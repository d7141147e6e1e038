package deskbreak

import (
	"log"

	"github.com/deskbreak/deskbreak/internal/effects"
)

// FeedbackDispatcher maps session transition events to effect requests.
// It is policy only: the player decides what (if anything) the requests
// turn into on the host, and its calls are fire-and-forget, so a missing
// capability can never stall or fail the session.
type FeedbackDispatcher struct {
	player    effects.Player
	audioCues bool
	haptics   bool
	logger    *log.Logger
}

// NewFeedbackDispatcher creates a dispatcher. The audioCues and haptics
// switches gate whole effect categories; off means the request is never
// issued.
func NewFeedbackDispatcher(player effects.Player, audioCues, haptics bool, logger *log.Logger) *FeedbackDispatcher {
	if player == nil {
		panic("FeedbackDispatcher: player cannot be nil")
	}
	if logger == nil {
		panic("FeedbackDispatcher: logger cannot be nil")
	}
	return &FeedbackDispatcher{
		player:    player,
		audioCues: audioCues,
		haptics:   haptics,
		logger:    logger,
	}
}

// Dispatch issues the effect requests for a batch of events, in order.
func (d *FeedbackDispatcher) Dispatch(events []Event) {
	for _, e := range events {
		d.dispatchOne(e)
	}
}

func (d *FeedbackDispatcher) dispatchOne(event Event) {
	switch event {
	case EventMinuteMark:
		d.playCue(effects.CueTimer)
	case EventWorkComplete:
		d.playCue(effects.CueComplete)
		d.vibrate(effects.PatternWorkComplete)
	case EventSegmentStarted:
		d.playCue(effects.CueTransition)
		d.vibrate(effects.PatternSegmentStart)
	case EventSegmentComplete:
		d.playCue(effects.CueComplete)
		d.vibrate(effects.PatternSegmentDone)
	case EventSequenceComplete:
		d.vibrate(effects.PatternSequenceDone)
		d.playCue(effects.CueComplete)
	}
}

func (d *FeedbackDispatcher) playCue(cue effects.CueID) {
	if !d.audioCues {
		return
	}
	d.player.PlayCue(cue)
}

func (d *FeedbackDispatcher) vibrate(pattern effects.Pattern) {
	if !d.haptics {
		return
	}
	d.player.Vibrate(pattern)
}
