package effects

import (
	"io"
	"log"
)

// TerminalPlayer renders cues as a terminal bell and logs vibration
// requests. Terminals have no haptics, so Vibrate is a logged no-op.
type TerminalPlayer struct {
	out    io.Writer
	logger *log.Logger
}

// NewTerminalPlayer creates a TerminalPlayer writing BEL to out.
func NewTerminalPlayer(out io.Writer, logger *log.Logger) *TerminalPlayer {
	if out == nil {
		panic("TerminalPlayer: out cannot be nil")
	}
	if logger == nil {
		panic("TerminalPlayer: logger cannot be nil")
	}
	return &TerminalPlayer{out: out, logger: logger}
}

func (p *TerminalPlayer) PlayCue(cue CueID) {
	if _, err := io.WriteString(p.out, "\a"); err != nil {
		// Best effort only, the session must never see this.
		p.logger.Printf("TerminalPlayer: bell write failed for cue %q: %v", cue, err)
		return
	}
	p.logger.Printf("TerminalPlayer: cue %q", cue)
}

func (p *TerminalPlayer) Vibrate(pattern Pattern) {
	p.logger.Printf("TerminalPlayer: vibration %v ignored (no haptics)", pattern)
}
