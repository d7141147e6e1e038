package deskbreak

import (
	"log"
	"sync"
	"time"

	"github.com/deskbreak/deskbreak/internal/goroutines"
)

// sessionCommand represents commands sent to the session goroutine
type sessionCommand int

const (
	cmdStart sessionCommand = iota
	cmdToggleWorkPause
	cmdSkipWork
	cmdToggleExercisePause
	cmdSkipExercise
	cmdRestart
)

// SessionManager owns the clock. It runs the Session from a single
// goroutine fed by a 1-second ticker and a command channel, so ticks and
// actions are strictly serialized and at most one tick source is ever
// live. State snapshots go to the UIModel and transition events to the
// FeedbackDispatcher, both outside the lock.
type SessionManager struct {
	model    *UIModel
	feedback *FeedbackDispatcher
	logger   *log.Logger

	mu      sync.Mutex
	session *Session

	cmdChan      chan sessionCommand
	doneChan     chan struct{} // Closed to signal shutdown
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// NewSessionManager creates a SessionManager and starts its run loop.
func NewSessionManager(session *Session, model *UIModel, feedback *FeedbackDispatcher, logger *log.Logger) *SessionManager {
	if session == nil {
		panic("SessionManager: session cannot be nil")
	}
	if model == nil {
		panic("SessionManager: model cannot be nil")
	}
	if feedback == nil {
		panic("SessionManager: feedback cannot be nil")
	}
	if logger == nil {
		panic("SessionManager: logger cannot be nil")
	}

	sm := &SessionManager{
		model:    model,
		feedback: feedback,
		logger:   logger,
		session:  session,
		cmdChan:  make(chan sessionCommand, 1),
		doneChan: make(chan struct{}),
	}

	sm.wg.Add(1)
	goroutines.Spawn(logger, func() { sm.runLoop() })

	// Publish the initial idle state so views have something to render.
	sm.model.SetSessionState(session.Snapshot())

	return sm
}

// Start begins the focus-work countdown.
func (sm *SessionManager) Start() {
	sm.cmdChan <- cmdStart
}

// ToggleWorkPause pauses or resumes the focus countdown.
func (sm *SessionManager) ToggleWorkPause() {
	sm.cmdChan <- cmdToggleWorkPause
}

// SkipWork ends the focus countdown now and begins the break.
func (sm *SessionManager) SkipWork() {
	sm.cmdChan <- cmdSkipWork
}

// ToggleExercisePause pauses or resumes the current exercise segment.
func (sm *SessionManager) ToggleExercisePause() {
	sm.cmdChan <- cmdToggleExercisePause
}

// SkipExercise completes the current exercise segment now.
func (sm *SessionManager) SkipExercise() {
	sm.cmdChan <- cmdSkipExercise
}

// Restart starts a new focus countdown from the summary.
func (sm *SessionManager) Restart() {
	sm.cmdChan <- cmdRestart
}

// CycleTag cycles the tag on a completed record and returns the new tag.
// Tags do not interact with the tick stream, so this bypasses the command
// channel and runs synchronously.
func (sm *SessionManager) CycleTag(index int) Tag {
	sm.mu.Lock()
	tag := sm.session.CycleTag(index)
	state := sm.session.Snapshot()
	sm.mu.Unlock()

	sm.model.SetSessionState(state)
	return tag
}

// GetState returns the current session snapshot.
func (sm *SessionManager) GetState() SessionState {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.session.Snapshot()
}

// Shutdown stops the session goroutine and waits for it to finish.
// Safe to call multiple times - only the first call has effect.
func (sm *SessionManager) Shutdown() {
	sm.shutdownOnce.Do(func() {
		sm.logger.Printf("SessionManager: Shutting down")
		close(sm.doneChan)
		sm.wg.Wait()
		sm.logger.Printf("SessionManager: Shutdown complete")
	})
}

// apply runs one command against the session under lock and returns the
// resulting events and snapshot.
func (sm *SessionManager) apply(cmd sessionCommand) ([]Event, SessionState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	var evts []Event
	switch cmd {
	case cmdStart:
		evts = sm.session.Start()
	case cmdToggleWorkPause:
		evts = sm.session.ToggleWorkPause()
	case cmdSkipWork:
		evts = sm.session.SkipWork()
	case cmdToggleExercisePause:
		evts = sm.session.ToggleExercisePause()
	case cmdSkipExercise:
		evts = sm.session.SkipExercise()
	case cmdRestart:
		evts = sm.session.Restart()
	}
	return evts, sm.session.Snapshot()
}

// runLoop is the single scheduling point for the session: every tick and
// every command passes through here, one at a time.
func (sm *SessionManager) runLoop() {
	defer sm.wg.Done()

	ticker := time.NewTicker(1 * time.Second)
	ticker.Stop() // Runs only while a countdown is active
	tickerRunning := false

	syncTicker := func(state SessionState) {
		active := state.TickStreamActive()
		if active && !tickerRunning {
			ticker.Reset(1 * time.Second)
			tickerRunning = true
		} else if !active && tickerRunning {
			ticker.Stop()
			tickerRunning = false
		}
	}

	for {
		select {
		case <-sm.doneChan:
			ticker.Stop()
			sm.logger.Printf("SessionManager: Goroutine exiting")
			return

		case cmd := <-sm.cmdChan:
			evts, state := sm.apply(cmd)
			syncTicker(state)
			sm.feedback.Dispatch(evts)
			sm.model.SetSessionState(state)

		case <-ticker.C:
			sm.mu.Lock()
			evts := sm.session.Tick()
			state := sm.session.Snapshot()
			sm.mu.Unlock()

			syncTicker(state)
			sm.feedback.Dispatch(evts)
			sm.model.SetSessionState(state)
		}
	}
}
