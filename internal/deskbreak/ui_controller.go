package deskbreak

import "log"

// UIController translates UI input into session actions. Keys are
// phase-aware here so the views stay dumb: the same key pauses the focus
// countdown, pauses an exercise, or starts a session depending on the
// current phase.
type UIController struct {
	model          *UIModel
	sessionManager *SessionManager
	logger         *log.Logger
}

// NewUIController creates a UIController with the given dependencies.
func NewUIController(model *UIModel, sessionManager *SessionManager, logger *log.Logger) *UIController {
	if model == nil {
		panic("UIController: model cannot be nil")
	}
	if sessionManager == nil {
		panic("UIController: sessionManager cannot be nil")
	}
	if logger == nil {
		panic("UIController: logger cannot be nil")
	}
	return &UIController{
		model:          model,
		sessionManager: sessionManager,
		logger:         logger,
	}
}

// PrimaryAction is the space-bar action: start when idle, pause/resume
// while a countdown runs, restart from the summary.
func (c *UIController) PrimaryAction() {
	state := c.model.GetSessionState()
	switch state.Phase {
	case PhaseIdle:
		c.sessionManager.Start()
	case PhaseWork:
		c.sessionManager.ToggleWorkPause()
	case PhaseExercise:
		c.sessionManager.ToggleExercisePause()
	case PhaseSummary:
		c.sessionManager.Restart()
	}
}

// Skip ends the current countdown early: the whole focus block during
// work, the current segment during an exercise break.
func (c *UIController) Skip() {
	state := c.model.GetSessionState()
	switch state.Phase {
	case PhaseWork:
		c.sessionManager.SkipWork()
	case PhaseExercise:
		c.sessionManager.SkipExercise()
	default:
		c.logger.Printf("UIController: skip ignored in phase %s", state.Phase)
	}
}

// Restart starts a fresh focus countdown from the summary screen.
func (c *UIController) Restart() {
	state := c.model.GetSessionState()
	if state.Phase != PhaseSummary {
		c.logger.Printf("UIController: restart ignored in phase %s", state.Phase)
		return
	}
	c.sessionManager.Restart()
}

// CycleTag cycles the preference tag on a completed exercise in the
// summary list.
func (c *UIController) CycleTag(index int) {
	state := c.model.GetSessionState()
	if state.Phase != PhaseSummary {
		c.logger.Printf("UIController: tag cycle ignored in phase %s", state.Phase)
		return
	}
	tag := c.sessionManager.CycleTag(index)
	c.logger.Printf("UIController: record %d tagged %s", index, tag)
}

// OnEscapeKey handles when the Escape key is pressed
func (c *UIController) OnEscapeKey() {
	c.model.RequestCloseApplication()
}
