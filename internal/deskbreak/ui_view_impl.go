package deskbreak

// UIView defines the interface for framework-specific UI implementations
type UIView interface {
	// Initialize is called after construction to set up framework-specific
	// widgets. controller is used to handle UI events.
	Initialize(controller *UIController)

	// SetupKeyboardHandlers sets up keyboard event handlers
	SetupKeyboardHandlers(controller *UIController)

	// Run starts the UI framework and blocks until it exits
	Run() error

	// Stop stops the UI framework
	Stop()

	// Draw refreshes/redraws the UI
	Draw() error

	// UpdateSessionState switches to the page for the snapshot's phase and
	// refreshes its content
	UpdateSessionState(state SessionState)

	// --- Log View (shared across pages) ---

	// GetLogViewHeight returns the visible height of the log view
	GetLogViewHeight() int

	// ClearLogView clears the log view
	ClearLogView()

	// WriteLogLine writes a line to the log view
	WriteLogLine(line string) error
}
