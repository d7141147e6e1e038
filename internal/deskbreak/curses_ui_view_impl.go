package deskbreak

import (
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Page names for tview.Pages
const (
	pageFocusTimer    = "focus_timer"
	pageExerciseBreak = "exercise_break"
	pageSummary       = "summary"
)

// CursesUIViewImpl implements UIView using tview (curses-based terminal UI)
type CursesUIViewImpl struct {
	logger       *log.Logger
	app          *tview.Application
	model        *UIModel
	currentPhase Phase

	// Root container that holds all pages
	pages *tview.Pages

	// Shared components (visible in all phases)
	logView  *tview.TextView
	mainFlex *tview.Flex // Main layout: phase content on left, logs on right

	// Focus timer page components
	focusFlex  *tview.Flex
	timerPanel *tview.TextView

	// Exercise break page components
	exerciseFlex     *tview.Flex
	segmentListPanel *tview.TextView
	currentPanel     *tview.TextView

	// Summary page components
	summaryFlex   *tview.Flex
	summaryList   *tview.List
	summaryFooter *tview.TextView
}

func NewCursesUIView(logger *log.Logger, app *tview.Application, model *UIModel) *CursesUIViewImpl {
	return &CursesUIViewImpl{
		logger:       logger,
		app:          app,
		model:        model,
		currentPhase: PhaseIdle,
	}
}

// Initialize sets up the tview widgets
func (ui *CursesUIViewImpl) Initialize(controller *UIController) {
	// Create shared log view
	// Note: Don't use SetChangedFunc with app.Draw() - it can cause hangs during shutdown
	// when the app has been stopped but log messages are still being written.
	// The BaseUIView's event listeners already call Draw() after updating content.
	ui.logView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	ui.logView.SetBorder(true).SetTitle(" Logs ")

	// Create pages container for phase switching
	ui.pages = tview.NewPages()

	// Initialize each page
	ui.initFocusTimerPage(controller)
	ui.initExerciseBreakPage(controller)
	ui.initSummaryPage(controller)

	// Add pages
	ui.pages.AddPage(pageFocusTimer, ui.focusFlex, true, true)
	ui.pages.AddPage(pageExerciseBreak, ui.exerciseFlex, true, false)
	ui.pages.AddPage(pageSummary, ui.summaryFlex, true, false)

	// Create main layout: pages on left, logs on right
	ui.mainFlex = tview.NewFlex().
		AddItem(ui.pages, 0, 2, true).
		AddItem(ui.logView, 0, 1, false)
}

// initFocusTimerPage sets up the focus countdown page
func (ui *CursesUIViewImpl) initFocusTimerPage(controller *UIController) {
	ui.timerPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	ui.timerPanel.SetBorder(true).SetTitle(" Focus ")

	ui.focusFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.timerPanel, 0, 1, true)

	ui.updateFocusDisplay(SessionState{Phase: PhaseIdle})
}

// initExerciseBreakPage sets up the exercise break page
func (ui *CursesUIViewImpl) initExerciseBreakPage(controller *UIController) {
	ui.segmentListPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.segmentListPanel.SetBorder(true).SetTitle(" Sequence ")

	ui.currentPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.currentPanel.SetBorder(true).SetTitle(" Current Exercise ")

	ui.exerciseFlex = tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(ui.segmentListPanel, 0, 1, false).
		AddItem(ui.currentPanel, 0, 2, true)
}

// initSummaryPage sets up the break summary page
func (ui *CursesUIViewImpl) initSummaryPage(controller *UIController) {
	ui.summaryList = tview.NewList().
		ShowSecondaryText(true).
		SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			ui.logger.Printf("UI: Summary record selected: index=%d, text=%s", index, mainText)
			controller.CycleTag(index)
		})
	ui.summaryList.SetBorder(true).SetTitle(" Break Complete ")

	ui.summaryFooter = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	ui.summaryFooter.SetText("[yellow]Enter[white] Tag exercise (None/More/Less)  |  [yellow]Space[white]/[yellow]R[white] Start next focus block  |  [yellow]Esc[white] Quit")

	ui.summaryFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.summaryList, 0, 1, true).
		AddItem(ui.summaryFooter, 2, 0, false)
}

// SetupKeyboardHandlers sets up keyboard event handlers
func (ui *CursesUIViewImpl) SetupKeyboardHandlers(controller *UIController) {
	ui.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// Escape to quit
		if event.Key() == tcell.KeyEscape {
			controller.OnEscapeKey()
			return nil
		}

		if event.Key() == tcell.KeyRune {
			switch event.Rune() {
			case ' ':
				controller.PrimaryAction()
				return nil
			case 's', 'S':
				controller.Skip()
				return nil
			case 'r', 'R':
				controller.Restart()
				return nil
			}
		}

		return event
	})
}

// UpdateSessionState refreshes the page contents and switches pages to
// match the phase
func (ui *CursesUIViewImpl) UpdateSessionState(state SessionState) {
	switch state.Phase {
	case PhaseIdle, PhaseWork:
		ui.updateFocusDisplay(state)
	case PhaseExercise:
		ui.updateSegmentListDisplay(state)
		ui.updateCurrentExerciseDisplay(state)
	case PhaseSummary:
		ui.updateSummaryDisplay(state)
	}

	ui.setPhase(state.Phase)
}

// setPhase switches the visible page when the phase changes
func (ui *CursesUIViewImpl) setPhase(phase Phase) {
	if ui.currentPhase == phase {
		return
	}

	ui.currentPhase = phase

	switch phase {
	case PhaseIdle, PhaseWork:
		ui.pages.SwitchToPage(pageFocusTimer)
		ui.app.SetFocus(ui.timerPanel)
	case PhaseExercise:
		ui.pages.SwitchToPage(pageExerciseBreak)
		ui.app.SetFocus(ui.currentPanel)
	case PhaseSummary:
		ui.pages.SwitchToPage(pageSummary)
		ui.app.SetFocus(ui.summaryList)
	}
}

// updateFocusDisplay formats the idle / countdown view
func (ui *CursesUIViewImpl) updateFocusDisplay(state SessionState) {
	if ui.timerPanel == nil {
		return
	}

	var text string

	switch state.Phase {
	case PhaseIdle:
		text = "\n\n\n  [yellow]DeskBreak[white]\n\n"
		text += "  Focused work with micro-exercise breaks.\n\n"
		text += "  [green]Press Space to start a focus block[white]\n\n"
		text += "  [gray]S Skip to break  |  Esc Quit[white]\n"
	default:
		text = "\n\n\n  [gray]Focus time remaining[white]\n\n"
		text += fmt.Sprintf("  [yellow]%s[white]\n\n", FormatSecondsMMSS(state.WorkRemaining))
		if state.Paused {
			text += "  [red]PAUSED[white]\n\n"
			text += "  [gray]Space Resume  |  S Skip to break  |  Esc Quit[white]\n"
		} else {
			text += "\n  [gray]Space Pause  |  S Skip to break  |  Esc Quit[white]\n"
		}
	}

	ui.timerPanel.SetText(text)
}

// updateSegmentListDisplay renders the full break sequence with per-segment
// status markers
func (ui *CursesUIViewImpl) updateSegmentListDisplay(state SessionState) {
	if ui.segmentListPanel == nil {
		return
	}

	text := "\n"
	for i, seg := range state.Segments {
		switch seg.Status {
		case SegmentDone:
			text += fmt.Sprintf("  [green]✓[white] [gray]%s[white]\n", seg.Label())
		case SegmentOngoing:
			text += fmt.Sprintf("  [yellow]▶ %s[white]\n", seg.Label())
		default:
			text += fmt.Sprintf("  [gray]%d.[white] %s\n", i+1, seg.Label())
		}
	}

	ui.segmentListPanel.SetText(text)
}

// updateCurrentExerciseDisplay renders the ongoing segment's detail panel
func (ui *CursesUIViewImpl) updateCurrentExerciseDisplay(state SessionState) {
	if ui.currentPanel == nil {
		return
	}

	var text string

	seg, ok := state.CurrentSegment()
	if !ok {
		text = "\n  [gray]No exercise in progress[white]\n"
	} else {
		text = "\n"
		text += fmt.Sprintf("  [yellow]%s[white]", seg.Exercise.Name)
		if seg.Side != SideNone {
			text += fmt.Sprintf("  [cyan](%s side)[white]", seg.Side)
		}
		text += "\n\n"
		text += fmt.Sprintf("  %s\n\n", seg.Exercise.Description)
		text += fmt.Sprintf("  [gray]Remaining:[white] [yellow]%s[white]\n", FormatSecondsMMSS(state.SegmentRemaining))
		if state.Paused {
			text += "\n  [red]PAUSED[white]\n"
		}
		text += "\n  [gray]Space Pause/Resume  |  S Skip exercise  |  Esc Quit[white]\n"
	}

	ui.currentPanel.SetText(text)
}

// updateSummaryDisplay populates the completed record list, preserving the
// cursor across tag updates
func (ui *CursesUIViewImpl) updateSummaryDisplay(state SessionState) {
	if ui.summaryList == nil {
		return
	}

	currentItem := ui.summaryList.GetCurrentItem()

	ui.summaryList.Clear()

	for _, record := range state.Completed {
		label := record.Name
		if record.Side != SideNone {
			label = fmt.Sprintf("%s (%s)", record.Name, record.Side)
		}
		secondary := "    Tag: " + record.Tag.String()
		switch record.Tag {
		case TagMore:
			secondary = "    Tag: [green]More[white]"
		case TagLess:
			secondary = "    Tag: [red]Less[white]"
		}
		ui.summaryList.AddItem(label, secondary, 0, nil)
	}

	if currentItem >= 0 && currentItem < ui.summaryList.GetItemCount() {
		ui.summaryList.SetCurrentItem(currentItem)
	}
}

// GetLogViewHeight returns the visible height of the log view
func (ui *CursesUIViewImpl) GetLogViewHeight() int {
	_, _, _, height := ui.logView.GetInnerRect()
	return height
}

// ClearLogView clears the log view
func (ui *CursesUIViewImpl) ClearLogView() {
	ui.logView.Clear()
}

// WriteLogLine writes a line to the log view
func (ui *CursesUIViewImpl) WriteLogLine(line string) error {
	_, err := fmt.Fprint(ui.logView, line)
	return err
}

// Draw refreshes/redraws the UI
func (ui *CursesUIViewImpl) Draw() error {
	ui.app.Draw()
	return nil
}

// Run starts the UI and blocks until it exits
func (ui *CursesUIViewImpl) Run() error {
	ui.app.SetRoot(ui.mainFlex, true)
	return ui.app.Run()
}

// Stop stops the UI framework
func (ui *CursesUIViewImpl) Stop() {
	ui.app.Stop()
}
