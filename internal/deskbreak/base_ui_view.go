package deskbreak

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/deskbreak/deskbreak/internal/goroutines"
)

// BaseUIView contains the base logic shared by all UI implementations: it
// binds model feeds to the view and owns the goroutines doing so.
type BaseUIView struct {
	uiView       UIView
	uiModel      *UIModel
	uiController *UIController
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	logger       *log.Logger
}

// NewBaseUIViewArgs holds the arguments for creating a new BaseUIView
type NewBaseUIViewArgs struct {
	UIView       UIView
	UIModel      *UIModel
	UIController *UIController
	Logger       *log.Logger
}

// NewBaseUIView creates a new BaseUIView with the given implementation
func NewBaseUIView(args NewBaseUIViewArgs) *BaseUIView {
	if args.Logger == nil {
		panic("BaseUIView: logger cannot be nil")
	}
	if args.UIView == nil {
		panic("BaseUIView: UIView cannot be nil")
	}
	if args.UIModel == nil {
		panic("BaseUIView: UIModel cannot be nil")
	}
	if args.UIController == nil {
		panic("BaseUIView: UIController cannot be nil")
	}
	ctx, cancel := context.WithCancel(context.Background())

	base := &BaseUIView{
		uiView:       args.UIView,
		uiModel:      args.UIModel,
		uiController: args.UIController,
		ctx:          ctx,
		cancel:       cancel,
		logger:       args.Logger,
	}

	args.UIView.Initialize(args.UIController)
	args.UIView.SetupKeyboardHandlers(args.UIController)
	args.UIView.UpdateSessionState(args.UIModel.GetSessionState())

	base.wg.Add(1)
	goroutines.Spawn(base.logger, func() { base.monitorLogResize() })
	base.updateLogDisplay()

	base.setupEventListeners()

	return base
}

func (base *BaseUIView) setupEventListeners() {
	// New log lines scroll the visible tail.
	logChan := make(chan string, 1)
	logCancel := base.uiModel.SubscribeLog(logChan)
	base.wg.Add(1)
	goroutines.Spawn(base.logger, func() {
		defer base.wg.Done()
		defer logCancel()
		for {
			select {
			case <-base.ctx.Done():
				return
			case _, ok := <-logChan:
				if !ok {
					return
				}
				base.updateLogDisplay()
				if err := base.uiView.Draw(); err != nil {
					base.logger.Printf("BaseUIView: Error drawing: %v", err)
				}
			}
		}
	})

	// Session snapshots drive the page content.
	stateChan := make(chan SessionState, 1)
	stateCancel := base.uiModel.SubscribeSessionState(stateChan)
	base.wg.Add(1)
	goroutines.Spawn(base.logger, func() {
		defer base.wg.Done()
		defer stateCancel()
		for {
			select {
			case <-base.ctx.Done():
				return
			case state, ok := <-stateChan:
				if !ok {
					return
				}
				base.uiView.UpdateSessionState(state)
				if err := base.uiView.Draw(); err != nil {
					base.logger.Printf("BaseUIView: Error drawing: %v", err)
				}
			}
		}
	})

	// Close request stops the UI framework.
	closeChan := make(chan struct{}, 1)
	closeCancel := base.uiModel.SubscribeClose(closeChan)
	base.wg.Add(1)
	goroutines.Spawn(base.logger, func() {
		defer base.wg.Done()
		defer closeCancel()
		select {
		case <-base.ctx.Done():
			return
		case _, ok := <-closeChan:
			if !ok {
				return
			}
			base.uiView.Stop()
		}
	})
}

func (base *BaseUIView) updateLogDisplay() {
	height := base.uiView.GetLogViewHeight()
	if height <= 0 {
		return
	}

	logLines := base.uiModel.GetLogTail(height)

	base.uiView.ClearLogView()
	for _, line := range logLines {
		if err := base.uiView.WriteLogLine(line); err != nil {
			base.logger.Printf("BaseUIView: Error writing to log view: %v", err)
		}
	}
}

// monitorLogResize refreshes the log tail when the terminal is resized.
func (base *BaseUIView) monitorLogResize() {
	defer base.wg.Done()
	var lastHeight int
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-base.ctx.Done():
			return
		case <-ticker.C:
			height := base.uiView.GetLogViewHeight()
			if height != lastHeight && height > 0 {
				lastHeight = height
				base.updateLogDisplay()
				if err := base.uiView.Draw(); err != nil {
					base.logger.Printf("BaseUIView: Error drawing: %v", err)
				}
			}
		}
	}
}

// Shutdown stops all goroutines and waits for them to finish
func (base *BaseUIView) Shutdown() {
	base.logger.Println("BaseUIView: Shutting down")
	base.cancel()
	base.wg.Wait()
	base.logger.Println("BaseUIView: Shutdown complete")
}

// Run starts the UI and blocks until it exits
func (base *BaseUIView) Run() error {
	return base.uiView.Run()
}
