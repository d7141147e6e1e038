package deskbreak

import (
	"context"
	"log"
	"sync"

	"github.com/deskbreak/deskbreak/internal/events"
	"github.com/deskbreak/deskbreak/internal/goroutines"
)

// UIModel is the observable state the views render from. The
// SessionManager pushes session snapshots in; views subscribe to the
// feeds and pull the log tail.
type UIModel struct {
	sessionStateFeed *events.Feed[SessionState]
	sessionState     SessionState
	logFeed          *events.Feed[string]
	closeFeed        *events.Feed[struct{}]

	logLines []string
	logMu    sync.RWMutex
	mu       sync.RWMutex
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	logger   *log.Logger
}

const maxLogLines = 1000

// NewUIModel creates a UIModel. uiLogChan carries log lines destined for
// the on-screen log pane; the model buffers the most recent ones.
func NewUIModel(logger *log.Logger, uiLogChan <-chan string) *UIModel {
	if logger == nil {
		panic("UIModel: logger cannot be nil")
	}
	if uiLogChan == nil {
		panic("UIModel: uiLogChan cannot be nil")
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &UIModel{
		sessionStateFeed: events.NewFeed[SessionState](true),
		sessionState:     SessionState{Phase: PhaseIdle},
		logFeed:          events.NewFeed[string](false),
		closeFeed:        events.NewFeed[struct{}](false),
		logLines:         make([]string, 0, maxLogLines),
		ctx:              ctx,
		cancel:           cancel,
		logger:           logger,
	}

	m.wg.Add(1)
	goroutines.Spawn(logger, func() { m.readFromLogChannel(ctx, uiLogChan) })

	return m
}

// Shutdown stops the model's goroutines and waits for them to finish.
func (m *UIModel) Shutdown() {
	m.logger.Println("UIModel: Shutting down")
	m.cancel()
	m.wg.Wait()
	m.logger.Println("UIModel: Shutdown complete")
}

// SubscribeSessionState registers a channel for session state snapshots.
// The latest snapshot is replayed immediately. Returns a cancel func.
func (m *UIModel) SubscribeSessionState(ch chan<- SessionState) func() {
	return m.sessionStateFeed.Subscribe(ch)
}

// GetSessionState returns the most recent session snapshot.
func (m *UIModel) GetSessionState() SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessionState
}

// SetSessionState stores the snapshot and notifies subscribers.
func (m *UIModel) SetSessionState(state SessionState) {
	m.mu.Lock()
	m.sessionState = state
	m.mu.Unlock()

	m.sessionStateFeed.Publish(state)
}

// SubscribeLog registers a channel for new log lines. Returns a cancel func.
func (m *UIModel) SubscribeLog(ch chan<- string) func() {
	return m.logFeed.Subscribe(ch)
}

// SubscribeClose registers a channel for the close-application signal.
// Returns a cancel func.
func (m *UIModel) SubscribeClose(ch chan<- struct{}) func() {
	return m.closeFeed.Subscribe(ch)
}

// RequestCloseApplication signals that the application should close.
func (m *UIModel) RequestCloseApplication() {
	m.closeFeed.Publish(struct{}{})
}

// readFromLogChannel buffers incoming log lines and notifies subscribers.
func (m *UIModel) readFromLogChannel(ctx context.Context, logChan <-chan string) {
	defer m.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-logChan:
			if !ok {
				return
			}

			m.logMu.Lock()
			m.logLines = append(m.logLines, line)
			if len(m.logLines) > maxLogLines {
				m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
			}
			m.logMu.Unlock()

			m.logFeed.Publish(line)
		}
	}
}

// GetLogTail returns the last n buffered log lines.
func (m *UIModel) GetLogTail(n int) []string {
	m.logMu.RLock()
	defer m.logMu.RUnlock()

	if n <= 0 {
		return []string{}
	}
	if n >= len(m.logLines) {
		result := make([]string, len(m.logLines))
		copy(result, m.logLines)
		return result
	}
	result := make([]string, n)
	copy(result, m.logLines[len(m.logLines)-n:])
	return result
}
