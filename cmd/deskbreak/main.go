package main

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rivo/tview"
	"github.com/spf13/pflag"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/deskbreak/deskbreak/internal/config"
	"github.com/deskbreak/deskbreak/internal/deskbreak"
	"github.com/deskbreak/deskbreak/internal/effects"
)

// uiLogChanSize bounds how many log lines can queue for the UI before
// writers start dropping.
const uiLogChanSize = 256

// chanLineWriter splits writes into lines and pushes them to a channel
// without ever blocking the logger.
type chanLineWriter struct {
	lines chan<- string
}

func (w *chanLineWriter) Write(p []byte) (int, error) {
	for _, line := range strings.SplitAfter(string(p), "\n") {
		if line == "" {
			continue
		}
		select {
		case w.lines <- line:
		default:
			// UI consumer is behind; losing display lines is fine, the
			// file writer still has them.
		}
	}
	return len(p), nil
}

func main() {
	pflag.Int("work-duration", config.DefaultWorkDurationSeconds, "focus block length in seconds")
	pflag.Int("exercise-duration", config.DefaultExerciseDurationSeconds, "exercise segment length in seconds")
	pflag.Int("max-segments", config.DefaultMaxSegments, "segment slots per exercise break")
	pflag.Bool("audio-cues", true, "play terminal bell cues")
	pflag.Bool("haptics", true, "emit vibration patterns")
	pflag.String("log-file", "", "log file path (default ~/.deskbreak/deskbreak.log)")
	pflag.Parse()

	cfg, err := config.Load(pflag.CommandLine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "deskbreak: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "deskbreak: creating log directory: %v\n", err)
		os.Exit(1)
	}

	fileWriter := &lumberjack.Logger{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
	}
	defer fileWriter.Close()

	uiLogChan := make(chan string, uiLogChanSize)
	logger := log.New(io.MultiWriter(fileWriter, &chanLineWriter{lines: uiLogChan}), "", log.LstdFlags)
	logger.Println("Main: Starting deskbreak")

	catalog := deskbreak.NewCatalog(deskbreak.DefaultExercises)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	session := deskbreak.NewSession(catalog, deskbreak.SessionConfig{
		WorkDurationSeconds:     cfg.Session.WorkDurationSeconds,
		ExerciseDurationSeconds: cfg.Session.ExerciseDurationSeconds,
		MaxSegments:             cfg.Session.MaxSegments,
	}, rng, logger)

	model := deskbreak.NewUIModel(logger, uiLogChan)

	player := effects.NewTerminalPlayer(os.Stdout, logger)
	feedback := deskbreak.NewFeedbackDispatcher(player, cfg.Feedback.AudioCues, cfg.Feedback.Haptics, logger)

	manager := deskbreak.NewSessionManager(session, model, feedback, logger)
	controller := deskbreak.NewUIController(model, manager, logger)

	app := tview.NewApplication()
	uiView := deskbreak.NewCursesUIView(logger, app, model)
	base := deskbreak.NewBaseUIView(deskbreak.NewBaseUIViewArgs{
		UIView:       uiView,
		UIModel:      model,
		UIController: controller,
		Logger:       logger,
	})

	runErr := base.Run()

	logger.Println("Main: UI exited, shutting down")
	base.Shutdown()
	manager.Shutdown()
	model.Shutdown()
	logger.Println("Main: Shutdown complete")

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "deskbreak: UI error: %v\n", runErr)
		os.Exit(1)
	}
}
