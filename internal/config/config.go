package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds everything the application reads at startup. Values come
// from defaults, then an optional deskbreak.yaml, then DESKBREAK_* env
// vars, then command-line flags, in increasing priority.
type Config struct {
	Session  SessionConfig  `mapstructure:"session"`
	Feedback FeedbackConfig `mapstructure:"feedback"`
	Log      LogConfig      `mapstructure:"log"`
}

type SessionConfig struct {
	WorkDurationSeconds     int `mapstructure:"work_duration_seconds"`
	ExerciseDurationSeconds int `mapstructure:"exercise_duration_seconds"`
	MaxSegments             int `mapstructure:"max_segments"`
}

type FeedbackConfig struct {
	AudioCues bool `mapstructure:"audio_cues"`
	Haptics   bool `mapstructure:"haptics"`
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Defaults matching the session contract: 45 minute focus block, 60 second
// exercise segments, at most 5 segment slots per break.
const (
	DefaultWorkDurationSeconds     = 2700
	DefaultExerciseDurationSeconds = 60
	DefaultMaxSegments             = 5
)

// Load builds the configuration. flags may be nil; when given, recognized
// flags override file and environment values.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("session.work_duration_seconds", DefaultWorkDurationSeconds)
	v.SetDefault("session.exercise_duration_seconds", DefaultExerciseDurationSeconds)
	v.SetDefault("session.max_segments", DefaultMaxSegments)
	v.SetDefault("feedback.audio_cues", true)
	v.SetDefault("feedback.haptics", true)
	v.SetDefault("log.file", defaultLogFile())
	v.SetDefault("log.max_size_mb", 5)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 14)

	v.SetConfigName("deskbreak")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".deskbreak"))
	}

	v.SetEnvPrefix("DESKBREAK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		bindFlag(v, "session.work_duration_seconds", flags, "work-duration")
		bindFlag(v, "session.exercise_duration_seconds", flags, "exercise-duration")
		bindFlag(v, "session.max_segments", flags, "max-segments")
		bindFlag(v, "feedback.audio_cues", flags, "audio-cues")
		bindFlag(v, "feedback.haptics", flags, "haptics")
		bindFlag(v, "log.file", flags, "log-file")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func bindFlag(v *viper.Viper, key string, flags *pflag.FlagSet, name string) {
	if f := flags.Lookup(name); f != nil {
		// BindPFlag only errors on a nil flag, checked above.
		_ = v.BindPFlag(key, f)
	}
}

func defaultLogFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".deskbreak", "deskbreak.log")
}

// The session treats malformed durations as caller errors, so they are
// rejected here, before anything is constructed.
func (c *Config) validate() error {
	if c.Session.WorkDurationSeconds <= 0 {
		return fmt.Errorf("session.work_duration_seconds must be positive, got %d", c.Session.WorkDurationSeconds)
	}
	if c.Session.ExerciseDurationSeconds <= 0 {
		return fmt.Errorf("session.exercise_duration_seconds must be positive, got %d", c.Session.ExerciseDurationSeconds)
	}
	if c.Session.MaxSegments < 0 {
		return fmt.Errorf("session.max_segments cannot be negative, got %d", c.Session.MaxSegments)
	}
	if c.Log.File == "" {
		return fmt.Errorf("log.file is required")
	}
	return nil
}
