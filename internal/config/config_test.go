package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into dir for the duration of the test so Load picks up (or
// fails to find) a deskbreak.yaml there.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultWorkDurationSeconds, cfg.Session.WorkDurationSeconds)
	assert.Equal(t, DefaultExerciseDurationSeconds, cfg.Session.ExerciseDurationSeconds)
	assert.Equal(t, DefaultMaxSegments, cfg.Session.MaxSegments)
	assert.True(t, cfg.Feedback.AudioCues)
	assert.True(t, cfg.Feedback.Haptics)
	assert.NotEmpty(t, cfg.Log.File)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
session:
  work_duration_seconds: 1500
  exercise_duration_seconds: 45
  max_segments: 3
feedback:
  audio_cues: false
log:
  file: /tmp/deskbreak-test.log
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deskbreak.yaml"), []byte(yaml), 0644))
	chdir(t, dir)

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, 1500, cfg.Session.WorkDurationSeconds)
	assert.Equal(t, 45, cfg.Session.ExerciseDurationSeconds)
	assert.Equal(t, 3, cfg.Session.MaxSegments)
	assert.False(t, cfg.Feedback.AudioCues)
	assert.True(t, cfg.Feedback.Haptics) // untouched default
	assert.Equal(t, "/tmp/deskbreak-test.log", cfg.Log.File)
}

func TestLoad_FlagOverridesFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
session:
  work_duration_seconds: 1500
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deskbreak.yaml"), []byte(yaml), 0644))
	chdir(t, dir)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("work-duration", DefaultWorkDurationSeconds, "")
	require.NoError(t, flags.Parse([]string{"--work-duration=900"}))

	cfg, err := Load(flags)
	require.NoError(t, err)
	assert.Equal(t, 900, cfg.Session.WorkDurationSeconds)
}

func TestLoad_RejectsNonPositiveDurations(t *testing.T) {
	dir := t.TempDir()
	yaml := `
session:
  work_duration_seconds: -10
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deskbreak.yaml"), []byte(yaml), 0644))
	chdir(t, dir)

	_, err := Load(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "work_duration_seconds")
}

func TestLoad_RejectsNegativeMaxSegments(t *testing.T) {
	dir := t.TempDir()
	yaml := `
session:
  max_segments: -1
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deskbreak.yaml"), []byte(yaml), 0644))
	chdir(t, dir)

	_, err := Load(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_segments")
}

func TestLoad_ZeroMaxSegmentsIsAllowed(t *testing.T) {
	dir := t.TempDir()
	yaml := `
session:
  max_segments: 0
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deskbreak.yaml"), []byte(yaml), 0644))
	chdir(t, dir)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Session.MaxSegments)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deskbreak.yaml"), []byte("session: ["), 0644))
	chdir(t, dir)

	_, err := Load(nil)
	require.Error(t, err)
}
