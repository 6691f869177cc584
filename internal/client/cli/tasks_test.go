package cli

import (
	"testing"
	"time"

	"github.com/dkaledin/teamtrack/internal/client/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	got, err := parseClock("09:30")
	require.NoError(t, err)
	require.NotNil(t, got)

	now := time.Now()
	assert.Equal(t, now.Year(), got.Year())
	assert.Equal(t, now.Month(), got.Month())
	assert.Equal(t, now.Day(), got.Day())
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 30, got.Minute())
}

func TestParseClock_Empty(t *testing.T) {
	got, err := parseClock("")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestParseClock_Invalid(t *testing.T) {
	_, err := parseClock("half past nine")
	assert.Error(t, err)
}

func TestPromptTaskInput_LinkRequired(t *testing.T) {
	app := testApp(t)
	stubInput(t, "write docs", "")

	_, err := app.promptTaskInput(nil)
	assert.Error(t, err)
}

func TestPromptTaskInput_TimesRequired(t *testing.T) {
	app := testApp(t)
	stubInput(t, "write docs", "https://tracker/7", "", "")

	_, err := app.promptTaskInput(nil)
	assert.Error(t, err)
}

func TestPromptTaskInput_EditKeepsCurrent(t *testing.T) {
	app := testApp(t)
	stubInput(t, "", "", "", "")

	from := time.Date(2026, 8, 29, 9, 0, 0, 0, time.Local)
	to := from.Add(2 * time.Hour)
	current := &api.Task{
		Title:    "write docs",
		Link:     "https://tracker/7",
		FromTime: &from,
		ToTime:   &to,
	}

	in, err := app.promptTaskInput(current)
	require.NoError(t, err)
	assert.Equal(t, "write docs", in.Title)
	assert.Equal(t, "https://tracker/7", in.Link)
	assert.Equal(t, &from, in.FromTime)
	assert.Equal(t, &to, in.ToTime)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "--:--", formatClock(nil))

	ts := time.Date(2026, 8, 29, 14, 5, 0, 0, time.Local)
	assert.Equal(t, "14:05", formatClock(&ts))
}
