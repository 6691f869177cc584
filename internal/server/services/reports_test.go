package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dkaledin/teamtrack/internal/report"
	"github.com/dkaledin/teamtrack/internal/server/models"
	"github.com/dkaledin/teamtrack/internal/server/shared/db"
	"github.com/dkaledin/teamtrack/internal/server/watch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedTeam creates two profiles and a few tasks for today.
func seedTeam(t *testing.T, m db.RepositoryManager) {
	t.Helper()
	ctx := context.Background()

	users := NewUserService(m, watch.NewHub(), nil, discardLogger(), testConfig())
	if _, _, err := users.CreateProfile(ctx, &models.Principal{ID: "u-1", Email: "ada@example.com"}, "Ada"); err != nil {
		t.Fatalf("CreateProfile error: %v", err)
	}
	if _, _, err := users.CreateProfile(ctx, &models.Principal{ID: "u-2", Email: "bob@example.com"}, "Bob"); err != nil {
		t.Fatalf("CreateProfile error: %v", err)
	}

	tasks := NewTaskService(m, watch.NewHub())
	from := time.Now().Truncate(time.Hour)
	to := from.Add(2 * time.Hour)
	for _, in := range []struct {
		user  string
		title string
	}{
		{"u-1", "Fix login flow"},
		{"u-1", "Review PR"},
		{"u-2", "Write release notes"},
	} {
		if _, err := tasks.Create(ctx, in.user, &TaskInput{Title: in.title, Link: "https://tracker/1", FromTime: &from, ToTime: &to}); err != nil {
			t.Fatalf("Create task error: %v", err)
		}
	}
}

func TestReportBuild_Today(t *testing.T) {
	m := db.NewInMemoryRepositoryManager()
	seedTeam(t, m)
	s := NewReportService(m, nil, testConfig())

	r, err := s.Build(context.Background(), time.Time{}, report.ModeDay)
	require.NoError(t, err)

	assert.Equal(t, 2, r.Stats.ActiveUsers)
	assert.Equal(t, 3, r.Stats.TotalTasks)
	assert.Equal(t, 6, r.Stats.TotalHours)
	require.Len(t, r.Entries, 2)
	assert.Equal(t, "Ada", r.Entries[0].User.DisplayName)
	assert.Equal(t, 2, r.Entries[0].TaskCount)
}

func TestReportExportText_Content(t *testing.T) {
	m := db.NewInMemoryRepositoryManager()
	seedTeam(t, m)
	s := NewReportService(m, nil, testConfig())

	content, fileName, err := s.ExportText(context.Background(), time.Time{})
	require.NoError(t, err)

	assert.Contains(t, content, "Member Name: Ada\n")
	assert.Contains(t, content, "Member Name: Bob\n")
	assert.Contains(t, content, "Write release notes")
	assert.Equal(t, report.ExportFileName(time.Now()), fileName)
}

func TestReportExportText_EmptyPlaceholder(t *testing.T) {
	m := db.NewInMemoryRepositoryManager()
	s := NewReportService(m, nil, testConfig())

	content, _, err := s.ExportText(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "No tasks to export for today.", content)
}

func TestReportEmailExport(t *testing.T) {
	m := db.NewInMemoryRepositoryManager()
	seedTeam(t, m)
	mail := &fakeMailer{}
	s := NewReportService(m, mail, testConfig())

	err := s.EmailExport(context.Background(), time.Time{}, "boss@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"boss@example.com"}, mail.sentTo())
}

func TestMemberToday(t *testing.T) {
	m := db.NewInMemoryRepositoryManager()
	seedTeam(t, m)
	s := NewReportService(m, nil, testConfig())

	stats, err := s.MemberToday(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TaskCount)
	assert.Equal(t, 4, stats.TotalHours)

	stats, err = s.MemberToday(context.Background(), "u-3")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TaskCount)
}

func TestExportStorageKey_Layout(t *testing.T) {
	day := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	key := exportStorageKey(day)
	assert.True(t, strings.HasPrefix(key, "exports/2026/3/5/"), key)
}
