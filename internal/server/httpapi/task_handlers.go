package httpapi

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/dkaledin/teamtrack/internal/report"
	"github.com/dkaledin/teamtrack/internal/server/models"
	"github.com/dkaledin/teamtrack/internal/server/services"
)

func (s *Server) createTaskHandler(w http.ResponseWriter, r *http.Request) {
	profile := profileFromRequest(r)

	var input services.TaskInput
	if !s.readJSON(w, r, &input) {
		return
	}

	task, err := s.tasks.Create(r.Context(), profile.ID, &input)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, envelope{"task": task})
}

// listTasksHandler returns the caller's own tasks. By default the list
// is limited to today; ?scope=all lifts that. ?q= filters by title/link
// substring and ?sort=title orders alphabetically instead of newest
// first. The response carries the member's own counters for today.
func (s *Server) listTasksHandler(w http.ResponseWriter, r *http.Request) {
	profile := profileFromRequest(r)

	tasks, err := s.tasks.ListMine(r.Context(), profile.ID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	if r.URL.Query().Get("scope") != "all" {
		win := report.NewWindow(time.Time{}, report.ModeDay)
		filtered := make([]*models.Task, 0, len(tasks))
		for _, t := range tasks {
			if win.Contains(t.CreatedAt) {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}

	if q := strings.ToLower(r.URL.Query().Get("q")); q != "" {
		filtered := make([]*models.Task, 0, len(tasks))
		for _, t := range tasks {
			if strings.Contains(strings.ToLower(t.Title), q) || strings.Contains(strings.ToLower(t.Link), q) {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}

	if r.URL.Query().Get("sort") == "title" {
		sort.SliceStable(tasks, func(i, j int) bool {
			return strings.ToLower(tasks[i].Title) < strings.ToLower(tasks[j].Title)
		})
	}

	stats, err := s.reports.MemberToday(r.Context(), profile.ID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{"tasks": tasks, "today": stats})
}

func (s *Server) getTaskHandler(w http.ResponseWriter, r *http.Request) {
	profile := profileFromRequest(r)

	task, err := s.tasks.Get(r.Context(), profile.ID, profile.IsAdmin, r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{"task": task})
}

func (s *Server) updateTaskHandler(w http.ResponseWriter, r *http.Request) {
	profile := profileFromRequest(r)

	var input services.TaskInput
	if !s.readJSON(w, r, &input) {
		return
	}

	task, err := s.tasks.Update(r.Context(), profile.ID, profile.IsAdmin, r.PathValue("id"), &input)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{"task": task})
}

func (s *Server) deleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	profile := profileFromRequest(r)

	if err := s.tasks.Delete(r.Context(), profile.ID, profile.IsAdmin, r.PathValue("id")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{"status": "deleted"})
}
