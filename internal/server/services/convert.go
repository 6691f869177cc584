package services

import (
	"github.com/dkaledin/teamtrack/internal/report"
	"github.com/dkaledin/teamtrack/internal/server/models"
)

func toReportUsers(users []*models.User) []report.User {
	out := make([]report.User, 0, len(users))
	for _, u := range users {
		out = append(out, report.User{
			ID:          u.ID,
			Email:       u.Email,
			DisplayName: u.DisplayName,
			IsAdmin:     u.IsAdmin,
			CreatedAt:   u.CreatedAt,
		})
	}
	return out
}

func toReportTasks(tasks []*models.Task) []report.Task {
	out := make([]report.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, report.Task{
			ID:        t.ID,
			UserID:    t.UserID,
			Title:     t.Title,
			Link:      t.Link,
			FromTime:  t.FromTime,
			ToTime:    t.ToTime,
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		})
	}
	return out
}
