package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dkaledin/teamtrack/internal/client/api"
)

// parseClock turns a "HH:MM" string into a timestamp on today's local
// date. An empty string yields nil, meaning the time is not set.
func parseClock(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return nil, fmt.Errorf("time must be HH:MM (24-hour): %w", err)
	}
	now := time.Now()
	t := time.Date(now.Year(), now.Month(), now.Day(), parsed.Hour(), parsed.Minute(), 0, 0, time.Local)
	return &t, nil
}

func formatClock(t *time.Time) string {
	if t == nil {
		return "--:--"
	}
	return t.Local().Format("15:04")
}

func printTask(task *api.Task) {
	fmt.Printf("%s  %s [%s => %s] %s\n",
		task.ID, task.Title, formatClock(task.FromTime), formatClock(task.ToTime), task.Link)
}

// promptTaskInput gathers the task fields interactively. All fields are
// required; in edit flows pressing Enter keeps the current value.
func (a *App) promptTaskInput(current *api.Task) (*api.TaskInput, error) {
	titlePrompt := "Enter task title"
	if current != nil {
		titlePrompt = fmt.Sprintf("Enter task title (current: %s, Enter to keep)", current.Title)
	}
	title, err := getSimpleText(a.reader, titlePrompt, os.Stdout)
	if err != nil {
		return nil, err
	}
	if title == "" && current != nil {
		title = current.Title
	}
	if title == "" {
		return nil, errors.New("task title is required")
	}

	link, err := getSimpleText(a.reader, "Enter link", os.Stdout)
	if err != nil {
		return nil, err
	}
	if link == "" && current != nil {
		link = current.Link
	}
	if link == "" {
		return nil, errors.New("link is required")
	}

	fromRaw, err := getSimpleText(a.reader, "Start time HH:MM", os.Stdout)
	if err != nil {
		return nil, err
	}
	from, err := parseClock(fromRaw)
	if err != nil {
		return nil, err
	}
	if from == nil && current != nil {
		from = current.FromTime
	}

	toRaw, err := getSimpleText(a.reader, "End time HH:MM", os.Stdout)
	if err != nil {
		return nil, err
	}
	to, err := parseClock(toRaw)
	if err != nil {
		return nil, err
	}
	if to == nil && current != nil {
		to = current.ToTime
	}

	if from == nil || to == nil {
		return nil, errors.New("both start and end times are required")
	}

	return &api.TaskInput{Title: title, Link: link, FromTime: from, ToTime: to}, nil
}

func (a *App) AddTask(ctx context.Context) error {
	in, err := a.promptTaskInput(nil)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	task, err := a.api.CreateTask(ctx, in)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Println("Added:")
	printTask(task)
	return nil
}

// ListTasks shows the caller's tasks. By default only today's tasks are
// listed; "list all" removes the date filter.
func (a *App) ListTasks(ctx context.Context, args []string) error {
	opts := api.ListTasksOptions{}
	for _, arg := range args {
		switch arg {
		case "all":
			opts.AllDates = true
		case "title":
			opts.SortBy = "title"
		default:
			opts.Search = arg
		}
	}

	tasks, today, err := a.api.ListTasks(ctx, opts)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
	}
	for _, task := range tasks {
		printTask(&task)
	}
	if today != nil {
		fmt.Printf("Today: %d task(s), %d hour(s)\n", today.TaskCount, today.TotalHours)
	}
	return nil
}

func (a *App) EditTask(ctx context.Context, args []string) error {
	id := args[0]

	current, err := a.api.GetTask(ctx, id)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	in, err := a.promptTaskInput(current)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	updated, err := a.api.UpdateTask(ctx, id, in)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Println("Updated:")
	printTask(updated)
	return nil
}

func (a *App) DeleteTask(ctx context.Context, args []string) error {
	if err := a.api.DeleteTask(ctx, args[0]); err != nil {
		log.Println(err.Error())
		return err
	}
	fmt.Println("Deleted.")
	return nil
}
