package report

// Aggregate groups the filtered tasks per owning user. Users keep their
// input order; users with no tasks in the set are omitted. A task whose
// owner is not in users (snapshots of the two collections arrive on
// independent subscriptions and may briefly disagree) is excluded from the
// per-user entries but still counts toward the overall stats.
//
// Per-user TotalHours sums the Hours of the user's tasks, with
// "unavailable" contributing 0. Stats.TotalHours is derived again over all
// filtered tasks rather than summed from the entries.
func Aggregate(users []User, tasks []Task) ([]Entry, Stats) {
	entries := make([]Entry, 0, len(users))

	for _, u := range users {
		var owned []Task
		hours := 0
		for _, t := range tasks {
			if t.UserID != u.ID {
				continue
			}
			owned = append(owned, t)
			if h, ok := Hours(t.FromTime, t.ToTime); ok {
				hours += h
			}
		}
		if len(owned) == 0 {
			continue
		}
		entries = append(entries, Entry{
			User:       u,
			Tasks:      owned,
			TaskCount:  len(owned),
			TotalHours: hours,
		})
	}

	stats := Stats{
		ActiveUsers: len(entries),
		TotalTasks:  len(tasks),
	}
	for _, t := range tasks {
		if h, ok := Hours(t.FromTime, t.ToTime); ok {
			stats.TotalHours += h
		}
	}

	return entries, stats
}
