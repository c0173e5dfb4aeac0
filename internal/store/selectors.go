package store

import "todoapp/backend/internal/models"

// FilteredTasks は現在のフィルターに合うタスクを返します。
func FilteredTasks(s State) []models.Task {
	out := make([]models.Task, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		switch s.Filter {
		case FilterCompleted:
			if !t.IsCompleted {
				continue
			}
		case FilterPending:
			if t.IsCompleted {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// Statistics は読み込み済みのタスクから集計します。
func Statistics(s State) models.TaskStatistics {
	stats := models.TaskStatistics{TotalTasks: len(s.Tasks)}
	for _, t := range s.Tasks {
		if t.IsCompleted {
			stats.CompletedTasks++
		}
	}
	stats.PendingTasks = stats.TotalTasks - stats.CompletedTasks
	return stats
}
