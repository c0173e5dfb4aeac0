// Package store はクライアント側のタスク状態を reducer と購読で管理します。
package store

import (
	"fmt"

	"todoapp/backend/internal/models"
)

// Filter は一覧表示の絞り込み条件です。
type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterPending   Filter = "pending"
)

// ParseFilter は文字列を Filter に変換します。
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(s); f {
	case FilterAll, FilterCompleted, FilterPending:
		return f, nil
	case "":
		return FilterAll, nil
	default:
		return "", fmt.Errorf("unknown filter %q (want all, completed or pending)", s)
	}
}

// State はストアが保持する状態です。Reducer は State を書き換えず、新しい値を返します。
type State struct {
	Tasks   []models.Task
	Filter  Filter
	Loading bool
	Error   string
}

// InitialState は空の状態を返します。
func InitialState() State {
	return State{Tasks: []models.Task{}, Filter: FilterAll}
}

// Reducer は状態とアクションから次の状態を計算します。
func Reducer(state State, action Action) State {
	switch a := action.(type) {
	case LoadTasks:
		state.Loading = true
		state.Error = ""
	case LoadTasksSuccess:
		state.Tasks = append([]models.Task{}, a.Tasks...)
		state.Loading = false
		state.Error = ""

	case CreateTask, UpdateTask, DeleteTask, ToggleTask:
		state.Loading = true

	case CreateTaskSuccess:
		tasks := make([]models.Task, 0, len(state.Tasks)+1)
		state.Tasks = append(append(tasks, a.Task), state.Tasks...)
		state.Loading = false
	case UpdateTaskSuccess:
		state.Tasks = replaceTask(state.Tasks, a.Task)
		state.Loading = false
	case ToggleTaskSuccess:
		state.Tasks = replaceTask(state.Tasks, a.Task)
		state.Loading = false
	case DeleteTaskSuccess:
		tasks := make([]models.Task, 0, len(state.Tasks))
		for _, t := range state.Tasks {
			if t.ID != a.ID {
				tasks = append(tasks, t)
			}
		}
		state.Tasks = tasks
		state.Loading = false

	case LoadTasksFailure:
		state = failed(state, a.Error)
	case CreateTaskFailure:
		state = failed(state, a.Error)
	case UpdateTaskFailure:
		state = failed(state, a.Error)
	case DeleteTaskFailure:
		state = failed(state, a.Error)
	case ToggleTaskFailure:
		state = failed(state, a.Error)

	case SetFilter:
		state.Filter = a.Filter
	}
	return state
}

func replaceTask(tasks []models.Task, task models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	for i, t := range tasks {
		if t.ID == task.ID {
			out[i] = task
		} else {
			out[i] = t
		}
	}
	return out
}

func failed(state State, msg string) State {
	state.Loading = false
	state.Error = msg
	return state
}
