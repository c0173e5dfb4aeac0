package store

import "todoapp/backend/internal/models"

// Action はストアに送る操作です。
type Action interface {
	actionName() string
}

type (
	LoadTasks        struct{}
	LoadTasksSuccess struct{ Tasks []models.Task }
	LoadTasksFailure struct{ Error string }

	CreateTask        struct{ Request models.CreateTaskRequest }
	CreateTaskSuccess struct{ Task models.Task }
	CreateTaskFailure struct{ Error string }

	UpdateTask struct {
		ID      int64
		Request models.UpdateTaskRequest
	}
	UpdateTaskSuccess struct{ Task models.Task }
	UpdateTaskFailure struct{ Error string }

	DeleteTask        struct{ ID int64 }
	DeleteTaskSuccess struct{ ID int64 }
	DeleteTaskFailure struct{ Error string }

	ToggleTask        struct{ ID int64 }
	ToggleTaskSuccess struct{ Task models.Task }
	ToggleTaskFailure struct{ Error string }

	SetFilter struct{ Filter Filter }
)

func (LoadTasks) actionName() string         { return "[Tasks] Load Tasks" }
func (LoadTasksSuccess) actionName() string  { return "[Tasks] Load Tasks Success" }
func (LoadTasksFailure) actionName() string  { return "[Tasks] Load Tasks Failure" }
func (CreateTask) actionName() string        { return "[Tasks] Create Task" }
func (CreateTaskSuccess) actionName() string { return "[Tasks] Create Task Success" }
func (CreateTaskFailure) actionName() string { return "[Tasks] Create Task Failure" }
func (UpdateTask) actionName() string        { return "[Tasks] Update Task" }
func (UpdateTaskSuccess) actionName() string { return "[Tasks] Update Task Success" }
func (UpdateTaskFailure) actionName() string { return "[Tasks] Update Task Failure" }
func (DeleteTask) actionName() string        { return "[Tasks] Delete Task" }
func (DeleteTaskSuccess) actionName() string { return "[Tasks] Delete Task Success" }
func (DeleteTaskFailure) actionName() string { return "[Tasks] Delete Task Failure" }
func (ToggleTask) actionName() string        { return "[Tasks] Toggle Task" }
func (ToggleTaskSuccess) actionName() string { return "[Tasks] Toggle Task Success" }
func (ToggleTaskFailure) actionName() string { return "[Tasks] Toggle Task Failure" }
func (SetFilter) actionName() string         { return "[Tasks] Set Filter" }
