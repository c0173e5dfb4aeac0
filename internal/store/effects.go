package store

import (
	"context"

	"todoapp/backend/internal/models"
)

// TaskAPI は Effects が使うAPIです。*client.Client が満たします。
type TaskAPI interface {
	ListTasks(ctx context.Context, completed *bool) ([]models.Task, error)
	CreateTask(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, id int64, req models.UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	ToggleTask(ctx context.Context, id int64) (*models.Task, error)
}

// Effects はAPIを呼び、結果に応じて成功・失敗アクションを Dispatch します。
type Effects struct {
	store *Store
	api   TaskAPI
}

func NewEffects(store *Store, api TaskAPI) *Effects {
	return &Effects{store: store, api: api}
}

// LoadTasks はタスク一覧を取得します。
func (e *Effects) LoadTasks(ctx context.Context) error {
	e.store.Dispatch(LoadTasks{})
	tasks, err := e.api.ListTasks(ctx, nil)
	if err != nil {
		e.store.Dispatch(LoadTasksFailure{Error: err.Error()})
		return err
	}
	e.store.Dispatch(LoadTasksSuccess{Tasks: tasks})
	return nil
}

func (e *Effects) CreateTask(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error) {
	e.store.Dispatch(CreateTask{Request: req})
	task, err := e.api.CreateTask(ctx, req)
	if err != nil {
		e.store.Dispatch(CreateTaskFailure{Error: err.Error()})
		return nil, err
	}
	e.store.Dispatch(CreateTaskSuccess{Task: *task})
	return task, nil
}

func (e *Effects) UpdateTask(ctx context.Context, id int64, req models.UpdateTaskRequest) (*models.Task, error) {
	e.store.Dispatch(UpdateTask{ID: id, Request: req})
	task, err := e.api.UpdateTask(ctx, id, req)
	if err != nil {
		e.store.Dispatch(UpdateTaskFailure{Error: err.Error()})
		return nil, err
	}
	e.store.Dispatch(UpdateTaskSuccess{Task: *task})
	return task, nil
}

func (e *Effects) DeleteTask(ctx context.Context, id int64) error {
	e.store.Dispatch(DeleteTask{ID: id})
	if err := e.api.DeleteTask(ctx, id); err != nil {
		e.store.Dispatch(DeleteTaskFailure{Error: err.Error()})
		return err
	}
	e.store.Dispatch(DeleteTaskSuccess{ID: id})
	return nil
}

func (e *Effects) ToggleTask(ctx context.Context, id int64) (*models.Task, error) {
	e.store.Dispatch(ToggleTask{ID: id})
	task, err := e.api.ToggleTask(ctx, id)
	if err != nil {
		e.store.Dispatch(ToggleTaskFailure{Error: err.Error()})
		return nil, err
	}
	e.store.Dispatch(ToggleTaskSuccess{Task: *task})
	return task, nil
}
