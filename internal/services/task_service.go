package services

import (
	"context"
	"errors"
	"time"

	"todoapp/backend/internal/models"
	"todoapp/backend/internal/repositories"
	"todoapp/backend/internal/validation"
)

// ErrTaskNotFound はタスクが存在しないか、呼び出し元の所有でないことを表します。
// 両者は区別せず、どちらも 404 として扱います。
var ErrTaskNotFound = repositories.ErrTaskNotFound

// TaskService はタスク関連のビジネスロジックと所有者チェックを扱います。
type TaskService struct {
	taskRepo *repositories.TaskRepository
	now      func() time.Time
}

// NewTaskService は新しいTaskServiceを作成します。
func NewTaskService(taskRepo *repositories.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, now: time.Now}
}

// WithClock は時刻の取得元を差し替えます。テストで並び順を固定するために使います。
func (s *TaskService) WithClock(now func() time.Time) *TaskService {
	s.now = now
	return s
}

func (s *TaskService) timestamp() time.Time {
	return s.now().UTC()
}

// loadOwned はタスクを読み込み、所有者が callerID でなければ ErrTaskNotFound を返します。
// 単件取得・更新・削除・完了切り替えのたびに毎回呼びます。
func (s *TaskService) loadOwned(ctx context.Context, taskID, callerID int64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != callerID {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// ListTasks は呼び出し元のタスクを新しい順に返します。completed で完了状態を絞り込めます。
func (s *TaskService) ListTasks(ctx context.Context, callerID int64, completed *bool) ([]*models.Task, error) {
	return s.taskRepo.FindByUserID(ctx, callerID, completed)
}

// GetTask は呼び出し元が所有するタスクを1件返します。
func (s *TaskService) GetTask(ctx context.Context, taskID, callerID int64) (*models.Task, error) {
	return s.loadOwned(ctx, taskID, callerID)
}

// CreateTask は呼び出し元を所有者として未完了のタスクを作成します。
func (s *TaskService) CreateTask(ctx context.Context, title string, description *string, callerID int64) (*models.Task, error) {
	if err := validation.ValidateTask(title, description); err != nil {
		return nil, err
	}

	now := s.timestamp()
	return s.taskRepo.Create(ctx, &models.Task{
		UserID:      callerID,
		Title:       title,
		Description: description,
		IsCompleted: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// UpdateTask はタイトル・説明・完了状態を上書きします。
// 入力の検証は所有者チェックより先に行います。
func (s *TaskService) UpdateTask(ctx context.Context, taskID int64, title string, description *string, isCompleted bool, callerID int64) (*models.Task, error) {
	if err := validation.ValidateTask(title, description); err != nil {
		return nil, err
	}

	task, err := s.loadOwned(ctx, taskID, callerID)
	if err != nil {
		return nil, err
	}

	task.Title = title
	task.Description = description
	task.IsCompleted = isCompleted
	task.UpdatedAt = s.timestamp()
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask は呼び出し元のタスクを削除します。削除した場合は true を返します。
func (s *TaskService) DeleteTask(ctx context.Context, taskID, callerID int64) (bool, error) {
	if _, err := s.loadOwned(ctx, taskID, callerID); err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := s.taskRepo.Delete(ctx, taskID, callerID); err != nil {
		// チェック後に別リクエストで消された
		if errors.Is(err, ErrTaskNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ToggleCompletion は完了状態を反転します。
func (s *TaskService) ToggleCompletion(ctx context.Context, taskID, callerID int64) (*models.Task, error) {
	task, err := s.loadOwned(ctx, taskID, callerID)
	if err != nil {
		return nil, err
	}

	task.IsCompleted = !task.IsCompleted
	task.UpdatedAt = s.timestamp()
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// GetStatistics は呼び出し元のタスク件数を集計します。
func (s *TaskService) GetStatistics(ctx context.Context, callerID int64) (*models.TaskStatistics, error) {
	total, completed, err := s.taskRepo.CountByUserID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return &models.TaskStatistics{
		TotalTasks:     total,
		CompletedTasks: completed,
		PendingTasks:   total - completed,
	}, nil
}
