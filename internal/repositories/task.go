package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"todoapp/backend/internal/models"
)

// ErrTaskNotFound はタスクが見つからない、または呼び出し元の所有でない場合のエラーです。
var ErrTaskNotFound = errors.New("task not found")

const taskColumns = "id, user_id, title, description, is_completed, created_at, updated_at"

// TaskRepository はタスクテーブルを操作します。
type TaskRepository struct {
	DB *sql.DB
}

// NewTaskRepository は新しいTaskRepositoryインスタンスを作成します。
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

// Create は新しいタスクを挿入します。呼び出し側で UserID とタイムスタンプを設定しておくこと。
func (r *TaskRepository) Create(ctx context.Context, t *models.Task) (*models.Task, error) {
	query := "INSERT INTO tasks (user_id, title, description, is_completed, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)"
	result, err := r.DB.ExecContext(ctx, query, t.UserID, t.Title, nullString(t.Description), t.IsCompleted, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("could not insert task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not get last insert ID: %w", err)
	}
	t.ID = id
	return t, nil
}

// FindByID はIDでタスクを取得します。所有者の確認はサービス層で行います。
func (r *TaskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE id = ?"
	t, err := scanTask(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("could not query task: %w", err)
	}
	return t, nil
}

// FindByUserID はユーザーのタスクを作成日時の新しい順に返します。completed が nil でなければ完了状態で絞り込みます。
func (r *TaskRepository) FindByUserID(ctx context.Context, userID int64, completed *bool) ([]*models.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE user_id = ?"
	args := []any{userID}
	if completed != nil {
		query += " AND is_completed = ?"
		args = append(args, *completed)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}
	return tasks, nil
}

// Update はタスクの内容を上書きします。WHERE に user_id を含めるので、所有者以外の行は更新されません。
func (r *TaskRepository) Update(ctx context.Context, t *models.Task) error {
	query := "UPDATE tasks SET title = ?, description = ?, is_completed = ?, updated_at = ? WHERE id = ? AND user_id = ?"
	result, err := r.DB.ExecContext(ctx, query, t.Title, nullString(t.Description), t.IsCompleted, t.UpdatedAt, t.ID, t.UserID)
	if err != nil {
		return fmt.Errorf("could not update task: %w", err)
	}
	return requireAffected(result)
}

// Delete は所有者のタスクを削除します。
func (r *TaskRepository) Delete(ctx context.Context, id, userID int64) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM tasks WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("could not delete task: %w", err)
	}
	return requireAffected(result)
}

// CountByUserID は全件数と完了件数を1つの文で数えます。
func (r *TaskRepository) CountByUserID(ctx context.Context, userID int64) (total, completed int, err error) {
	query := "SELECT COUNT(*), COALESCE(SUM(CASE WHEN is_completed THEN 1 ELSE 0 END), 0) FROM tasks WHERE user_id = ?"
	if err := r.DB.QueryRowContext(ctx, query, userID).Scan(&total, &completed); err != nil {
		return 0, 0, fmt.Errorf("could not count tasks: %w", err)
	}
	return total, completed, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(s rowScanner) (*models.Task, error) {
	var (
		t    models.Task
		desc sql.NullString
	)
	if err := s.Scan(&t.ID, &t.UserID, &t.Title, &desc, &t.IsCompleted, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		t.Description = &desc.String
	}
	return &t, nil
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if n == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
