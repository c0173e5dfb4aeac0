// Package models はAPIとDBで共有するデータ構造を定義します。
package models

import "time"

// Task はユーザーが所有するToDoタスクです。
// UserID は所有者で、作成後は変更されず、JSONにも出しません。
type Task struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"-"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateTaskRequest はタスク作成リクエストです。所有者はトークンから決まるので受け付けません。
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// UpdateTaskRequest はタスク更新リクエストです。
type UpdateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	IsCompleted bool    `json:"isCompleted"`
}

// TaskStatistics はユーザーごとのタスク集計です。TotalTasks == CompletedTasks + PendingTasks。
type TaskStatistics struct {
	TotalTasks     int `json:"totalTasks"`
	CompletedTasks int `json:"completedTasks"`
	PendingTasks   int `json:"pendingTasks"`
}
