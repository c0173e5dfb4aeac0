// Package handlers はHTTPリクエストを処理するginハンドラーを提供します。
package handlers

import (
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"todoapp/backend/internal/models"
	"todoapp/backend/internal/services"
)

// TaskHandler はタスク関連のハンドラーを管理します。
type TaskHandler struct {
	taskService *services.TaskService
	logger      *log.Logger
}

// NewTaskHandler は新しいTaskHandlerを作成します。
func NewTaskHandler(taskService *services.TaskService, logger *log.Logger) *TaskHandler {
	return &TaskHandler{taskService: taskService, logger: logger}
}

// taskID はパスの :id を取り出します。数値でないIDは存在しないタスクと同じ扱いです。
func taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// GetTasksHandler は呼び出し元のタスク一覧を返します。?isCompleted=true|false で絞り込めます。
func (h *TaskHandler) GetTasksHandler(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	var completed *bool
	if raw := c.Query("isCompleted"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid isCompleted filter"})
			return
		}
		completed = &v
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), userID, completed)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GetTaskByIDHandler は指定IDのタスクを返します。
func (h *TaskHandler) GetTaskByIDHandler(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}
	id, ok := taskID(c)
	if !ok {
		respondNotFound(c)
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// CreateTaskHandler は新しいタスクを作成します。
func (h *TaskHandler) CreateTaskHandler(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidPayload(c)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), req.Title, req.Description, userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Header("Location", "/api/tasks/"+strconv.FormatInt(task.ID, 10))
	c.JSON(http.StatusCreated, task)
}

// UpdateTaskHandler はタスクを更新します。
func (h *TaskHandler) UpdateTaskHandler(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}
	id, ok := taskID(c)
	if !ok {
		respondNotFound(c)
		return
	}

	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidPayload(c)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), id, req.Title, req.Description, req.IsCompleted, userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DeleteTaskHandler はタスクを削除します。
func (h *TaskHandler) DeleteTaskHandler(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}
	id, ok := taskID(c)
	if !ok {
		respondNotFound(c)
		return
	}

	deleted, err := h.taskService.DeleteTask(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !deleted {
		respondNotFound(c)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleTaskHandler はタスクの完了状態を反転します。
func (h *TaskHandler) ToggleTaskHandler(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}
	id, ok := taskID(c)
	if !ok {
		respondNotFound(c)
		return
	}

	task, err := h.taskService.ToggleCompletion(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// GetStatisticsHandler は呼び出し元のタスク集計を返します。
func (h *TaskHandler) GetStatisticsHandler(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	stats, err := h.taskService.GetStatistics(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
