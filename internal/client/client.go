// Package client はタスクAPIのHTTPクライアントです。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"todoapp/backend/internal/models"
	"todoapp/backend/internal/validation"
)

// APIError はAPIが2xx以外を返したときのエラーです。
type APIError struct {
	StatusCode int
	Message    string
	Errors     []validation.FieldError
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// IsNotFound は err が 404 かどうかを返します。他人のタスクも 404 になります。
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized は err が 401 かどうかを返します。
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// Client はタスクAPIを呼び出します。
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// Option は Client の設定を変更します。
type Option func(*Client)

// WithHTTPClient は使用する http.Client を差し替えます。
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken は保存済みのセッショントークンを設定します。
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New は baseURL (例: http://localhost:8080) に接続する Client を作成します。
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token は現在のセッショントークンを返します。
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken はセッショントークンを設定します。
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Register はユーザーを登録します。
func (c *Client) Register(ctx context.Context, req models.UserRegisterRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login はログインし、成功したらトークンを保持します。
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var res models.LoginResponse
	req := models.UserLoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &res); err != nil {
		return nil, err
	}
	c.SetToken(res.Token)
	return &res, nil
}

// ListTasks はタスク一覧を取得します。completed が nil なら全件です。
func (c *Client) ListTasks(ctx context.Context, completed *bool) ([]models.Task, error) {
	path := "/api/tasks"
	if completed != nil {
		path += "?" + url.Values{"isCompleted": {strconv.FormatBool(*completed)}}.Encode()
	}
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, path, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) CreateTask(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id int64, req models.UpdateTaskRequest) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPut, taskPath(id), req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

func (c *Client) ToggleTask(ctx context.Context, id int64) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPatch, taskPath(id)+"/toggle", nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) Statistics(ctx context.Context) (*models.TaskStatistics, error) {
	var stats models.TaskStatistics
	if err := c.do(ctx, http.MethodGet, "/api/tasks/statistics", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func taskPath(id int64) string {
	return "/api/tasks/" + strconv.FormatInt(id, 10)
}

// do はリクエストを送り、2xx ならレスポンスを out にデコードします。
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var payload struct {
		Message string                  `json:"message"`
		Errors  []validation.FieldError `json:"errors"`
	}
	if json.Unmarshal(data, &payload) == nil && payload.Message != "" {
		apiErr.Message = payload.Message
		apiErr.Errors = payload.Errors
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	return apiErr
}
