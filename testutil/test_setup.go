// Package testutil はDBとルーターを使うテストの共通処理を提供します。
package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"todoapp/backend/internal/config"
	"todoapp/backend/internal/database"
	"todoapp/backend/internal/logging"
	"todoapp/backend/internal/models"
	"todoapp/backend/internal/repositories"
	"todoapp/backend/internal/routes"
)

const (
	TestJWTSecret = "test_very_secret_jwt_key_here"
	TestPassword  = "password123"
)

// TestConfig はテスト用の設定を返します。
func TestConfig() *config.Config {
	cfg := config.Default()
	cfg.Server.Mode = gin.TestMode
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.Path = ":memory:"
	cfg.Auth.JWTSecret = TestJWTSecret
	cfg.Auth.TokenTTL = time.Hour
	return cfg
}

// SetupTestDB はテスト用のデータベース接続を確立し、テーブルを作成します。
// TEST_DB_HOST が設定されていればMySQLを使い、テーブルを空にしてから返します。
// それ以外はインメモリのSQLiteです。
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	_ = godotenv.Load("../../.env")

	ctx := context.Background()
	var (
		db     *sql.DB
		driver string
		err    error
	)
	if host := os.Getenv("TEST_DB_HOST"); host != "" {
		driver = config.DriverMySQL
		db, err = database.Open(ctx, config.DatabaseConfig{
			Driver: config.DriverMySQL,
			User:   os.Getenv("TEST_DB_USER"),
			Pass:   os.Getenv("TEST_DB_PASS"),
			Host:   host,
			Port:   os.Getenv("TEST_DB_PORT"),
			Name:   os.Getenv("TEST_DB_NAME"),
		})
	} else {
		driver = config.DriverSQLite
		db, err = database.OpenSQLite(":memory:")
	}
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(ctx, db, driver))

	if driver == config.DriverMySQL {
		// 外部キー制約があるため、チェックを外して tasks -> users の順で空にする
		for _, stmt := range []string{
			"SET FOREIGN_KEY_CHECKS=0",
			"TRUNCATE TABLE tasks",
			"TRUNCATE TABLE users",
			"SET FOREIGN_KEY_CHECKS=1",
		} {
			_, err := db.ExecContext(ctx, stmt)
			require.NoError(t, err, "failed to run %q", stmt)
		}
	}
	return db
}

// Clock は呼ぶたびに1秒ずつ進む時計です。作成順と created_at の順序を一致させます。
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

// SetupTestRouter はテスト用のGinルーターをセットアップします。
func SetupTestRouter(t *testing.T, db *sql.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return routes.SetupRouter(routes.Dependencies{
		DB:     db,
		Config: TestConfig(),
		Logger: logging.Discard(),
		Now:    NewClock().Now,
	})
}

// CreateTestUser はテスト用のユーザーを直接DBに作成します。
func CreateTestUser(t *testing.T, userRepo *repositories.UserRepository, email, password string) *models.User {
	t.Helper()
	hashedPassword, err := repositories.HashPassword(password)
	require.NoError(t, err)

	createdUser, err := userRepo.Create(context.Background(), &models.User{
		Email:        email,
		PasswordHash: hashedPassword,
		FirstName:    "Test",
		LastName:     "User",
	})
	require.NoError(t, err)
	require.NotNil(t, createdUser)
	require.NotZero(t, createdUser.ID)
	return createdUser
}

// CreateTestTask はAPI経由でタスクを作成します。
func CreateTestTask(t *testing.T, router *gin.Engine, token, title string, description *string) *models.Task {
	t.Helper()
	resp := DoJSON(t, router, http.MethodPost, "/api/tasks", token, models.CreateTaskRequest{
		Title:       title,
		Description: description,
	})
	require.Equal(t, http.StatusCreated, resp.Code, "タスク作成に失敗しました: %s", resp.Body.String())

	var created models.Task
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	return &created
}

// LoginAndGetToken はログインAPIを呼んでトークンを返します。
func LoginAndGetToken(t *testing.T, router *gin.Engine, email, password string) (string, error) {
	t.Helper()
	resp := DoJSON(t, router, http.MethodPost, "/api/auth/login", "", models.UserLoginRequest{
		Email:    email,
		Password: password,
	})
	if resp.Code != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d: %s", resp.Code, resp.Body.String())
	}

	var loginRes models.LoginResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &loginRes); err != nil {
		return "", fmt.Errorf("failed to unmarshal login response: %w", err)
	}
	if loginRes.Token == "" {
		return "", errors.New("token not found in login response")
	}
	return loginRes.Token, nil
}

// DoJSON はJSONリクエストをルーターに投げ、レスポンスを返します。token が空なら Authorization を付けません。
// body が string ならそのまま送ります。
func DoJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}
