package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"todoapp/backend/internal/models"
	"todoapp/backend/internal/services"
)

// AuthHandler はユーザー登録とログインのハンドラーを管理します。
type AuthHandler struct {
	authService *services.AuthService
	logger      *log.Logger
}

// NewAuthHandler は新しいAuthHandlerを作成します。
func NewAuthHandler(authService *services.AuthService, logger *log.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// RegisterHandler はユーザー登録を処理します。
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req models.UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidPayload(c)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.logger.Info("user registered", "user_id", user.ID)
	c.JSON(http.StatusCreated, user)
}

// LoginHandler はログインを処理します。
// メールアドレスが存在しない場合もパスワード違いの場合も同じ 401 を返します。
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req models.UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidPayload(c)
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
