package handlers

import "github.com/gin-gonic/gin"

// AuthMiddleware がコンテキストに設定するキー
const (
	ContextUserIDKey    = "user_id"
	ContextUserEmailKey = "user_email"
	ContextRequestIDKey = "request_id"
)

// callerID は認証済みユーザーのIDをコンテキストから取り出します。
// リクエストボディやクエリの値は使いません。
func callerID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok && id > 0
}
