package models

import "time"

// User はユーザーのデータベース構造体を表します。
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // JSONに出さない
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserRegisterRequest はユーザー登録リクエストです。
type UserRegisterRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UserLoginRequest はログインリクエストです。
type UserLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse はログイン成功時のレスポンスです。
type LoginResponse struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// SessionClaims はトークンから取り出した呼び出し元の情報です。
type SessionClaims struct {
	UserID    int64
	Email     string
	FirstName string
	LastName  string
}
