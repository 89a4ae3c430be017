package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID        int
	Email     string
	Password  string
	CreatedAt time.Time
}

type UserClaims struct {
	jwt.RegisteredClaims
}

// AuthData то, что получает клиент после входа
type AuthData struct {
	AccessToken  string
	RefreshToken string
	SessionID    string
}

// Session сессия обновления access токена. RefreshToken хранится в виде хэша
type Session struct {
	ID           string
	UserID       int
	RefreshToken string
	ExpiresAt    time.Time
}
