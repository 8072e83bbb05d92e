package model

type UserRole string

const (
	Learner  UserRole = "learner"
	Guardian UserRole = "guardian"
	Admin    UserRole = "admin"
)

// User 后端 /auth/me 返回的当前用户
type User struct {
	ID    uint     `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

// TokenResponse 登录/注册成功后后端下发的令牌
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
