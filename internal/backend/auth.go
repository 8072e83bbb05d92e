package backend

import (
	"context"
	"net/http"
	"sauticare_web/internal/model"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Language string `json:"language,omitempty"`
}

// Login 用邮箱密码换取访问令牌，无需认证
func (c *Client) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	var out model.TokenResponse
	err := c.sendJSON(ctx, http.MethodPost, "/auth/login", "login", false, LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Signup 注册新账号，成功时同样下发令牌
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*model.TokenResponse, error) {
	var out model.TokenResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/auth/signup", "signup", false, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentUser 获取当前登录用户
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var out model.User
	if err := c.getJSON(ctx, "/auth/me", "current_user", true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
