package service

import (
	"context"
	"sauticare_web/internal/auth"
	"sauticare_web/internal/backend"
	"sauticare_web/internal/model"
	"sauticare_web/pkg/logger"

	"go.uber.org/zap"
)

// AuthService 把后端认证接口和本地会话存储拼在一起
type AuthService struct {
	api   *backend.Client
	store *auth.SessionStore
}

func NewAuthService(api *backend.Client, store *auth.SessionStore) *AuthService {
	return &AuthService{api: api, store: store}
}

// LoginWithPassword 登录后端换取令牌并建立本地会话
func (s *AuthService) LoginWithPassword(ctx context.Context, email, password string) (*model.User, error) {
	tokens, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := s.store.Login(ctx, tokens.AccessToken); err != nil {
		return nil, err
	}

	return s.store.User(), nil
}

// Signup 注册并直接用下发的令牌登录
func (s *AuthService) Signup(ctx context.Context, req backend.SignupRequest) (*model.User, error) {
	tokens, err := s.api.Signup(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.store.Login(ctx, tokens.AccessToken); err != nil {
		return nil, err
	}

	return s.store.User(), nil
}

// Restore 启动时从持久化令牌恢复会话
func (s *AuthService) Restore(ctx context.Context) {
	if err := s.store.Restore(ctx); err != nil {
		logger.Log.Warn("session restore failed", zap.Error(err))
	}
	logger.Log.Info("session restored", zap.String("state", string(s.store.State())))
}

func (s *AuthService) Logout() {
	s.store.Logout()
}

func (s *AuthService) CurrentUser() *model.User {
	return s.store.User()
}

func (s *AuthService) State() auth.State {
	return s.store.State()
}
