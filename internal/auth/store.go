package auth

import (
	"context"
	"sauticare_web/internal/model"
	"sync"
	"time"
)

type State string

const (
	StateAnonymous     State = "anonymous"
	StateRestoring     State = "restoring"
	StateAuthenticated State = "authenticated"
	StateInvalid       State = "invalid"
)

// UserFetcher 按当前令牌获取登录用户，由 backend.Client 实现
type UserFetcher interface {
	CurrentUser(ctx context.Context) (*model.User, error)
}

// SessionStore 客户端登录会话。生命周期显式：Restore / Login / Logout，
// 不依赖包级单例。
type SessionStore struct {
	mu     sync.RWMutex
	tokens TokenStore
	users  UserFetcher

	state State
	token string
	user  *model.User
}

func NewSessionStore(tokens TokenStore, users UserFetcher) *SessionStore {
	return &SessionStore{
		tokens: tokens,
		users:  users,
		state:  StateAnonymous,
	}
}

// SetUserFetcher 解决 store 与 backend client 的相互依赖：
// client 需要 store 提供令牌，store 需要 client 拉取用户。
func (s *SessionStore) SetUserFetcher(users UserFetcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = users
}

// Token 实现 backend.TokenSource
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *SessionStore) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User 返回当前用户，未登录时为 nil
func (s *SessionStore) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *SessionStore) Authenticated() bool {
	return s.State() == StateAuthenticated
}

// Restore 应用启动时从持久化令牌恢复会话。
// 没有令牌、令牌已过期或用户拉取失败都确定性地回到 anonymous，
// 且失败时清掉持久化令牌。
func (s *SessionStore) Restore(ctx context.Context) error {
	token, err := s.tokens.Load()
	if err != nil || token == "" {
		// 损坏的令牌文件与缺失等价
		s.tokens.Clear()
		s.setAnonymous()
		return nil
	}

	if TokenExpired(token, time.Now()) {
		// 过期令牌不值得一次网络调用
		s.tokens.Clear()
		s.setAnonymous()
		return nil
	}

	s.mu.Lock()
	s.state = StateRestoring
	s.token = token
	s.mu.Unlock()

	user, err := s.users.CurrentUser(ctx)
	if err != nil {
		s.tokens.Clear()
		s.setAnonymous()
		return nil
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = user
	s.mu.Unlock()
	return nil
}

// Login 用后端下发的令牌建立会话。用户拉取失败时错误向上传播，
// 且不破坏登录前已有的会话状态。
func (s *SessionStore) Login(ctx context.Context, token string) error {
	s.mu.Lock()
	prevState, prevToken, prevUser := s.state, s.token, s.user
	s.state = StateRestoring
	s.token = token
	s.mu.Unlock()

	if err := s.tokens.Save(token); err != nil {
		s.restorePrev(prevState, prevToken, prevUser)
		return err
	}

	user, err := s.users.CurrentUser(ctx)
	if err != nil {
		if prevState == StateAuthenticated {
			// 回到之前已认证的会话
			s.tokens.Save(prevToken)
			s.restorePrev(prevState, prevToken, prevUser)
		} else {
			s.mu.Lock()
			s.state = StateInvalid
			s.mu.Unlock()
		}
		return err
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = user
	s.mu.Unlock()
	return nil
}

// Logout 无条件回到 anonymous，从不失败
func (s *SessionStore) Logout() {
	s.tokens.Clear()
	s.setAnonymous()
}

func (s *SessionStore) setAnonymous() {
	s.mu.Lock()
	s.state = StateAnonymous
	s.token = ""
	s.user = nil
	s.mu.Unlock()
}

func (s *SessionStore) restorePrev(state State, token string, user *model.User) {
	s.mu.Lock()
	s.state = state
	s.token = token
	s.user = user
	s.mu.Unlock()
}
