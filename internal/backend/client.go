// Package backend 封装对远程 SautiCare REST API 的全部调用。
// 语音识别、评分与数据持久化都在远端完成，本客户端只负责携带
// Bearer 令牌发起请求并把失败归一化为 *APIError。
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sauticare_web/internal/config"
	"sauticare_web/internal/util"
	"sauticare_web/pkg/monitoring"
	"strings"
	"time"
)

// TokenSource 提供当前的 Bearer 令牌，空串表示未登录
type TokenSource interface {
	Token() string
}

// StaticToken 固定令牌，测试用
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

func NewClient(cfg config.BackendConfig, tokens TokenSource) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		// 未配置时交给传输层默认行为
		timeout = 0
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// APIError 非 2xx 响应归一化后的错误，Detail 取自后端返回
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return e.Detail
}

// IsStatus 判断 err 是否为指定状态码的 APIError
func IsStatus(err error, status int) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == status
}

// newRequest 构造请求；authed 为 true 且无令牌时直接失败，不发起网络调用
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string, authed bool) (*http.Request, error) {
	token := ""
	if c.tokens != nil {
		token = c.tokens.Token()
	}
	if authed && token == "" {
		return nil, util.ErrNoToken
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

// do 发起请求并解码成功响应；out 为 nil 时丢弃响应体
func (c *Client) do(req *http.Request, operation string, out interface{}) error {
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		monitoring.ObserveBackend(operation, 0, start)
		return fmt.Errorf("backend %s: %w", operation, err)
	}
	defer resp.Body.Close()

	monitoring.ObserveBackend(operation, resp.StatusCode, start)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend %s: decode response: %w", operation, err)
	}

	return nil
}

// decodeError 提取后端 detail 字段，缺失时退回通用消息
func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}

	detail := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		detail = payload.Detail
		if detail == "" {
			detail = payload.Message
		}
	}
	if detail == "" {
		detail = fmt.Sprintf("request failed with status %d", resp.StatusCode)
	}

	return &APIError{Status: resp.StatusCode, Detail: detail}
}

func (c *Client) getJSON(ctx context.Context, path, operation string, authed bool, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, "", authed)
	if err != nil {
		return err
	}
	return c.do(req, operation, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path, operation string, authed bool, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = strings.NewReader(string(data))
	}

	req, err := c.newRequest(ctx, method, path, body, "application/json", authed)
	if err != nil {
		return err
	}
	return c.do(req, operation, out)
}
