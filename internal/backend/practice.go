package backend

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sauticare_web/internal/model"
)

type createSessionRequest struct {
	LessonID string `json:"lesson_id"`
}

// CreatePracticeSession 为课程创建练习会话
func (c *Client) CreatePracticeSession(ctx context.Context, lessonID string) (*model.PracticeSession, error) {
	var out model.PracticeSession
	if err := c.sendJSON(ctx, http.MethodPost, "/practice/sessions", "create_session", true, createSessionRequest{LessonID: lessonID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitPhraseAttempt 以 multipart 形式提交录音，音频放在 file 字段
func (c *Client) SubmitPhraseAttempt(ctx context.Context, sessionID, phraseID, filename string, audio io.Reader) (*model.AttemptResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("session_id", sessionID); err != nil {
		return nil, err
	}
	if err := writer.WriteField("phrase_id", phraseID); err != nil {
		return nil, err
	}

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/practice/attempt", &body, writer.FormDataContentType(), true)
	if err != nil {
		return nil, err
	}

	var out model.AttemptResult
	if err := c.do(req, "submit_attempt", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EndPracticeSession 结束会话，后端返回汇总；每个会话只应调用一次
func (c *Client) EndPracticeSession(ctx context.Context, sessionID string) (*model.SessionSummary, error) {
	var out model.SessionSummary
	path := "/practice/sessions/" + url.PathEscape(sessionID) + "/end"
	if err := c.sendJSON(ctx, http.MethodPost, path, "end_session", true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
