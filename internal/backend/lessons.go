package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sauticare_web/internal/model"
	"strconv"
)

// Lessons 按条件获取课程列表
func (c *Client) Lessons(ctx context.Context, filter model.LessonFilter) ([]model.Lesson, error) {
	q := url.Values{}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.DifficultyLevel > 0 {
		q.Set("difficulty_level", strconv.Itoa(filter.DifficultyLevel))
	}
	if filter.Language != "" {
		q.Set("language", filter.Language)
	}

	path := "/lessons"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []model.Lesson
	if err := c.getJSON(ctx, path, "lessons", true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LessonDetail 获取课程详情（含短语）
func (c *Client) LessonDetail(ctx context.Context, lessonID string) (*model.Lesson, error) {
	var out model.Lesson
	path := "/lessons/" + url.PathEscape(lessonID)
	if err := c.getJSON(ctx, path, "lesson_detail", true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StartLesson 创建/激活该课程的进度记录
func (c *Client) StartLesson(ctx context.Context, lessonID string) (*model.LessonProgress, error) {
	var out model.LessonProgress
	path := "/lessons/progress/" + url.PathEscape(lessonID) + "/start"
	if err := c.sendJSON(ctx, http.MethodPost, path, "start_lesson", true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type updateProgressRequest struct {
	CompletionPercentage float64 `json:"completion_percentage"`
}

// UpdateLessonProgress 会话结束后上报完成百分比
func (c *Client) UpdateLessonProgress(ctx context.Context, lessonID string, completionPercentage float64) (*model.LessonProgress, error) {
	if completionPercentage < 0 || completionPercentage > 100 {
		return nil, fmt.Errorf("completion percentage %v out of range [0,100]", completionPercentage)
	}

	var out model.LessonProgress
	path := "/lessons/progress/" + url.PathEscape(lessonID) + "/update"
	if err := c.sendJSON(ctx, http.MethodPut, path, "update_progress", true, updateProgressRequest{CompletionPercentage: completionPercentage}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyProgress 获取学习者全部课程的进度
func (c *Client) MyProgress(ctx context.Context) ([]model.LessonProgress, error) {
	var out []model.LessonProgress
	if err := c.getJSON(ctx, "/lessons/progress/me", "my_progress", true, &out); err != nil {
		return nil, err
	}
	return out, nil
}
