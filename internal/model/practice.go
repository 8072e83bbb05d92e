package model

import (
	"math"
	"time"
)

// PassScore 短语判定通过的固定阈值
const PassScore = 70.0

// PracticeSession 后端创建的练习会话
type PracticeSession struct {
	ID                 string     `json:"id"`
	LessonID           string     `json:"lesson_id"`
	StartedAt          time.Time  `json:"started_at"`
	EndedAt            *time.Time `json:"ended_at,omitempty"`
	TotalAttempts      int        `json:"total_attempts"`
	SuccessfulAttempts int        `json:"successful_attempts"`
}

// AttemptResult 一次短语提交的评分结果，创建后不再变更
type AttemptResult struct {
	Transcription      string          `json:"transcription"`
	PronunciationScore float64         `json:"pronunciation_score"`
	ConfidenceScore    float64         `json:"confidence_score"`
	Feedback           AttemptFeedback `json:"feedback"`
}

// AttemptFeedback 后端返回的结构化反馈
type AttemptFeedback struct {
	Overall string   `json:"overall"`
	Tips    []string `json:"tips,omitempty"`
}

// Passed 分数达到阈值即通过
func (r *AttemptResult) Passed() bool {
	return r.PronunciationScore >= PassScore
}

// SessionSummary 结束会话时后端返回的汇总
type SessionSummary struct {
	ID                 string  `json:"id"`
	TotalAttempts      int     `json:"total_attempts"`
	SuccessfulAttempts int     `json:"successful_attempts"`
	DurationMinutes    float64 `json:"duration_minutes"`
}

// DisplayScore 展示用取整；存储值保留完整精度
func DisplayScore(v float64) int {
	return int(math.Round(v))
}
