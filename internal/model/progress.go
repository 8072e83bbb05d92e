package model

import "time"

type ProgressStatus string

const (
	StatusNotStarted ProgressStatus = "not_started"
	StatusInProgress ProgressStatus = "in_progress"
	StatusCompleted  ProgressStatus = "completed"
)

// LessonProgress 学习者在单个课程上的进度记录
type LessonProgress struct {
	ID                   string         `json:"id"`
	LessonID             string         `json:"lesson_id"`
	Status               ProgressStatus `json:"status"`
	CompletionPercentage float64        `json:"completion_percentage"`
	StartedAt            *time.Time     `json:"started_at,omitempty"`
	CompletedAt          *time.Time     `json:"completed_at,omitempty"`
	Lesson               *LessonBrief   `json:"lesson,omitempty"`
}

// LessonBrief 进度列表内嵌的课程摘要
type LessonBrief struct {
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Category        LessonCategory `json:"category"`
	DifficultyLevel int            `json:"difficulty_level"`
}
