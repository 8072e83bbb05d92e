package service

import (
	"context"
	"sauticare_web/internal/backend"
	"sauticare_web/internal/model"
)

// LessonService 课程浏览与进度查询，纯读
type LessonService struct {
	api *backend.Client
}

func NewLessonService(api *backend.Client) *LessonService {
	return &LessonService{api: api}
}

func (s *LessonService) Lessons(ctx context.Context, filter model.LessonFilter) ([]model.Lesson, error) {
	return s.api.Lessons(ctx, filter)
}

// LessonDetail 返回前保证短语有序
func (s *LessonService) LessonDetail(ctx context.Context, lessonID string) (*model.Lesson, error) {
	lesson, err := s.api.LessonDetail(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	lesson.SortPhrases()
	return lesson, nil
}

func (s *LessonService) MyProgress(ctx context.Context) ([]model.LessonProgress, error) {
	return s.api.MyProgress(ctx)
}
