package service

import (
	"context"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"sauticare_web/internal/backend"
	"sauticare_web/internal/config"
	"sauticare_web/internal/model"
	"sauticare_web/internal/practice"
	"sauticare_web/internal/util"
	"sauticare_web/pkg/logger"

	"go.uber.org/zap"
)

// PracticeService 包装练习状态机，并在把录音送去后端评分前
// 按配置用 ffmpeg 做一次本地探测，省掉明显无效的评分调用。
type PracticeService struct {
	flow  *practice.Flow
	audio config.AudioConfig
}

func NewPracticeService(api *backend.Client, audioCfg config.AudioConfig) *PracticeService {
	return &PracticeService{
		flow:  practice.NewFlow(api),
		audio: audioCfg,
	}
}

func (s *PracticeService) LoadLesson(ctx context.Context, lessonID string) (*model.Lesson, error) {
	return s.flow.LoadLesson(ctx, lessonID)
}

func (s *PracticeService) StartSession(ctx context.Context) (*model.PracticeSession, error) {
	return s.flow.StartSession(ctx)
}

func (s *PracticeService) BeginRecording() error {
	return s.flow.BeginRecording()
}

func (s *PracticeService) FailRecording() error {
	return s.flow.FailRecording()
}

// SubmitRecording 接收浏览器上传的录音并推进状态机。
// 探测不通过时状态停在 recording，调用方可以重新上传。
func (s *PracticeService) SubmitRecording(ctx context.Context, file *multipart.FileHeader) (*model.AttemptResult, error) {
	if s.flow.State() != practice.StateRecording {
		return nil, util.ErrIllegalTransition
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if !s.audio.ProbeEnabled {
		return s.flow.SubmitRecording(ctx, file.Filename, src)
	}

	// ffmpeg 只认路径，先落临时文件
	tmpPath, err := spoolUpload(src, file.Filename)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmpPath)

	if err := s.probe(tmpPath); err != nil {
		return nil, err
	}

	audio, err := os.Open(tmpPath)
	if err != nil {
		return nil, err
	}
	defer audio.Close()

	return s.flow.SubmitRecording(ctx, file.Filename, audio)
}

func (s *PracticeService) probe(path string) error {
	info, err := util.ProbeAudio(path)
	if err != nil {
		// ffmpeg 不可用时不拦截提交，由后端裁决
		logger.Log.Warn("audio probe unavailable", zap.Error(err))
		return nil
	}

	if !info.HasAudio || info.Duration == 0 {
		return util.ErrEmptyRecording
	}
	if s.audio.MaxDurationSec > 0 && info.Duration > s.audio.MaxDurationSec {
		return util.ErrRecordingTooLong
	}
	return nil
}

func (s *PracticeService) Next(ctx context.Context) error {
	return s.flow.Next(ctx)
}

func (s *PracticeService) Previous() error {
	return s.flow.Previous()
}

func (s *PracticeService) Snapshot() practice.Snapshot {
	return s.flow.Snapshot()
}

// spoolUpload 把上传内容写进临时文件，返回路径
func spoolUpload(src io.Reader, filename string) (string, error) {
	tmp, err := os.CreateTemp("", "recording-*"+filepath.Ext(filename))
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	return tmp.Name(), nil
}
