package service

import (
	"context"
	"mime/multipart"
	"os"
	"sauticare_web/internal/backend"
	"sauticare_web/internal/config"
	"sauticare_web/internal/model"
	"sauticare_web/internal/util"
	"sauticare_web/pkg/logger"

	"go.uber.org/zap"
)

// VoiceService 语音样本的上传/列表/删除，数据都在远端
type VoiceService struct {
	api   *backend.Client
	audio config.AudioConfig
}

func NewVoiceService(api *backend.Client, audioCfg config.AudioConfig) *VoiceService {
	return &VoiceService{api: api, audio: audioCfg}
}

// Upload 透传上传；开探测时先校验是真实音频
func (s *VoiceService) Upload(ctx context.Context, file *multipart.FileHeader) (*model.VoiceSample, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if !s.audio.ProbeEnabled {
		return s.api.UploadVoiceSample(ctx, file.Filename, src)
	}

	tmpPath, err := spoolUpload(src, file.Filename)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmpPath)

	info, err := util.ProbeAudio(tmpPath)
	if err != nil {
		logger.Log.Warn("audio probe unavailable", zap.Error(err))
	} else if !info.HasAudio || info.Duration == 0 {
		return nil, util.ErrEmptyRecording
	}

	audio, err := os.Open(tmpPath)
	if err != nil {
		return nil, err
	}
	defer audio.Close()

	return s.api.UploadVoiceSample(ctx, file.Filename, audio)
}

func (s *VoiceService) List(ctx context.Context) ([]model.VoiceSample, error) {
	return s.api.VoiceSamples(ctx)
}

func (s *VoiceService) Delete(ctx context.Context, sampleID string) error {
	return s.api.DeleteVoiceSample(ctx, sampleID)
}
