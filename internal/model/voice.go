package model

import "time"

// VoiceSample 上传到后端的语音样本元数据
type VoiceSample struct {
	ID              string    `json:"id"`
	FileName        string    `json:"file_name"`
	ContentType     string    `json:"content_type"`
	DurationSeconds float64   `json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
}
