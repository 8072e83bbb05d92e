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

// UploadVoiceSample 上传语音样本，音频同样放在 file 字段
func (c *Client) UploadVoiceSample(ctx context.Context, filename string, audio io.Reader) (*model.VoiceSample, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

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

	req, err := c.newRequest(ctx, http.MethodPost, "/voice/samples", &body, writer.FormDataContentType(), true)
	if err != nil {
		return nil, err
	}

	var out model.VoiceSample
	if err := c.do(req, "upload_voice_sample", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VoiceSamples 列出已上传的语音样本
func (c *Client) VoiceSamples(ctx context.Context) ([]model.VoiceSample, error) {
	var out []model.VoiceSample
	if err := c.getJSON(ctx, "/voice/samples", "voice_samples", true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteVoiceSample 删除语音样本
func (c *Client) DeleteVoiceSample(ctx context.Context, sampleID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/voice/samples/"+url.PathEscape(sampleID), nil, "", true)
	if err != nil {
		return err
	}
	return c.do(req, "delete_voice_sample", nil)
}
