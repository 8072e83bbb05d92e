package controller

import (
	"sauticare_web/internal/service"
	"sauticare_web/internal/util"

	"github.com/gin-gonic/gin"
)

type VoiceController struct {
	VoiceService *service.VoiceService
}

func NewVoiceController(voiceService *service.VoiceService) *VoiceController {
	return &VoiceController{VoiceService: voiceService}
}

// Upload godoc
// @Summary 上传语音样本
// @Tags 语音样本
// @Accept  mpfd
// @Produce  json
// @Param   file formData file true "音频文件"
// @Success 201 {object} util.Response{data=model.VoiceSample} "创建成功"
// @Failure 400 {object} util.Response "文件缺失或不是音频"
// @Router /api/voice/samples [post]
func (c *VoiceController) Upload(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing audio file")
		return
	}

	sample, err := c.VoiceService.Upload(ctx.Request.Context(), file)
	if err != nil {
		renderError(ctx, err)
		return
	}

	util.Created(ctx, sample)
}

// List godoc
// @Summary 语音样本列表
// @Tags 语音样本
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.VoiceSample} "成功"
// @Router /api/voice/samples [get]
func (c *VoiceController) List(ctx *gin.Context) {
	samples, err := c.VoiceService.List(ctx.Request.Context())
	if err != nil {
		renderError(ctx, err)
		return
	}

	util.Success(ctx, samples)
}

// Delete godoc
// @Summary 删除语音样本
// @Tags 语音样本
// @Produce  json
// @Param   sampleId path string true "样本ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "样本不存在"
// @Router /api/voice/samples/{sampleId} [delete]
func (c *VoiceController) Delete(ctx *gin.Context) {
	if err := c.VoiceService.Delete(ctx.Request.Context(), ctx.Param("sampleId")); err != nil {
		renderError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
