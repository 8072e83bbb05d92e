package controller

import (
	"sauticare_web/internal/service"
	"sauticare_web/internal/util"

	"github.com/gin-gonic/gin"
)

type PracticeController struct {
	PracticeService *service.PracticeService
}

func NewPracticeController(practiceService *service.PracticeService) *PracticeController {
	return &PracticeController{PracticeService: practiceService}
}

// LoadLesson godoc
// @Summary 加载课程进入练习
// @Description 拉取课程详情并激活进度记录
// @Tags 练习
// @Produce  json
// @Param   lessonId path string true "课程ID"
// @Success 200 {object} util.Response{data=model.Lesson} "成功"
// @Failure 400 {object} util.Response "当前状态不允许"
// @Router /api/practice/lessons/{lessonId} [post]
func (c *PracticeController) LoadLesson(ctx *gin.Context) {
	lesson, err := c.PracticeService.LoadLesson(ctx.Request.Context(), ctx.Param("lessonId"))
	if err != nil {
		renderError(ctx, err)
		return
	}

	util.Success(ctx, lesson)
}

// StartSession godoc
// @Summary 开始练习会话
// @Description 创建会话；短语下标归零，完成集清空
// @Tags 练习
// @Produce  json
// @Success 201 {object} util.Response{data=model.PracticeSession} "创建成功"
// @Failure 400 {object} util.Response "尚未加载课程"
// @Router /api/practice/session [post]
func (c *PracticeController) StartSession(ctx *gin.Context) {
	session, err := c.PracticeService.StartSession(ctx.Request.Context())
	if err != nil {
		renderError(ctx, err)
		return
	}

	util.Created(ctx, session)
}

// StartRecording godoc
// @Summary 开始录音
// @Description 浏览器拿到麦克风后通知状态机进入 recording
// @Tags 练习
// @Produce  json
// @Success 200 {object} util.Response{data=practice.Snapshot} "成功"
// @Failure 400 {object} util.Response "当前状态不允许"
// @Router /api/practice/record/start [post]
func (c *PracticeController) StartRecording(ctx *gin.Context) {
	if err := c.PracticeService.BeginRecording(); err != nil {
		renderError(ctx, err)
		return
	}

	util.Success(ctx, c.PracticeService.Snapshot())
}

// FailRecording godoc
// @Summary 录音失败
// @Description 麦克风权限被拒等设备错误；回到录音前的状态，无副作用
// @Tags 练习
// @Produce  json
// @Success 200 {object} util.Response{data=practice.Snapshot} "成功"
// @Failure 400 {object} util.Response "当前不在录音状态"
// @Router /api/practice/record/fail [post]
func (c *PracticeController) FailRecording(ctx *gin.Context) {
	if err := c.PracticeService.FailRecording(); err != nil {
		renderError(ctx, err)
		return
	}

	util.Success(ctx, c.PracticeService.Snapshot())
}

// StopRecording godoc
// @Summary 停止录音并提交评分
// @Description 上传录音（multipart 的 file 字段），返回本次评分结果
// @Tags 练习
// @Accept  mpfd
// @Produce  json
// @Param   file formData file true "录音文件"
// @Success 200 {object} util.Response{data=model.AttemptResult} "成功"
// @Failure 400 {object} util.Response "录音无效或状态不允许"
// @Router /api/practice/record/stop [post]
func (c *PracticeController) StopRecording(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing recording file")
		return
	}

	result, err := c.PracticeService.SubmitRecording(ctx.Request.Context(), file)
	if err != nil {
		renderError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// Next godoc
// @Summary 下一条短语
// @Description 非末条短语时前进；末条短语触发会话收尾并上报完成百分比
// @Tags 练习
// @Produce  json
// @Success 200 {object} util.Response{data=practice.Snapshot} "成功"
// @Failure 400 {object} util.Response "当前状态不允许"
// @Router /api/practice/next [post]
func (c *PracticeController) Next(ctx *gin.Context) {
	if err := c.PracticeService.Next(ctx.Request.Context()); err != nil {
		renderError(ctx, err)
		return
	}

	util.Success(ctx, c.PracticeService.Snapshot())
}

// Previous godoc
// @Summary 上一条短语
// @Description 仅在下标大于 0 时有效；不触碰完成集，也不调用服务端
// @Tags 练习
// @Produce  json
// @Success 200 {object} util.Response{data=practice.Snapshot} "成功"
// @Failure 400 {object} util.Response "已在第一条短语"
// @Router /api/practice/previous [post]
func (c *PracticeController) Previous(ctx *gin.Context) {
	if err := c.PracticeService.Previous(); err != nil {
		renderError(ctx, err)
		return
	}

	util.Success(ctx, c.PracticeService.Snapshot())
}

// State godoc
// @Summary 练习状态快照
// @Description 界面渲染用的只读视图
// @Tags 练习
// @Produce  json
// @Success 200 {object} util.Response{data=practice.Snapshot} "成功"
// @Router /api/practice/state [get]
func (c *PracticeController) State(ctx *gin.Context) {
	util.Success(ctx, c.PracticeService.Snapshot())
}
