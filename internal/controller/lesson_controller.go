package controller

import (
	"sauticare_web/internal/model"
	"sauticare_web/internal/service"
	"sauticare_web/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService *service.LessonService
}

func NewLessonController(lessonService *service.LessonService) *LessonController {
	return &LessonController{LessonService: lessonService}
}

// List godoc
// @Summary 课程列表
// @Description 按类别/难度/语言筛选课程
// @Tags 课程
// @Produce  json
// @Param   category query string false "类别 nutrition|hygiene"
// @Param   difficulty_level query int false "难度 1-5"
// @Param   language query string false "语言"
// @Success 200 {object} util.Response{data=[]model.Lesson} "成功"
// @Failure 401 {object} util.Response "未登录"
// @Router /api/lessons [get]
func (c *LessonController) List(ctx *gin.Context) {
	filter := model.LessonFilter{
		Category: ctx.Query("category"),
		Language: ctx.Query("language"),
	}
	if raw := ctx.Query("difficulty_level"); raw != "" {
		level, err := strconv.Atoi(raw)
		if err != nil || level < 1 || level > 5 {
			util.BadRequest(ctx, "difficulty_level must be an integer between 1 and 5")
			return
		}
		filter.DifficultyLevel = level
	}

	lessons, err := c.LessonService.Lessons(ctx.Request.Context(), filter)
	if err != nil {
		renderError(ctx, err)
		return
	}

	util.Success(ctx, lessons)
}

// Detail godoc
// @Summary 课程详情
// @Description 返回课程及按 sequence_order 排好序的短语
// @Tags 课程
// @Produce  json
// @Param   lessonId path string true "课程ID"
// @Success 200 {object} util.Response{data=model.Lesson} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/lessons/{lessonId} [get]
func (c *LessonController) Detail(ctx *gin.Context) {
	lesson, err := c.LessonService.LessonDetail(ctx.Request.Context(), ctx.Param("lessonId"))
	if err != nil {
		renderError(ctx, err)
		return
	}

	util.Success(ctx, lesson)
}

// MyProgress godoc
// @Summary 我的进度
// @Description 学习者全部课程的进度记录
// @Tags 课程
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.LessonProgress} "成功"
// @Failure 401 {object} util.Response "未登录"
// @Router /api/lessons/progress/me [get]
func (c *LessonController) MyProgress(ctx *gin.Context) {
	progress, err := c.LessonService.MyProgress(ctx.Request.Context())
	if err != nil {
		renderError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}
