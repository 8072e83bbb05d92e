package controller

import (
	"sauticare_web/internal/service"
	"sauticare_web/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// parseDays 解析 days 参数，缺省 7 天
func parseDays(ctx *gin.Context) (int, bool) {
	raw := ctx.DefaultQuery("days", "7")
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 || days > 365 {
		util.BadRequest(ctx, "days must be an integer between 1 and 365")
		return 0, false
	}
	return days, true
}

// Overview godoc
// @Summary 分析页聚合数据
// @Description 并行拉取仪表盘、趋势和成就；任何一项失败整体失败
// @Tags 分析
// @Produce  json
// @Param   days query int false "仪表盘时间窗口（天），默认 7"
// @Success 200 {object} util.Response{data=model.AnalyticsOverview} "成功"
// @Failure 401 {object} util.Response "未登录"
// @Router /api/analytics/overview [get]
func (c *AnalyticsController) Overview(ctx *gin.Context) {
	days, ok := parseDays(ctx)
	if !ok {
		return
	}

	overview, err := c.AnalyticsService.Overview(ctx.Request.Context(), days)
	if err != nil {
		renderError(ctx, err)
		return
	}

	util.Success(ctx, overview)
}

// Dashboard godoc
// @Summary 仪表盘汇总
// @Tags 分析
// @Produce  json
// @Param   days query int false "时间窗口（天），默认 7"
// @Success 200 {object} util.Response{data=model.DashboardAnalytics} "成功"
// @Router /api/analytics/dashboard [get]
func (c *AnalyticsController) Dashboard(ctx *gin.Context) {
	days, ok := parseDays(ctx)
	if !ok {
		return
	}

	dashboard, err := c.AnalyticsService.Dashboard(ctx.Request.Context(), days)
	if err != nil {
		renderError(ctx, err)
		return
	}

	util.Success(ctx, dashboard)
}

// Trend godoc
// @Summary 进度趋势
// @Tags 分析
// @Produce  json
// @Param   days query int false "时间窗口（天），默认 7"
// @Success 200 {object} util.Response{data=model.ProgressTrend} "成功"
// @Router /api/analytics/progress-trend [get]
func (c *AnalyticsController) Trend(ctx *gin.Context) {
	days, ok := parseDays(ctx)
	if !ok {
		return
	}

	trend, err := c.AnalyticsService.Trend(ctx.Request.Context(), days)
	if err != nil {
		renderError(ctx, err)
		return
	}

	util.Success(ctx, trend)
}

// Achievements godoc
// @Summary 成就与连续打卡
// @Tags 分析
// @Produce  json
// @Success 200 {object} util.Response{data=model.AchievementsReport} "成功"
// @Router /api/analytics/achievements [get]
func (c *AnalyticsController) Achievements(ctx *gin.Context) {
	report, err := c.AnalyticsService.Achievements(ctx.Request.Context())
	if err != nil {
		renderError(ctx, err)
		return
	}

	util.Success(ctx, report)
}
