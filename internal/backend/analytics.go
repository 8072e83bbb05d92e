package backend

import (
	"context"
	"fmt"
	"sauticare_web/internal/model"
)

// DashboardAnalytics 获取最近 days 天的仪表盘汇总
func (c *Client) DashboardAnalytics(ctx context.Context, days int) (*model.DashboardAnalytics, error) {
	var out model.DashboardAnalytics
	path := fmt.Sprintf("/analytics/dashboard?days=%d", days)
	if err := c.getJSON(ctx, path, "dashboard_analytics", true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProgressTrend 获取最近 days 天的进度趋势时间序列
func (c *Client) ProgressTrend(ctx context.Context, days int) (*model.ProgressTrend, error) {
	var out model.ProgressTrend
	path := fmt.Sprintf("/analytics/progress-trend?days=%d", days)
	if err := c.getJSON(ctx, path, "progress_trend", true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Achievements 获取连续打卡与成就列表
func (c *Client) Achievements(ctx context.Context) (*model.AchievementsReport, error) {
	var out model.AchievementsReport
	if err := c.getJSON(ctx, "/analytics/achievements", "achievements", true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
