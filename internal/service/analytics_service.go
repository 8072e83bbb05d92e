package service

import (
	"context"
	"sauticare_web/internal/backend"
	"sauticare_web/internal/model"
	"sync"
)

// 趋势图固定取 30 天窗口，与仪表盘的 days 参数无关
const trendWindowDays = 30

// AnalyticsService 分析页数据，纯读；数值以后端返回为准
type AnalyticsService struct {
	api *backend.Client
}

func NewAnalyticsService(api *backend.Client) *AnalyticsService {
	return &AnalyticsService{api: api}
}

// Overview 并行拉取仪表盘、趋势和成就三份数据，全部就绪才返回；
// 任何一个失败都使整体失败，不做部分渲染。
func (s *AnalyticsService) Overview(ctx context.Context, days int) (*model.AnalyticsOverview, error) {
	overview := &model.AnalyticsOverview{}
	errs := make([]error, 3)

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		overview.Dashboard, errs[0] = s.api.DashboardAnalytics(ctx, days)
	}()
	go func() {
		defer wg.Done()
		overview.Trend, errs[1] = s.api.ProgressTrend(ctx, trendWindowDays)
	}()
	go func() {
		defer wg.Done()
		overview.Achievements, errs[2] = s.api.Achievements(ctx)
	}()

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return overview, nil
}

func (s *AnalyticsService) Dashboard(ctx context.Context, days int) (*model.DashboardAnalytics, error) {
	return s.api.DashboardAnalytics(ctx, days)
}

func (s *AnalyticsService) Trend(ctx context.Context, days int) (*model.ProgressTrend, error) {
	return s.api.ProgressTrend(ctx, days)
}

func (s *AnalyticsService) Achievements(ctx context.Context) (*model.AchievementsReport, error) {
	return s.api.Achievements(ctx)
}
