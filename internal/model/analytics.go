package model

import "time"

// DashboardSummary 仪表盘汇总指标，数值以后端返回为准，客户端不做再计算
type DashboardSummary struct {
	TotalPracticeTimeMinutes  float64 `json:"total_practice_time_minutes"`
	TotalLessonsCompleted     int     `json:"total_lessons_completed"`
	TotalAttempts             int     `json:"total_attempts"`
	SuccessfulAttempts        int     `json:"successful_attempts"`
	SuccessRate               float64 `json:"success_rate"`
	AveragePronunciationScore float64 `json:"average_pronunciation_score"`
}

// DailyAnalytics 按天的练习指标
type DailyAnalytics struct {
	Date                string  `json:"date"`
	Attempts            int     `json:"attempts"`
	SuccessfulAttempts  int     `json:"successful_attempts"`
	AverageScore        float64 `json:"average_score"`
	PracticeTimeMinutes float64 `json:"practice_time_minutes"`
}

// DashboardAnalytics GET /analytics/dashboard 的返回体
type DashboardAnalytics struct {
	Summary        DashboardSummary `json:"summary"`
	DailyAnalytics []DailyAnalytics `json:"daily_analytics"`
}

// TrendPoint 进度趋势时间序列中的一个点
type TrendPoint struct {
	Date         string  `json:"date"`
	AverageScore float64 `json:"average_score"`
	SuccessRate  float64 `json:"success_rate"`
}

// ProgressTrend GET /analytics/progress-trend 的返回体
type ProgressTrend struct {
	Days int          `json:"days"`
	Data []TrendPoint `json:"data"`
}

// Achievement 成就及解锁状态
type Achievement struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

// AchievementsReport GET /analytics/achievements 的返回体
type AchievementsReport struct {
	CurrentStreakDays     int           `json:"current_streak_days"`
	LongestStreakDays     int           `json:"longest_streak_days"`
	TotalLessonsCompleted int           `json:"total_lessons_completed"`
	BestDailyScore        float64       `json:"best_daily_score"`
	Achievements          []Achievement `json:"achievements"`
}

// AnalyticsOverview 分析页一次性聚合的三份数据
type AnalyticsOverview struct {
	Dashboard    *DashboardAnalytics `json:"dashboard"`
	Trend        *ProgressTrend      `json:"trend"`
	Achievements *AchievementsReport `json:"achievements"`
}
