package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sauticare_web/internal/backend"
	"sauticare_web/internal/config"
	"sync/atomic"
	"testing"
)

func newAnalyticsService(t *testing.T, handler http.HandlerFunc) *AnalyticsService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	api := backend.NewClient(config.BackendConfig{BaseURL: srv.URL}, backend.StaticToken("tok"))
	return NewAnalyticsService(api)
}

func TestOverviewAggregatesAllThree(t *testing.T) {
	var trendQuery atomic.Value
	svc := newAnalyticsService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/analytics/dashboard":
			w.Write([]byte(`{"summary":{"total_attempts":42,"success_rate":0.8},"daily_analytics":[]}`))
		case "/analytics/progress-trend":
			trendQuery.Store(r.URL.Query().Get("days"))
			w.Write([]byte(`{"days":30,"data":[{"date":"2026-08-31","average_score":81.2}]}`))
		case "/analytics/achievements":
			w.Write([]byte(`{"current_streak_days":5,"achievements":[]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
		}
	})

	overview, err := svc.Overview(context.Background(), 7)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if overview.Dashboard == nil || overview.Trend == nil || overview.Achievements == nil {
		t.Fatalf("incomplete overview: %+v", overview)
	}
	if overview.Dashboard.Summary.TotalAttempts != 42 {
		t.Fatalf("dashboard = %+v", overview.Dashboard)
	}
	if overview.Achievements.CurrentStreakDays != 5 {
		t.Fatalf("achievements = %+v", overview.Achievements)
	}
	// 趋势固定 30 天窗口，不跟随仪表盘的 days
	if got := trendQuery.Load(); got != "30" {
		t.Fatalf("trend days = %v, want 30", got)
	}
}

func TestOverviewFailsWhenAnyPartFails(t *testing.T) {
	svc := newAnalyticsService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/analytics/achievements" {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"detail":"achievements unavailable"}`))
			return
		}
		w.Write([]byte(`{}`))
	})

	if _, err := svc.Overview(context.Background(), 7); err == nil {
		t.Fatal("expected Overview to fail when one source fails")
	}
}
