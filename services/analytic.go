package services

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/dongeng-kita/dongeng_api/analytics"
	"github.com/dongeng-kita/dongeng_api/dto"
	"github.com/dongeng-kita/dongeng_api/model"
	"github.com/dongeng-kita/dongeng_api/services/repositories"
	"github.com/dongeng-kita/dongeng_api/shared"
)

// AnalyticService is the facade over the pure aggregators in the analytics
// package: it fetches one user's record set, dispatches to the right
// aggregator per route and caches the heavier composed responses.
type AnalyticService struct {
	appContext.DefaultService

	sqlSvc     *PostgresService
	redisSvc   *RedisService
	accountSvc *AccountService

	storyRepo *repositories.StoryRepository

	cacheTTL time.Duration
}

const ANALYTIC_SVC = "analytic_svc"

func (svc AnalyticService) Id() string {
	return ANALYTIC_SVC
}

func (svc *AnalyticService) Configure(ctx *appContext.Context) error {
	svc.cacheTTL = time.Minute
	if ttlStr := os.Getenv("ANALYTIC_CACHE_TTL_SECONDS"); ttlStr != "" {
		if ttl, err := strconv.Atoi(ttlStr); err == nil && ttl > 0 {
			svc.cacheTTL = time.Duration(ttl) * time.Second
		}
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *AnalyticService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.accountSvc = svc.Service(ACCOUNT_SVC).(*AccountService)
	svc.storyRepo = repositories.NewStoryRepository(svc.sqlSvc.Db())
	return nil
}

// fetchRecords loads the caller's full record set; an empty set is a domain
// error surfaced as 404, never a crash.
func (svc *AnalyticService) fetchRecords(userID string) ([]model.Story, error) {
	stories, err := svc.storyRepo.FindByOwner(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	if len(stories) == 0 {
		return nil, shared.ErrNoRecordsFound()
	}
	return stories, nil
}

func (svc *AnalyticService) Dashboard(userID string) (*dto.DashboardData, error) {
	cacheKey := dashboardCacheKey(userID)

	var cached dto.DashboardData
	if hit, err := svc.redisSvc.GetJSON(context.Background(), cacheKey, &cached); err == nil && hit {
		return &cached, nil
	} else if err != nil {
		log.WithError(err).Warn("Analytic cache read failed")
	}

	records, err := svc.fetchRecords(userID)
	if err != nil {
		return nil, err
	}

	response := &dto.DashboardData{
		ChildInfo:          svc.buildChildInfo(userID, records),
		RecentStatus:       placeholderRecentStatus(),
		ConceptPerformance: analytics.ConceptPerformance(records, nil),
		WeeklyTimeline:     analytics.WeeklyTimeline(records),
		OverallStats:       analytics.Overall(records),
	}

	if err := svc.redisSvc.Set(context.Background(), cacheKey, response, svc.cacheTTL); err != nil {
		log.WithError(err).Warn("Analytic cache write failed")
	}

	return response, nil
}

func (svc *AnalyticService) ConceptPerformance(userID string, query dto.AnalyticQuery) (*dto.ConceptPerformanceResponse, error) {
	records, err := svc.fetchRecords(userID)
	if err != nil {
		return nil, err
	}

	window, err := analytics.ResolveWindow(query.StartDate, query.EndDate, query.TimeUnit, query.NumPeriods, time.Now())
	if err != nil {
		return nil, err
	}

	filtered := analytics.FilterByWindow(records, window)

	return &dto.ConceptPerformanceResponse{
		ConceptPerformance: analytics.ConceptPerformance(filtered, splitThemes(query.Themes)),
	}, nil
}

func (svc *AnalyticService) PerformanceTimeline(userID string, query dto.AnalyticQuery) (*dto.PerformanceTimelineResponse, error) {
	records, err := svc.fetchRecords(userID)
	if err != nil {
		return nil, err
	}

	return timelineResponse(records, query, time.Now())
}

// timelineResponse composes the timeline body for one record set. No bucket
// unit and no time parameters at all is the degenerate case: the caller
// gets the raw record set back, not an error. Once any time parameter is
// present the response holds buckets, week-sized unless a unit says
// otherwise.
func timelineResponse(records []model.Story, query dto.AnalyticQuery, now time.Time) (*dto.PerformanceTimelineResponse, error) {
	if query.TimeUnit == "" && query.NumPeriods == 0 && query.StartDate == "" && query.EndDate == "" {
		summaries := make([]dto.StoryResponse, 0, len(records))
		for _, record := range records {
			summaries = append(summaries, MapStoryResponse(record, ""))
		}
		return &dto.PerformanceTimelineResponse{PerformanceTimeline: summaries}, nil
	}

	window, err := analytics.ResolveWindow(query.StartDate, query.EndDate, query.TimeUnit, query.NumPeriods, now)
	if err != nil {
		return nil, err
	}

	unit := query.TimeUnit
	if unit == "" {
		unit = shared.TimeUnitWeek
	}

	buckets, err := analytics.Timeline(analytics.FilterByWindow(records, window), unit)
	if err != nil {
		return nil, err
	}

	return &dto.PerformanceTimelineResponse{PerformanceTimeline: buckets}, nil
}

func (svc *AnalyticService) OverallStatistics(userID string) (*dto.OverallStats, error) {
	cacheKey := overallCacheKey(userID)

	var cached dto.OverallStats
	if hit, err := svc.redisSvc.GetJSON(context.Background(), cacheKey, &cached); err == nil && hit {
		return &cached, nil
	} else if err != nil {
		log.WithError(err).Warn("Analytic cache read failed")
	}

	records, err := svc.fetchRecords(userID)
	if err != nil {
		return nil, err
	}

	stats := analytics.Overall(records)

	if err := svc.redisSvc.Set(context.Background(), cacheKey, stats, svc.cacheTTL); err != nil {
		log.WithError(err).Warn("Analytic cache write failed")
	}

	return &stats, nil
}

// InvalidateCache drops every cached analytic response for a user. Called
// by the story service after each record mutation.
func (svc *AnalyticService) InvalidateCache(userID string) {
	if err := svc.redisSvc.DeleteByPattern(context.Background(), analyticCachePattern(userID)); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Analytic cache invalidation failed")
	}
}

func (svc *AnalyticService) buildChildInfo(userID string, records []model.Story) dto.ChildInfo {
	info := dto.ChildInfo{
		UserID:   userID,
		AgeGroup: "8-10",
	}

	if user, err := svc.accountSvc.GetUser(userID); err == nil && user.ChildBirthYear > 0 {
		info.AgeGroup = ageGroup(time.Now().Year() - user.ChildBirthYear)
	}

	for _, record := range records {
		if record.CreatedAt == nil {
			continue
		}
		createdAt := record.CreatedAt.UTC()
		if info.LastActive == nil || createdAt.After(*info.LastActive) {
			info.LastActive = &createdAt
		}
	}

	return info
}

// placeholderRecentStatus is a fixed snapshot; live recent-activity
// tracking belongs to the reading session service, not the analytics
// engine.
func placeholderRecentStatus() dto.RecentStatus {
	return dto.RecentStatus{
		ActiveStory: dto.ActiveStory{
			Title:        "Celengan Si Kecil",
			CurrentScene: 3,
			TotalScenes:  8,
			StartedAt:    "2025-01-15T14:00:00Z",
		},
		TodayMinutes:    25,
		ThisWeekMinutes: 120,
	}
}

func ageGroup(age int) string {
	switch {
	case age <= 7:
		return "5-7"
	case age <= 10:
		return "8-10"
	default:
		return "11-13"
	}
}

func splitThemes(raw string) []string {
	if raw == "" {
		return nil
	}

	var themes []string
	for _, theme := range strings.Split(raw, ",") {
		theme = strings.TrimSpace(theme)
		if theme != "" {
			themes = append(themes, theme)
		}
	}
	return themes
}

func dashboardCacheKey(userID string) string {
	return fmt.Sprintf("analytic:%s:dashboard", userID)
}

func overallCacheKey(userID string) string {
	return fmt.Sprintf("analytic:%s:overall", userID)
}

func analyticCachePattern(userID string) string {
	return fmt.Sprintf("analytic:%s:*", userID)
}
