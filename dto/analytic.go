package dto

import "time"

// AnalyticQuery carries the shared time-window parameters of the analytic
// endpoints. Dates are YYYY-MM-DD strings; TimeUnit is validated against
// the supported bucket units before any aggregation runs.
type AnalyticQuery struct {
	Themes     string `query:"themes"`
	TimeUnit   string `query:"time_unit" validate:"omitempty,oneof=week month"`
	NumPeriods int    `query:"num_periods" validate:"omitempty,gt=0"`
	StartDate  string `query:"start_date"`
	EndDate    string `query:"end_date"`
}

type ConceptStats struct {
	TotalDecisions   int        `json:"total_decisions"`
	CorrectDecisions int        `json:"correct_decisions"`
	SuccessRate      float64    `json:"success_rate"`
	FirstEncounter   *time.Time `json:"first_encounter"`
	LastEncounter    *time.Time `json:"last_encounter"`
}

type TimelineMetrics struct {
	TotalMinutesPlayed     float64  `json:"total_minutes_played"`
	StoriesCompleted       int      `json:"stories_completed"`
	SuccessRate            float64  `json:"success_rate"`
	ConceptsEncountered    []string `json:"concepts_encountered"`
	ActiveDays             int      `json:"active_days"`
	AverageSessionDuration float64  `json:"average_session_duration"`
}

// TimelineBucket is one calendar period of the performance timeline. The
// key is the ISO Monday of the week or YYYY-MM for months.
type TimelineBucket struct {
	TimeUnit string          `json:"time_unit"`
	Metrics  TimelineMetrics `json:"metrics"`
}

// WeekBucket is the dashboard flavour of a timeline bucket; the dashboard
// always buckets by week and names the key accordingly.
type WeekBucket struct {
	Week    string          `json:"week"`
	Metrics TimelineMetrics `json:"metrics"`
}

type OverallStats struct {
	TotalStoriesCompleted  int        `json:"total_stories_completed"`
	TotalLearningTimeHours float64    `json:"total_learning_time_hours"`
	OverallSuccessRate     float64    `json:"overall_success_rate"`
	ConceptsMastered       []string   `json:"concepts_mastered"`
	ConceptsLearning       []string   `json:"concepts_learning"`
	ConceptsStruggling     []string   `json:"concepts_struggling"`
	AccountCreated         *time.Time `json:"account_created"`
}

type ConceptPerformanceResponse struct {
	ConceptPerformance map[string]ConceptStats `json:"concept_performance"`
}

// PerformanceTimelineResponse holds either []TimelineBucket or, when the
// request carries no bucket unit and no time parameters at all, the raw
// story summaries (documented pass-through case).
type PerformanceTimelineResponse struct {
	PerformanceTimeline interface{} `json:"performance_timeline"`
}

type ChildInfo struct {
	UserID     string     `json:"user_id"`
	AgeGroup   string     `json:"age_group"`
	LastActive *time.Time `json:"last_active"`
}

type ActiveStory struct {
	Title        string `json:"title"`
	CurrentScene int    `json:"current_scene"`
	TotalScenes  int    `json:"total_scenes"`
	StartedAt    string `json:"started_at"`
}

// RecentStatus is a fixed snapshot; live computation of the recent-activity
// panel is out of scope for the analytics engine.
type RecentStatus struct {
	ActiveStory     ActiveStory `json:"active_story"`
	TodayMinutes    int         `json:"today_minutes"`
	ThisWeekMinutes int         `json:"this_week_minutes"`
}

// DashboardData is the composed dashboard body, returned as the data field
// of the standard response envelope.
type DashboardData struct {
	ChildInfo          ChildInfo               `json:"child_info"`
	RecentStatus       RecentStatus            `json:"recent_status"`
	ConceptPerformance map[string]ConceptStats `json:"concept_performance"`
	WeeklyTimeline     []WeekBucket            `json:"weekly_timeline"`
	OverallStats       OverallStats            `json:"overall_stats"`
}
