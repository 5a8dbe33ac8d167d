package analytics_test

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dongeng-kita/dongeng_api/analytics"
	"github.com/dongeng-kita/dongeng_api/model"
	"github.com/dongeng-kita/dongeng_api/shared"
)

func TestBucketKey(t *testing.T) {
	t.Run("week key is the ISO Monday", func(t *testing.T) {
		// 2024-03-13 is a Wednesday; its week starts Monday 2024-03-11.
		wednesday := time.Date(2024, 3, 13, 15, 0, 0, 0, time.UTC)
		assert.Equal(t, "2024-03-11", analytics.BucketKey(wednesday, shared.TimeUnitWeek))
	})

	t.Run("monday maps to itself", func(t *testing.T) {
		monday := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, "2024-03-11", analytics.BucketKey(monday, shared.TimeUnitWeek))
	})

	t.Run("sunday belongs to the preceding monday", func(t *testing.T) {
		sunday := time.Date(2024, 3, 17, 23, 59, 0, 0, time.UTC)
		assert.Equal(t, "2024-03-11", analytics.BucketKey(sunday, shared.TimeUnitWeek))
	})

	t.Run("month key is year dash month", func(t *testing.T) {
		assert.Equal(t, "2024-03", analytics.BucketKey(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), shared.TimeUnitMonth))
	})

	t.Run("offset timestamps bucket by their UTC instant", func(t *testing.T) {
		jakarta := time.FixedZone("WIB", 7*3600)
		// Monday 2024-03-11 02:00 +07:00 is still Sunday 2024-03-10 in UTC.
		local := time.Date(2024, 3, 11, 2, 0, 0, 0, jakarta)
		assert.Equal(t, "2024-03-04", analytics.BucketKey(local, shared.TimeUnitWeek))
	})
}

func TestTimeline(t *testing.T) {
	week1 := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)  // week of 2024-03-04
	week2 := time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC) // week of 2024-03-11

	records := []model.Story{
		{
			Themes:         model.StringList{"menabung"},
			Choices:        choicesOf("baik", "buruk"),
			Status:         shared.StatusFinished,
			SessionSeconds: 600,
			CreatedAt:      &week1,
		},
		{
			Themes:         model.StringList{"kejujuran", "keberanian"},
			Choices:        choicesOf("baik", "baik"),
			Status:         shared.StatusFinished,
			SessionSeconds: 300,
			CreatedAt:      &week2,
		},
		{
			Themes:    model.StringList{"kejujuran"},
			Choices:   choicesOf("baik"),
			Status:    shared.StatusInProgress,
			CreatedAt: &week2,
		},
		{
			// No created_at, cannot be bucketed.
			Choices: choicesOf("buruk"),
		},
	}

	t.Run("buckets sort most recent first", func(t *testing.T) {
		timeline, err := analytics.Timeline(records, shared.TimeUnitWeek)
		require.NoError(t, err)
		require.Len(t, timeline, 2)
		assert.Equal(t, "2024-03-11", timeline[0].TimeUnit)
		assert.Equal(t, "2024-03-04", timeline[1].TimeUnit)

		keys := []string{timeline[0].TimeUnit, timeline[1].TimeUnit}
		assert.True(t, sort.SliceIsSorted(keys, func(i, j int) bool { return keys[i] > keys[j] }))
	})

	t.Run("per bucket metrics", func(t *testing.T) {
		timeline, err := analytics.Timeline(records, shared.TimeUnitWeek)
		require.NoError(t, err)

		recent := timeline[0].Metrics
		assert.Equal(t, 5.0, recent.TotalMinutesPlayed)
		assert.Equal(t, 1, recent.StoriesCompleted)
		assert.Equal(t, 100.0, recent.SuccessRate)
		assert.Equal(t, []string{"keberanian", "kejujuran"}, recent.ConceptsEncountered)
		assert.Equal(t, 1, recent.ActiveDays)
		// Only the finished session recorded any time.
		assert.Equal(t, 5.0, recent.AverageSessionDuration)

		older := timeline[1].Metrics
		assert.Equal(t, 10.0, older.TotalMinutesPlayed)
		assert.Equal(t, 50.0, older.SuccessRate)
	})

	t.Run("records without created_at are skipped", func(t *testing.T) {
		timeline, err := analytics.Timeline(records, shared.TimeUnitWeek)
		require.NoError(t, err)

		total := 0
		for _, bucket := range timeline {
			total += len(bucket.Metrics.ConceptsEncountered)
		}
		// The undated record's choice shows up nowhere.
		assert.Equal(t, 3, total)
	})

	t.Run("zero second sessions do not drag the average down", func(t *testing.T) {
		zeroSecond := model.Story{
			Status:         shared.StatusFinished,
			SessionSeconds: 0,
			CreatedAt:      &week1,
		}
		timeline, err := analytics.Timeline(append(records, zeroSecond), shared.TimeUnitWeek)
		require.NoError(t, err)

		older := timeline[1].Metrics
		assert.Equal(t, 2, older.StoriesCompleted)
		// Still the single 10-minute session; the zero-second completion
		// counts toward completions only.
		assert.Equal(t, 10.0, older.AverageSessionDuration)
	})

	t.Run("month buckets collapse the same month", func(t *testing.T) {
		timeline, err := analytics.Timeline(records, shared.TimeUnitMonth)
		require.NoError(t, err)
		require.Len(t, timeline, 1)
		assert.Equal(t, "2024-03", timeline[0].TimeUnit)
		assert.Equal(t, 2, timeline[0].Metrics.StoriesCompleted)
	})

	t.Run("unknown unit is rejected", func(t *testing.T) {
		_, err := analytics.Timeline(records, "day")
		require.Error(t, err)
		appErr, ok := shared.GetAppError(err)
		require.True(t, ok)
		assert.Equal(t, 400, appErr.StatusCode)
	})

	t.Run("empty input yields an empty timeline", func(t *testing.T) {
		timeline, err := analytics.Timeline(nil, shared.TimeUnitWeek)
		require.NoError(t, err)
		assert.Empty(t, timeline)
	})
}

func TestWeeklyTimeline(t *testing.T) {
	created := time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC)
	records := []model.Story{{
		Themes:    model.StringList{"menabung"},
		Choices:   choicesOf("baik"),
		CreatedAt: &created,
	}}

	timeline := analytics.WeeklyTimeline(records)
	require.Len(t, timeline, 1)
	assert.Equal(t, "2024-03-11", timeline[0].Week)
	assert.Equal(t, 100.0, timeline[0].Metrics.SuccessRate)
}
