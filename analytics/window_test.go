package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dongeng-kita/dongeng_api/analytics"
	"github.com/dongeng-kita/dongeng_api/model"
	"github.com/dongeng-kita/dongeng_api/shared"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func storyCreatedAt(t time.Time) model.Story {
	return model.Story{CreatedAt: &t}
}

func TestResolveWindow(t *testing.T) {
	t.Run("no parameters yields nil window", func(t *testing.T) {
		w, err := analytics.ResolveWindow("", "", "", 0, testNow)
		require.NoError(t, err)
		assert.Nil(t, w)
	})

	t.Run("start date only runs to now", func(t *testing.T) {
		w, err := analytics.ResolveWindow("2024-01-01", "", "", 0, testNow)
		require.NoError(t, err)
		require.NotNil(t, w)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), w.Start)
		require.NotNil(t, w.End)
		assert.Equal(t, testNow, *w.End)
	})

	t.Run("start and end date form a closed range", func(t *testing.T) {
		w, err := analytics.ResolveWindow("2024-01-01", "2024-01-31", "", 0, testNow)
		require.NoError(t, err)
		require.NotNil(t, w)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), w.Start)
		require.NotNil(t, w.End)
		assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), *w.End)
	})

	t.Run("one week trailing window", func(t *testing.T) {
		w, err := analytics.ResolveWindow("", "", shared.TimeUnitWeek, 1, testNow)
		require.NoError(t, err)
		require.NotNil(t, w)
		assert.Equal(t, testNow.Add(-7*24*time.Hour), w.Start)
		assert.Nil(t, w.End)
	})

	t.Run("periods without a unit default to weeks", func(t *testing.T) {
		w, err := analytics.ResolveWindow("", "", "", 2, testNow)
		require.NoError(t, err)
		require.NotNil(t, w)
		assert.Equal(t, testNow.Add(-14*24*time.Hour), w.Start)
		assert.Nil(t, w.End)
	})

	t.Run("unit without periods carries no window", func(t *testing.T) {
		w, err := analytics.ResolveWindow("", "", shared.TimeUnitMonth, 0, testNow)
		require.NoError(t, err)
		assert.Nil(t, w)
	})

	t.Run("month periods use thirty day blocks", func(t *testing.T) {
		w, err := analytics.ResolveWindow("", "", shared.TimeUnitMonth, 2, testNow)
		require.NoError(t, err)
		require.NotNil(t, w)
		assert.Equal(t, testNow.Add(-60*24*time.Hour), w.Start)
	})

	t.Run("explicit dates take precedence over periods", func(t *testing.T) {
		w, err := analytics.ResolveWindow("2024-02-01", "", shared.TimeUnitWeek, 4, testNow)
		require.NoError(t, err)
		require.NotNil(t, w)
		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), w.Start)
	})

	t.Run("malformed date is a 400", func(t *testing.T) {
		_, err := analytics.ResolveWindow("01-01-2024", "", "", 0, testNow)
		require.Error(t, err)
		appErr, ok := shared.GetAppError(err)
		require.True(t, ok)
		assert.Equal(t, 400, appErr.StatusCode)
	})

	t.Run("end date without start date is a 400", func(t *testing.T) {
		_, err := analytics.ResolveWindow("", "2024-01-31", "", 0, testNow)
		require.Error(t, err)
		appErr, ok := shared.GetAppError(err)
		require.True(t, ok)
		assert.Equal(t, 400, appErr.StatusCode)
	})

	t.Run("unknown time unit is a 400", func(t *testing.T) {
		_, err := analytics.ResolveWindow("", "", "fortnight", 2, testNow)
		require.Error(t, err)
		appErr, ok := shared.GetAppError(err)
		require.True(t, ok)
		assert.Equal(t, 400, appErr.StatusCode)
	})
}

func TestFilterByWindow(t *testing.T) {
	inJan := storyCreatedAt(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC))
	inFeb := storyCreatedAt(time.Date(2024, 2, 10, 10, 0, 0, 0, time.UTC))
	noDate := model.Story{}

	t.Run("nil window is the identity", func(t *testing.T) {
		records := []model.Story{inJan, noDate, inFeb}
		assert.Equal(t, records, analytics.FilterByWindow(records, nil))
	})

	t.Run("records without created_at are dropped once a window applies", func(t *testing.T) {
		end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
		w := &analytics.Window{Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), End: &end}
		filtered := analytics.FilterByWindow([]model.Story{inJan, noDate, inFeb}, w)
		assert.Len(t, filtered, 2)
	})

	t.Run("closed interval keeps boundary values", func(t *testing.T) {
		boundary := storyCreatedAt(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
		end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
		w := &analytics.Window{Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), End: &end}
		filtered := analytics.FilterByWindow([]model.Story{boundary, inFeb}, w)
		assert.Len(t, filtered, 1)
	})

	t.Run("offset timestamps compare in UTC", func(t *testing.T) {
		jakarta := time.FixedZone("WIB", 7*3600)
		// 2024-01-31 23:30 UTC expressed as 2024-02-01 06:30 +07:00.
		local := storyCreatedAt(time.Date(2024, 2, 1, 6, 30, 0, 0, jakarta))
		end := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)
		w := &analytics.Window{Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), End: &end}
		filtered := analytics.FilterByWindow([]model.Story{local}, w)
		assert.Len(t, filtered, 1)
	})

	t.Run("open ended trailing window", func(t *testing.T) {
		w := &analytics.Window{Start: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)}
		filtered := analytics.FilterByWindow([]model.Story{inJan, inFeb}, w)
		require.Len(t, filtered, 1)
		assert.Equal(t, inFeb.CreatedAt, filtered[0].CreatedAt)
	})
}
