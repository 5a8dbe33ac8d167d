package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dongeng-kita/dongeng_api/dto"
	"github.com/dongeng-kita/dongeng_api/services/handlers"
	"github.com/dongeng-kita/dongeng_api/shared"
)

const testUserID = "0195e3a2-0000-7000-8000-000000000001"

type stubAnalyticService struct {
	dashboard *dto.DashboardData
	concepts  *dto.ConceptPerformanceResponse
	timeline  *dto.PerformanceTimelineResponse
	overall   *dto.OverallStats
	err       error

	lastQuery dto.AnalyticQuery
}

func (s *stubAnalyticService) Dashboard(userID string) (*dto.DashboardData, error) {
	return s.dashboard, s.err
}

func (s *stubAnalyticService) ConceptPerformance(userID string, query dto.AnalyticQuery) (*dto.ConceptPerformanceResponse, error) {
	s.lastQuery = query
	return s.concepts, s.err
}

func (s *stubAnalyticService) PerformanceTimeline(userID string, query dto.AnalyticQuery) (*dto.PerformanceTimelineResponse, error) {
	s.lastQuery = query
	return s.timeline, s.err
}

func (s *stubAnalyticService) OverallStatistics(userID string) (*dto.OverallStats, error) {
	return s.overall, s.err
}

// newTestApp mirrors the production error handling: AppErrors keep their
// status, everything else is a 500.
func newTestApp(register func(app *fiber.App)) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if appErr, ok := shared.GetAppError(err); ok {
				return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
			}
			return shared.ResponseInternalError(c, err)
		},
	})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(shared.UserID, testUserID)
		return c.Next()
	})
	register(app)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target string) (*http.Response, shared.Response) {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope shared.Response
	require.NoError(t, json.Unmarshal(body, &envelope))
	return resp, envelope
}

func TestGetDashboard(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		stub := &stubAnalyticService{dashboard: &dto.DashboardData{
			ChildInfo: dto.ChildInfo{UserID: testUserID, AgeGroup: "8-10"},
		}}
		app := newTestApp(func(app *fiber.App) {
			app.Get("/dashboard", handlers.NewAnalyticHandler(stub).GetDashboard)
		})

		resp, envelope := doRequest(t, app, http.MethodGet, "/dashboard")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Success", envelope.Message)

		data, ok := envelope.Data.(map[string]interface{})
		require.True(t, ok)
		childInfo, ok := data["child_info"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, testUserID, childInfo["user_id"])
	})

	t.Run("empty record set is a 404", func(t *testing.T) {
		stub := &stubAnalyticService{err: shared.ErrNoRecordsFound()}
		app := newTestApp(func(app *fiber.App) {
			app.Get("/dashboard", handlers.NewAnalyticHandler(stub).GetDashboard)
		})

		resp, envelope := doRequest(t, app, http.MethodGet, "/dashboard")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, envelope.Message, "doesn't have any stories")
	})
}

func TestGetConceptPerformance(t *testing.T) {
	t.Run("query parameters reach the service", func(t *testing.T) {
		stub := &stubAnalyticService{concepts: &dto.ConceptPerformanceResponse{}}
		app := newTestApp(func(app *fiber.App) {
			app.Get("/concept-performance", handlers.NewAnalyticHandler(stub).GetConceptPerformance)
		})

		resp, _ := doRequest(t, app, http.MethodGet,
			"/concept-performance?themes=menabung,kejujuran&time_unit=week&num_periods=2")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "menabung,kejujuran", stub.lastQuery.Themes)
		assert.Equal(t, "week", stub.lastQuery.TimeUnit)
		assert.Equal(t, 2, stub.lastQuery.NumPeriods)
	})

	t.Run("invalid time unit rejected before the service runs", func(t *testing.T) {
		stub := &stubAnalyticService{}
		app := newTestApp(func(app *fiber.App) {
			app.Get("/concept-performance", handlers.NewAnalyticHandler(stub).GetConceptPerformance)
		})

		resp, _ := doRequest(t, app, http.MethodGet, "/concept-performance?time_unit=day")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("negative num_periods rejected", func(t *testing.T) {
		stub := &stubAnalyticService{}
		app := newTestApp(func(app *fiber.App) {
			app.Get("/concept-performance", handlers.NewAnalyticHandler(stub).GetConceptPerformance)
		})

		resp, _ := doRequest(t, app, http.MethodGet, "/concept-performance?num_periods=-1")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetPerformanceTimeline(t *testing.T) {
	t.Run("malformed date surfaces as 400", func(t *testing.T) {
		stub := &stubAnalyticService{err: shared.ErrInvalidDateFormat("2024/01/01")}
		app := newTestApp(func(app *fiber.App) {
			app.Get("/performance-timeline", handlers.NewAnalyticHandler(stub).GetPerformanceTimeline)
		})

		resp, envelope := doRequest(t, app, http.MethodGet, "/performance-timeline?start_date=2024/01/01")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, envelope.Message, "date format")
		assert.Equal(t, "2024/01/01", envelope.Data)
	})

	t.Run("empty record set is a 404", func(t *testing.T) {
		stub := &stubAnalyticService{err: shared.ErrNoRecordsFound()}
		app := newTestApp(func(app *fiber.App) {
			app.Get("/performance-timeline", handlers.NewAnalyticHandler(stub).GetPerformanceTimeline)
		})

		resp, _ := doRequest(t, app, http.MethodGet, "/performance-timeline")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetOverallStatistics(t *testing.T) {
	stub := &stubAnalyticService{overall: &dto.OverallStats{
		TotalStoriesCompleted: 4,
		ConceptsMastered:      []string{"menabung"},
	}}
	app := newTestApp(func(app *fiber.App) {
		app.Get("/overall-statistics", handlers.NewAnalyticHandler(stub).GetOverallStatistics)
	})

	resp, envelope := doRequest(t, app, http.MethodGet, "/overall-statistics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(4), data["total_stories_completed"])
}
