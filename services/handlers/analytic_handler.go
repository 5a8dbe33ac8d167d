package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dongeng-kita/dongeng_api/dto"
	"github.com/dongeng-kita/dongeng_api/shared"
)

type AnalyticHandler struct {
	analyticSvc AnalyticServiceInterface
}

func NewAnalyticHandler(analyticSvc AnalyticServiceInterface) *AnalyticHandler {
	return &AnalyticHandler{
		analyticSvc: analyticSvc,
	}
}

// @Summary Get Dashboard
// @Description Get the composed analytics dashboard for the caller's child
// @Tags analytic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response{data=dto.DashboardData}
// @Failure 404 {object} shared.Response
// @Router /api/v1/analytic/dashboard [get]
func (h *AnalyticHandler) GetDashboard(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	dashboard, err := h.analyticSvc.Dashboard(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", dashboard)
}

// @Summary Get Concept Performance
// @Description Get per-concept decision counts and success rates, optionally restricted by themes and time window
// @Tags analytic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param themes query string false "Comma-separated list of themes to filter"
// @Param time_unit query string false "Time unit: 'week' or 'month'"
// @Param num_periods query int false "Number of time units to look back"
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} shared.Response{data=dto.ConceptPerformanceResponse}
// @Failure 400 {object} shared.Response
// @Failure 404 {object} shared.Response
// @Router /api/v1/analytic/concept-performance [get]
func (h *AnalyticHandler) GetConceptPerformance(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	query, err := parseAnalyticQuery(c)
	if err != nil {
		return err
	}

	performance, err := h.analyticSvc.ConceptPerformance(userID, *query)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", performance)
}

// @Summary Get Performance Timeline
// @Description Get per-week or per-month engagement and success metrics, most recent bucket first
// @Tags analytic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param time_unit query string false "Time unit: 'week' or 'month'"
// @Param num_periods query int false "Number of time units to look back"
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} shared.Response{data=dto.PerformanceTimelineResponse}
// @Failure 400 {object} shared.Response
// @Failure 404 {object} shared.Response
// @Router /api/v1/analytic/performance-timeline [get]
func (h *AnalyticHandler) GetPerformanceTimeline(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	query, err := parseAnalyticQuery(c)
	if err != nil {
		return err
	}

	timeline, err := h.analyticSvc.PerformanceTimeline(userID, *query)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", timeline)
}

// @Summary Get Overall Statistics
// @Description Get account-wide totals and concept mastery tiers
// @Tags analytic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response{data=dto.OverallStats}
// @Failure 404 {object} shared.Response
// @Router /api/v1/analytic/overall-statistics [get]
func (h *AnalyticHandler) GetOverallStatistics(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	stats, err := h.analyticSvc.OverallStatistics(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", stats)
}

func parseAnalyticQuery(c *fiber.Ctx) (*dto.AnalyticQuery, error) {
	var query dto.AnalyticQuery
	if err := c.QueryParser(&query); err != nil {
		return nil, shared.NewAppError(fiber.StatusBadRequest, err.Error())
	}

	if err := dto.GetValidator().Struct(query); err != nil {
		return nil, shared.NewAppError(fiber.StatusBadRequest, formatFirstValidationError(err))
	}

	return &query, nil
}

func formatFirstValidationError(err error) string {
	formatted := dto.FormatValidationErrors(err)
	if len(formatted) == 0 {
		return "invalid request"
	}
	return formatted[0].Message
}
