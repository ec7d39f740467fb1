package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetcost-team/meetcost/errors"
	analyticsDTO "github.com/meetcost-team/meetcost/internal/adapter/dto/analytics"
	"github.com/meetcost-team/meetcost/internal/domain/entities"
	analyticsUsecase "github.com/meetcost-team/meetcost/internal/usecase/analytics"
)

// Analytics handles reporting HTTP requests
type Analytics struct {
	analyticsService analyticsUsecase.Service
	logger           *zap.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService analyticsUsecase.Service, logger *zap.Logger) *Analytics {
	return &Analytics{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// rollupWindow resolves the requested window, defaulting to the last 30 days
func rollupWindow(from, to *time.Time) (time.Time, time.Time) {
	end := time.Now().UTC()
	if to != nil {
		end = *to
	}
	start := end.AddDate(0, 0, -30)
	if from != nil {
		start = *from
	}
	return start, end
}

// GetRollup handles GET /analytics/rollup
// @Summary      Get the organization cost rollup
// @Description  Aggregates the organization's finalized cost history into a
// @Description  summary, a trend and per-department/category rollups
// @Tags         Analytics
// @Produce      json
// @Security     BearerAuth
// @Param        from    query  string  false  "Window start (RFC3339, default: 30 days ago)"
// @Param        to      query  string  false  "Window end (RFC3339, default: now)"
// @Param        period  query  string  false  "Trend granularity (daily/weekly/monthly)"
// @Success      200  {object}  analytics.Rollup  "Aggregated rollup"
// @Router       /analytics/rollup [get]
func (h *Analytics) GetRollup(c echo.Context) error {
	var req analyticsDTO.RollupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	orgID, _, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	period := entities.MetricsPeriod(req.Period)
	if period == "" {
		period = entities.MetricsPeriodDaily
	}

	from, to := rollupWindow(req.From, req.To)
	if !to.After(from) {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("window end must be after window start"))
	}

	rollup, err := h.analyticsService.GetRollup(c.Request().Context(), orgID, from, to, period)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, rollup)
}

// GetMeetingAnalytics handles GET /analytics/meetings/:id
// @Summary      Get the finalized analytics of one meeting
// @Tags         Analytics
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  entities.MeetingAnalytics  "Meeting analytics"
// @Failure      404  {object}  map[string]interface{}     "No analytics yet"
// @Router       /analytics/meetings/{id} [get]
func (h *Analytics) GetMeetingAnalytics(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("meeting ID must be a valid UUID"))
	}

	analytics, err := h.analyticsService.GetMeetingAnalytics(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, mapMeetingError(err, id.String()))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, analytics)
}

// RecomputeMetrics handles POST /analytics/metrics/recompute
// @Summary      Rebuild the persisted periodic rollups
// @Description  Recomputes the organization metrics rows from the cost
// @Description  history. Derived data; safe to re-run.
// @Tags         Analytics
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  analytics.RecomputeMetricsRequest  true  "Window and granularity"
// @Success      200  {object}  map[string]interface{}  "Number of buckets written"
// @Router       /analytics/metrics/recompute [post]
func (h *Analytics) RecomputeMetrics(c echo.Context) error {
	var req analyticsDTO.RecomputeMetricsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	orgID, _, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	period := entities.MetricsPeriod(req.Period)
	if period == "" {
		period = entities.MetricsPeriodDaily
	}

	from, to := rollupWindow(req.From, req.To)
	written, err := h.analyticsService.RecomputeOrganizationMetrics(c.Request().Context(), orgID, period, from, to)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, map[string]interface{}{
		"buckets_written": written,
	})
}

// GetMetrics handles GET /analytics/metrics
// @Summary      Get the persisted periodic rollups
// @Tags         Analytics
// @Produce      json
// @Security     BearerAuth
// @Param        from    query  string  false  "Window start (RFC3339)"
// @Param        to      query  string  false  "Window end (RFC3339)"
// @Param        period  query  string  false  "Granularity (daily/weekly/monthly)"
// @Success      200  {array}  entities.OrganizationMetrics  "Metrics rows"
// @Router       /analytics/metrics [get]
func (h *Analytics) GetMetrics(c echo.Context) error {
	var req analyticsDTO.RollupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	orgID, _, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	period := entities.MetricsPeriod(req.Period)
	if period == "" {
		period = entities.MetricsPeriodDaily
	}

	from, to := rollupWindow(req.From, req.To)
	metrics, err := h.analyticsService.GetOrganizationMetrics(c.Request().Context(), orgID, period, from, to)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, metrics)
}
