package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/meetcost-team/meetcost/internal/infrastructure/http/middleware"
	"github.com/meetcost-team/meetcost/pkg/config"
	"github.com/meetcost-team/meetcost/pkg/jwt"
)

// Router holds all handlers
type Router struct {
	cfg              *config.Config
	jwtManager       *jwt.Manager
	meetingHandler   *Meeting
	costHandler      *Cost
	analyticsHandler *Analytics
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, jwtManager *jwt.Manager, meetingHandler *Meeting, costHandler *Cost, analyticsHandler *Analytics) *Router {
	return &Router{
		cfg:              cfg,
		jwtManager:       jwtManager,
		meetingHandler:   meetingHandler,
		costHandler:      costHandler,
		analyticsHandler: analyticsHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group, everything behind authentication
	v1 := e.Group("/v1", middleware.EchoAuth(rt.jwtManager))

	rt.setupMeetingRoutes(v1)
	rt.setupAnalyticsRoutes(v1)
}

// setupMeetingRoutes configures meeting, lifecycle and cost routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")

	meetings.POST("", rt.meetingHandler.CreateMeeting)
	meetings.GET("", rt.meetingHandler.ListMeetings)
	meetings.GET("/:id", rt.meetingHandler.GetMeeting)
	meetings.PUT("/:id", rt.meetingHandler.UpdateMeeting)
	meetings.DELETE("/:id", rt.meetingHandler.DeleteMeeting)

	// Roster management
	meetings.GET("/:id/participants", rt.meetingHandler.GetParticipants)
	meetings.POST("/:id/participants", rt.meetingHandler.AddParticipant)
	meetings.PUT("/:id/participants/:userId", rt.meetingHandler.UpdateParticipant)
	meetings.DELETE("/:id/participants/:userId", rt.meetingHandler.RemoveParticipant)

	// Lifecycle
	meetings.POST("/:id/start", rt.costHandler.StartMeeting)
	meetings.POST("/:id/join", rt.costHandler.JoinMeeting)
	meetings.POST("/:id/leave", rt.costHandler.LeaveMeeting)
	meetings.POST("/:id/end", rt.costHandler.EndMeeting)
	meetings.POST("/:id/cancel", rt.costHandler.CancelMeeting)

	// Costs
	meetings.GET("/:id/cost", rt.costHandler.GetMeetingCost)
	meetings.GET("/:id/cost/live", rt.costHandler.GetRunningCost)
	meetings.POST("/:id/cost/recompute", rt.costHandler.RecomputeCost)
}

// setupAnalyticsRoutes configures reporting routes
func (rt *Router) setupAnalyticsRoutes(g *echo.Group) {
	analytics := g.Group("/analytics")

	analytics.GET("/rollup", rt.analyticsHandler.GetRollup)
	analytics.GET("/meetings/:id", rt.analyticsHandler.GetMeetingAnalytics)
	analytics.GET("/metrics", rt.analyticsHandler.GetMetrics)
	analytics.POST("/metrics/recompute", rt.analyticsHandler.RecomputeMetrics)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"time":        time.Now().UTC().Format(time.RFC3339),
		"environment": rt.cfg.Server.Environment,
	})
}
