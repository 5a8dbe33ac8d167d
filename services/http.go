package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/rs/zerolog/log"

	_ "github.com/dongeng-kita/dongeng_api/docs"
	"github.com/dongeng-kita/dongeng_api/services/handlers"
	"github.com/dongeng-kita/dongeng_api/shared"
)

type HttpService struct {
	context.DefaultService

	authSvc       *AuthMiddleware
	accountSvc    *AccountService
	analyticSvc   *AnalyticService
	storySvc      *StoryService
	mediaSvc      *MediaService
	monitoringSvc *MonitoringService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_MIDDLEWARE_SVC).(*AuthMiddleware)
	svc.accountSvc = svc.Service(ACCOUNT_SVC).(*AccountService)
	svc.analyticSvc = svc.Service(ANALYTIC_SVC).(*AnalyticService)
	svc.storySvc = svc.Service(STORY_SVC).(*StoryService)
	svc.mediaSvc = svc.Service(MEDIA_SVC).(*MediaService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	svc.server = fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: svc.handleError,
	})

	svc.server.Use(recover.New())
	svc.server.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	svc.server.Use(MonitoringMiddleware(svc.monitoringSvc))

	svc.registerRoutes()

	log.Info().Int("port", svc.port).Msg("HTTP server started")
	return svc.server.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

func (svc *HttpService) registerRoutes() {
	accountHandler := handlers.NewAccountHandler(svc.accountSvc)
	analyticHandler := handlers.NewAnalyticHandler(svc.analyticSvc)
	storyHandler := handlers.NewStoryHandler(svc.storySvc)
	mediaHandler := handlers.NewMediaHandler(svc.mediaSvc)

	svc.server.Get("/ping", svc.ping)
	svc.server.Get("/swagger/*", swagger.HandlerDefault)

	v1 := svc.server.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	v1.Post("/register", accountHandler.Register)
	v1.Post("/login", accountHandler.Login)

	analytic := v1.Group("/analytic", svc.authSvc.RequiredAuth())
	analytic.Get("/dashboard", analyticHandler.GetDashboard)
	analytic.Get("/concept-performance", analyticHandler.GetConceptPerformance)
	analytic.Get("/performance-timeline", analyticHandler.GetPerformanceTimeline)
	analytic.Get("/overall-statistics", analyticHandler.GetOverallStatistics)

	story := v1.Group("/story", svc.authSvc.RequiredAuth())
	story.Get("/", storyHandler.ListStories)
	story.Post("/import", storyHandler.ImportStories)
	story.Get("/:storyId", storyHandler.GetStory)
	story.Post("/:storyId/choice", storyHandler.RecordChoice)
	story.Post("/:storyId/complete", storyHandler.CompleteStory)
	story.Post("/:storyId/cover", mediaHandler.UploadStoryCover)
	story.Get("/:storyId/cover", mediaHandler.GetStoryCover)

	svc.server.Use(func(c *fiber.Ctx) error {
		return shared.ResponseNotFound(c)
	})
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}

// handleError translates domain errors to HTTP responses: AppErrors keep
// their status verbatim, anything unexpected becomes a generic 500.
func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("Unhandled error")
	return shared.ResponseInternalError(c, errors.New("internal server error"))
}
