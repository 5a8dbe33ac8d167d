package main

import (
	"github.com/dongeng-kita/dongeng_api/services"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// @title DongengKita API
// @version 1.0
// @description Interactive story telling backend with learning analytics for children.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	ctx, err := context.NewCtx(
		&services.JWTService{},
		&services.AuthMiddleware{},
		&services.PostgresService{},
		&services.RedisService{},
		&services.MinIOService{},
		&services.MediaService{},
		&services.AccountService{},
		&services.AnalyticService{},
		&services.StoryService{},
		&services.MonitoringService{},
		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build service context")
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("Service context exited")
		return
	}
}
