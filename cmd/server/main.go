package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"restconnect-service/internal/citydata"
	"restconnect-service/internal/config"
	"restconnect-service/internal/db"
	httphandler "restconnect-service/internal/http"
	"restconnect-service/internal/logger"
	"restconnect-service/internal/observability"
	"restconnect-service/internal/recognizer"
	"restconnect-service/internal/repository"
	"restconnect-service/internal/service"
	"restconnect-service/internal/worker"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	metrics := observability.NewMetrics()

	gdb, err := db.Connect(cfg.Database.DSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	checkRepo := repository.NewCheckRepository(gdb)

	recognizerClient := recognizer.NewClient(cfg.Recognizer.BaseURL, cfg.Recognizer.Timeout, metrics, log)
	cityClient := citydata.NewClient(cfg.CityData.BaseURL, cfg.CityData.Timeout, metrics, log)
	citySource := citydata.NewCachedSource(cityClient, cfg.CityData.CacheTTL, metrics)

	parkingService := service.NewParkingService(recognizerClient, checkRepo, metrics, log)
	placesService := service.NewPlacesService(citySource, log)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httphandler.RequestLogger(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handler := httphandler.NewHandler(parkingService, placesService, log)
	handler.Register(router, httphandler.AuthMiddleware(cfg.Auth.JWTSecret))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	retention := worker.NewRetention(parkingService, cfg.Retention.Days, cfg.Retention.Interval, clockwork.NewRealClock(), log)
	go retention.Run(ctx)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}
