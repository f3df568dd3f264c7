package cmd

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/qrave1/RoomSignal/internal/application/config"
	"github.com/qrave1/RoomSignal/internal/application/constant"
	"github.com/qrave1/RoomSignal/internal/application/metric"
	"github.com/qrave1/RoomSignal/internal/infra/adapters/file"
	"github.com/qrave1/RoomSignal/internal/infra/adapters/memory"
	"github.com/qrave1/RoomSignal/internal/infra/adapters/postgres"
	"github.com/qrave1/RoomSignal/internal/infra/adapters/postgres/repository"
	"github.com/qrave1/RoomSignal/internal/infra/ports/http/handlers"
	"github.com/qrave1/RoomSignal/internal/infra/ports/http/server"
	"github.com/qrave1/RoomSignal/internal/usecase"
)

func runApp(parent context.Context) {
	// parent отменяется по SIGINT/SIGTERM, см. Execute
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	cfg, err := config.New()
	if err != nil {
		slog.Error("parse config", slog.Any(constant.Error, err))
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(
			slog.NewJSONHandler(
				os.Stdout,
				&slog.HandlerOptions{Level: level},
			),
		),
	)

	slog.Info(
		"Running app",
		slog.Bool("debug", cfg.Debug),
		slog.String("transcript_store", cfg.TranscriptStore),
		slog.Duration("room_ttl", cfg.RoomTTL),
	)

	var transcriptRepo usecase.TranscriptRepository

	switch cfg.TranscriptStore {
	case config.TranscriptStorePostgres:
		dbConn, err := postgres.NewPostgres(ctx, cfg.Postgres.DSN())
		if err != nil {
			slog.Error("connect to postgres", slog.Any(constant.Error, err))
			os.Exit(1)
		}
		defer dbConn.Close()

		transcriptRepo = repository.NewTranscriptRepo(dbConn)
	default:
		transcriptRepo = file.NewTranscriptRepository(cfg.TranscriptDir)
	}

	roomRepo := memory.NewRoomRepository()

	roomUsecase := usecase.NewRoomUsecase(roomRepo, transcriptRepo)
	signalingUsecase := usecase.NewSignalingUsecase(roomRepo)
	candidateUsecase := usecase.NewCandidateUsecase(roomRepo)
	livenessUsecase := usecase.NewLivenessUsecase(roomRepo)

	roomHandler := handlers.NewRoomHandler(roomUsecase)
	signalingHandler := handlers.NewSignalingHandler(signalingUsecase, livenessUsecase)
	candidateHandler := handlers.NewCandidateHandler(candidateUsecase)
	iceHandler := handlers.NewIceHandler(cfg)

	echoSrv := server.New(cfg, roomHandler, signalingHandler, candidateHandler, iceHandler)

	metricsSrv := metric.NewServer()

	go livenessUsecase.RunReaper(ctx, cfg.ReapInterval, cfg.RoomTTL)

	echoSrvCh := make(chan error, 1)
	metricsSrvCh := make(chan error, 1)

	// Запускаем HTTP сервер
	go func() {
		slog.Info("HTTP server starting", slog.String("port", cfg.Port))
		echoSrvCh <- echoSrv.Start(":" + cfg.Port)
	}()

	// Запускаем сервер метрик
	go func() {
		metricsSrvCh <- metricsSrv.Start(":" + cfg.MetricPort)
	}()

	// Ожидаем сигнал завершения или ошибку сервера
	select {
	case <-ctx.Done():
		slog.Info("Shutting down servers due to context cancel")
	case err := <-echoSrvCh:
		slog.Error(
			"HTTP server failed",
			slog.Any(constant.Error, err),
		)
		os.Exit(1)
	case err := <-metricsSrvCh:
		slog.Error(
			"Metrics server failed",
			slog.Any(constant.Error, err),
		)
		os.Exit(1)
	}

	// Graceful shutdown
	timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer timeoutCancel()

	if err := echoSrv.Shutdown(timeoutCtx); err != nil {
		slog.Error("Failed to gracefully shutdown HTTP server", slog.Any(constant.Error, err))
	}

	if err := metricsSrv.Shutdown(timeoutCtx); err != nil {
		slog.Error("Failed to gracefully shutdown metric server", slog.Any(constant.Error, err))
	}
}
