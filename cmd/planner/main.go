package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/example/travel-planner/internal/application"
	chatmongo "github.com/example/travel-planner/internal/chatstore/mongo"
	"github.com/example/travel-planner/internal/config"
	httptransport "github.com/example/travel-planner/internal/http"
	"github.com/example/travel-planner/internal/persistence/sqlite"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	pool, err := sqlite.NewConnectionPool(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := pool.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	connectCtx, cancelConnect := context.WithTimeout(ctx, 15*time.Second)
	chatStore, err := chatmongo.Open(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
	cancelConnect()
	if err != nil {
		logger.Error("failed to open chat store", "error", err)
		os.Exit(1)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if cerr := chatStore.Close(closeCtx); cerr != nil {
			logger.Error("failed to close chat store", "error", cerr)
		}
	}()

	idGenerator := uuid.NewString
	now := time.Now

	memberRepo := sqlite.NewMemberRepository(pool)
	placeRepo := sqlite.NewPlaceRepository(pool)
	scheduleRepo := sqlite.NewScheduleRepository(pool)
	attendeeRepo := sqlite.NewAttendeeRepository(pool)
	routeRepo := sqlite.NewRouteRepository(pool)

	memberService := application.NewMemberService(memberRepo, idGenerator, now, logger)
	placeService := application.NewPlaceService(placeRepo, idGenerator, now, logger)
	routeService := application.NewRouteService(routeRepo, attendeeRepo, placeRepo, idGenerator, logger)
	scheduleService := application.NewScheduleService(scheduleRepo, attendeeRepo, memberRepo, placeRepo, routeService, chatStore, idGenerator, now, logger)
	attendeeService := application.NewAttendeeService(attendeeRepo, memberRepo, idGenerator, now, logger)
	chatService := application.NewChatService(chatStore, scheduleRepo, attendeeRepo, memberRepo, cfg.ChatPageSize, now, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Members:     httptransport.NewMemberHandler(memberService, logger),
		Places:      httptransport.NewPlaceHandler(placeService, logger),
		Schedules:   httptransport.NewScheduleHandler(scheduleService, routeService, logger),
		Attendees:   httptransport.NewAttendeeHandler(attendeeService, logger),
		Chats:       httptransport.NewChatHandler(chatService, logger),
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("planner API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
