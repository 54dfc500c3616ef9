package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "agrocredito/internal/adapter/http"
	mw "agrocredito/internal/adapter/middleware"
	"agrocredito/internal/adapter/publisher/redisstream"
	repo "agrocredito/internal/adapter/repository/mysql"
	"agrocredito/internal/config"
	"agrocredito/internal/infrastructure/cache"
	"agrocredito/internal/infrastructure/db"
	"agrocredito/internal/infrastructure/metrics"
	ucAcc "agrocredito/internal/usecase/account"
	ucApp "agrocredito/internal/usecase/application"
	ucDoc "agrocredito/internal/usecase/document"
	ucProg "agrocredito/internal/usecase/program"
	ucReport "agrocredito/internal/usecase/report"
	ucSim "agrocredito/internal/usecase/simulation"
	"agrocredito/pkg/auth"
	"agrocredito/pkg/loancalc"
	"agrocredito/pkg/logger"
)

func main() {
	cfg := config.Load()
	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	if err := cfg.Validate(); err != nil {
		lg.Fatal("invalid configuration", zap.Error(err))
	}
	rates, err := loancalc.ParseRateTable(cfg.InterestRates, loancalc.DefaultRates())
	if err != nil {
		lg.Fatal("invalid INTEREST_RATES", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.OpenGorm(cfg, lg)
	if err != nil {
		lg.Fatal("database", zap.Error(err))
	}
	if cfg.DBAutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			lg.Fatal("migrate", zap.Error(err))
		}
	}
	rdb, err := cache.OpenRedis(ctx, cfg)
	if err != nil {
		lg.Fatal("redis", zap.Error(err))
	}
	defer func() { _ = rdb.Close() }()

	// wiring
	apps := repo.NewApplicationRepository(gdb)
	programs := repo.NewProgramRepository(gdb)
	accounts := repo.NewAccountRepository(gdb)
	docs := repo.NewDocumentRepository(gdb)
	tx := repo.NewGormUoW(gdb)
	m := metrics.NewCollector()
	jwt := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	appsUC := ucApp.NewUsecase(ucApp.Deps{
		Applications: apps,
		Programs:     programs,
		UoW:          tx,
		Publisher:    redisstream.NewPublisher(rdb, cfg.EventsStream),
		Rates:        rates,
		Metrics:      m,
		Logger:       lg,
	})
	handlers := httpadp.Handlers{
		Health: httpadp.NewHandler(
			httpadp.Check{Name: "database", Ping: func(ctx context.Context) error {
				sqlDB, err := gdb.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			}},
			httpadp.Check{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		),
		Simulations:  httpadp.NewSimulationHandler(ucSim.NewUsecase(programs, rates, cfg.DefaultEffortRate, m)),
		Applications: httpadp.NewApplicationHandler(appsUC),
		Documents:    httpadp.NewDocumentHandler(appsUC, ucDoc.NewUsecase(apps, docs, tx, m)),
		Accounts:     httpadp.NewAccountHandler(ucAcc.NewUsecase(apps, accounts, tx, m, lg)),
		Programs:     httpadp.NewProgramHandler(ucProg.NewUsecase(programs, cfg.DefaultEffortRate)),
		Reports:      httpadp.NewReportHandler(ucReport.NewUsecase(apps)),
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}),
		mw.RequestLogger(lg),
		middleware.Recover(),
	)

	idemp := mw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, lg)
	httpadp.RegisterRoutes(e, handlers, mw.JWTAuth(jwt), idemp, m.Handler())

	go func() {
		addr := ":" + cfg.AppPort
		lg.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		lg.Error("shutdown", zap.Error(err))
	}
}
