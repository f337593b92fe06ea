package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/ekimei-quiz-bot/internal/catalog"
	"github.com/aliskhannn/ekimei-quiz-bot/internal/config"
	httpapi "github.com/aliskhannn/ekimei-quiz-bot/internal/delivery/http"
	"github.com/aliskhannn/ekimei-quiz-bot/internal/delivery/telegram"
	"github.com/aliskhannn/ekimei-quiz-bot/internal/infra/postgres"
	"github.com/aliskhannn/ekimei-quiz-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/ekimei-quiz-bot/internal/logger"
	"github.com/aliskhannn/ekimei-quiz-bot/internal/service"
	"github.com/aliskhannn/ekimei-quiz-bot/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Catalog loads in the background; handlers answer 読み込み中... until it is ready.
	holder := catalog.NewHolder(catalog.NewHTTPLoader(cfg.FetchTimeout), cfg.StationsAPIURL, lg.Named("catalog"))
	holder.Start(ctx)

	var results service.ResultRepository
	if cfg.DB.Enabled() {
		dsn, err := cfg.DB.DSN()
		if err != nil {
			lg.Fatal("database config", zap.Error(err))
		}

		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			lg.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			lg.Fatal("failed to prepare database schema", zap.Error(err))
		}

		results = repository.NewResultRepository(pool, postgres.NewTransactor(pool))
		lg.Info("quiz results persistence enabled")
	} else {
		lg.Info("DATABASE_URL is not set, quiz results are not recorded")
	}

	sessions := storage.NewSessionStorage()
	quizService := service.NewQuizService(holder, sessions, results, lg.Named("quiz"))
	janitor := service.NewSessionJanitor(quizService, cfg.Session.JanitorSchedule, cfg.Session.IdleTTL, lg.Named("janitor"))

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := janitor.Start(ctx); err != nil {
			lg.Error("session janitor stopped", zap.Error(err))
		}
	}()

	if cfg.HTTP.Addr != "" {
		srv := &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           httpapi.NewRouter(holder, service.NewDraftService(), lg.Named("http")),
			ReadHeaderTimeout: 5 * time.Second,
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			lg.Info("manage api listening", zap.String("addr", cfg.HTTP.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				lg.Error("manage api failed", zap.Error(err))
			}
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				lg.Error("manage api shutdown", zap.Error(err))
			}
		}()
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create telegram bot", zap.Error(err))
	}
	bot.Debug = cfg.Env == "local"
	lg.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(telegram.Commands()...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	handler := telegram.NewHandler(bot, lg.Named("telegram"), quizService, holder, storage.NewQuestionMessages())
	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("telegram handler stopped", zap.Error(err))
	}

	stop()
	wg.Wait()
	lg.Info("shutdown complete")
}
