package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"promobanner/internal/config"
	"promobanner/internal/database/driver"
	"promobanner/internal/database/repository/sqlrepo"
	"promobanner/internal/http-server/router"
	"promobanner/internal/media/cloudinary"
	"promobanner/pkg/lib/logger/slogpretty"
	"promobanner/pkg/lib/sl"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg, scr := config.MustLoad()
	log := setupLogger(cfg.Env)

	log.Info("starting app", slog.String("env", cfg.Env))

	log.Debug("debug messages are enabled")

	dataSourceName, err := driver.DataSourceName(cfg.DriverName, driver.Credentials{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: scr.DBPassword,
		DBName:   cfg.DBname,
		SSLMode:  cfg.SSLmode,
	})
	if err != nil {
		log.Error("failed to build data source name", sl.Err(err))
		os.Exit(1)
	}

	sqlxConfig := &driver.SQLXConfig{
		DriverName:     cfg.DriverName,
		DataSourceName: dataSourceName,
		MaxOpenConns:   cfg.MaxOpenConns,
		MaxIdleConns:   cfg.MaxIdleConns,
		MaxLifetime:    cfg.MaxLifetime,
	}

	db, err := sqlxConfig.NewSQLXDatabase(log)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	bannerRepository := sqlrepo.NewBannerRepository(db)

	uploader, err := cloudinary.New(log, cloudinary.Config{
		CloudName:    cfg.CloudName,
		APIKey:       cfg.APIKey,
		APISecret:    scr.CloudinaryAPISecret,
		Folder:       cfg.Folder,
		UploadPrefix: cfg.UploadPrefix,
	})
	if err != nil {
		log.Error("failed to init uploader", sl.Err(err))
		os.Exit(1)
	}

	log.Info("starting server", slog.String("address", cfg.Address))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	server := &http.Server{
		Addr:         cfg.Address,
		Handler:      router.New(log, bannerRepository, uploader),
		ReadTimeout:  cfg.ReadTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Info("shutting server", sl.Err(err))
				return
			}
			log.Error("failed to start server", sl.Err(err))
		}
	}()

	log.Info("server started")
	sign := <-done
	log.Info("stopping server", slog.String("signal", sign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to stop server", sl.Err(err))
		return
	}

	if err := db.Close(); err != nil {
		log.Error("failed to close storage", sl.Err(err))
		return
	}

	log.Info("server stopped")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = setupPrettyLogger()
	}
	return log
}

func setupPrettyLogger() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
