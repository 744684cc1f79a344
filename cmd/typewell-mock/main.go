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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/typewell/typewell/shared/apiclient/apiclienttest"
	"github.com/typewell/typewell/shared/config"
	"github.com/typewell/typewell/shared/jwt"
	"github.com/typewell/typewell/shared/logger"
	"github.com/typewell/typewell/shared/metrics"
	"github.com/typewell/typewell/shared/middleware"
	"github.com/typewell/typewell/shared/middleware/ratelimiter"
)

const (
	readTimeout     = 5 * time.Second
	writeTimeout    = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	store := apiclienttest.NewStore()
	auth := apiclienttest.NewAuth(jwt.New(cfg.JwtKey(), cfg.SessionTTL()), false)
	h := apiclienttest.NewHandler(store, auth)
	if cfg.Public.Mock.LoginBurst > 0 {
		limiter := ratelimiter.New(cfg.Public.Mock.LoginRate, float64(cfg.Public.Mock.LoginBurst), time.Hour)
		defer limiter.Stop()
		h.LimitCredentials(middleware.RateLimit(limiter, middleware.EmailOrIP))
	}
	serverMetrics := metrics.NewServerMetrics(prometheus.DefaultRegisterer)

	r := chi.NewRouter()
	r.Use(middleware.SecurityHeaders(false))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Public.Mock.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true, // browsers send the session cookie cross-origin
		MaxAge:           300,
	}))
	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/", apiclienttest.NewRouter(h, serverMetrics.Middleware))

	server := &http.Server{
		Addr:         cfg.Public.Mock.Addr,
		Handler:      r,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Log.Info("mock api started", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("mock api stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("shutdown failed", "error", err)
	}
}
