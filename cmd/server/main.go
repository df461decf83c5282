package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Jaideep0802/CodePair/internal/config"
	"github.com/Jaideep0802/CodePair/internal/routers"
	"github.com/Jaideep0802/CodePair/internal/utils"
)

var (
	listenAndServe = http.ListenAndServe
	exitFunc       = func(err error) { log.Fatal(err) }
)

func run(_ context.Context) error {
	logger := utils.NewLogger()
	defer logger.Sync()

	cfg := config.Load()

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Timeout(60*time.Second),
	)
	r.Mount("/", routers.New(logger, cfg))

	addr := ":" + cfg.Port
	logger.Info("session server listening", zap.String("addr", addr))
	return listenAndServe(addr, r)
}

func main() {
	if err := run(context.Background()); err != nil {
		exitFunc(err)
	}
}
