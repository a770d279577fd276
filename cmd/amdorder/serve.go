package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/samcharles93/amdorder/internal/api"
	"github.com/samcharles93/amdorder/internal/logger"
	"github.com/urfave/cli/v3"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
		maxDim      int
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the orderings REST API",
		Flags: append(orderingFlags(),
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Sources:     cli.EnvVars("AMDORDER_ADDR"),
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
			&cli.IntFlag{
				Name:        "max-dimension",
				Usage:       "largest matrix order accepted per request",
				Value:       api.DefaultMaxDimension,
				Destination: &maxDim,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			cfg := LoadConfig()
			applyServeConfig(cmd, cfg, &addr, &maxDim)
			d, a := orderingOverrides(cmd, cfg)

			server := api.NewServer(api.NewOrderingStore(), api.Config{
				Logger:       log,
				Dense:        d,
				Aggressive:   a,
				MaxDimension: maxDim,
			})
			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)
			log.Info("starting server", "address", addr, "max_dimension", maxDim)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
