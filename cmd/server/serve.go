package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jrsteele09/portal-gate/idp"
	"github.com/jrsteele09/portal-gate/internal/config"
	"github.com/jrsteele09/portal-gate/server"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(ctx context.Context) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	setupLogging(c)
	if err := c.Validate(); err != nil {
		return err
	}
	displayAppname(c.GetAppName())

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := idp.NewFromConfig(ctx, c, c.GetBaseURL()+server.RouteCallback)
	if err != nil {
		return fmt.Errorf("identity provider: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler, err := server.New(c, provider, server.WithRegisterer(reg))
	if err != nil {
		return err
	}

	servers := []*http.Server{newHTTPServer(c.GetPort(), handler)}
	if addr := c.GetMetricsAddr(); addr != "" {
		mux := http.NewServeMux()
		mux.Handle("GET "+server.RouteMetrics, server.MetricsHandler(reg))
		servers = append(servers, newHTTPServer(addr, mux))
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			return listenAndServe(srv)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		return shutdown(servers...)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("Server stopped")
	return nil
}

func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
}

func listenAndServe(srv *http.Server) error {
	log.Info().Str("addr", srv.Addr).Msg("Server listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func shutdown(servers ...*http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var errs []error
	for _, srv := range servers {
		if err := srv.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("server.Shutdown %s: %w", srv.Addr, err))
		}
	}
	return errors.Join(errs...)
}

// setupLogging configures the global zerolog logger: console output in DEV, JSON otherwise.
func setupLogging(c config.EnvConfig) {
	level := zerolog.InfoLevel
	if c.GetEnv() == "DEV" {
		level = zerolog.DebugLevel
	}
	if configured := c.GetLogLevel(); configured != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(configured)); err == nil {
			level = parsed
		}
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
