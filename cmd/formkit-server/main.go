package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/goliatone/go-formkit/internal/apispec"
	"github.com/goliatone/go-formkit/internal/config"
	"github.com/goliatone/go-formkit/internal/logging"
	"github.com/goliatone/go-formkit/internal/logging/gologger"
	"github.com/goliatone/go-formkit/internal/server"
	"github.com/goliatone/go-formkit/internal/store"
	"github.com/goliatone/go-formkit/pkg/mutation"
	"github.com/goliatone/go-formkit/pkg/translit"
)

func main() {
	var (
		configFlag    = flag.String("config", "", "YAML config file (overridden by "+config.EnvConfigPath+")")
		addrFlag      = flag.String("addr", "", "HTTP listen address (overrides server.addr)")
		shutdownGrace = flag.Duration("grace", 5*time.Second, "Shutdown grace period")
	)
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if addr := strings.TrimSpace(*addrFlag); addr != "" {
		cfg.Server.Addr = addr
	}
	if cfg.Fixtures.Catalogs == "" || cfg.Fixtures.Schema == "" {
		log.Fatalf("config: fixtures.catalogs and fixtures.schema are required")
	}

	provider, err := gologger.NewProvider(cfg.LoggerConfig())
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	logger := logging.ServerLogger(provider)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tr := translit.Default()
	catalogs, err := store.LoadCatalogs(cfg.Fixtures.Catalogs, tr)
	if err != nil {
		log.Fatalf("catalogs: %v", err)
	}
	schema, err := store.LoadSchema(cfg.Fixtures.Schema)
	if err != nil {
		log.Fatalf("schema: %v", err)
	}
	values, closeValues, err := store.OpenValues(ctx, cfg.Storage.Driver, cfg.Storage.DSN)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer func() {
		if err := closeValues(); err != nil {
			logger.Warn("closing storage failed", "error", err)
		}
	}()

	st, err := store.New(catalogs, schema, values,
		store.WithLocales(cfg.Locales),
		store.WithTransliterator(tr),
		store.WithLogger(logging.StoreLogger(provider)),
	)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	runner := mutation.NewRunner(
		mutation.WithPolicies(cfg.MutationPolicies()),
		mutation.WithSuccessNotifications(cfg.Mutations.NotifySuccess),
		mutation.WithLogger(logging.MutationLogger(provider)),
	)

	opts := []server.Option{
		server.WithLocales(cfg.Locales),
		server.WithLogger(logger),
		server.WithRunner(runner),
		server.WithTheme(cfg.RendererTheme()),
		server.WithInlineErrors(cfg.Server.ShowInlineErrors),
		server.WithSearchLimits(cfg.Search.DefaultLimit, cfg.Search.MaxLimit),
		server.WithBaseURL(cfg.Server.BaseURL),
		server.WithTemplatesDir(cfg.Server.TemplatesDir),
	}
	if cfg.Server.ValidateRequests {
		spec, err := apispec.Load(ctx)
		if err != nil {
			log.Fatalf("api spec: %v", err)
		}
		opts = append(opts, server.WithRequestValidation(spec))
	}

	srv, err := server.New(st, opts...)
	if err != nil {
		log.Fatalf("server: %v", err)
	}
	handler, err := srv.Handler()
	if err != nil {
		log.Fatalf("routes: %v", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("listening", "addr", cfg.Server.Addr, "storage", cfg.Storage.Driver, "catalogs", catalogs.Names())

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		log.Fatalf("listen: %v", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), *shutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
