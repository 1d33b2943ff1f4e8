package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diwise/mac-explorer/internal/pkg/application/explorer"
	"github.com/diwise/mac-explorer/internal/pkg/application/webevents"
	"github.com/diwise/mac-explorer/internal/pkg/infrastructure/router"
	"github.com/diwise/mac-explorer/internal/pkg/presentation/api"
	"github.com/diwise/mac-explorer/internal/pkg/presentation/gui"
	"github.com/diwise/mac-explorer/pkg/client"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const serviceName string = "mac-explorer"

func defaultFlags() flagMap {
	return flagMap{
		listenAddress: "0.0.0.0",
		servicePort:   "8080",
		backendURL:    "http://localhost:5000",

		configurationFile: "/opt/diwise/config/mac-explorer.yaml",
		envFile:           ".env",
		assetsDir:         "",
	}
}

func main() {
	serviceVersion := buildinfo.SourceVersion()

	ctx, logger, cleanup := o11y.Init(context.Background(), serviceName, serviceVersion)
	defer cleanup()

	ctx, flags := parseExternalConfig(ctx, defaultFlags())

	cfg, err := loadConfigurationFile(flags[configurationFile])
	exitIf(err, logger, "could not load configuration file")

	events := webevents.New(api.SessionParam)
	defer events.Shutdown()

	r, err := initialize(ctx, flags, cfg, events)
	exitIf(err, logger, "failed to initialize service")

	server := &http.Server{
		Addr:              flags[listenAddress] + ":" + flags[servicePort],
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		logger.Info().Msg("shutting down ...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logger.Info().Str("backend", flags[backendURL]).Msgf("listening on %s", server.Addr)

	err = server.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		exitIf(err, logger, "failed to start request router")
	}
}

func initialize(ctx context.Context, flags flagMap, cfg *explorer.Config, events webevents.WebEvents) (*chi.Mux, error) {
	backend := client.New(flags[backendURL])

	app, err := explorer.New(backend, events, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create explorer: %w", err)
	}

	r := router.New(serviceName)
	metrics.AddHandlers(r)
	api.RegisterHandlers(ctx, r, app, events)
	gui.RegisterHandlers(logging.GetFromContext(ctx), r, app, flags[assetsDir])

	return r, nil
}

// loadConfigurationFile reads the optional yaml configuration. A missing file
// means that defaults are used.
func loadConfigurationFile(path string) (*explorer.Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &explorer.Config{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return explorer.LoadConfiguration(f)
}

func parseExternalConfig(ctx context.Context, flags flagMap) (context.Context, flagMap) {
	log := logging.GetFromContext(ctx)

	if err := godotenv.Load(env.GetVariableOrDefault(log, "ENV_FILE", flags[envFile])); err != nil {
		log.Debug().Msg("no env file loaded")
	}

	envOrDef := func(envVar, defaultValue string) string {
		return env.GetVariableOrDefault(log, envVar, defaultValue)
	}

	// Allow environment variables to override certain defaults
	flags[listenAddress] = envOrDef("LISTEN_ADDRESS", flags[listenAddress])
	flags[servicePort] = envOrDef("SERVICE_PORT", flags[servicePort])
	flags[backendURL] = envOrDef("BACKEND_URL", flags[backendURL])
	flags[configurationFile] = envOrDef("CONFIG_FILE", flags[configurationFile])
	flags[assetsDir] = envOrDef("ASSETS_DIR", flags[assetsDir])

	apply := func(f flagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	flag.Func("backend", "base url of the graph query backend", apply(backendURL))
	flag.Func("config", "explorer configuration file", apply(configurationFile))
	flag.Func("port", "port to listen on", apply(servicePort))
	flag.Func("assets", "directory with the map page scripts and styles", apply(assetsDir))
	flag.Parse()

	return ctx, flags
}

func exitIf(err error, logger zerolog.Logger, msg string) {
	if err != nil {
		logger.Error().Err(err).Msg(msg)
		time.Sleep(2 * time.Second)
		os.Exit(1)
	}
}
