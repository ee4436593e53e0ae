package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"horse.fit/mtran/internal/cli"
	"horse.fit/mtran/internal/config"
	"horse.fit/mtran/internal/logging"
	"horse.fit/mtran/internal/stubserver"
)

func runStubServer(args []string) int {
	fs := flag.NewFlagSet("stub-server", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	host := fs.String("host", "", "Host interface to bind (default MTRAN_STUB_HOST)")
	port := fs.Int("port", 0, "HTTP port (default MTRAN_STUB_PORT)")
	token := fs.String("token", "", "Required Authorization header (default MTRAN_STUB_TOKEN)")
	version := fs.String("version", "stub", "Version reported by /version")
	models := fs.String("models", "", "Comma-separated model names reported by /models")
	shutdownTimeout := fs.Duration("shutdown-timeout", 10*time.Second, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *port < 0 || *port > 65535 {
		fmt.Fprintln(os.Stderr, "--port must be between 1 and 65535")
		return 2
	}

	if _, err := envLoader.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	opts := stubserver.Options{
		Host:            cfg.StubHost,
		Port:            cfg.StubPort,
		Token:           cfg.StubToken,
		Version:         *version,
		Models:          splitList(*models),
		ShutdownTimeout: *shutdownTimeout,
	}
	if strings.TrimSpace(*host) != "" {
		opts.Host = strings.TrimSpace(*host)
	}
	if *port > 0 {
		opts.Port = *port
	}
	if *token != "" {
		opts.Token = *token
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		<-sigCh
		cancel()
	}()

	srv := stubserver.New(logger, opts)
	if err := srv.Start(ctx); err != nil {
		logger.Error().Err(err).Str("addr", srv.Addr()).Msg("stub server failed")
		fmt.Fprintf(os.Stderr, "Stub server failed: %v\n", err)
		return 1
	}
	return 0
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}
