package app

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"horse.fit/mtran/internal/cli"
	"horse.fit/mtran/internal/config"
	"horse.fit/mtran/internal/logging"
	"horse.fit/mtran/internal/mtran"
)

// serverFlags are shared by every command that talks to a server.
type serverFlags struct {
	envLoader *cli.EnvLoader
	apiURL    *string
	token     *string
	timeout   *time.Duration
}

func addServerFlags(fs *flag.FlagSet, defaultTimeout time.Duration) *serverFlags {
	return &serverFlags{
		envLoader: cli.AddEnvFlag(fs, ".env", "Path to the .env file"),
		apiURL:    fs.String("url", "", "Translation server URL (overrides MTRAN_API_URL)"),
		token:     fs.String("token", "", "Authorization token (overrides MTRAN_TOKEN)"),
		timeout:   fs.Duration("timeout", defaultTimeout, "Command timeout"),
	}
}

type session struct {
	cfg    *config.Config
	logger zerolog.Logger
	client *mtran.Client
	server *mtran.Config
	ctx    context.Context
	cancel context.CancelFunc
}

func (f *serverFlags) open() (*session, error) {
	if f.envLoader != nil {
		if _, err := f.envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	server := cfg.Server()
	if override := strings.TrimSpace(*f.apiURL); override != "" {
		server.APIURL = override
	}
	if *f.token != "" {
		server.Token = *f.token
	}

	ctx, cancel := context.WithTimeout(context.Background(), *f.timeout)
	return &session{
		cfg:    cfg,
		logger: logger,
		client: mtran.NewClient(nil, cfg.ClientOptions(logger)...),
		server: server,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

func (s *session) close() {
	s.cancel()
}
