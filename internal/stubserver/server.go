// Package stubserver serves a minimal MTranServer-compatible API for local
// development and integration tests.
package stubserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

const (
	defaultHost    = "127.0.0.1"
	defaultPort    = 8989
	defaultVersion = "stub"
)

// TranslateFunc produces the translation of one text.
type TranslateFunc func(from, to, text string) (string, error)

type Options struct {
	Host string
	Port int
	// Token, when set, must match the Authorization header on every
	// endpoint except /health.
	Token           string
	Version         string
	Models          []string
	Translate       TranslateFunc
	ShutdownTimeout time.Duration
}

type Server struct {
	logger zerolog.Logger
	opts   Options
	echo   *echo.Echo
}

type translateRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

type batchRequest struct {
	From  string   `json:"from"`
	To    string   `json:"to"`
	Texts []string `json:"texts"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func New(logger zerolog.Logger, opts Options) *Server {
	if strings.TrimSpace(opts.Host) == "" {
		opts.Host = defaultHost
	}
	if opts.Port <= 0 {
		opts.Port = defaultPort
	}
	if strings.TrimSpace(opts.Version) == "" {
		opts.Version = defaultVersion
	}
	if opts.Models == nil {
		opts.Models = []string{}
	}
	if opts.Translate == nil {
		opts.Translate = EchoTranslate
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{logger: logger, opts: opts}
	s.echo = s.newEcho()
	return s
}

// EchoTranslate tags text with the target language, for example "[fr] hello".
func EchoTranslate(_, to, text string) (string, error) {
	return fmt.Sprintf("[%s] %s", to, text), nil
}

// Handler exposes the routes for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Addr is the listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.opts.Host, s.opts.Port)
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	if s == nil || s.echo == nil {
		return fmt.Errorf("server is not initialized")
	}

	addr := s.Addr()
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s.echo,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if shutdownErr := s.echo.Shutdown(shutdownCtx); shutdownErr != nil {
			s.logger.Error().Err(shutdownErr).Msg("stub server shutdown failed")
		}
	}()

	s.logger.Info().Str("addr", addr).Msg("mtran stub server started")

	if err := s.echo.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("start server: %w", err)
	}
	s.logger.Info().Msg("mtran stub server stopped")
	return nil
}

func (s *Server) newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.httpErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Debug().
				Err(v.Error).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("http request")
			return nil
		},
	}))

	e.GET("/health", s.handleHealth)

	e.GET("/version", s.handleVersion, s.requireToken)
	e.GET("/models", s.handleModels, s.requireToken)
	e.POST("/translate", s.handleTranslate, s.requireToken)
	e.POST("/translate/batch", s.handleBatch, s.requireToken)
	return e
}

func (s *Server) requireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.opts.Token != "" && c.Request().Header.Get(echo.HeaderAuthorization) != s.opts.Token {
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: "unauthorized"})
		}
		return next(c)
	}
}

func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		message = strings.ToLower(http.StatusText(code))
	}
	if code >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("stub request failed")
	}
	if writeErr := c.JSON(code, messageResponse{Message: message}); writeErr != nil {
		s.logger.Error().Err(writeErr).Msg("write error response")
	}
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"version": s.opts.Version})
}

func (s *Server) handleModels(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{"models": s.opts.Models})
}

func (s *Server) handleTranslate(c echo.Context) error {
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid request body"})
	}
	if strings.TrimSpace(req.To) == "" {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "to is required"})
	}

	result, err := s.opts.Translate(req.From, req.To, req.Text)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"result": result})
}

func (s *Server) handleBatch(c echo.Context) error {
	var req batchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid request body"})
	}
	if strings.TrimSpace(req.To) == "" {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "to is required"})
	}
	if len(req.Texts) == 0 {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "texts are required"})
	}

	results := make([]string, 0, len(req.Texts))
	for _, text := range req.Texts {
		result, err := s.opts.Translate(req.From, req.To, text)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, messageResponse{Message: err.Error()})
		}
		results = append(results, result)
	}
	return c.JSON(http.StatusOK, map[string][]string{"results": results})
}
