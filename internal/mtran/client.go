package mtran

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"horse.fit/mtran/internal/language"
)

const (
	// DefaultRequestTimeout bounds translate, batch, models and version calls.
	DefaultRequestTimeout = 15 * time.Second
	// DefaultHealthTimeout bounds health checks.
	DefaultHealthTimeout = 5 * time.Second

	opTranslate = "translate"
	opBatch     = "batch translate"
	opModels    = "list models"
	opVersion   = "get version"
	opHealth    = "health check"
)

// EmptyTextPolicy decides what happens to blank input text.
type EmptyTextPolicy string

const (
	// EmptyTextReturnEmpty returns "" (or no results) without a network call.
	EmptyTextReturnEmpty EmptyTextPolicy = "return-empty"
	// EmptyTextReject fails with ErrInvalidRequest.
	EmptyTextReject EmptyTextPolicy = "reject"
)

// ParseEmptyTextPolicy parses a policy name. Blank selects EmptyTextReturnEmpty.
func ParseEmptyTextPolicy(raw string) (EmptyTextPolicy, error) {
	switch EmptyTextPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", EmptyTextReturnEmpty:
		return EmptyTextReturnEmpty, nil
	case EmptyTextReject:
		return EmptyTextReject, nil
	default:
		return "", fmt.Errorf("unknown empty text policy %q (want %s or %s)", raw, EmptyTextReturnEmpty, EmptyTextReject)
	}
}

// Policy selects between the behaviors the adapter has historically had.
type Policy struct {
	// PreflightHealthCheck probes /health before translate and batch calls.
	PreflightHealthCheck bool
	EmptyText            EmptyTextPolicy
}

// Detector guesses the ISO 639-1 language of text, returning "" when unsure.
type Detector interface {
	Detect(text string) string
}

// Client calls an MTranServer instance.
type Client struct {
	transport      Transport
	normalizer     Normalizer
	policy         Policy
	detector       Detector
	logger         zerolog.Logger
	requestTimeout time.Duration
	healthTimeout  time.Duration
}

type Option func(*Client)

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDefaultURL replaces DefaultBaseURL as the fallback for blank API URLs.
func WithDefaultURL(raw string) Option {
	return func(c *Client) {
		c.normalizer.Default = raw
	}
}

func WithPolicy(policy Policy) Option {
	return func(c *Client) {
		c.policy = policy
	}
}

// WithTimeouts overrides the request and health deadlines. Non-positive
// values keep the defaults.
func WithTimeouts(request, health time.Duration) Option {
	return func(c *Client) {
		if request > 0 {
			c.requestTimeout = request
		}
		if health > 0 {
			c.healthTimeout = health
		}
	}
}

// WithDetector sets a fallback detector for "auto" sources the host left undetected.
func WithDetector(detector Detector) Option {
	return func(c *Client) {
		c.detector = detector
	}
}

// NewClient builds a client. A nil transport selects NewHTTPTransport.
func NewClient(transport Transport, opts ...Option) *Client {
	c := &Client{
		policy:         Policy{EmptyText: EmptyTextReturnEmpty},
		logger:         zerolog.Nop(),
		requestTimeout: DefaultRequestTimeout,
		healthTimeout:  DefaultHealthTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.policy.EmptyText == "" {
		c.policy.EmptyText = EmptyTextReturnEmpty
	}
	if transport == nil {
		transport = NewHTTPTransport(c.logger)
	}
	c.transport = transport
	return c
}

// Translate translates req.Text. Blank text is handled per the empty text
// policy without touching the network.
func (c *Client) Translate(ctx context.Context, cfg *Config, req TranslateRequest) (string, error) {
	if err := ValidateConfig(cfg); err != nil {
		return "", err
	}
	baseURL := c.normalizer.Normalize(cfg.APIURL)

	if strings.TrimSpace(req.Text) == "" {
		if c.policy.EmptyText == EmptyTextReject {
			return "", invalidRequestError(opTranslate, "text is required")
		}
		return "", nil
	}

	body := translateBody{
		From: c.sourceLanguage(req.From, req.Detect, req.Text),
		To:   strings.TrimSpace(req.To),
		Text: req.Text,
	}
	if err := validateBody(opTranslate, body); err != nil {
		return "", err
	}

	if err := c.preflight(ctx, opTranslate, baseURL, cfg.Token); err != nil {
		return "", err
	}

	resp, err := c.execute(ctx, opTranslate, cfg.Token, http.MethodPost, baseURL+pathTranslate, body, c.requestTimeout)
	if err != nil {
		return "", err
	}
	return mapTranslate(resp)
}

// BatchTranslate translates req.Texts, keeping their order. An empty batch
// is handled per the empty text policy.
func (c *Client) BatchTranslate(ctx context.Context, cfg *Config, req BatchTranslateRequest) ([]string, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	baseURL := c.normalizer.Normalize(cfg.APIURL)

	if len(req.Texts) == 0 {
		if c.policy.EmptyText == EmptyTextReject {
			return nil, invalidRequestError(opBatch, "texts are required")
		}
		return []string{}, nil
	}

	body := batchBody{
		From:  c.sourceLanguage(req.From, req.Detect, req.Texts...),
		To:    strings.TrimSpace(req.To),
		Texts: req.Texts,
	}
	if err := validateBody(opBatch, body); err != nil {
		return nil, err
	}

	if err := c.preflight(ctx, opBatch, baseURL, cfg.Token); err != nil {
		return nil, err
	}

	resp, err := c.execute(ctx, opBatch, cfg.Token, http.MethodPost, baseURL+pathBatch, body, c.requestTimeout)
	if err != nil {
		return nil, err
	}
	return mapBatch(resp)
}

// CheckHealth reports whether the server answers /health with status "ok".
// It never fails; every error is logged and reported as false.
func (c *Client) CheckHealth(ctx context.Context, cfg *Config) bool {
	if err := ValidateConfig(cfg); err != nil {
		c.logger.Warn().Err(err).Msg("health check failed")
		return false
	}
	return c.checkHealth(ctx, c.normalizer.Normalize(cfg.APIURL), cfg.Token)
}

// Models lists the models loaded on the server.
func (c *Client) Models(ctx context.Context, cfg *Config) ([]Model, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	baseURL := c.normalizer.Normalize(cfg.APIURL)

	resp, err := c.execute(ctx, opModels, cfg.Token, http.MethodGet, baseURL+pathModels, nil, c.requestTimeout)
	if err != nil {
		return nil, err
	}
	return mapModels(resp)
}

// Version returns the server version string.
func (c *Client) Version(ctx context.Context, cfg *Config) (string, error) {
	if err := ValidateConfig(cfg); err != nil {
		return "", err
	}
	baseURL := c.normalizer.Normalize(cfg.APIURL)

	resp, err := c.execute(ctx, opVersion, cfg.Token, http.MethodGet, baseURL+pathVersion, nil, c.requestTimeout)
	if err != nil {
		return "", err
	}
	return mapVersion(resp)
}

func (c *Client) checkHealth(ctx context.Context, baseURL, token string) bool {
	resp, err := c.execute(ctx, opHealth, token, http.MethodGet, baseURL+pathHealth, nil, c.healthTimeout)
	if err != nil {
		c.logger.Warn().Err(err).Str("base_url", baseURL).Msg("health check failed")
		return false
	}
	healthy, err := mapHealth(resp)
	if err != nil {
		c.logger.Warn().Err(err).Str("base_url", baseURL).Msg("health check failed")
		return false
	}
	return healthy
}

func (c *Client) preflight(ctx context.Context, op, baseURL, token string) error {
	if !c.policy.PreflightHealthCheck {
		return nil
	}
	if !c.checkHealth(ctx, baseURL, token) {
		return unavailableError(op)
	}
	return nil
}

// sourceLanguage resolves "auto" to the host detection, then to the
// fallback detector, and leaves "auto" for the server when both are blank.
func (c *Client) sourceLanguage(from, detected string, texts ...string) string {
	if !language.IsAuto(from) {
		return strings.TrimSpace(from)
	}
	if code := language.ServerCode(detected); code != "" {
		return code
	}
	if c.detector != nil {
		if code := language.ServerCode(c.detector.Detect(strings.Join(texts, "\n"))); code != "" {
			return code
		}
	}
	return language.Auto
}

func (c *Client) execute(
	ctx context.Context,
	op string,
	token string,
	method string,
	url string,
	payload any,
	timeout time.Duration,
) (*Response, error) {
	req := &Request{
		Method: method,
		URL:    url,
		Header: http.Header{},
	}
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: marshal request: %w", op, err)
		}
		req.Body = body
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	started := time.Now()
	resp, err := c.transport.Send(callCtx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return nil, timeoutError(op, err)
		}
		return nil, networkError(op, err)
	}
	if resp == nil {
		return nil, networkError(op, fmt.Errorf("transport returned no response"))
	}

	c.logger.Debug().
		Str("op", op).
		Str("method", method).
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(started)).
		Msg("mtran request")
	return resp, nil
}
