package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/fpl-proxy/internal/models"
)

const (
	DefaultFPLBaseURL   = "https://fantasy.premierleague.com/api"
	DefaultFPLUserAgent = "fpl-proxy/1.0"

	// BreakerName is the circuit breaker the client reports under.
	BreakerName = "fpl"

	bootstrapPath = "/bootstrap-static/"
	fixturesPath  = "/fixtures/?future=1"
)

// ErrUpstreamUnavailable is the root of every network or status failure talking to the FPL API.
var ErrUpstreamUnavailable = errors.New("fpl upstream unavailable")

// ErrCallerGone marks a fetch abandoned because the caller's context ended. It says
// nothing about upstream health, so the breaker does not count it as a failure.
var ErrCallerGone = errors.New("request abandoned by caller")

// UpstreamStatusError is returned when the upstream answers with a non-2xx status.
type UpstreamStatusError struct {
	URL        string
	StatusCode int
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("GET %s failed: status %d", e.URL, e.StatusCode)
}

func (e *UpstreamStatusError) Unwrap() error {
	return ErrUpstreamUnavailable
}

// Executor runs an upstream call under protection, e.g. a circuit breaker.
type Executor interface {
	Execute(service string, fn func() (interface{}, error)) (interface{}, error)
}

type FPLClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	Breaker    Executor
	Logger     *logrus.Logger
}

// FPLClient reads the public Fantasy Premier League API.
type FPLClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	breaker    Executor
	logger     *logrus.Logger
}

func NewFPLClient(cfg FPLClientConfig) *FPLClient {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultFPLBaseURL
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultFPLUserAgent
	}

	return &FPLClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
		breaker:    cfg.Breaker,
		logger:     logger,
	}
}

// FetchBootstrap downloads /bootstrap-static/ (players, teams, position types).
func (c *FPLClient) FetchBootstrap(ctx context.Context) (*models.Bootstrap, error) {
	var bootstrap models.Bootstrap
	if err := c.getJSON(ctx, bootstrapPath, &bootstrap); err != nil {
		return nil, err
	}
	return &bootstrap, nil
}

// FetchFixtures downloads the fixtures that have not been played yet.
func (c *FPLClient) FetchFixtures(ctx context.Context) ([]models.Fixture, error) {
	var fixtures []models.Fixture
	if err := c.getJSON(ctx, fixturesPath, &fixtures); err != nil {
		return nil, err
	}
	return fixtures, nil
}

func (c *FPLClient) getJSON(ctx context.Context, path string, dest interface{}) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCallerGone, err)
	}
	if c.breaker == nil {
		return c.doGet(ctx, path, dest)
	}

	called := false
	_, err := c.breaker.Execute(BreakerName, func() (interface{}, error) {
		called = true
		err := c.doGet(ctx, path, dest)
		if err != nil && ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrCallerGone, err)
		}
		return nil, err
	})
	if err != nil && !called {
		// rejected by the breaker without reaching the network
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return err
}

func (c *FPLClient) doGet(ctx context.Context, path string, dest interface{}) error {
	url := c.baseURL + path
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %w", ErrUpstreamUnavailable, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &UpstreamStatusError{URL: url, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode %s: %w", url, err)
	}

	c.logger.WithFields(logrus.Fields{
		"component": "fpl_client",
		"url":       url,
		"status":    resp.StatusCode,
		"latency":   time.Since(start),
	}).Debug("Fetched upstream resource")

	return nil
}
