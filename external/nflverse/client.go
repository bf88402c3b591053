package nflverse

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/nfl-projections/internal/domain/game"
	basecache "github.com/riskibarqy/nfl-projections/internal/platform/cache"
	"github.com/riskibarqy/nfl-projections/internal/platform/logging"
	"github.com/riskibarqy/nfl-projections/internal/platform/resilience"
	"github.com/riskibarqy/nfl-projections/internal/usecase"
)

const (
	DefaultPlayerStatsURL = "https://github.com/nflverse/nflverse-data/releases/download/stats_player/stats_player_week_%d.csv"
	DefaultGamesURL       = "https://github.com/nflverse/nfldata/raw/master/data/games.csv"

	maxResponseBytes = 256 << 20
	userAgent        = "nfl-projections/1.0"
)

var errNflverseTransient = crerr.New("nflverse transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	// PlayerStatsURL is a format string taking the season as its only verb.
	PlayerStatsURL string
	GamesURL       string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	// CircuitBreaker is off unless Enabled is set.
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client downloads nflverse CSV releases. Use PlayerWeeks and Games for the
// domain providers.
type Client struct {
	httpClient     *http.Client
	playerStatsURL string
	gamesURL       string
	retry          resilience.RetryPolicy
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	flight         resilience.SingleFlight[[]byte]
	// schedule holds the parsed games file for the client's lifetime.
	schedule *basecache.Store[[]game.Game]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 2 * time.Minute
	}

	playerStatsURL := strings.TrimSpace(cfg.PlayerStatsURL)
	if playerStatsURL == "" {
		playerStatsURL = DefaultPlayerStatsURL
	}
	gamesURL := strings.TrimSpace(cfg.GamesURL)
	if gamesURL == "" {
		gamesURL = DefaultGamesURL
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = time.Second
	}

	return &Client{
		httpClient:     httpClient,
		playerStatsURL: playerStatsURL,
		gamesURL:       gamesURL,
		retry: resilience.RetryPolicy{
			MaxRetries: max(cfg.MaxRetries, 0),
			Backoff:    backoff,
			Retryable:  isTransient,
		},
		logger:   logger,
		breaker:  resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker),
		schedule: basecache.NewStore[[]game.Game](0),
	}
}

// download fetches url once per concurrent burst of callers. The schedule is
// a single file shared by every season, so parallel season loads collapse
// onto one request.
func (c *Client) download(ctx context.Context, url string) ([]byte, error) {
	raw, err, shared := c.flight.Do(url, func() ([]byte, error) {
		var payload []byte
		fetch := func() error {
			return c.retry.Do(ctx, func(ctx context.Context) error {
				body, err := c.get(ctx, url)
				payload = body
				return err
			})
		}

		var err error
		if c.breaker != nil {
			err = c.breaker.Execute(fetch, isTransient)
		} else {
			err = fetch()
		}
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "nflverse circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: nflverse is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		if err != nil {
			c.logger.WarnContext(ctx, "nflverse request failed", "url", url, "error", err)
			return nil, err
		}
		return payload, nil
	})
	if err != nil {
		return nil, err
	}
	c.logger.DebugContext(ctx, "nflverse download complete", "url", url, "bytes", len(raw), "shared", shared)
	return raw, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("accept", "text/csv")
	req.Header.Set("user-agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: send request: %v", errNflverseTransient, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxResponseBytes)); err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errNflverseTransient, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if isRetryableStatus(resp.StatusCode) {
			return nil, fmt.Errorf("%w: status=%d body=%s", errNflverseTransient, resp.StatusCode, abbreviateBody(buf.B))
		}
		return nil, crerr.Newf("nflverse status=%d url=%s body=%s", resp.StatusCode, url, abbreviateBody(buf.B))
	}

	// buf returns to the pool, so hand out a copy
	return append([]byte(nil), buf.B...), nil
}

func isTransient(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errNflverseTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
