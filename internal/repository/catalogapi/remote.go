package catalogapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"smartMarket/domain"
	"smartMarket/pkg/logger"
)

const maxCatalogBytes = 8 << 20

type RemoteConfig struct {
	URL     string
	Timeout time.Duration

	// consecutive failures before the breaker opens, and how long it stays open
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

// RemoteCatalog reads the product list from a JSON endpoint serving an array of
// products. Calls go through a circuit breaker so a dead upstream fails fast.
type RemoteCatalog struct {
	cfg    RemoteConfig
	client *http.Client
	cb     *gobreaker.CircuitBreaker[[]domain.Product]
}

func NewRemoteCatalog(cfg RemoteConfig) *RemoteCatalog {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}

	threshold := cfg.FailureThreshold
	cb := gobreaker.NewCircuitBreaker[[]domain.Product](gobreaker.Settings{
		Name:        "catalog-api",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &RemoteCatalog{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		cb:     cb,
	}
}

// FindAll fetches the catalog. gobreaker.ErrOpenState is returned while the
// breaker is open.
func (r *RemoteCatalog) FindAll(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := r.cb.Execute(func() ([]domain.Product, error) {
		return r.fetch(ctx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("catalog api unavailable: %w", err)
		}
		return nil, err
	}

	return products, nil
}

func (r *RemoteCatalog) fetch(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Add("Accept", "application/json")

	res, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch catalog: unexpected status %d", res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxCatalogBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var products []domain.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	return products, nil
}

func (r *RemoteCatalog) State() gobreaker.State {
	return r.cb.State()
}
