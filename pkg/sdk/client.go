package regexboard

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/regexboard/internal/app"
	"github.com/kailas-cloud/regexboard/internal/db"
	"github.com/kailas-cloud/regexboard/internal/db/factory"
	domdoc "github.com/kailas-cloud/regexboard/internal/domain/document"
	"github.com/kailas-cloud/regexboard/internal/domain/match"
	"github.com/kailas-cloud/regexboard/internal/domain/mode"
	dompat "github.com/kailas-cloud/regexboard/internal/domain/pattern"
	mcptransport "github.com/kailas-cloud/regexboard/internal/transport/mcp"
	dashboarduc "github.com/kailas-cloud/regexboard/internal/usecase/dashboard"
	healthuc "github.com/kailas-cloud/regexboard/internal/usecase/health"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, swapped out in tests.
type dashboardUseCase interface {
	State(ctx context.Context) (dashboarduc.State, error)
	CreatePattern(ctx context.Context, regex string) (dashboarduc.State, error)
	UpdatePattern(ctx context.Context, id, regex string) (dashboarduc.State, error)
	DeletePattern(ctx context.Context, id string) (dashboarduc.State, error)
	Recompute(ctx context.Context) (dashboarduc.State, error)
	RegenerateDocument(ctx context.Context) (dashboarduc.State, error)
	Approve(ctx context.Context, key match.Key) ([]match.Match, error)
	View(ctx context.Context, m mode.Mode, selectedID string) (dashboarduc.View, error)
}

type patternUseCase interface {
	List(ctx context.Context) ([]dompat.Pattern, error)
	Get(ctx context.Context, id string) (dompat.Pattern, error)
}

type documentUseCase interface {
	Load(ctx context.Context) (domdoc.Document, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the regexboard SDK entry point.
type Client struct {
	store     db.Store
	dashboard dashboardUseCase
	patterns  patternUseCase
	docs      documentUseCase
	health    healthUseCase
	services  *app.App
	obs       *observer
}

// New opens the configured store and wires the services.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	store, err := factory.New(cfg.storage)
	if err != nil {
		return nil, fmt.Errorf("regexboard: %w", err)
	}
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("regexboard: store not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.serviceLogger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(store, cfg, obs), nil
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	settings := app.Settings{
		KeyPrefix:       cfg.storage.KeyPrefix,
		FillerSentences: cfg.fillerSentences,
		MatchTimeout:    cfg.matchTimeout,
	}
	if cfg.filler != nil {
		settings.Filler = cfg.filler
	}
	services := app.New(store, settings, cfg.serviceLogger)

	return &Client{
		store:     store,
		dashboard: services.Dashboard,
		patterns:  services.Patterns,
		docs:      services.Documents,
		health:    services.Health,
		services:  services,
		obs:       obs,
	}
}

// Close releases the store.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks store connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	ctx, start := c.obs.begin(ctx)
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Patterns returns the pattern registry.
func (c *Client) Patterns() *PatternService {
	return &PatternService{dashboard: c.dashboard, patterns: c.patterns, obs: c.obs}
}

// Matches returns the match review service.
func (c *Client) Matches() *MatchService {
	return &MatchService{dashboard: c.dashboard, obs: c.obs}
}

// Document returns the stored document, seeding it on first use.
func (c *Client) Document(ctx context.Context) (doc Document, err error) {
	ctx, start := c.obs.begin(ctx)
	defer func() { c.obs.observe("document", start, err) }()

	d, err := c.docs.Load(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("load document: %w", err)
	}
	return documentFromDomain(d), nil
}

// RegenerateDocument replaces the document text with fresh filler and
// recomputes matches. Approvals are discarded.
func (c *Client) RegenerateDocument(ctx context.Context) (st State, err error) {
	ctx, start := c.obs.begin(ctx)
	defer func() { c.obs.observe("document.regenerate", start, err) }()

	res, err := c.dashboard.RegenerateDocument(ctx)
	if err != nil {
		return State{}, err
	}
	return stateFromDomain(res), nil
}

// ServeMCP serves the MCP tools over stdin/stdout until ctx is done.
// logger must not write to stdout.
func (c *Client) ServeMCP(ctx context.Context, logger *zap.Logger) error {
	if c.services == nil {
		return fmt.Errorf("regexboard: client has no services")
	}
	return mcptransport.NewServer(c.services.Dashboard, c.services.Patterns, logger).Run(ctx)
}
