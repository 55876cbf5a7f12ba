// Package storefront initializes and runs the storefront API: it opens the
// local state database, wires the commerce, search and CMS clients and
// serves the REST routes until a shutdown signal arrives.
package storefront

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/labelshop/internal/buildinfo"
	"github.com/dmitrijs2005/labelshop/internal/httpx"
	"github.com/dmitrijs2005/labelshop/internal/logging"
	"github.com/dmitrijs2005/labelshop/internal/storefront/commerce"
	"github.com/dmitrijs2005/labelshop/internal/storefront/config"
	"github.com/dmitrijs2005/labelshop/internal/storefront/content"
	"github.com/dmitrijs2005/labelshop/internal/storefront/httpapi"
	"github.com/dmitrijs2005/labelshop/internal/storefront/ratelimit"
	"github.com/dmitrijs2005/labelshop/internal/storefront/search"
	"github.com/dmitrijs2005/labelshop/internal/storefront/state"
)

const (
	sessionTTL         = 30 * 24 * time.Hour
	sessionPurgePeriod = time.Hour
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	sessions *state.SQLiteCartSessions
	limiter  *ratelimit.Limiter
	handler  *httpapi.Handler
}

var openState = state.Open

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.NewJSONLogger(os.Stdout, c.Server.LogLevel)

	db, err := openState(ctx, c.Server.StatePath)
	if err != nil {
		return nil, fmt.Errorf("state db init error: %w", err)
	}

	sessions := state.NewSQLiteCartSessions(db)
	limiter := ratelimit.New(c.Server.NewsRateLimit, c.Server.NewsRateWindow).
		TrustProxyHeaders(c.Server.TrustProxyHeaders)

	h := httpapi.NewHandler(
		commerce.NewClient(c.Public.BackendURL, c.Public.PublishableKey, c.Server.UpstreamTimeout),
		search.NewService(c.Public.SearchHost, c.Public.SearchAPIKey, c.Public.SearchIndex),
		content.NewClient(c.Server.CMSURL, c.Server.UpstreamTimeout),
		sessions,
		state.NewSQLiteMetadata(db),
		limiter,
		httpapi.Options{
			Public:        c.Public,
			CORSOrigins:   c.Server.CORSOrigins,
			SecureCookies: c.Server.SecureCookies,
		},
		logger,
	)

	return &App{config: c, logger: logger, db: db, sessions: sessions, limiter: limiter, handler: h}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := httpx.ListenAndServe(ctx, app.config.Server.HTTPAddr, app.handler.Router(), app.logger); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// purgeSessions drops cart sessions idle for longer than sessionTTL.
func (app *App) purgeSessions(ctx context.Context) {
	t := time.NewTicker(sessionPurgePeriod)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := app.sessions.PurgeBefore(ctx, time.Now().Add(-sessionTTL))
			if err != nil {
				app.logger.Warn(ctx, "purge cart sessions", "error", err.Error())
				continue
			}
			if n > 0 {
				app.logger.Info(ctx, "purged cart sessions", "count", n)
			}
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting storefront...", "version", buildinfo.String())

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.limiter.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		app.purgeSessions(ctx)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing state database", "error", err.Error())
	}
	app.logger.Info(ctx, "Storefront stopped")
}
