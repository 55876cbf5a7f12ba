// Package cms initializes and runs the CMS backend: it opens Postgres, applies
// migrations, bootstraps the first operator and serves the REST API and the
// gRPC health endpoint until a shutdown signal arrives.
package cms

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/labelshop/internal/buildinfo"
	"github.com/dmitrijs2005/labelshop/internal/cms/config"
	cmsgrpc "github.com/dmitrijs2005/labelshop/internal/cms/grpc"
	"github.com/dmitrijs2005/labelshop/internal/cms/httpapi"
	"github.com/dmitrijs2005/labelshop/internal/cms/mail"
	"github.com/dmitrijs2005/labelshop/internal/cms/repositories/repomanager"
	"github.com/dmitrijs2005/labelshop/internal/cms/services"
	"github.com/dmitrijs2005/labelshop/internal/dbx"
	"github.com/dmitrijs2005/labelshop/internal/httpx"
	"github.com/dmitrijs2005/labelshop/internal/logging"
)

const mailFromName = "Label news"

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	operators *services.OperatorService
	handler   *httpapi.Handler
}

var openPostgres = dbx.OpenPostgres

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := openPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	var sender mail.Sender = mail.NewLogSender(logger.With("module", "mail"))
	if c.SendGridAPIKey != "" {
		sender = mail.NewSendGridSender(c.SendGridAPIKey, c.MailFrom, mailFromName, logger.With("module", "mail"))
	}

	notifier := services.NewFeedNotifier(db, rm, sender, c.SiteURL, logger)
	ops := services.NewOperatorService(db, rm, c)

	h := httpapi.NewHandler(
		services.NewNewsService(db, rm, notifier, logger),
		services.NewDiscographyService(db, rm),
		ops,
		services.NewSubscriptionService(db, rm),
		services.NewUploadService(c),
		db,
		httpapi.Options{
			PublishableAPIKey: c.PublishableAPIKey,
			CORSOrigins:       c.CORSOrigins,
			SiteURL:           c.SiteURL,
		},
		logger,
	)

	return &App{config: c, logger: logger, db: db, operators: ops, handler: h}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// bootstrapOperator creates the configured operator on first start.
func (app *App) bootstrapOperator(ctx context.Context) {
	if app.config.BootstrapOperatorEmail == "" || app.config.BootstrapOperatorPassword == "" {
		return
	}
	created, err := app.operators.EnsureOperator(ctx, app.config.BootstrapOperatorEmail, app.config.BootstrapOperatorPassword)
	if err != nil {
		app.logger.Error(ctx, "bootstrap operator failed", "error", err.Error())
		return
	}
	if created {
		app.logger.Info(ctx, "bootstrap operator created", "email", app.config.BootstrapOperatorEmail)
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := httpx.ListenAndServe(ctx, app.config.HTTPAddr, app.handler.Router(), app.logger); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := cmsgrpc.NewHealthServer(app.config.GRPCAddr, app.logger, app.db)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting CMS...", "version", buildinfo.String())

	app.initSignalHandler(cancelFunc)
	app.bootstrapOperator(ctx)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err.Error())
	}
	app.logger.Info(ctx, "CMS stopped")
}
