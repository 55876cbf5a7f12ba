package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/labelshop/internal/cms/migrations"
	"github.com/dmitrijs2005/labelshop/internal/cms/repositories/discography"
	"github.com/dmitrijs2005/labelshop/internal/cms/repositories/news"
	"github.com/dmitrijs2005/labelshop/internal/cms/repositories/operators"
	"github.com/dmitrijs2005/labelshop/internal/cms/repositories/refreshtokens"
	"github.com/dmitrijs2005/labelshop/internal/cms/repositories/subscribers"
	"github.com/dmitrijs2005/labelshop/internal/dbx"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) News(db dbx.DBTX) news.Repository {
	return news.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Discography(db dbx.DBTX) discography.Repository {
	return discography.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Operators(db dbx.DBTX) operators.Repository {
	return operators.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Subscribers(db dbx.DBTX) subscribers.Repository {
	return subscribers.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func setupGoose() error {
	goose.SetBaseFS(migrations.Migrations)
	return goose.SetDialect("pgx")
}

// RunMigrations applies every pending embedded migration.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	if err := setupGoose(); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
