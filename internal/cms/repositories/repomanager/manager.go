// Package repomanager vends the CMS repositories bound to a database handle
// and applies the embedded schema migrations with goose.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/labelshop/internal/cms/repositories/discography"
	"github.com/dmitrijs2005/labelshop/internal/cms/repositories/news"
	"github.com/dmitrijs2005/labelshop/internal/cms/repositories/operators"
	"github.com/dmitrijs2005/labelshop/internal/cms/repositories/refreshtokens"
	"github.com/dmitrijs2005/labelshop/internal/cms/repositories/subscribers"
	"github.com/dmitrijs2005/labelshop/internal/dbx"
)

// RepositoryManager builds repositories over any dbx.DBTX, so services can
// reuse the same constructors inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	News(db dbx.DBTX) news.Repository
	Discography(db dbx.DBTX) discography.Repository
	Operators(db dbx.DBTX) operators.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Subscribers(db dbx.DBTX) subscribers.Repository
}
