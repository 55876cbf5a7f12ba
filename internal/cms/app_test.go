package cms

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/dmitrijs2005/labelshop/internal/cms/config"
	"github.com/stretchr/testify/require"
)

func TestNewApp_DBError(t *testing.T) {
	orig := openPostgres
	t.Cleanup(func() { openPostgres = orig })

	openPostgres = func(ctx context.Context, dsn string) (*sql.DB, error) {
		return nil, errors.New("connection refused")
	}

	cfg := &config.Config{}
	cfg.LoadDefaults()

	_, err := NewApp(context.Background(), cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "db init error")
}
