// Package store keeps the operator CLI session (tokens and the logged-in
// email) in a local SQLite file.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/labelshop/internal/cmsctl/store/migrations"
	"github.com/dmitrijs2005/labelshop/internal/dbx"
	"github.com/dmitrijs2005/labelshop/internal/filex"
	"github.com/pressly/goose/v3"
)

const (
	keyEmail        = "email"
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyExpiresAt    = "access_expires_at"
)

// Session is what a successful login leaves behind.
type Session struct {
	Email        string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

type TokenStore struct {
	db *sql.DB
}

// Open creates the parent directory when needed, opens the database and
// migrates it.
func Open(ctx context.Context, path string) (*TokenStore, error) {
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}
	db, err := dbx.OpenSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return &TokenStore{db: db}, nil
}

func (s *TokenStore) Close() error {
	return s.db.Close()
}

// Load returns nil when nobody is logged in.
func (s *TokenStore) Load(ctx context.Context) (*Session, error) {
	repo := NewSQLiteMetadataRepository(s.db)

	refresh, err := repo.Get(ctx, keyRefreshToken)
	if err != nil {
		return nil, err
	}
	if len(refresh) == 0 {
		return nil, nil
	}

	sess := &Session{RefreshToken: string(refresh)}
	for key, dst := range map[string]*string{keyEmail: &sess.Email, keyAccessToken: &sess.AccessToken} {
		v, err := repo.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		*dst = string(v)
	}

	exp, err := repo.Get(ctx, keyExpiresAt)
	if err != nil {
		return nil, err
	}
	if len(exp) > 0 {
		if t, err := time.Parse(time.RFC3339, string(exp)); err == nil {
			sess.ExpiresAt = t
		}
	}
	return sess, nil
}

// Save replaces the stored session atomically.
func (s *TokenStore) Save(ctx context.Context, sess *Session) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteMetadataRepository(tx)
		values := map[string]string{
			keyEmail:        sess.Email,
			keyAccessToken:  sess.AccessToken,
			keyRefreshToken: sess.RefreshToken,
		}
		if !sess.ExpiresAt.IsZero() {
			values[keyExpiresAt] = sess.ExpiresAt.UTC().Format(time.RFC3339)
		}
		for _, k := range []string{keyEmail, keyAccessToken, keyRefreshToken, keyExpiresAt} {
			v := values[k]
			if v == "" {
				if err := repo.Delete(ctx, k); err != nil {
					return err
				}
				continue
			}
			if err := repo.Set(ctx, k, []byte(v)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *TokenStore) Clear(ctx context.Context) error {
	return NewSQLiteMetadataRepository(s.db).Clear(ctx)
}
