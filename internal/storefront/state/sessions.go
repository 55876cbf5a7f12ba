package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/labelshop/internal/dbx"
)

// CartSessions maps a browser session id onto the id of its active cart.
type CartSessions interface {
	// CartID returns "" when the session has no active cart.
	CartID(ctx context.Context, sessionID string) (string, error)
	SetCartID(ctx context.Context, sessionID, cartID string) error
	Clear(ctx context.Context, sessionID string) error
}

type SQLiteCartSessions struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLiteCartSessions(db dbx.DBTX) *SQLiteCartSessions {
	return &SQLiteCartSessions{db: db, now: time.Now}
}

func (r *SQLiteCartSessions) CartID(ctx context.Context, sessionID string) (string, error) {
	var cartID string
	err := r.db.QueryRowContext(ctx,
		`SELECT cart_id FROM cart_sessions WHERE session_id = ?`, sessionID).Scan(&cartID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get cart for session: %w", err)
	}
	return cartID, nil
}

func (r *SQLiteCartSessions) SetCartID(ctx context.Context, sessionID, cartID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_sessions (session_id, cart_id, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET cart_id = excluded.cart_id, updated_at = excluded.updated_at
	`, sessionID, cartID, r.now().Unix())
	if err != nil {
		return fmt.Errorf("failed to set cart for session: %w", err)
	}
	return nil
}

func (r *SQLiteCartSessions) Clear(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_sessions WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to clear cart session: %w", err)
	}
	return nil
}

// PurgeBefore removes sessions not touched since t and reports how many went.
func (r *SQLiteCartSessions) PurgeBefore(ctx context.Context, t time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_sessions WHERE updated_at < ?`, t.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to purge cart sessions: %w", err)
	}
	return res.RowsAffected()
}
