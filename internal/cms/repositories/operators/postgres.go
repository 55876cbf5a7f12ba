package operators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/labelshop/internal/cms/models"
	"github.com/dmitrijs2005/labelshop/internal/common"
	"github.com/dmitrijs2005/labelshop/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, email, passwordHash string) (*models.Operator, error) {
	query := `
		INSERT INTO operators (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	op := &models.Operator{Email: email, PasswordHash: passwordHash}
	if err := r.db.QueryRowContext(ctx, query, email, passwordHash).Scan(&op.ID, &op.CreatedAt); err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return op, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Operator, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM operators
		WHERE email = $1
	`
	op := &models.Operator{}
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&op.ID, &op.Email, &op.PasswordHash, &op.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return op, nil
}
