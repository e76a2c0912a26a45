// Package readstore implements the availability store ports on PostgreSQL.
package readstore

import (
	"context"
	"log/slog"

	"appointment-engine/internal/pkg/logger"

	"github.com/jackc/pgx/v5"
)

// DBTX is the subset of *pgxpool.Pool used by the read stores.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func orDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return logger.Discard()
	}
	return l
}
