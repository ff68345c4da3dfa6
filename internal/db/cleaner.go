package db

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// StartSessionCleaner removes abandoned session rows with interval.
// The gateway has no token expiry logic; a stale bearer token fails
// with 401 on its next use regardless. This only keeps the table from
// accumulating rows for sessions nobody logged out of.
func StartSessionCleaner(
	ctx context.Context,
	db *sqlx.DB,
	interval time.Duration,
	retention time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cutoff := time.Now().Add(-retention).Unix()
				res, err := db.ExecContext(ctx, `
                    DELETE FROM sessions
                     WHERE created_at < $1
                `, cutoff)
				if err != nil {
					log.Error("failed to clean stale sessions", zap.Error(err))
					continue
				}
				if rows, _ := res.RowsAffected(); rows > 0 {
					log.Info("cleaned stale sessions", zap.Int64("removed", rows))
				}
			}
		}
	}()
}
