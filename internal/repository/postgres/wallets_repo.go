package postgres

import (
	"context"

	"github.com/baharkarakas/credits-leaderboard/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type walletsRepo struct{ pool *pgxpool.Pool }

func (r *walletsRepo) ListByGroup(ctx context.Context, groupID string) ([]models.Wallet, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT w.group_id, w.user_id, u.username, w.credits_minor, w.last_updated_at
		   FROM wallets w
		   JOIN users u ON u.id = w.user_id
		  WHERE w.group_id = $1`,
		groupID,
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Wallet, error) {
		var w models.Wallet
		err := row.Scan(&w.GroupID, &w.UserID, &w.Username, &w.CreditsMinor, &w.LastUpdatedAt)
		return w, err
	})
}
