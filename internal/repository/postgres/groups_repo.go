package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type groupsRepo struct{ pool *pgxpool.Pool }

func (r *groupsRepo) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	var member bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM group_members WHERE group_id=$1 AND user_id=$2)`,
		groupID, userID,
	).Scan(&member)
	return member, err
}
