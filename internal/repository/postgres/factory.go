package postgres

import (
	repo "github.com/baharkarakas/credits-leaderboard/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	Groups  repo.Groups
	Wallets repo.Wallets
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Groups:  &groupsRepo{pool},
		Wallets: &walletsRepo{pool},
	}
}
