package repository

import (
	"context"

	"github.com/baharkarakas/credits-leaderboard/internal/models"
)

type Groups interface {
	// IsMember reports whether userID belongs to groupID. An unknown group has no members.
	IsMember(ctx context.Context, groupID, userID string) (bool, error)
}

type Wallets interface {
	// ListByGroup returns every wallet in the group joined with its username.
	// Order is unspecified; callers rank the result.
	ListByGroup(ctx context.Context, groupID string) ([]models.Wallet, error)
}
