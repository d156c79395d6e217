package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/baharkarakas/credits-leaderboard/internal/codec"
	"github.com/baharkarakas/credits-leaderboard/internal/metrics"
	"github.com/baharkarakas/credits-leaderboard/internal/models"
	"github.com/baharkarakas/credits-leaderboard/internal/rank"
	repo "github.com/baharkarakas/credits-leaderboard/internal/repository"
)

var ErrNotMember = errors.New("not a member of the group")

type LeaderboardService struct {
	groups  repo.Groups
	wallets repo.Wallets
	log     *slog.Logger
}

// NewLeaderboardService wires the ranker to storage. groups and wallets may be nil
// when only batch ranking is needed.
func NewLeaderboardService(g repo.Groups, w repo.Wallets, log *slog.Logger) *LeaderboardService {
	return &LeaderboardService{groups: g, wallets: w, log: log}
}

// Transform decodes a JSON array of rows from r, ranks it and writes the result to w.
// Nothing is written to w unless every step before the write succeeded.
func (s *LeaderboardService) Transform(r io.Reader, w io.Writer) error {
	rows, err := codec.Decode(r)
	if err != nil {
		metrics.LeaderboardRequests.WithLabelValues("batch", "error").Inc()
		return err
	}
	s.log.Debug("decoded rows", "count", len(rows))

	rows = s.Rank(rows)
	if err := codec.Encode(w, rows); err != nil {
		metrics.LeaderboardRequests.WithLabelValues("batch", "error").Inc()
		return err
	}
	metrics.LeaderboardRequests.WithLabelValues("batch", "ok").Inc()
	return nil
}

func (s *LeaderboardService) Rank(rows []models.Row) []models.Row {
	metrics.RowsRanked.Add(float64(len(rows)))
	return rank.ByCredits(rows)
}

// GroupLeaderboard ranks the stored wallets of one group, highest balance first.
// Only members of the group may read it; an unknown group looks the same as a foreign one.
func (s *LeaderboardService) GroupLeaderboard(ctx context.Context, groupID, userID string) ([]models.Row, error) {
	if s.groups == nil || s.wallets == nil {
		return nil, errors.New("leaderboard storage not configured")
	}
	member, err := s.groups.IsMember(ctx, groupID, userID)
	if err != nil {
		metrics.LeaderboardRequests.WithLabelValues("group", "error").Inc()
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if !member {
		metrics.LeaderboardRequests.WithLabelValues("group", "forbidden").Inc()
		return nil, ErrNotMember
	}
	wallets, err := s.wallets.ListByGroup(ctx, groupID)
	if err != nil {
		metrics.LeaderboardRequests.WithLabelValues("group", "error").Inc()
		return nil, fmt.Errorf("list wallets: %w", err)
	}

	rows := make([]models.Row, len(wallets))
	for i, w := range wallets {
		rows[i] = w.Row()
	}
	metrics.LeaderboardRequests.WithLabelValues("group", "ok").Inc()
	return s.Rank(rows), nil
}
