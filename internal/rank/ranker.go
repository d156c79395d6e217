package rank

import (
	"sort"

	"github.com/baharkarakas/credits-leaderboard/internal/models"
)

// ByCredits sorts rows by CreditsMinor desc and sets Rank to position+1.
// The sort is stable: rows with equal credits keep their input order.
// rows is reordered in place and returned.
func ByCredits(rows []models.Row) []models.Row {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CreditsMinor > rows[j].CreditsMinor
	})
	for i := range rows {
		rows[i].Rank = int64(i + 1)
	}
	return rows
}
