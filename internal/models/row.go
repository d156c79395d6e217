package models

// Row is one leaderboard entry. CreditsMinor is the balance in minor units
// (cents) and the only sort key; Rank is filled in by the ranker.
type Row struct {
	UserID       string `json:"userId"`
	Username     string `json:"username"`
	CreditsMinor int64  `json:"creditsMinor"`
	Rank         int64  `json:"rank"`
}
