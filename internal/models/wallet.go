package models

import "time"

// Wallet is a user's credit balance inside one group.
type Wallet struct {
	GroupID       string    `json:"group_id"`
	UserID        string    `json:"user_id"`
	Username      string    `json:"username"`
	CreditsMinor  int64     `json:"credits_minor"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// Row projects the wallet onto a leaderboard row. Rank is left for the ranker.
func (w Wallet) Row() Row {
	return Row{UserID: w.UserID, Username: w.Username, CreditsMinor: w.CreditsMinor}
}
