package model

// UserStats aggregates a user's standing across the system, formerly the
// vw_user_dashboard view.
type UserStats struct {
	UserID           string `json:"user_id"`
	Name             string `json:"name"`
	Coins            int    `json:"coins"`
	TotalPhotos      int    `json:"total_photos"`
	TotalSubmissions int    `json:"total_submissions"`
	ApprovedCount    int    `json:"approved_count"`
	VotesReceived    int    `json:"votes_received"`
	ContestsWon      int    `json:"contests_won"`
}

// AdminStats backs the admin dashboard totals.
type AdminStats struct {
	TotalUsers    int `json:"total_users"`
	TotalContests int `json:"total_contests"`
	TotalPhotos   int `json:"total_photos"`
	TotalVotes    int `json:"total_votes"`
}
