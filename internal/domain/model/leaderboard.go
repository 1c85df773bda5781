package model

import "time"

// LeaderboardEntry is one photo's standing within a contest. Rank uses
// competition ("RANK()") semantics: tied vote counts share a rank and the
// next distinct count skips ranks accordingly.
type LeaderboardEntry struct {
	Rank             int              `json:"rank"`
	PhotoID          string           `json:"photo_id"`
	PhotoTitle       string           `json:"photo_title"`
	FilePath         string           `json:"file_path"`
	OwnerID          string           `json:"owner_id"`
	OwnerName        string           `json:"owner_name"`
	TotalVotes       int              `json:"total_votes"`
	SubmissionStatus SubmissionStatus `json:"submission_status"`
	SubmittedAt      time.Time        `json:"submitted_at"`
}
