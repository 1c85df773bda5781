package model

import "time"

// Photo is owned exclusively by one user; only the owner may edit or
// delete it. FilePath is relative to the configured upload directory.
type Photo struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	FilePath   string    `json:"file_path"`
	UploadDate time.Time `json:"upload_date"`
	Contests   *string   `json:"contests,omitempty"`    // For display
	TotalVotes *int      `json:"total_votes,omitempty"` // For display
}
