package model

import "time"

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "Pending"
	SubmissionApproved SubmissionStatus = "Approved"
	SubmissionRejected SubmissionStatus = "Rejected"
)

// Submission links a photo to a contest. A photo may enter a contest at
// most once; the unique constraint on (photo_id, contest_id) enforces it.
type Submission struct {
	ID           string           `json:"id"`
	PhotoID      string           `json:"photo_id"`
	ContestID    string           `json:"contest_id"`
	Status       SubmissionStatus `json:"status"`
	SubmittedAt  time.Time        `json:"submitted_at"`
	PhotoTitle   *string          `json:"photo_title,omitempty"`   // For display
	UserName     *string          `json:"user_name,omitempty"`     // For display
	ContestTitle *string          `json:"contest_title,omitempty"` // For display
}
