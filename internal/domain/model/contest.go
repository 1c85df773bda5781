package model

import "time"

type ContestStatus string

const (
	ContestUpcoming  ContestStatus = "Upcoming"
	ContestActive    ContestStatus = "Active"
	ContestCompleted ContestStatus = "Completed"
	ContestCancelled ContestStatus = "Cancelled"
)

type Contest struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	Slug             string        `json:"slug"`
	StartDate        time.Time     `json:"start_date"`
	EndDate          time.Time     `json:"end_date"`
	MaxParticipants  int           `json:"max_participants"`
	PrizePoints      int           `json:"prize_points"`
	EntryFee         int           `json:"entry_fee"`
	ManagerID        string        `json:"manager_id"`
	Status           ContestStatus `json:"status"`
	WinnerUserID     *string       `json:"winner_user_id,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
	ManagerName      *string       `json:"manager_name,omitempty"`      // For display
	TotalSubmissions *int          `json:"total_submissions,omitempty"` // For display
	TotalVotes       *int          `json:"total_votes,omitempty"`       // For display
}

// StatusFor derives a contest's status from its time window. Cancelled is
// sticky: it is never recomputed, here or in SQL.
func StatusFor(current ContestStatus, now, start, end time.Time) ContestStatus {
	if current == ContestCancelled {
		return ContestCancelled
	}
	switch {
	case now.Before(start):
		return ContestUpcoming
	case now.After(end):
		return ContestCompleted
	default:
		return ContestActive
	}
}
