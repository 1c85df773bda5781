package model

import "time"

type Vote struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PhotoID   string    `json:"photo_id"`
	ContestID string    `json:"contest_id"`
	CreatedAt time.Time `json:"created_at"`
}
