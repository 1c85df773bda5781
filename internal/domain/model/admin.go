package model

import "time"

// Admin manages contests and moderates submissions. Admins are a separate
// identity table from users; they hold no coin balance.
type Admin struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
