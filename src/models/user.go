package models

import "time"

type User struct {
	ID         int64     `json:"id"`
	ExternalID string    `json:"external_id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	CreatedAt  time.Time `json:"created_at"`
}

type Gamification struct {
	UserID    int64     `json:"user_id"`
	Points    int       `json:"points"`
	Level     int       `json:"level"`
	Streak    int       `json:"streak"`
	UpdatedAt time.Time `json:"updated_at"`
}
