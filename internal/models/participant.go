package models

import (
	"time"

	"github.com/google/uuid"
)

type Participant struct {
	ID        uuid.UUID `json:"id"`
	MatchID   uuid.UUID `json:"match_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Position  int       `json:"position"`
	IsStarter bool      `json:"is_starter"`
	JoinedAt  time.Time `json:"joined_at"`
}
