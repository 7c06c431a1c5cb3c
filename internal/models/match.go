package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SportFootball   = "football"
	SportBasketball = "basketball"
	SportTennis     = "tennis"
	SportBaseball   = "baseball"
	SportVolleyball = "volleyball"
	SportOther      = "other"
)

var Sports = []string{
	SportFootball,
	SportBasketball,
	SportTennis,
	SportBaseball,
	SportVolleyball,
	SportOther,
}

func ValidSport(sport string) bool {
	for _, s := range Sports {
		if s == sport {
			return true
		}
	}
	return false
}

type Match struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Sport          string    `json:"sport"`
	Location       string    `json:"location"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	MaxPlayers     int       `json:"max_players"`
	CreatorID      string    `json:"creator_id"`
	CreatorName    string    `json:"creator_name"`
	CaptainName    string    `json:"captain_name"`
	PricePerPerson int       `json:"price_per_person"`
	InviteCode     string    `json:"invite_code"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MatchWithCount is the list view of a match.
type MatchWithCount struct {
	Match
	ParticipantCount int `json:"participant_count"`
}

// MatchDetails is the single-match view, participants ordered by position.
type MatchDetails struct {
	MatchWithCount
	Participants []Participant `json:"participants"`
}

func NewMatchDetails(match Match, participants []Participant) *MatchDetails {
	if participants == nil {
		participants = []Participant{}
	}
	return &MatchDetails{
		MatchWithCount: MatchWithCount{Match: match, ParticipantCount: len(participants)},
		Participants:   participants,
	}
}

type Stats struct {
	ActiveMatches int `json:"activeMatches"`
	OnlinePlayers int `json:"onlinePlayers"`
}
