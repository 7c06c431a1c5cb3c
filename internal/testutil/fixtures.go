package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dimitrije/pickup-api/internal/database"
	"github.com/dimitrije/pickup-api/internal/models"
	"github.com/dimitrije/pickup-api/internal/services"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db         *database.DB
	matches    *services.MatchService
	membership *services.MembershipService
	counter    int
}

func NewFixtures(db *database.DB) *Fixtures {
	membership := services.NewMembershipService(db)
	return &Fixtures{
		db:         db,
		matches:    services.NewMatchService(db, membership),
		membership: membership,
	}
}

// MatchOption configures a test match
type MatchOption func(*services.CreateMatchParams)

func WithMaxPlayers(n int) MatchOption {
	return func(p *services.CreateMatchParams) {
		p.MaxPlayers = &n
	}
}

func WithSport(sport string) MatchOption {
	return func(p *services.CreateMatchParams) {
		p.Sport = sport
	}
}

func WithLocation(location string) MatchOption {
	return func(p *services.CreateMatchParams) {
		p.Location = location
	}
}

func WithDate(date string) MatchOption {
	return func(p *services.CreateMatchParams) {
		p.Date = date
	}
}

// CreateMatch creates a match dated tomorrow through the Match Registry, so
// the creator is enrolled at position 0.
func (f *Fixtures) CreateMatch(t *testing.T, creatorID string, opts ...MatchOption) *models.Match {
	t.Helper()
	f.counter++

	params := services.CreateMatchParams{
		Title:    fmt.Sprintf("Test Match %d", f.counter),
		Sport:    models.SportFootball,
		Location: "Central Park",
		Date:     time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
		Time:     "18:00",
	}
	for _, opt := range opts {
		opt(&params)
	}

	match, err := f.matches.Create(context.Background(), params, creatorID, "Creator "+creatorID)
	if err != nil {
		t.Fatalf("failed to create match: %v", err)
	}
	return match
}

// CreatePastMatch inserts a match dated daysAgo in the past, bypassing validation.
func (f *Fixtures) CreatePastMatch(t *testing.T, creatorID string, daysAgo int) *models.Match {
	t.Helper()
	f.counter++

	date := time.Now().AddDate(0, 0, -daysAgo).Format("2006-01-02")
	var match models.Match
	err := f.db.Pool.QueryRow(context.Background(), `
		INSERT INTO matches (title, sport, location, date, time, creator_id, creator_name, invite_code)
		VALUES ($1, 'football', 'Old Field', $2, '10:00', $3, 'Old Creator', $4)
		RETURNING id, to_char(date, 'YYYY-MM-DD'), invite_code
	`, fmt.Sprintf("Past Match %d", f.counter), date, creatorID, fmt.Sprintf("past%04d", f.counter)).
		Scan(&match.ID, &match.Date, &match.InviteCode)
	if err != nil {
		t.Fatalf("failed to create past match: %v", err)
	}
	return &match
}

func (f *Fixtures) Join(t *testing.T, match *models.Match, userID string) *models.Participant {
	t.Helper()
	result, err := f.membership.Join(context.Background(), match.ID, userID, "Player "+userID)
	if err != nil {
		t.Fatalf("failed to join match: %v", err)
	}
	return result.Participant
}
