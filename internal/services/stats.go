package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dimitrije/pickup-api/internal/database"
	"github.com/dimitrije/pickup-api/internal/geo"
	"github.com/dimitrije/pickup-api/internal/models"
	"github.com/google/uuid"
)

// StatsCache stores the global counters for a bounded time.
type StatsCache interface {
	Get(ctx context.Context) (*models.Stats, bool, error)
	Set(ctx context.Context, stats *models.Stats) error
	Invalidate(ctx context.Context) error
}

type ListFilter struct {
	Sport    string
	Near     *geo.Point
	RadiusKm float64
}

// StatsService computes read-side aggregates from the match and participant
// tables. Nothing is kept as a running total.
type StatsService struct {
	db    *database.DB
	cache StatsCache
	now   func() time.Time
}

func NewStatsService(db *database.DB, cache StatsCache) *StatsService {
	return &StatsService{db: db, cache: cache, now: time.Now}
}

func (s *StatsService) CountActiveMatches(ctx context.Context) (int, error) {
	var count int
	err := s.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM matches WHERE date >= $1
	`, today(s.now())).Scan(&count)
	return count, err
}

func (s *StatsService) CountParticipantsInActiveMatches(ctx context.Context) (int, error) {
	var count int
	err := s.db.Pool.QueryRow(ctx, `
		SELECT COUNT(p.id) FROM participants p
		JOIN matches m ON m.id = p.match_id
		WHERE m.date >= $1
	`, today(s.now())).Scan(&count)
	return count, err
}

// Stats returns both counters, served from the cache when one is configured.
func (s *StatsService) Stats(ctx context.Context) (*models.Stats, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		if err != nil {
			log.Printf("stats cache read failed: %v", err)
		} else if ok {
			return cached, nil
		}
	}

	var stats models.Stats
	err := s.db.Pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM matches WHERE date >= $1),
			(SELECT COUNT(p.id) FROM participants p JOIN matches m ON m.id = p.match_id WHERE m.date >= $1)
	`, today(s.now())).Scan(&stats.ActiveMatches, &stats.OnlinePlayers)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, &stats); err != nil {
			log.Printf("stats cache write failed: %v", err)
		}
	}
	return &stats, nil
}

// Invalidate drops the cached counters after a write.
func (s *StatsService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("stats cache invalidate failed: %v", err)
	}
}

// ListActiveWithCounts lists active matches with participant counts from a
// single grouped query, then applies the optional distance filter.
func (s *StatsService) ListActiveWithCounts(ctx context.Context, filter ListFilter) ([]models.MatchWithCount, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+qualifiedMatchColumns+`, COUNT(p.id)
		FROM matches m
		LEFT JOIN participants p ON p.match_id = m.id
		WHERE m.date >= $1 AND ($2 = '' OR m.sport = $2)
		GROUP BY m.id
		ORDER BY m.date, m.time
	`, today(s.now()), filter.Sport)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := []models.MatchWithCount{}
	for rows.Next() {
		var m models.MatchWithCount
		if err := rows.Scan(
			&m.ID, &m.Title, &m.Sport, &m.Location, &m.Date, &m.Time, &m.MaxPlayers,
			&m.CreatorID, &m.CreatorName, &m.CaptainName, &m.PricePerPerson, &m.InviteCode,
			&m.CreatedAt, &m.UpdatedAt, &m.ParticipantCount,
		); err != nil {
			return nil, err
		}
		if filter.Near != nil && filter.RadiusKm > 0 && !geo.Within(m.Location, *filter.Near, filter.RadiusKm) {
			continue
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// WithParticipantCounts decorates matches with their counts using one query.
func (s *StatsService) WithParticipantCounts(ctx context.Context, matches []models.Match) ([]models.MatchWithCount, error) {
	out := make([]models.MatchWithCount, len(matches))
	if len(matches) == 0 {
		return out, nil
	}

	ids := make([]uuid.UUID, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT match_id, COUNT(*) FROM participants
		WHERE match_id = ANY($1)
		GROUP BY match_id
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int, len(matches))
	for rows.Next() {
		var id uuid.UUID
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, m := range matches {
		out[i] = models.MatchWithCount{Match: m, ParticipantCount: counts[m.ID]}
	}
	return out, nil
}
