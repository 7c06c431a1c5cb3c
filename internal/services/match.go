package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dimitrije/pickup-api/internal/database"
	"github.com/dimitrije/pickup-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	matchColumns = `id, title, sport, location, to_char(date, 'YYYY-MM-DD'), time, max_players,
		creator_id, creator_name, captain_name, price_per_person, invite_code, created_at, updated_at`
	qualifiedMatchColumns = `m.id, m.title, m.sport, m.location, to_char(m.date, 'YYYY-MM-DD'), m.time, m.max_players,
		m.creator_id, m.creator_name, m.captain_name, m.price_per_person, m.invite_code, m.created_at, m.updated_at`
)

type CreateMatchParams struct {
	Title          string
	Sport          string
	Location       string
	Date           string
	Time           string
	MaxPlayers     *int
	CaptainName    string
	PricePerPerson *int
}

// UpdateMatchParams lists the only fields a creator may change; nil means unchanged.
type UpdateMatchParams struct {
	Title          *string
	Sport          *string
	Location       *string
	Date           *string
	Time           *string
	MaxPlayers     *int
	CaptainName    *string
	PricePerPerson *int
}

type MatchService struct {
	db         *database.DB
	membership *MembershipService
	now        func() time.Time
	newCode    func() (string, error)
}

func NewMatchService(db *database.DB, membership *MembershipService) *MatchService {
	return &MatchService{
		db:         db,
		membership: membership,
		now:        time.Now,
		newCode:    GenerateInviteCode,
	}
}

func scanMatch(row pgx.Row, m *models.Match) error {
	return row.Scan(
		&m.ID, &m.Title, &m.Sport, &m.Location, &m.Date, &m.Time, &m.MaxPlayers,
		&m.CreatorID, &m.CreatorName, &m.CaptainName, &m.PricePerPerson, &m.InviteCode,
		&m.CreatedAt, &m.UpdatedAt,
	)
}

func (s *MatchService) validateCreate(p *CreateMatchParams, creatorID, creatorName string) error {
	p.Title = sanitizeText(p.Title)
	p.Location = sanitizeText(p.Location)
	p.CaptainName = sanitizeText(p.CaptainName)
	p.Sport = strings.TrimSpace(p.Sport)
	p.Date = strings.TrimSpace(p.Date)
	p.Time = strings.TrimSpace(p.Time)

	required := []struct{ field, value string }{
		{"title", p.Title},
		{"sport", p.Sport},
		{"location", p.Location},
		{"date", p.Date},
		{"time", p.Time},
		{"creator_id", creatorID},
		{"creator_name", creatorName},
	}
	for _, r := range required {
		if r.value == "" {
			return invalid(r.field, "is required")
		}
	}

	if err := validateSport(p.Sport); err != nil {
		return err
	}
	if err := validateDate(p.Date, s.now()); err != nil {
		return err
	}
	if err := validateTime(p.Time); err != nil {
		return err
	}
	if p.MaxPlayers != nil {
		if err := validateMaxPlayers(*p.MaxPlayers); err != nil {
			return err
		}
	}
	if p.PricePerPerson != nil {
		if err := validatePrice(*p.PricePerPerson); err != nil {
			return err
		}
	}
	return nil
}

// Create stores the match and enrolls its creator at position 0 in one transaction.
func (s *MatchService) Create(ctx context.Context, params CreateMatchParams, creatorID, creatorName string) (*models.Match, error) {
	creatorID = strings.TrimSpace(creatorID)
	creatorName = sanitizeText(creatorName)
	if err := s.validateCreate(&params, creatorID, creatorName); err != nil {
		return nil, err
	}

	maxPlayers := defaultMaxPlayers
	if params.MaxPlayers != nil {
		maxPlayers = *params.MaxPlayers
	}
	price := 0
	if params.PricePerPerson != nil {
		price = *params.PricePerPerson
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var match models.Match
	inserted := false
	for attempt := 0; attempt < maxInviteCodeAttempts; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return nil, err
		}

		err = scanMatch(tx.QueryRow(ctx, `
			INSERT INTO matches (title, sport, location, date, time, max_players,
				creator_id, creator_name, captain_name, price_per_person, invite_code, next_position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1)
			ON CONFLICT (invite_code) DO NOTHING
			RETURNING `+matchColumns,
			params.Title, params.Sport, params.Location, params.Date, params.Time, maxPlayers,
			creatorID, creatorName, params.CaptainName, price, code,
		), &match)
		if errors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create match: %w", err)
		}
		inserted = true
		break
	}
	if !inserted {
		return nil, ErrInviteCodeExhausted
	}

	captain := params.CaptainName
	if captain == "" {
		captain = creatorName
	}
	if _, err := s.membership.enroll(ctx, tx, match.ID, creatorID, captain, 0); err != nil {
		return nil, fmt.Errorf("failed to enroll creator: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &match, nil
}

func (s *MatchService) Get(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	var match models.Match
	err := scanMatch(s.db.Pool.QueryRow(ctx, `
		SELECT `+matchColumns+`
		FROM matches WHERE id = $1
	`, id), &match)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *MatchService) GetByInviteCode(ctx context.Context, code string) (*models.Match, error) {
	var match models.Match
	err := scanMatch(s.db.Pool.QueryRow(ctx, `
		SELECT `+matchColumns+`
		FROM matches WHERE invite_code = $1
	`, strings.ToLower(strings.TrimSpace(code))), &match)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// GetDetails returns the match with its participants in position order.
func (s *MatchService) GetDetails(ctx context.Context, id uuid.UUID) (*models.MatchDetails, error) {
	match, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, match)
}

func (s *MatchService) details(ctx context.Context, match *models.Match) (*models.MatchDetails, error) {
	participants, err := s.membership.List(ctx, match.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return models.NewMatchDetails(*match, participants), nil
}

// ListActive returns matches dated today or later, soonest first.
func (s *MatchService) ListActive(ctx context.Context) ([]models.Match, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+matchColumns+`
		FROM matches WHERE date >= $1
		ORDER BY date, time
	`, today(s.now()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := []models.Match{}
	for rows.Next() {
		var m models.Match
		if err := scanMatch(rows, &m); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (s *MatchService) validateUpdate(p *UpdateMatchParams) error {
	if p.Title != nil {
		if *p.Title = sanitizeText(*p.Title); *p.Title == "" {
			return invalid("title", "must not be empty")
		}
	}
	if p.Location != nil {
		if *p.Location = sanitizeText(*p.Location); *p.Location == "" {
			return invalid("location", "must not be empty")
		}
	}
	if p.CaptainName != nil {
		*p.CaptainName = sanitizeText(*p.CaptainName)
	}
	if p.Sport != nil {
		if err := validateSport(*p.Sport); err != nil {
			return err
		}
	}
	if p.Date != nil {
		if err := validateDate(*p.Date, s.now()); err != nil {
			return err
		}
	}
	if p.Time != nil {
		if err := validateTime(*p.Time); err != nil {
			return err
		}
	}
	if p.MaxPlayers != nil {
		if err := validateMaxPlayers(*p.MaxPlayers); err != nil {
			return err
		}
	}
	if p.PricePerPerson != nil {
		if err := validatePrice(*p.PricePerPerson); err != nil {
			return err
		}
	}
	return nil
}

// Update applies the allow-listed fields. Ownership and the capacity floor
// are part of the UPDATE predicate rather than a preceding read.
func (s *MatchService) Update(ctx context.Context, id uuid.UUID, params UpdateMatchParams, callerID string) (*models.Match, error) {
	if err := s.validateUpdate(&params); err != nil {
		return nil, err
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Same row lock as Join, so the participant count below cannot grow
	// before the new capacity is written.
	var creatorID string
	err = tx.QueryRow(ctx, `
		SELECT creator_id FROM matches WHERE id = $1 FOR UPDATE
	`, id).Scan(&creatorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load match: %w", err)
	}
	if creatorID != callerID {
		return nil, ErrUnauthorized
	}

	if params.MaxPlayers != nil {
		var count int
		err = tx.QueryRow(ctx, `
			SELECT COUNT(*) FROM participants WHERE match_id = $1
		`, id).Scan(&count)
		if err != nil {
			return nil, fmt.Errorf("failed to count participants: %w", err)
		}
		if *params.MaxPlayers < count {
			return nil, &ValidationError{
				Field:   "max_players",
				Message: fmt.Sprintf("%s (%d)", ErrCapacityBelowParticipants.Error(), count),
				Err:     ErrCapacityBelowParticipants,
			}
		}
	}

	var match models.Match
	err = scanMatch(tx.QueryRow(ctx, `
		UPDATE matches m SET
			title = COALESCE($3, m.title),
			sport = COALESCE($4, m.sport),
			location = COALESCE($5, m.location),
			date = COALESCE($6::date, m.date),
			time = COALESCE($7, m.time),
			max_players = COALESCE($8, m.max_players),
			captain_name = COALESCE($9, m.captain_name),
			price_per_person = COALESCE($10, m.price_per_person),
			updated_at = NOW()
		WHERE m.id = $1 AND m.creator_id = $2
		RETURNING `+matchColumns,
		id, callerID, params.Title, params.Sport, params.Location, params.Date, params.Time,
		params.MaxPlayers, params.CaptainName, params.PricePerPerson,
	), &match)
	if err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &match, nil
}

// Delete removes the match and its participants as one unit.
func (s *MatchService) Delete(ctx context.Context, id uuid.UUID, callerID string) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		DELETE FROM participants
		WHERE match_id IN (SELECT id FROM matches WHERE id = $1 AND creator_id = $2)
	`, id, callerID)
	if err != nil {
		return fmt.Errorf("failed to delete participants: %w", err)
	}

	result, err := tx.Exec(ctx, `
		DELETE FROM matches WHERE id = $1 AND creator_id = $2
	`, id, callerID)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	if result.RowsAffected() == 0 {
		var creatorID string
		err := tx.QueryRow(ctx, `SELECT creator_id FROM matches WHERE id = $1`, id).Scan(&creatorID)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrMatchNotFound
		}
		if err != nil {
			return err
		}
		return ErrUnauthorized
	}

	return tx.Commit(ctx)
}

// PruneBefore deletes matches dated before cutoff; participants go with them.
func (s *MatchService) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.Pool.Exec(ctx, `
		DELETE FROM matches WHERE date < $1
	`, cutoff.Format(dateLayout))
	if err != nil {
		return 0, fmt.Errorf("failed to prune matches: %w", err)
	}
	return result.RowsAffected(), nil
}
