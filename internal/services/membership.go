package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimitrije/pickup-api/internal/database"
	"github.com/dimitrije/pickup-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// MembershipService owns participant rows. Joins for one match are
// serialized on the match row lock, so capacity is never exceeded; the
// (match_id, user_id) unique constraint still backs the duplicate check.
type MembershipService struct {
	db *database.DB
}

func NewMembershipService(db *database.DB) *MembershipService {
	return &MembershipService{db: db}
}

// JoinResult is a successful join. Filled is set when the join took the last open spot.
type JoinResult struct {
	Participant *models.Participant
	Filled      bool
}

func (s *MembershipService) Join(ctx context.Context, matchID uuid.UUID, userID, userName string) (*JoinResult, error) {
	if userID == "" {
		return nil, invalid("user_id", "is required")
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var maxPlayers, nextPosition int
	err = tx.QueryRow(ctx, `
		SELECT max_players, next_position FROM matches WHERE id = $1 FOR UPDATE
	`, matchID).Scan(&maxPlayers, &nextPosition)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load match: %w", err)
	}

	var count int
	var joined bool
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(BOOL_OR(user_id = $2), FALSE)
		FROM participants WHERE match_id = $1
	`, matchID, userID).Scan(&count, &joined)
	if err != nil {
		return nil, fmt.Errorf("failed to count participants: %w", err)
	}

	if count >= maxPlayers {
		return nil, ErrMatchFull
	}
	if joined {
		return nil, ErrAlreadyJoined
	}

	participant, err := s.enroll(ctx, tx, matchID, userID, sanitizeText(userName), nextPosition)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE matches SET next_position = $2, updated_at = NOW() WHERE id = $1
	`, matchID, nextPosition+1)
	if err != nil {
		return nil, fmt.Errorf("failed to advance position: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &JoinResult{Participant: participant, Filled: count+1 == maxPlayers}, nil
}

// enroll inserts a participant row at the given position.
func (s *MembershipService) enroll(ctx context.Context, q database.Querier, matchID uuid.UUID, userID, userName string, position int) (*models.Participant, error) {
	var p models.Participant
	err := q.QueryRow(ctx, `
		INSERT INTO participants (match_id, user_id, user_name, position, is_starter)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING id, match_id, user_id, user_name, position, is_starter, joined_at
	`, matchID, userID, userName, position).Scan(
		&p.ID, &p.MatchID, &p.UserID, &p.UserName, &p.Position, &p.IsStarter, &p.JoinedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyJoined
		}
		return nil, fmt.Errorf("failed to add participant: %w", err)
	}
	return &p, nil
}

// Leave removes the membership if present and reports whether a row was deleted.
func (s *MembershipService) Leave(ctx context.Context, matchID uuid.UUID, userID string) (bool, error) {
	if userID == "" {
		return false, invalid("user_id", "is required")
	}

	result, err := s.db.Pool.Exec(ctx, `
		DELETE FROM participants WHERE match_id = $1 AND user_id = $2
	`, matchID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to remove participant: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func (s *MembershipService) HasJoined(ctx context.Context, matchID uuid.UUID, userID string) (bool, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM participants WHERE match_id = $1 AND user_id = $2)
	`, matchID, userID).Scan(&exists)
	return exists, err
}

func (s *MembershipService) List(ctx context.Context, matchID uuid.UUID) ([]models.Participant, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, match_id, user_id, user_name, position, is_starter, joined_at
		FROM participants WHERE match_id = $1
		ORDER BY position
	`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := []models.Participant{}
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.MatchID, &p.UserID, &p.UserName, &p.Position, &p.IsStarter, &p.JoinedAt); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
