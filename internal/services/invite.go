package services

import (
	"context"
	"errors"

	"github.com/dimitrije/pickup-api/internal/models"
)

// InviteService resolves invite codes to the full match view.
type InviteService struct {
	matches *MatchService
}

func NewInviteService(matches *MatchService) *InviteService {
	return &InviteService{matches: matches}
}

// Resolve returns nil without an error when no match owns code.
func (s *InviteService) Resolve(ctx context.Context, code string) (*models.MatchDetails, error) {
	code, ok := NormalizeInviteCode(code)
	if !ok {
		return nil, nil
	}

	match, err := s.matches.GetByInviteCode(ctx, code)
	if errors.Is(err, ErrMatchNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.matches.details(ctx, match)
}
