package handlers

import (
	"context"

	"github.com/dimitrije/pickup-api/internal/models"
	"github.com/dimitrije/pickup-api/internal/services"
	"github.com/google/uuid"
)

// MatchServiceInterface defines the methods used by handlers from MatchService
type MatchServiceInterface interface {
	Create(ctx context.Context, params services.CreateMatchParams, creatorID, creatorName string) (*models.Match, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Match, error)
	GetDetails(ctx context.Context, id uuid.UUID) (*models.MatchDetails, error)
	Update(ctx context.Context, id uuid.UUID, params services.UpdateMatchParams, callerID string) (*models.Match, error)
	Delete(ctx context.Context, id uuid.UUID, callerID string) error
}

// MembershipServiceInterface defines the methods used by handlers from MembershipService
type MembershipServiceInterface interface {
	Join(ctx context.Context, matchID uuid.UUID, userID, userName string) (*services.JoinResult, error)
	Leave(ctx context.Context, matchID uuid.UUID, userID string) (bool, error)
	HasJoined(ctx context.Context, matchID uuid.UUID, userID string) (bool, error)
}

// StatsServiceInterface defines the methods used by handlers from StatsService
type StatsServiceInterface interface {
	Stats(ctx context.Context) (*models.Stats, error)
	ListActiveWithCounts(ctx context.Context, filter services.ListFilter) ([]models.MatchWithCount, error)
	Invalidate(ctx context.Context)
}

// InviteServiceInterface defines the methods used by handlers from InviteService
type InviteServiceInterface interface {
	Resolve(ctx context.Context, code string) (*models.MatchDetails, error)
}

// IdentityServiceInterface defines the methods used by handlers from IdentityService
type IdentityServiceInterface interface {
	Issue(userID, name string) (*services.IdentityToken, error)
}

// EventPublisher delivers match events to live subscribers. Implementations
// must not block.
type EventPublisher interface {
	ParticipantJoined(p *models.Participant)
	MatchFull(matchID uuid.UUID)
	ParticipantLeft(matchID uuid.UUID, userID string)
	MatchUpdated(match *models.Match)
	MatchDeleted(matchID uuid.UUID)
}
