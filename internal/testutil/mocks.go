package testutil

import (
	"context"

	"github.com/dimitrije/pickup-api/internal/models"
	"github.com/dimitrije/pickup-api/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockMatchService mocks the MatchService
type MockMatchService struct {
	mock.Mock
}

func (m *MockMatchService) Create(ctx context.Context, params services.CreateMatchParams, creatorID, creatorName string) (*models.Match, error) {
	args := m.Called(ctx, params, creatorID, creatorName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Match), args.Error(1)
}

func (m *MockMatchService) Get(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Match), args.Error(1)
}

func (m *MockMatchService) GetDetails(ctx context.Context, id uuid.UUID) (*models.MatchDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MatchDetails), args.Error(1)
}

func (m *MockMatchService) Update(ctx context.Context, id uuid.UUID, params services.UpdateMatchParams, callerID string) (*models.Match, error) {
	args := m.Called(ctx, id, params, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Match), args.Error(1)
}

func (m *MockMatchService) Delete(ctx context.Context, id uuid.UUID, callerID string) error {
	args := m.Called(ctx, id, callerID)
	return args.Error(0)
}

// MockMembershipService mocks the MembershipService
type MockMembershipService struct {
	mock.Mock
}

func (m *MockMembershipService) Join(ctx context.Context, matchID uuid.UUID, userID, userName string) (*services.JoinResult, error) {
	args := m.Called(ctx, matchID, userID, userName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.JoinResult), args.Error(1)
}

func (m *MockMembershipService) Leave(ctx context.Context, matchID uuid.UUID, userID string) (bool, error) {
	args := m.Called(ctx, matchID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMembershipService) HasJoined(ctx context.Context, matchID uuid.UUID, userID string) (bool, error) {
	args := m.Called(ctx, matchID, userID)
	return args.Bool(0), args.Error(1)
}

// MockStatsService mocks the StatsService
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Stats(ctx context.Context) (*models.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stats), args.Error(1)
}

func (m *MockStatsService) ListActiveWithCounts(ctx context.Context, filter services.ListFilter) ([]models.MatchWithCount, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MatchWithCount), args.Error(1)
}

func (m *MockStatsService) Invalidate(ctx context.Context) {
	m.Called(ctx)
}

// MockInviteService mocks the InviteService
type MockInviteService struct {
	mock.Mock
}

func (m *MockInviteService) Resolve(ctx context.Context, code string) (*models.MatchDetails, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MatchDetails), args.Error(1)
}

// MockIdentityService mocks the IdentityService
type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) Issue(userID, name string) (*services.IdentityToken, error) {
	args := m.Called(userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.IdentityToken), args.Error(1)
}

// MockEventPublisher records published match events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) ParticipantJoined(p *models.Participant) {
	m.Called(p)
}

func (m *MockEventPublisher) MatchFull(matchID uuid.UUID) {
	m.Called(matchID)
}

func (m *MockEventPublisher) ParticipantLeft(matchID uuid.UUID, userID string) {
	m.Called(matchID, userID)
}

func (m *MockEventPublisher) MatchUpdated(match *models.Match) {
	m.Called(match)
}

func (m *MockEventPublisher) MatchDeleted(matchID uuid.UUID) {
	m.Called(matchID)
}
