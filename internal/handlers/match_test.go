package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dimitrije/pickup-api/internal/geo"
	"github.com/dimitrije/pickup-api/internal/middleware"
	"github.com/dimitrije/pickup-api/internal/models"
	"github.com/dimitrije/pickup-api/internal/services"
	"github.com/dimitrije/pickup-api/internal/testutil"
	"github.com/dimitrije/pickup-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type matchTestDeps struct {
	matches *testutil.MockMatchService
	invites *testutil.MockInviteService
	stats   *testutil.MockStatsService
	events  *testutil.MockEventPublisher
	handler *MatchHandler
}

func setupMatchTest(t *testing.T) *matchTestDeps {
	t.Helper()
	d := &matchTestDeps{
		matches: new(testutil.MockMatchService),
		invites: new(testutil.MockInviteService),
		stats:   new(testutil.MockStatsService),
		events:  new(testutil.MockEventPublisher),
	}
	d.handler = NewMatchHandler(d.matches, d.invites, d.stats, d.events)
	return d
}

// serve mounts h at route behind the same middleware the server uses and
// performs one request against path.
func serve(t *testing.T, method, route string, h drift.HandlerFunc, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Identity(testutil.TestIdentityService()))
	switch method {
	case http.MethodGet:
		app.Get(route, h)
	case http.MethodPost:
		app.Post(route, h)
	case http.MethodPut:
		app.Put(route, h)
	case http.MethodDelete:
		app.Delete(route, h)
	}

	return testutil.NewHTTPTestClient(t, app).Request(method, path, body, headers)
}

func sampleMatch() *models.Match {
	return &models.Match{
		ID:          uuid.New(),
		Title:       "Sunday kickabout",
		Sport:       models.SportFootball,
		Location:    "Central Park",
		Date:        "2099-01-01",
		Time:        "18:30",
		MaxPlayers:  10,
		CreatorID:   "creator-1",
		CreatorName: "Ana",
		InviteCode:  "abcd1234",
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestMatchHandler_Create_Success(t *testing.T) {
	d := setupMatchTest(t)
	match := sampleMatch()
	params := services.CreateMatchParams{
		Title: "Sunday kickabout", Sport: "football", Location: "Central Park", Date: "2099-01-01", Time: "18:30",
	}

	d.matches.On("Create", mock.Anything, params, "creator-1", "Ana").Return(match, nil)
	d.stats.On("Invalidate", mock.Anything).Return()

	body := dto.CreateMatchRequest{
		Title: "Sunday kickabout", Sport: "football", Location: "Central Park", Date: "2099-01-01", Time: "18:30",
		CreatorID: "creator-1", CreatorName: "Ana",
	}
	rec := serve(t, http.MethodPost, "/matches", d.handler.Create, "/matches", body, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var response models.Match
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, match.ID, response.ID)
	assert.Equal(t, "abcd1234", response.InviteCode)

	d.matches.AssertExpectations(t)
	d.stats.AssertExpectations(t)
}

func TestMatchHandler_Create_TokenOverridesBodyIdentity(t *testing.T) {
	d := setupMatchTest(t)
	match := sampleMatch()

	d.matches.On("Create", mock.Anything, mock.Anything, "token-user", "Token Name").Return(match, nil)
	d.stats.On("Invalidate", mock.Anything).Return()

	token := testutil.GenerateTestToken(t, "token-user", "Token Name")
	body := dto.CreateMatchRequest{Title: "x", CreatorID: "spoofed", CreatorName: "Spoofed"}
	rec := serve(t, http.MethodPost, "/matches", d.handler.Create, "/matches", body,
		map[string]string{"Authorization": testutil.AuthHeader(token)})

	assert.Equal(t, http.StatusCreated, rec.Code)
	d.matches.AssertExpectations(t)
}

func TestMatchHandler_Create_ValidationError(t *testing.T) {
	d := setupMatchTest(t)

	d.matches.On("Create", mock.Anything, mock.Anything, "", "").
		Return(nil, &services.ValidationError{Field: "title", Message: "is required"})

	rec := serve(t, http.MethodPost, "/matches", d.handler.Create, "/matches", dto.CreateMatchRequest{}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, CodeValidation, body.Code)
	assert.Equal(t, "title: is required", body.Message)
	d.stats.AssertNotCalled(t, "Invalidate", mock.Anything)
}

func TestMatchHandler_Create_PastDate(t *testing.T) {
	d := setupMatchTest(t)

	d.matches.On("Create", mock.Anything, mock.Anything, "creator-1", "Ana").
		Return(nil, &services.ValidationError{Field: "date", Message: services.ErrPastDate.Error(), Err: services.ErrPastDate})

	body := dto.CreateMatchRequest{CreatorID: "creator-1", CreatorName: "Ana"}
	rec := serve(t, http.MethodPost, "/matches", d.handler.Create, "/matches", body, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodePastDate, decodeError(t, rec).Code)
}

func TestMatchHandler_List(t *testing.T) {
	d := setupMatchTest(t)
	listed := []models.MatchWithCount{{Match: *sampleMatch(), ParticipantCount: 3}}

	d.stats.On("ListActiveWithCounts", mock.Anything, services.ListFilter{}).Return(listed, nil)

	rec := serve(t, http.MethodGet, "/matches", d.handler.List, "/matches", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var response []models.MatchWithCount
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, 1)
	assert.Equal(t, 3, response[0].ParticipantCount)
	d.stats.AssertExpectations(t)
}

func TestMatchHandler_List_CityRadius(t *testing.T) {
	d := setupMatchTest(t)
	london, ok := geo.CityByName("London")
	require.True(t, ok)
	center := london.Point()

	d.stats.On("ListActiveWithCounts", mock.Anything, services.ListFilter{
		Sport: "tennis", Near: &center, RadiusKm: 15,
	}).Return([]models.MatchWithCount{}, nil)

	rec := serve(t, http.MethodGet, "/matches", d.handler.List, "/matches?sport=tennis&city=london&radius_km=15", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	d.stats.AssertExpectations(t)
}

func TestMatchHandler_List_BadFilters(t *testing.T) {
	testCases := []struct {
		name string
		path string
	}{
		{"unknown sport", "/matches?sport=cricket"},
		{"bad radius", "/matches?radius_km=far&city=london"},
		{"unknown city", "/matches?radius_km=10&city=atlantis"},
		{"radius without center", "/matches?radius_km=10"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := setupMatchTest(t)

			rec := serve(t, http.MethodGet, "/matches", d.handler.List, tc.path, nil, nil)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			d.stats.AssertNotCalled(t, "ListActiveWithCounts", mock.Anything, mock.Anything)
		})
	}
}

func TestMatchHandler_Get(t *testing.T) {
	d := setupMatchTest(t)
	match := sampleMatch()
	details := models.NewMatchDetails(*match, []models.Participant{{ID: uuid.New(), MatchID: match.ID, UserID: "creator-1"}})

	d.matches.On("GetDetails", mock.Anything, match.ID).Return(details, nil)

	rec := serve(t, http.MethodGet, "/matches/:id", d.handler.Get, "/matches/"+match.ID.String(), nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var response models.MatchDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 1, response.ParticipantCount)
	require.Len(t, response.Participants, 1)
}

func TestMatchHandler_Get_InvalidID(t *testing.T) {
	d := setupMatchTest(t)

	rec := serve(t, http.MethodGet, "/matches/:id", d.handler.Get, "/matches/not-a-uuid", nil, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid match id")
}

func TestMatchHandler_Get_NotFound(t *testing.T) {
	d := setupMatchTest(t)
	id := uuid.New()

	d.matches.On("GetDetails", mock.Anything, id).Return(nil, services.ErrMatchNotFound)

	rec := serve(t, http.MethodGet, "/matches/:id", d.handler.Get, "/matches/"+id.String(), nil, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, CodeMatchNotFound, decodeError(t, rec).Code)
}

func TestMatchHandler_GetByInvite(t *testing.T) {
	d := setupMatchTest(t)
	match := sampleMatch()

	d.invites.On("Resolve", mock.Anything, "ABCD1234").Return(models.NewMatchDetails(*match, nil), nil)

	rec := serve(t, http.MethodGet, "/matches/invite/:code", d.handler.GetByInvite, "/matches/invite/ABCD1234", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var response models.MatchDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, match.ID, response.ID)
	assert.NotNil(t, response.Participants)
}

func TestMatchHandler_GetByInvite_Unknown(t *testing.T) {
	d := setupMatchTest(t)

	d.invites.On("Resolve", mock.Anything, "zzzz9999").Return(nil, nil)

	rec := serve(t, http.MethodGet, "/matches/invite/:code", d.handler.GetByInvite, "/matches/invite/zzzz9999", nil, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, CodeMatchNotFound, decodeError(t, rec).Code)
}

func TestMatchHandler_Update_Success(t *testing.T) {
	d := setupMatchTest(t)
	match := sampleMatch()
	title := "Renamed"
	match.Title = title

	d.matches.On("Update", mock.Anything, match.ID, services.UpdateMatchParams{Title: &title}, "creator-1").Return(match, nil)
	d.stats.On("Invalidate", mock.Anything).Return()
	d.events.On("MatchUpdated", match).Return()

	body := dto.UpdateMatchRequest{CreatorID: "creator-1", Title: &title}
	rec := serve(t, http.MethodPut, "/matches/:id", d.handler.Update, "/matches/"+match.ID.String(), body, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	d.matches.AssertExpectations(t)
	d.events.AssertExpectations(t)
}

func TestMatchHandler_Update_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not creator", services.ErrUnauthorized, http.StatusForbidden, CodeUnauthorized},
		{"not found", services.ErrMatchNotFound, http.StatusNotFound, CodeMatchNotFound},
		{"capacity", &services.ValidationError{Field: "max_players", Message: "too small", Err: services.ErrCapacityBelowParticipants}, http.StatusBadRequest, CodeCapacityBelow},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := setupMatchTest(t)
			id := uuid.New()

			d.matches.On("Update", mock.Anything, id, mock.Anything, "someone").Return(nil, tc.err)

			body := dto.UpdateMatchRequest{CreatorID: "someone"}
			rec := serve(t, http.MethodPut, "/matches/:id", d.handler.Update, "/matches/"+id.String(), body, nil)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.code, decodeError(t, rec).Code)
			d.events.AssertNotCalled(t, "MatchUpdated", mock.Anything)
		})
	}
}

func TestMatchHandler_Update_InternalError(t *testing.T) {
	d := setupMatchTest(t)
	id := uuid.New()

	d.matches.On("Update", mock.Anything, id, mock.Anything, "creator-1").Return(nil, assert.AnError)

	rec := serve(t, http.MethodPut, "/matches/:id", d.handler.Update, "/matches/"+id.String(), dto.UpdateMatchRequest{CreatorID: "creator-1"}, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, CodeInternal, body.Code)
	assert.NotContains(t, body.Message, assert.AnError.Error())
}

func TestMatchHandler_Delete_Success(t *testing.T) {
	d := setupMatchTest(t)
	id := uuid.New()

	d.matches.On("Delete", mock.Anything, id, "creator-1").Return(nil)
	d.stats.On("Invalidate", mock.Anything).Return()
	d.events.On("MatchDeleted", id).Return()

	rec := serve(t, http.MethodDelete, "/matches/:id", d.handler.Delete, "/matches/"+id.String(), dto.DeleteMatchRequest{CreatorID: "creator-1"}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	d.matches.AssertExpectations(t)
	d.events.AssertExpectations(t)
}

func TestMatchHandler_Delete_QueryCreator(t *testing.T) {
	d := setupMatchTest(t)
	id := uuid.New()

	d.matches.On("Delete", mock.Anything, id, "creator-1").Return(nil)
	d.stats.On("Invalidate", mock.Anything).Return()
	d.events.On("MatchDeleted", id).Return()

	rec := serve(t, http.MethodDelete, "/matches/:id", d.handler.Delete, "/matches/"+id.String()+"?creator_id=creator-1", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	d.matches.AssertExpectations(t)
}

func TestMatchHandler_Delete_NotCreator(t *testing.T) {
	d := setupMatchTest(t)
	id := uuid.New()

	d.matches.On("Delete", mock.Anything, id, "intruder").Return(services.ErrUnauthorized)

	rec := serve(t, http.MethodDelete, "/matches/:id", d.handler.Delete, "/matches/"+id.String(), dto.DeleteMatchRequest{CreatorID: "intruder"}, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, CodeUnauthorized, decodeError(t, rec).Code)
	d.events.AssertNotCalled(t, "MatchDeleted", mock.Anything)
}
