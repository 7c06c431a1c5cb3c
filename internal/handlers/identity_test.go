package handlers

import (
	"net/http"
	"testing"

	"github.com/dimitrije/pickup-api/internal/services"
	"github.com/dimitrije/pickup-api/internal/testutil"
	"github.com/dimitrije/pickup-api/pkg/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestIdentityHandler_Issue(t *testing.T) {
	identity := new(testutil.MockIdentityService)
	handler := NewIdentityHandler(identity)

	identity.On("Issue", "", "Ana").Return(&services.IdentityToken{Token: "tok", UserID: "new-id", Name: "Ana", ExpiresIn: 60}, nil)

	rec := serve(t, http.MethodPost, "/identity", handler.Issue, "/identity", dto.IssueIdentityRequest{Name: "Ana"}, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"token":"tok","user_id":"new-id","name":"Ana","expires_in":60}`, rec.Body.String())
}

func TestIdentityHandler_Issue_KeepsTokenUserID(t *testing.T) {
	identity := new(testutil.MockIdentityService)
	handler := NewIdentityHandler(identity)

	identity.On("Issue", "existing", "Renamed").Return(&services.IdentityToken{Token: "tok", UserID: "existing", Name: "Renamed"}, nil)

	token := testutil.GenerateTestToken(t, "existing", "Ana")
	rec := serve(t, http.MethodPost, "/identity", handler.Issue, "/identity",
		dto.IssueIdentityRequest{UserID: "spoofed", Name: "Renamed"},
		map[string]string{"Authorization": testutil.AuthHeader(token)})

	assert.Equal(t, http.StatusCreated, rec.Code)
	identity.AssertExpectations(t)
}

func TestIdentityHandler_Issue_MissingName(t *testing.T) {
	identity := new(testutil.MockIdentityService)
	handler := NewIdentityHandler(identity)

	identity.On("Issue", mock.Anything, "").Return(nil, &services.ValidationError{Field: "name", Message: "is required"})

	rec := serve(t, http.MethodPost, "/identity", handler.Issue, "/identity", dto.IssueIdentityRequest{}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeValidation, decodeError(t, rec).Code)
}
