package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/contract-ledger/backend/pkg/controllers/v1"
	"github.com/contract-ledger/backend/pkg/models"
	"github.com/contract-ledger/backend/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func createTestUser(t *testing.T, co v1.Controller, u v1.UserCreate, expectedStatus ...int) v1.UserResponse {
	if u.Name == "" {
		u.Name = "Maria Souza"
	}

	if u.Email == "" {
		u.Email = fmt.Sprintf("%s@example.com", uuid.NewString())
	}

	if u.Password == "" {
		u.Password = "correct horse battery staple"
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(co, t, http.MethodPost, "http://example.com/v1/users", []v1.UserCreate{u})
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.UserCreateResponse
	test.DecodeResponse(t, &r, &response)

	return response.Data[0]
}

func (suite *TestSuiteStandard) TestUsersCreate() {
	r := test.Request(suite.co, suite.T(), http.MethodPost, "http://example.com/v1/users", []v1.UserCreate{{
		UserEditable: v1.UserEditable{Name: " Maria Souza ", Email: "Maria.Souza@Example.com", Role: "Engenheira fiscal"},
		Password:     "s3cret",
	}})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)
	suite.Assert().NotContains(r.Body.String(), "senha", "The password must never be returned")
	suite.Assert().NotContains(r.Body.String(), "s3cret")

	var response v1.UserCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	u := response.Data[0].Data

	suite.Assert().Equal("Maria Souza", u.Name)
	suite.Assert().Equal("maria.souza@example.com", u.Email)
	suite.Require().NotNil(u.Active)
	suite.Assert().True(*u.Active, "Users are active by default")
	suite.Assert().Nil(u.LastLogin)

	var stored models.User
	suite.Require().Nil(suite.co.DB.First(&stored, u.ID).Error)
	suite.Assert().NotEqual("s3cret", stored.Credential)
	suite.Assert().True(stored.CheckCredential("s3cret"))
}

func (suite *TestSuiteStandard) TestUsersCreateInactive() {
	active := false
	u := createTestUser(suite.T(), suite.co, v1.UserCreate{UserEditable: v1.UserEditable{Active: &active}})

	suite.Assert().False(*u.Data.Active)

	r := test.Request(suite.co, suite.T(), http.MethodGet, "http://example.com/v1/users?ativo=false", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.UserListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal(u.Data.ID, response.Data[0].ID)
}

func (suite *TestSuiteStandard) TestUsersCreateFails() {
	createTestUser(suite.T(), suite.co, v1.UserCreate{UserEditable: v1.UserEditable{Email: "taken@example.com"}})

	tests := []struct {
		name string
		user v1.UserCreate
		err  string
	}{
		{"Duplicate email", v1.UserCreate{UserEditable: v1.UserEditable{Name: "A", Email: "TAKEN@example.com"}, Password: "x"}, models.ErrUserEmailNotUnique.Error()},
		{"Invalid email", v1.UserCreate{UserEditable: v1.UserEditable{Name: "A", Email: "not-an-email"}, Password: "x"}, models.ErrUserEmailInvalid.Error()},
		{"No name", v1.UserCreate{UserEditable: v1.UserEditable{Email: "a@example.com"}, Password: "x"}, models.ErrUserNameEmpty.Error()},
		{"No password", v1.UserCreate{UserEditable: v1.UserEditable{Name: "A", Email: "b@example.com"}, Password: " "}, "the password must not be empty"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.co, t, http.MethodPost, "http://example.com/v1/users", []v1.UserCreate{tt.user})
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.UserCreateResponse
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, tt.err, *response.Data[0].Error)
		})
	}
}

func (suite *TestSuiteStandard) TestUsersGetFilter() {
	createTestUser(suite.T(), suite.co, v1.UserCreate{UserEditable: v1.UserEditable{Name: "Ana Lima", Email: "ana@example.com"}})
	createTestUser(suite.T(), suite.co, v1.UserCreate{UserEditable: v1.UserEditable{Name: "Bruno Lima", Email: "bruno@example.com"}})
	createTestUser(suite.T(), suite.co, v1.UserCreate{UserEditable: v1.UserEditable{Name: "Carla Dias", Email: "carla@example.com"}})

	tests := []struct {
		name  string
		query string
		names []string
	}{
		{"All, ordered by name", "", []string{"Ana Lima", "Bruno Lima", "Carla Dias"}},
		{"Name fuzzy", "nome=lima", []string{"Ana Lima", "Bruno Lima"}},
		{"Email is case insensitive", "email=CARLA@example.com", []string{"Carla Dias"}},
		{"Active", "ativo=true", []string{"Ana Lima", "Bruno Lima", "Carla Dias"}},
		{"Limit", "limit=2", []string{"Ana Lima", "Bruno Lima"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.co, t, http.MethodGet, fmt.Sprintf("http://example.com/v1/users?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.UserListResponse
			test.DecodeResponse(t, &r, &response)

			names := make([]string, 0)
			for _, u := range response.Data {
				names = append(names, u.Name)
			}

			assert.Equal(t, tt.names, names)
		})
	}
}

func (suite *TestSuiteStandard) TestUsersUpdate() {
	u := createTestUser(suite.T(), suite.co, v1.UserCreate{UserEditable: v1.UserEditable{Name: "Ana", Role: "Fiscal"}, Password: "old"})

	r := test.Request(suite.co, suite.T(), http.MethodPatch, u.Data.Links.Self, `{"cargo": "Gestora", "ativo": false, "senha": "new"}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	suite.Assert().NotContains(r.Body.String(), "senha")

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Gestora", response.Data.Role)
	suite.Assert().Equal("Ana", response.Data.Name)
	suite.Assert().False(*response.Data.Active)

	var stored models.User
	suite.Require().Nil(suite.co.DB.First(&stored, u.Data.ID).Error)
	suite.Assert().True(stored.CheckCredential("new"))
	suite.Assert().False(stored.CheckCredential("old"))
	suite.Assert().False(stored.Active)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"Empty password", `{"senha": ""}`, http.StatusBadRequest},
		{"Invalid email", `{"email": "nope"}`, http.StatusBadRequest},
		{"Empty name", `{"nome": " "}`, http.StatusBadRequest},
		{"Empty body", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.co, t, http.MethodPatch, u.Data.Links.Self, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}

	// The password was not changed by the failed requests
	suite.Require().Nil(suite.co.DB.First(&stored, u.Data.ID).Error)
	suite.Assert().True(stored.CheckCredential("new"))
}

// TestUsersDelete verifies that alerts assigned to a deleted user are kept.
func (suite *TestSuiteStandard) TestUsersDelete() {
	u := createTestUser(suite.T(), suite.co, v1.UserCreate{})
	c := createTestContract(suite.T(), suite.co, v1.ContractCreate{})
	a := createTestAlert(suite.T(), suite.co, models.Alert{ContractID: c.Data.ID, UserID: &u.Data.ID})

	r := test.Request(suite.co, suite.T(), http.MethodOptions, u.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.co, suite.T(), http.MethodDelete, u.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.co, suite.T(), http.MethodGet, u.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	var alert models.Alert
	suite.Require().Nil(suite.co.DB.First(&alert, a.ID).Error)
	suite.Assert().Nil(alert.UserID)
}

func (suite *TestSuiteStandard) TestUsersDBClosed() {
	suite.CloseDB()

	createTestUser(suite.T(), suite.co, v1.UserCreate{}, http.StatusInternalServerError)

	r := test.Request(suite.co, suite.T(), http.MethodGet, "http://example.com/v1/users", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
