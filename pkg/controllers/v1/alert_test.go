package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/contract-ledger/backend/internal/alerts"
	v1 "github.com/contract-ledger/backend/pkg/controllers/v1"
	"github.com/contract-ledger/backend/pkg/models"
	"github.com/contract-ledger/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestAlert(t *testing.T, co v1.Controller, a models.Alert) models.Alert {
	if a.Kind == "" {
		a.Kind = models.AlertExpiry
	}

	if a.Message == "" {
		a.Message = "Vigência do contrato termina em breve"
	}

	require.Nil(t, co.DB.Create(&a).Error)
	return a
}

func (suite *TestSuiteStandard) TestAlertsScan() {
	now := time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC)
	suite.co.Scanner = alerts.NewScanner(suite.co.DB, alerts.WithClock(func() time.Time { return now }))

	validityEnd := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	active := createTestContract(suite.T(), suite.co, v1.ContractCreate{ContractEditable: v1.ContractEditable{Number: "CT-1", ValidityEnd: &validityEnd}})
	createTestContract(suite.T(), suite.co, v1.ContractCreate{ContractEditable: v1.ContractEditable{Number: "CT-2", ValidityEnd: &validityEnd, Status: models.ContractStatusCompleted}})

	r := test.Request(suite.co, suite.T(), http.MethodPost, "http://example.com/v1/alerts/scan", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AlertListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	kinds := make([]models.AlertKind, 0)
	for _, a := range response.Data {
		suite.Assert().Equal(active.Data.ID, a.ContractID, "Only the active contract gets alerts")
		suite.Assert().False(a.Read)
		kinds = append(kinds, a.Kind)
	}
	suite.Assert().ElementsMatch([]models.AlertKind{models.AlertExpiry, models.AlertMeasurement}, kinds)
	suite.Assert().Equal(2, response.Pagination.Count)

	// A second scan on the same day does not create duplicates
	r = test.Request(suite.co, suite.T(), http.MethodPost, "http://example.com/v1/alerts/scan", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data, 0)

	r = test.Request(suite.co, suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/alerts?contract=%d", active.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data, 2)
}

func (suite *TestSuiteStandard) TestAlertsGetFilter() {
	a := createTestContract(suite.T(), suite.co, v1.ContractCreate{})
	b := createTestContract(suite.T(), suite.co, v1.ContractCreate{})
	u := createTestUser(suite.T(), suite.co, v1.UserCreate{})

	older := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	createTestAlert(suite.T(), suite.co, models.Alert{ContractID: a.Data.ID, Kind: models.AlertReadjustment, Message: "A reajuste", Date: older})
	createTestAlert(suite.T(), suite.co, models.Alert{ContractID: a.Data.ID, Kind: models.AlertExpiry, Message: "A vencimento", Date: newer, UserID: &u.Data.ID})
	createTestAlert(suite.T(), suite.co, models.Alert{ContractID: b.Data.ID, Kind: models.AlertMeasurement, Message: "B medição", Date: older, Read: true})

	tests := []struct {
		name     string
		query    string
		messages []string
	}{
		{"All, newest first", "", []string{"A vencimento", "B medição", "A reajuste"}},
		{"Contract", fmt.Sprintf("contract=%d", a.Data.ID), []string{"A vencimento", "A reajuste"}},
		{"Kind", "tipo=medicao", []string{"B medição"}},
		{"Unread", "lido=false", []string{"A vencimento", "A reajuste"}},
		{"Read", "lido=true", []string{"B medição"}},
		{"User", fmt.Sprintf("user=%d", u.Data.ID), []string{"A vencimento"}},
		{"Limit and offset", "limit=1&offset=1", []string{"B medição"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.co, t, http.MethodGet, fmt.Sprintf("http://example.com/v1/alerts?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.AlertListResponse
			test.DecodeResponse(t, &r, &response)

			messages := make([]string, 0)
			for _, a := range response.Data {
				messages = append(messages, a.Message)
			}

			assert.Equal(t, tt.messages, messages)
		})
	}

	r := test.Request(suite.co, suite.T(), http.MethodGet, "http://example.com/v1/alerts?lido=maybe", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestAlertsUpdate() {
	c := createTestContract(suite.T(), suite.co, v1.ContractCreate{})
	u := createTestUser(suite.T(), suite.co, v1.UserCreate{})
	a := createTestAlert(suite.T(), suite.co, models.Alert{ContractID: c.Data.ID})
	path := fmt.Sprintf("http://example.com/v1/alerts/%d", a.ID)

	r := test.Request(suite.co, suite.T(), http.MethodPatch, path, map[string]any{"lido": true, "usuarioId": u.Data.ID})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AlertResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().True(response.Data.Read)
	suite.Require().NotNil(response.Data.ReadAt)
	suite.Require().NotNil(response.Data.UserID)
	suite.Assert().Equal(u.Data.ID, *response.Data.UserID)
	readAt := *response.Data.ReadAt

	// Marking as read again keeps the time it was read first
	r = test.Request(suite.co, suite.T(), http.MethodPatch, path, `{"lido": true}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().True(readAt.Equal(*response.Data.ReadAt))

	r = test.Request(suite.co, suite.T(), http.MethodPatch, path, `{"lido": false}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().False(response.Data.Read)
	suite.Assert().Nil(response.Data.ReadAt)

	r = test.Request(suite.co, suite.T(), http.MethodGet, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().False(response.Data.Read)
	suite.Assert().Equal(models.AlertExpiry, response.Data.Kind)

	r = test.Request(suite.co, suite.T(), http.MethodPatch, path, `{"usuarioId": 4711}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	suite.Assert().Contains(r.Body.String(), models.ErrReferenceInvalid.Error())

	r = test.Request(suite.co, suite.T(), http.MethodPatch, "http://example.com/v1/alerts/4711", `{"lido": true}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestAlertsDelete() {
	c := createTestContract(suite.T(), suite.co, v1.ContractCreate{})
	a := createTestAlert(suite.T(), suite.co, models.Alert{ContractID: c.Data.ID})
	path := fmt.Sprintf("http://example.com/v1/alerts/%d", a.ID)

	r := test.Request(suite.co, suite.T(), http.MethodOptions, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))

	r = test.Request(suite.co, suite.T(), http.MethodDelete, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.co, suite.T(), http.MethodGet, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.co, suite.T(), http.MethodDelete, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestAlertsDBClosed() {
	suite.CloseDB()

	for _, path := range []string{"http://example.com/v1/alerts", "http://example.com/v1/alerts/scan"} {
		method := http.MethodGet
		if path == "http://example.com/v1/alerts/scan" {
			method = http.MethodPost
		}

		r := test.Request(suite.co, suite.T(), method, path, "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

		var response v1.AlertListResponse
		test.DecodeResponse(suite.T(), &r, &response)
		suite.Assert().Equal(models.ErrGeneral.Error(), *response.Error)
	}
}
