package v1_test

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	v1 "github.com/contract-ledger/backend/pkg/controllers/v1"
	"github.com/contract-ledger/backend/pkg/models"
	"github.com/contract-ledger/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func amount(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func postTestSubElement(t *testing.T, co v1.Controller, s v1.SubElementEditable, expectedStatus ...int) v1.SubElementPostingResponse {
	if s.Name == "" {
		s.Name = "Registro"
	}

	if s.Kind == "" {
		s.Kind = models.KindDocument
	}

	if s.Date.IsZero() {
		s.Date = time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(co, t, http.MethodPost, "http://example.com/v1/sub-elements", []v1.SubElementEditable{s})
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.SubElementCreateResponse
	test.DecodeResponse(t, &r, &response)

	return response.Data[0]
}

// TestSubElementsPostingSequence verifies how each kind of sub-element
// changes the contract totals.
func (suite *TestSuiteStandard) TestSubElementsPostingSequence() {
	c := createTestContract(suite.T(), suite.co, v1.ContractCreate{ContractValue: decimal.NewFromInt(100000)})

	tests := []struct {
		name          string
		kind          models.SubElementKind
		amount        decimal.NullDecimal
		contractValue string
		measuredValue string
		balance       string
	}{
		{"Addition", models.KindAddition, amount("5000"), "105000", "0", "105000"},
		{"Suppression", models.KindSuppression, amount("2000"), "103000", "0", "103000"},
		{"Measurement", models.KindMeasurement, amount("30000"), "103000", "30000", "73000"},
		{"Document with amount", models.KindDocument, amount("999.99"), "103000", "30000", "73000"},
		{"Other without amount", models.KindOther, decimal.NullDecimal{}, "103000", "30000", "73000"},
		{"Measurement without amount", models.KindMeasurement, decimal.NullDecimal{}, "103000", "30000", "73000"},
		{"Measurement with cents", models.KindMeasurement, amount("0.01"), "103000", "30000.01", "72999.99"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			p := postTestSubElement(t, suite.co, v1.SubElementEditable{
				ContractID: c.Data.ID,
				Name:       tt.name,
				Kind:       tt.kind,
				Amount:     tt.amount,
			})

			assert.Nil(t, p.Error)
			assert.NotZero(t, p.Data.ID)
			assert.Equal(t, tt.kind, p.Data.Kind)
			assert.Equal(t, models.SubElementPending, p.Data.Status, "Status defaults to pending")
			assert.Equal(t, c.Data.ID, p.Contract.ID)
			assert.True(t, decimal.RequireFromString(tt.contractValue).Equal(p.Contract.ContractValue), "Contract value is %s", p.Contract.ContractValue)
			assert.True(t, decimal.RequireFromString(tt.measuredValue).Equal(p.Contract.MeasuredValue), "Measured value is %s", p.Contract.MeasuredValue)
			assert.True(t, decimal.RequireFromString(tt.balance).Equal(p.Contract.Balance), "Balance is %s", p.Contract.Balance)

			// The committed contract matches the one in the response
			stored := getTestContract(t, suite.co, c.Data.ID)
			assert.True(t, p.Contract.ContractValue.Equal(stored.ContractValue))
			assert.True(t, p.Contract.MeasuredValue.Equal(stored.MeasuredValue))
		})
	}
}

// TestSubElementsSuppressionBelowZero verifies that the contract value
// is not floored at zero.
func (suite *TestSuiteStandard) TestSubElementsSuppressionBelowZero() {
	c := createTestContract(suite.T(), suite.co, v1.ContractCreate{ContractValue: decimal.NewFromInt(1000)})

	p := postTestSubElement(suite.T(), suite.co, v1.SubElementEditable{
		ContractID: c.Data.ID,
		Kind:       models.KindSuppression,
		Amount:     amount("1500"),
	})

	suite.Assert().True(decimal.NewFromInt(-500).Equal(p.Contract.ContractValue))
}

func (suite *TestSuiteStandard) TestSubElementsPostFails() {
	c := createTestContract(suite.T(), suite.co, v1.ContractCreate{ContractValue: decimal.NewFromInt(1000)})

	tests := []struct {
		name   string
		s      v1.SubElementEditable
		status int
	}{
		{"No contract", v1.SubElementEditable{ContractID: 4711, Kind: models.KindMeasurement, Amount: amount("10")}, http.StatusNotFound},
		{"Negative amount", v1.SubElementEditable{ContractID: c.Data.ID, Kind: models.KindMeasurement, Amount: amount("-10")}, http.StatusBadRequest},
		{"Too many decimal places", v1.SubElementEditable{ContractID: c.Data.ID, Kind: models.KindAddition, Amount: amount("10.001")}, http.StatusBadRequest},
		{"Too large", v1.SubElementEditable{ContractID: c.Data.ID, Kind: models.KindAddition, Amount: amount("10000000000000")}, http.StatusBadRequest},
		{"Invalid kind", v1.SubElementEditable{ContractID: c.Data.ID, Kind: "Reajuste"}, http.StatusBadRequest},
		{"Invalid status", v1.SubElementEditable{ContractID: c.Data.ID, Status: "Arquivado"}, http.StatusBadRequest},
		{"Whitespace name", v1.SubElementEditable{ContractID: c.Data.ID, Name: "   "}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			p := postTestSubElement(t, suite.co, tt.s, tt.status)
			assert.NotNil(t, p.Error)
			assert.Nil(t, p.Data)
			assert.Nil(t, p.Contract)
		})
	}

	// Nothing was posted
	stored := getTestContract(suite.T(), suite.co, c.Data.ID)
	suite.Assert().True(decimal.NewFromInt(1000).Equal(stored.ContractValue))
	suite.Assert().True(stored.MeasuredValue.IsZero())

	var count int64
	suite.Require().Nil(suite.co.DB.Model(&models.SubElement{}).Count(&count).Error)
	suite.Assert().Equal(int64(0), count)
}

// TestSubElementsPostPartial verifies that every sub-element in a request
// is posted independently.
func (suite *TestSuiteStandard) TestSubElementsPostPartial() {
	c := createTestContract(suite.T(), suite.co, v1.ContractCreate{ContractValue: decimal.NewFromInt(1000)})
	date := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)

	body := []v1.SubElementEditable{
		{ContractID: c.Data.ID, Name: "Medição 1", Kind: models.KindMeasurement, Date: date, Amount: amount("100")},
		{ContractID: c.Data.ID, Name: "Medição 2", Kind: models.KindMeasurement, Date: date, Amount: amount("-1")},
		{ContractID: c.Data.ID, Name: "Medição 3", Kind: models.KindMeasurement, Date: date, Amount: amount("50")},
	}

	r := test.Request(suite.co, suite.T(), http.MethodPost, "http://example.com/v1/sub-elements", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.SubElementCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 3)
	suite.Assert().Nil(response.Data[0].Error)
	suite.Assert().NotNil(response.Data[1].Error)
	suite.Assert().Nil(response.Data[2].Error)
	suite.Assert().True(decimal.NewFromInt(150).Equal(response.Data[2].Contract.MeasuredValue))
}

func (suite *TestSuiteStandard) TestSubElementsPostBody() {
	tests := []struct {
		name string
		body string
		err  string
	}{
		{"Empty body", "", "the request body must not be empty"},
		{"Broken body", `[{"nome": 1}]`, "cannot unmarshal"},
		{"Amount as string", `[{"contratoId": 4711, "nome": "x", "tipo": "Medição", "data": "2024-01-01T00:00:00Z", "valor": "12.50"}]`, "contract not found"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.co, t, http.MethodPost, "http://example.com/v1/sub-elements", tt.body)
			assert.Contains(t, r.Body.String(), tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestSubElementsGetFilter() {
	a := createTestContract(suite.T(), suite.co, v1.ContractCreate{ContractValue: decimal.NewFromInt(100000)})
	b := createTestContract(suite.T(), suite.co, v1.ContractCreate{ContractValue: decimal.NewFromInt(100000)})

	postTestSubElement(suite.T(), suite.co, v1.SubElementEditable{ContractID: a.Data.ID, Name: "A2", Kind: models.KindMeasurement, Amount: amount("10"), Date: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)})
	postTestSubElement(suite.T(), suite.co, v1.SubElementEditable{ContractID: a.Data.ID, Name: "A1", Kind: models.KindAddition, Amount: amount("10"), Date: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)})
	postTestSubElement(suite.T(), suite.co, v1.SubElementEditable{ContractID: a.Data.ID, Name: "A3", Kind: models.KindDocument, Status: models.SubElementApproved, Date: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)})
	postTestSubElement(suite.T(), suite.co, v1.SubElementEditable{ContractID: b.Data.ID, Name: "B1", Kind: models.KindMeasurement, Amount: amount("10"), Date: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)})

	tests := []struct {
		name  string
		query string
		names []string
	}{
		{"All, ordered by date", "", []string{"A1", "B1", "A2", "A3"}},
		{"Contract", fmt.Sprintf("contract=%d", a.Data.ID), []string{"A1", "A2", "A3"}},
		{"Kind", "tipo=" + url.QueryEscape(string(models.KindMeasurement)), []string{"B1", "A2"}},
		{"Status", "status=Aprovado", []string{"A3"}},
		{"From date", "fromDate=2024-02-15T00:00:00Z", []string{"B1", "A2", "A3"}},
		{"Until date", "untilDate=2024-02-15T00:00:00Z", []string{"A1", "B1"}},
		{"Range", "fromDate=2024-02-01T00:00:00Z&untilDate=2024-02-29T00:00:00Z", []string{"B1", "A2"}},
		{"Contract and kind", fmt.Sprintf("contract=%d&tipo=%s", b.Data.ID, url.QueryEscape(string(models.KindMeasurement))), []string{"B1"}},
		{"Limit", "limit=1", []string{"A1"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.co, t, http.MethodGet, fmt.Sprintf("http://example.com/v1/sub-elements?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.SubElementListResponse
			test.DecodeResponse(t, &r, &response)

			names := make([]string, 0)
			for _, s := range response.Data {
				names = append(names, s.Name)
			}

			assert.Equal(t, tt.names, names)
		})
	}
}

func (suite *TestSuiteStandard) TestSubElementsGetSingle() {
	c := createTestContract(suite.T(), suite.co, v1.ContractCreate{})
	p := postTestSubElement(suite.T(), suite.co, v1.SubElementEditable{ContractID: c.Data.ID, Name: "Termo aditivo 1", Kind: models.KindAddition, Amount: amount("10.50")})

	r := test.Request(suite.co, suite.T(), http.MethodGet, p.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SubElementResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal("Termo aditivo 1", response.Data.Name)
	suite.Assert().True(response.Data.Amount.Valid)
	suite.Assert().True(decimal.RequireFromString("10.50").Equal(response.Data.Amount.Decimal))
	suite.Assert().Equal(c.Data.Links.Self, response.Data.Links.Contract)

	r = test.Request(suite.co, suite.T(), http.MethodGet, "http://example.com/v1/sub-elements/4711", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.co, suite.T(), http.MethodOptions, p.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, PATCH", r.Header().Get("allow"))

	// Postings cannot be deleted, only compensated
	r = test.Request(suite.co, suite.T(), http.MethodDelete, p.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusMethodNotAllowed)
}

func (suite *TestSuiteStandard) TestSubElementsUpdate() {
	c := createTestContract(suite.T(), suite.co, v1.ContractCreate{ContractValue: decimal.NewFromInt(1000)})
	p := postTestSubElement(suite.T(), suite.co, v1.SubElementEditable{ContractID: c.Data.ID, Kind: models.KindMeasurement, Amount: amount("100")})

	r := test.Request(suite.co, suite.T(), http.MethodPatch, p.Data.Links.Self, map[string]any{
		"nome":          "Medição 01/2024",
		"status":        "Aprovado",
		"prazoExecucao": 30,
		"valor":         "100",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SubElementResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal("Medição 01/2024", response.Data.Name)
	suite.Assert().Equal(models.SubElementApproved, response.Data.Status)
	suite.Require().NotNil(response.Data.ExecutionDeadline)
	suite.Assert().Equal(30, *response.Data.ExecutionDeadline)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"Amount", `{"valor": "200"}`, http.StatusBadRequest},
		{"Amount removed", `{"valor": null}`, http.StatusBadRequest},
		{"Kind", `{"tipo": "Aditivo"}`, http.StatusBadRequest},
		{"Contract", `{"contratoId": 4711}`, http.StatusBadRequest},
		{"Invalid status", `{"status": "Arquivado"}`, http.StatusBadRequest},
		{"Empty name", `{"nome": ""}`, http.StatusBadRequest},
		{"Empty body", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.co, t, http.MethodPatch, p.Data.Links.Self, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}

	r = test.Request(suite.co, suite.T(), http.MethodPatch, "http://example.com/v1/sub-elements/4711", `{"nome": "x"}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	// The totals never changed
	stored := getTestContract(suite.T(), suite.co, c.Data.ID)
	suite.Assert().True(decimal.NewFromInt(1000).Equal(stored.ContractValue))
	suite.Assert().True(decimal.NewFromInt(100).Equal(stored.MeasuredValue))
}

func (suite *TestSuiteStandard) TestSubElementsDBClosed() {
	c := createTestContract(suite.T(), suite.co, v1.ContractCreate{})
	suite.CloseDB()

	postTestSubElement(suite.T(), suite.co, v1.SubElementEditable{ContractID: c.Data.ID, Kind: models.KindMeasurement, Amount: amount("1")}, http.StatusInternalServerError)

	r := test.Request(suite.co, suite.T(), http.MethodGet, "http://example.com/v1/sub-elements", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

	var response v1.SubElementListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(models.ErrGeneral.Error(), *response.Error)
}
