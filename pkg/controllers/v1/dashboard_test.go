package v1_test

import (
	"context"
	"net/http"
	"time"

	"github.com/contract-ledger/backend/internal/alerts"
	v1 "github.com/contract-ledger/backend/pkg/controllers/v1"
	"github.com/contract-ledger/backend/pkg/models"
	"github.com/contract-ledger/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) getDashboard() v1.Dashboard {
	r := test.Request(suite.co, suite.T(), http.MethodGet, "http://example.com/v1/dashboard", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DashboardResponse
	test.DecodeResponse(suite.T(), &r, &response)

	return *response.Data
}

func (suite *TestSuiteStandard) TestDashboard() {
	active := createTestContract(suite.T(), suite.co, v1.ContractCreate{ContractValue: decimal.NewFromInt(100000)})
	createTestContract(suite.T(), suite.co, v1.ContractCreate{ContractValue: decimal.RequireFromString("50000.50"), ContractEditable: v1.ContractEditable{Status: models.ContractStatusSuspended}})

	postTestSubElement(suite.T(), suite.co, v1.SubElementEditable{ContractID: active.Data.ID, Kind: models.KindMeasurement, Amount: amount("30000")})
	createTestAlert(suite.T(), suite.co, models.Alert{ContractID: active.Data.ID})
	createTestAlert(suite.T(), suite.co, models.Alert{ContractID: active.Data.ID, Read: true})

	d := suite.getDashboard()

	suite.Assert().Equal(int64(2), d.TotalContracts)
	suite.Assert().Equal(int64(1), d.ActiveContracts)
	suite.Assert().True(decimal.RequireFromString("150000.50").Equal(d.ContractValue), "Contract value is %s", d.ContractValue)
	suite.Assert().True(decimal.NewFromInt(30000).Equal(d.MeasuredValue))
	suite.Assert().True(decimal.RequireFromString("120000.50").Equal(d.Balance))
	suite.Assert().Equal(int64(1), d.UnreadAlerts)
	suite.Assert().Len(d.RecentAlerts, 2)

	suite.Require().Len(d.ByStatus, len(models.ContractStatuses))
	for _, s := range d.ByStatus {
		switch s.Status {
		case models.ContractStatusActive:
			suite.Assert().Equal(int64(1), s.Count)
			suite.Assert().True(decimal.NewFromInt(30000).Equal(s.MeasuredValue))
		case models.ContractStatusSuspended:
			suite.Assert().Equal(int64(1), s.Count)
			suite.Assert().True(decimal.RequireFromString("50000.50").Equal(s.ContractValue))
		default:
			suite.Assert().Equal(int64(0), s.Count)
			suite.Assert().True(s.ContractValue.IsZero())
		}
	}
}

func (suite *TestSuiteStandard) TestDashboardEmpty() {
	d := suite.getDashboard()

	suite.Assert().Equal(int64(0), d.TotalContracts)
	suite.Assert().True(d.ContractValue.IsZero())
	suite.Assert().NotNil(d.RecentAlerts)
	suite.Assert().Len(d.RecentAlerts, 0)
}

// TestDashboardCache verifies that the dashboard is cached and that
// writes invalidate it.
func (suite *TestSuiteStandard) TestDashboardCache() {
	cache := newMemoryCache()
	suite.co.Cache = cache

	c := createTestContract(suite.T(), suite.co, v1.ContractCreate{ContractValue: decimal.NewFromInt(1000)})

	d := suite.getDashboard()
	suite.Assert().True(cache.has("dashboard"))
	suite.Assert().True(decimal.NewFromInt(1000).Equal(d.ContractValue))

	// Changes bypassing the API are not visible while cached
	createTestAlert(suite.T(), suite.co, models.Alert{ContractID: c.Data.ID})
	d = suite.getDashboard()
	suite.Assert().Equal(int64(0), d.UnreadAlerts)

	// Postings invalidate the cache
	postTestSubElement(suite.T(), suite.co, v1.SubElementEditable{ContractID: c.Data.ID, Kind: models.KindAddition, Amount: amount("500")})
	suite.Assert().False(cache.has("dashboard"))

	d = suite.getDashboard()
	suite.Assert().True(decimal.NewFromInt(1500).Equal(d.ContractValue))
	suite.Assert().Equal(int64(1), d.UnreadAlerts)
}

func (suite *TestSuiteStandard) TestDashboardDBClosed() {
	suite.CloseDB()

	r := test.Request(suite.co, suite.T(), http.MethodGet, "http://example.com/v1/dashboard", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

	var response v1.DashboardResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(models.ErrGeneral.Error(), *response.Error)
}

// TestDashboardCacheBackgroundScan verifies that alerts created by a
// scanner outside of a request invalidate the cached dashboard.
func (suite *TestSuiteStandard) TestDashboardCacheBackgroundScan() {
	cache := newMemoryCache()
	suite.co.Cache = cache

	now := time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC)
	scanner := alerts.NewScanner(suite.co.DB, suite.co.ScannerOptions(alerts.WithClock(func() time.Time { return now }))...)

	validityEnd := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	createTestContract(suite.T(), suite.co, v1.ContractCreate{ContractEditable: v1.ContractEditable{ValidityEnd: &validityEnd}})

	d := suite.getDashboard()
	suite.Assert().Equal(int64(0), d.UnreadAlerts)
	suite.Require().True(cache.has("dashboard"))

	created, err := scanner.Scan(context.Background())
	suite.Require().Nil(err)
	suite.Require().NotEmpty(created)
	suite.Assert().False(cache.has("dashboard"))

	d = suite.getDashboard()
	suite.Assert().Equal(int64(len(created)), d.UnreadAlerts)
	suite.Assert().Len(d.RecentAlerts, len(created))
}
