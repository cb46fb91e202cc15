package v1

import (
	"net/http"

	"github.com/contract-ledger/backend/pkg/httputil"
	"github.com/contract-ledger/backend/pkg/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const recentAlerts = 5

// RegisterDashboardRoutes registers the routes for the dashboard with
// the RouterGroup that is passed.
func (co Controller) RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsDashboard)
	r.GET("", co.GetDashboard)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Dashboard
// @Success		204
// @Router			/v1/dashboard [options]
func (co Controller) OptionsDashboard(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get dashboard
// @Description	Returns statistics about all contracts and the newest alerts
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	DashboardResponse
// @Failure		500	{object}	DashboardResponse
// @Router			/v1/dashboard [get]
func (co Controller) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	var cached Dashboard
	found, err := co.cache().Get(ctx, dashboardKey, &cached)
	if err != nil {
		log.Warn().Str("request-id", requestid.Get(c)).Err(err).Msg("cache read failed")
	}

	if found {
		c.JSON(http.StatusOK, DashboardResponse{Data: &cached})
		return
	}

	dashboard, err := co.dashboard(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &s,
		})
		return
	}

	err = co.cache().Set(ctx, dashboardKey, dashboard)
	if err != nil {
		log.Warn().Str("request-id", requestid.Get(c)).Err(err).Msg("cache write failed")
	}

	c.JSON(http.StatusOK, DashboardResponse{Data: &dashboard})
}

// dashboard calculates the dashboard. Sums are calculated with decimals
// since not all databases sum DECIMAL columns exactly.
func (co Controller) dashboard(c *gin.Context) (Dashboard, error) {
	var contracts []models.Contract
	err := co.DB.Select("id", "status", "valor_contrato", "valor_medido").Find(&contracts).Error
	if err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{
		ContractValue: decimal.Zero,
		MeasuredValue: decimal.Zero,
	}

	byStatus := make(map[models.ContractStatus]*DashboardStatus, len(models.ContractStatuses))
	for _, s := range models.ContractStatuses {
		byStatus[s] = &DashboardStatus{Status: s, ContractValue: decimal.Zero, MeasuredValue: decimal.Zero}
	}

	for _, contract := range contracts {
		d.TotalContracts++
		d.ContractValue = d.ContractValue.Add(contract.ContractValue)
		d.MeasuredValue = d.MeasuredValue.Add(contract.MeasuredValue)

		s, ok := byStatus[contract.Status]
		if !ok {
			continue
		}

		s.Count++
		s.ContractValue = s.ContractValue.Add(contract.ContractValue)
		s.MeasuredValue = s.MeasuredValue.Add(contract.MeasuredValue)
	}

	d.Balance = d.ContractValue.Sub(d.MeasuredValue)
	d.ActiveContracts = byStatus[models.ContractStatusActive].Count

	for _, s := range models.ContractStatuses {
		d.ByStatus = append(d.ByStatus, *byStatus[s])
	}

	err = co.DB.Model(&models.Alert{}).Where(&models.Alert{Read: false}, "Read").Count(&d.UnreadAlerts).Error
	if err != nil {
		return Dashboard{}, err
	}

	var alerts []models.Alert
	err = co.DB.Order("data DESC, id DESC").Limit(recentAlerts).Find(&alerts).Error
	if err != nil {
		return Dashboard{}, err
	}

	d.RecentAlerts = make([]Alert, 0)
	for _, alert := range alerts {
		d.RecentAlerts = append(d.RecentAlerts, newAlert(c, alert))
	}

	return d, nil
}
