package v1

import (
	"net/http"
	"time"

	"github.com/contract-ledger/backend/pkg/httputil"
	"github.com/contract-ledger/backend/pkg/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterAlertRoutes registers the routes for alerts with
// the RouterGroup that is passed.
func (co Controller) RegisterAlertRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsAlertList)
		r.GET("", co.GetAlerts)
		r.POST("/scan", co.ScanAlerts)
	}

	// Alert with ID
	{
		r.OPTIONS("/:id", co.OptionsAlertDetail)
		r.GET("/:id", co.GetAlert)
		r.PATCH("/:id", co.UpdateAlert)
		r.DELETE("/:id", co.DeleteAlert)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Alerts
// @Success		204
// @Router			/v1/alerts [options]
func (co Controller) OptionsAlertList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Alerts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/alerts/{id} [options]
func (co Controller) OptionsAlertDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = co.DB.First(&models.Alert{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Scan contracts for alerts
// @Description	Checks all running contracts and creates the alerts that are due today.
// @Description	Alerts are created only once per contract, kind and day.
// @Tags			Alerts
// @Produce		json
// @Success		200	{object}	AlertListResponse
// @Failure		500	{object}	AlertListResponse
// @Router			/v1/alerts/scan [post]
func (co Controller) ScanAlerts(c *gin.Context) {
	created, err := co.Scanner.Scan(c.Request.Context())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AlertListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Alert, 0)
	for _, alert := range created {
		data = append(data, newAlert(c, alert))
	}

	if len(data) > 0 {
		co.invalidate(c)
	}

	c.JSON(http.StatusOK, AlertListResponse{
		Data: data,
		Pagination: &Pagination{
			Count: len(data),
			Total: int64(len(data)),
			Limit: len(data),
		},
	})
}

// @Summary		List alerts
// @Description	Returns a list of alerts, newest first
// @Tags			Alerts
// @Produce		json
// @Success		200	{object}	AlertListResponse
// @Failure		400	{object}	AlertListResponse
// @Failure		500	{object}	AlertListResponse
// @Router			/v1/alerts [get]
// @Param			contract	query	uint	false	"Filter by contract ID"
// @Param			tipo		query	string	false	"Filter by kind"
// @Param			lido		query	bool	false	"Is the alert read?"
// @Param			user		query	uint	false	"Filter by user ID"
// @Param			offset		query	uint	false	"The offset of the first alert returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of alerts to return. Defaults to 50."
func (co Controller) GetAlerts(c *gin.Context) {
	var filter AlertQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, AlertListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)
	model := filter.model()

	q := co.DB.
		Order("data DESC, id DESC").
		Where(&model, queryFields...)

	if slices.Contains(setFields, "UserID") {
		q = q.Where("usuario_id = ?", filter.UserID)
	}

	q = q.Offset(int(filter.Offset))

	limit := defaultLimit
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var alerts []models.Alert
	err := q.Find(&alerts).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AlertListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AlertListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Alert, 0)
	for _, alert := range alerts {
		data = append(data, newAlert(c, alert))
	}

	c.JSON(http.StatusOK, AlertListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get alert
// @Description	Returns a specific alert
// @Tags			Alerts
// @Produce		json
// @Success		200	{object}	AlertResponse
// @Failure		400	{object}	AlertResponse
// @Failure		404	{object}	AlertResponse
// @Failure		500	{object}	AlertResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/alerts/{id} [get]
func (co Controller) GetAlert(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AlertResponse{
			Error: &s,
		})
		return
	}

	var alert models.Alert
	err = co.DB.First(&alert, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AlertResponse{
			Error: &s,
		})
		return
	}

	data := newAlert(c, alert)
	c.JSON(http.StatusOK, AlertResponse{Data: &data})
}

// @Summary		Update alert
// @Description	Marks an alert as read or unread and assigns it to a user. Marking an alert as read sets the time it was read.
// @Tags			Alerts
// @Produce		json
// @Success		200		{object}	AlertResponse
// @Failure		400		{object}	AlertResponse
// @Failure		404		{object}	AlertResponse
// @Failure		500		{object}	AlertResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			alert	body		AlertEditable	true	"Alert"
// @Router			/v1/alerts/{id} [patch]
func (co Controller) UpdateAlert(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AlertResponse{
			Error: &s,
		})
		return
	}

	var alert models.Alert
	err = co.DB.First(&alert, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AlertResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, AlertEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AlertResponse{
			Error: &s,
		})
		return
	}

	var data AlertEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AlertResponse{
			Error: &s,
		})
		return
	}

	if len(updateFields) > 0 {
		wasRead := alert.Read
		merge(&alert, data.model(), updateFields)

		// The read time is kept when an alert is marked as read again
		if alert.Read && !wasRead {
			now := time.Now().In(time.UTC)
			alert.ReadAt = &now
			updateFields = append(updateFields, "ReadAt")
		} else if !alert.Read && wasRead {
			alert.ReadAt = nil
			updateFields = append(updateFields, "ReadAt")
		}

		err = co.DB.Model(&alert).Select("", updateFields...).Updates(&alert).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), AlertResponse{
				Error: &s,
			})
			return
		}

		co.invalidate(c)
	}

	apiResource := newAlert(c, alert)
	c.JSON(http.StatusOK, AlertResponse{Data: &apiResource})
}

// @Summary		Delete alert
// @Description	Deletes an alert
// @Tags			Alerts
// @Produce		json
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/alerts/{id} [delete]
func (co Controller) DeleteAlert(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var alert models.Alert
	err = co.DB.First(&alert, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = co.DB.Delete(&alert).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	co.invalidate(c)
	c.JSON(http.StatusNoContent, nil)
}
