package v1

import (
	"net/http"

	"github.com/contract-ledger/backend/pkg/httperrors"
	"github.com/contract-ledger/backend/pkg/httputil"
	"github.com/contract-ledger/backend/pkg/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func (co Controller) RegisterRootRoutes(r *gin.RouterGroup) {
	r.GET("", co.Get)
	r.DELETE("", co.Cleanup)
	r.OPTIONS("", co.Options)
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Contracts      string `json:"contracts" example:"https://example.com/api/v1/contracts"`           // URL of Contract collection endpoint
	SubElements    string `json:"subElements" example:"https://example.com/api/v1/sub-elements"`      // URL of Sub-element collection endpoint
	Alerts         string `json:"alerts" example:"https://example.com/api/v1/alerts"`                 // URL of Alert collection endpoint
	Configurations string `json:"configurations" example:"https://example.com/api/v1/configurations"` // URL of Configuration collection endpoint
	Users          string `json:"users" example:"https://example.com/api/v1/users"`                   // URL of User collection endpoint
	Dashboard      string `json:"dashboard" example:"https://example.com/api/v1/dashboard"`           // URL of the dashboard endpoint
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func (co Controller) Get(c *gin.Context) {
	url := c.GetString(string(models.ContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Contracts:      url + "/v1/contracts",
			SubElements:    url + "/v1/sub-elements",
			Alerts:         url + "/v1/alerts",
			Configurations: url + "/v1/configurations",
			Users:          url + "/v1/users",
			Dashboard:      url + "/v1/dashboard",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func (co Controller) Options(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}

// @Summary		Delete everything
// @Description	Permanently deletes all resources. Configurations are reset to their defaults.
// @Tags			v1
// @Success		204
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			confirm	query		string	false	"Confirmation to delete all resources. Must have the value 'yes-please-delete-everything'"
// @Router			/v1 [delete]
func (co Controller) Cleanup(c *gin.Context) {
	var params struct {
		Confirm string `form:"confirm"`
	}

	err := c.Bind(&params)
	if err != nil || params.Confirm != "yes-please-delete-everything" {
		httperrors.New(c, http.StatusBadRequest, errCleanupConfirmation.Error())
		return
	}

	// The order is important here since there are foreign keys to consider!
	resources := []models.Model{
		models.Alert{},
		models.SubElement{},
		models.Contract{},
		models.User{},
		models.Configuration{},
	}

	err = co.DB.Transaction(func(tx *gorm.DB) error {
		for _, model := range resources {
			err := tx.Where("true").Delete(&model).Error
			if err != nil {
				return err
			}
		}

		return models.SeedConfigurations(tx)
	})
	if err != nil {
		httperrors.Handler(c, models.TranslateError(err))
		return
	}

	co.invalidate(c)
	c.JSON(http.StatusNoContent, nil)
}
