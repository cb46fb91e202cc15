package v1

import (
	"errors"
	"net/http"

	"github.com/contract-ledger/backend/pkg/httputil"
	"github.com/contract-ledger/backend/pkg/models"
	"github.com/gin-gonic/gin"
)

// RegisterConfigurationRoutes registers the routes for configurations with
// the RouterGroup that is passed.
func (co Controller) RegisterConfigurationRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsConfigurationList)
		r.GET("", co.GetConfigurations)
	}

	// Configuration with key
	{
		r.OPTIONS("/:key", co.OptionsConfigurationDetail)
		r.GET("/:key", co.GetConfiguration)
		r.PUT("/:key", co.SetConfiguration)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Configurations
// @Success		204
// @Router			/v1/configurations [options]
func (co Controller) OptionsConfigurationList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Configurations
// @Success		204
// @Param			key	path	string	true	"Key of the configuration"
// @Router			/v1/configurations/{key} [options]
func (co Controller) OptionsConfigurationDetail(c *gin.Context) {
	httputil.OptionsGetPut(c)
}

// @Summary		List configurations
// @Description	Returns all configurations, ordered by key
// @Tags			Configurations
// @Produce		json
// @Success		200	{object}	ConfigurationListResponse
// @Failure		500	{object}	ConfigurationListResponse
// @Router			/v1/configurations [get]
func (co Controller) GetConfigurations(c *gin.Context) {
	var configurations []models.Configuration
	err := co.DB.Order("chave ASC").Find(&configurations).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ConfigurationListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Configuration, 0)
	for _, configuration := range configurations {
		data = append(data, newConfiguration(c, configuration))
	}

	c.JSON(http.StatusOK, ConfigurationListResponse{Data: data})
}

// @Summary		Get configuration
// @Description	Returns a specific configuration
// @Tags			Configurations
// @Produce		json
// @Success		200	{object}	ConfigurationResponse
// @Failure		400	{object}	ConfigurationResponse
// @Failure		404	{object}	ConfigurationResponse
// @Failure		500	{object}	ConfigurationResponse
// @Param			key	path		string	true	"Key of the configuration"
// @Router			/v1/configurations/{key} [get]
func (co Controller) GetConfiguration(c *gin.Context) {
	var uri URIKey
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ConfigurationResponse{
			Error: &s,
		})
		return
	}

	var configuration models.Configuration
	err = co.DB.Where(&models.Configuration{Key: uri.Key}).First(&configuration).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ConfigurationResponse{
			Error: &s,
		})
		return
	}

	data := newConfiguration(c, configuration)
	c.JSON(http.StatusOK, ConfigurationResponse{Data: &data})
}

// @Summary		Set configuration
// @Description	Sets the value and description of a configuration. The configuration is created if it does not exist.
// @Tags			Configurations
// @Produce		json
// @Success		200				{object}	ConfigurationResponse
// @Success		201				{object}	ConfigurationResponse
// @Failure		400				{object}	ConfigurationResponse
// @Failure		500				{object}	ConfigurationResponse
// @Param			key				path		string					true	"Key of the configuration"
// @Param			configuration	body		ConfigurationEditable	true	"Configuration"
// @Router			/v1/configurations/{key} [put]
func (co Controller) SetConfiguration(c *gin.Context) {
	var uri URIKey
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ConfigurationResponse{
			Error: &s,
		})
		return
	}

	var data ConfigurationEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ConfigurationResponse{
			Error: &s,
		})
		return
	}

	code := http.StatusOK
	var configuration models.Configuration
	err = co.DB.Where(&models.Configuration{Key: uri.Key}).First(&configuration).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		code = http.StatusCreated
		configuration = models.Configuration{Key: uri.Key}
	} else if err != nil {
		s := err.Error()
		c.JSON(status(err), ConfigurationResponse{
			Error: &s,
		})
		return
	}

	configuration.Value = data.Value
	configuration.Description = data.Description

	err = co.DB.Save(&configuration).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ConfigurationResponse{
			Error: &s,
		})
		return
	}

	apiResource := newConfiguration(c, configuration)
	c.JSON(code, ConfigurationResponse{Data: &apiResource})
}
