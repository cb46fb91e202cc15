package v1

import (
	"fmt"
	"net/url"

	"github.com/contract-ledger/backend/pkg/models"
	"github.com/gin-gonic/gin"
)

type ConfigurationEditable struct {
	Value       string `json:"valor" example:"15"`                                                  // Value of the configuration
	Description string `json:"descricao" example:"Dias de antecedência para alertas de vencimento"` // What the configuration does
}

type ConfigurationLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/configurations/diaMedicao"` // The configuration itself
}

// Configuration is the API v1 representation of a Configuration.
type Configuration struct {
	models.DefaultModel
	Key string `json:"chave" example:"diasAntecedenciaVencimento"` // Key of the configuration
	ConfigurationEditable
	Links ConfigurationLinks `json:"links"`
}

func newConfiguration(c *gin.Context, model models.Configuration) Configuration {
	u := c.GetString(string(models.ContextURL))

	return Configuration{
		DefaultModel: model.DefaultModel,
		Key:          model.Key,
		ConfigurationEditable: ConfigurationEditable{
			Value:       model.Value,
			Description: model.Description,
		},
		Links: ConfigurationLinks{
			Self: fmt.Sprintf("%s/v1/configurations/%s", u, url.PathEscape(model.Key)),
		},
	}
}

type ConfigurationListResponse struct {
	Data  []Configuration `json:"data"`                                                                // List of configurations
	Error *string         `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
}

type ConfigurationResponse struct {
	Data  *Configuration `json:"data"`                                                          // Data for the configuration
	Error *string        `json:"error" example:"there is no configuration matching your query"` // The error, if any occurred
}
