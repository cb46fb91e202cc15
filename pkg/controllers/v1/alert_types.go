package v1

import (
	"fmt"
	"time"

	"github.com/contract-ledger/backend/pkg/models"
	"github.com/gin-gonic/gin"
)

// AlertEditable contains the fields of an alert that can be changed.
type AlertEditable struct {
	UserID *uint `json:"usuarioId" example:"3"`               // ID of the user the alert is assigned to
	Read   bool  `json:"lido" example:"true" default:"false"` // Has the alert been read?
}

func (editable AlertEditable) model() models.Alert {
	return models.Alert{
		UserID: editable.UserID,
		Read:   editable.Read,
	}
}

type AlertLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/alerts/8"`         // The alert itself
	Contract string `json:"contract" example:"https://example.com/api/v1/contracts/42"` // The contract the alert is about
}

// Alert is the API v1 representation of an Alert.
type Alert struct {
	models.DefaultModel
	AlertEditable
	ContractID uint             `json:"contratoId" example:"42"`                                       // ID of the contract the alert is about
	Kind       models.AlertKind `json:"tipo" example:"vencimento" enums:"reajuste,vencimento,medicao"` // Kind of the alert
	Message    string           `json:"mensagem" example:"Vigência do contrato CT-012/2024 termina em 30/06/2025 (em 10 dias)"`
	Date       time.Time        `json:"data" example:"2025-06-20T06:00:00Z"`        // Time the alert was created
	ReadAt     *time.Time       `json:"dataLeitura" example:"2025-06-20T09:12:44Z"` // Time the alert was marked as read
	Links      AlertLinks       `json:"links"`
}

func newAlert(c *gin.Context, model models.Alert) Alert {
	url := c.GetString(string(models.ContextURL))

	return Alert{
		DefaultModel: model.DefaultModel,
		AlertEditable: AlertEditable{
			UserID: model.UserID,
			Read:   model.Read,
		},
		ContractID: model.ContractID,
		Kind:       model.Kind,
		Message:    model.Message,
		Date:       model.Date,
		ReadAt:     model.ReadAt,
		Links: AlertLinks{
			Self:     fmt.Sprintf("%s/v1/alerts/%d", url, model.ID),
			Contract: fmt.Sprintf("%s/v1/contracts/%d", url, model.ContractID),
		},
	}
}

type AlertListResponse struct {
	Data       []Alert     `json:"data"`                                                                 // List of alerts
	Error      *string     `json:"error" example:"strconv.ParseBool: parsing \"maybe\": invalid syntax"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                           // Pagination information
}

type AlertResponse struct {
	Data  *Alert  `json:"data"`                                                  // Data for the alert
	Error *string `json:"error" example:"there is no alert matching your query"` // The error, if any occurred
}

type AlertQueryFilter struct {
	ContractID uint   `form:"contract"`                   // By contract ID
	Kind       string `form:"tipo"`                       // By kind
	Read       bool   `form:"lido"`                       // Is the alert read?
	UserID     uint   `form:"user" filterField:"false"`   // By user ID
	Offset     uint   `form:"offset" filterField:"false"` // The offset of the first alert returned. Defaults to 0.
	Limit      int    `form:"limit" filterField:"false"`  // Maximum number of alerts to return. Defaults to 50.
}

func (f AlertQueryFilter) model() models.Alert {
	return models.Alert{
		ContractID: f.ContractID,
		Kind:       models.AlertKind(f.Kind),
		Read:       f.Read,
	}
}
