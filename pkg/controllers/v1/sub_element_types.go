package v1

import (
	"fmt"
	"time"

	"github.com/contract-ledger/backend/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type SubElementEditable struct {
	ContractID        uint                    `json:"contratoId" example:"42"`                                                                                                        // ID of the contract the sub-element is posted against
	Name              string                  `json:"nome" example:"Medição 03/2024"`                                                                                                 // Name of the sub-element
	Kind              models.SubElementKind   `json:"tipo" example:"Medição" enums:"Medição,Aditivo,Supressão,Documento,Outro"`                                                       // Kind of the sub-element. Measurements add to the measured value, additions and suppressions change the contract value.
	Date              time.Time               `json:"data" example:"2024-03-31T00:00:00Z"`                                                                                            // Date of the sub-element
	Status            models.SubElementStatus `json:"status" example:"Pendente" enums:"Pendente,Aprovado,Rejeitado"`                                                                  // Approval status
	Description       string                  `json:"descricao" example:"Medição dos serviços executados em março"`                                                                   // A longer description
	Amount            decimal.NullDecimal     `json:"valor" swaggertype:"number" example:"30000.00" minimum:"0" maximum:"9999999999999.99" multipleOf:"0.01" extensions:"x-nullable"` // Amount of the sub-element. Sub-elements without an amount do not change any total.
	File              string                  `json:"arquivo" example:"medicao-03-2024.pdf"`                                                                                          // Name of an attached file
	ExecutionDeadline *int                    `json:"prazoExecucao" example:"90"`                                                                                                     // Change of the execution deadline in days
	ValidityDeadline  *int                    `json:"prazoVigencia" example:"120"`                                                                                                    // Change of the validity deadline in days
}

// model returns the database resource for the editable fields
func (editable SubElementEditable) model() models.SubElement {
	return models.SubElement{
		ContractID:        editable.ContractID,
		Name:              editable.Name,
		Kind:              editable.Kind,
		Date:              editable.Date,
		Status:            editable.Status,
		Description:       editable.Description,
		Amount:            editable.Amount,
		File:              editable.File,
		ExecutionDeadline: editable.ExecutionDeadline,
		ValidityDeadline:  editable.ValidityDeadline,
	}
}

type SubElementLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/sub-elements/17"`  // The sub-element itself
	Contract string `json:"contract" example:"https://example.com/api/v1/contracts/42"` // The contract the sub-element is posted against
}

// SubElement is the API v1 representation of a SubElement.
type SubElement struct {
	models.DefaultModel
	SubElementEditable
	Links SubElementLinks `json:"links"`
}

func newSubElement(c *gin.Context, model models.SubElement) SubElement {
	url := c.GetString(string(models.ContextURL))

	return SubElement{
		DefaultModel: model.DefaultModel,
		SubElementEditable: SubElementEditable{
			ContractID:        model.ContractID,
			Name:              model.Name,
			Kind:              model.Kind,
			Date:              model.Date,
			Status:            model.Status,
			Description:       model.Description,
			Amount:            model.Amount,
			File:              model.File,
			ExecutionDeadline: model.ExecutionDeadline,
			ValidityDeadline:  model.ValidityDeadline,
		},
		Links: SubElementLinks{
			Self:     fmt.Sprintf("%s/v1/sub-elements/%d", url, model.ID),
			Contract: fmt.Sprintf("%s/v1/contracts/%d", url, model.ContractID),
		},
	}
}

type SubElementListResponse struct {
	Data       []SubElement `json:"data"`                                       // List of sub-elements
	Error      *string      `json:"error" example:"the kind is invalid: 'Foo'"` // The error, if any occurred
	Pagination *Pagination  `json:"pagination"`                                 // Pagination information
}

// SubElementPostingResponse is the result of posting a single sub-element.
type SubElementPostingResponse struct {
	Data     *SubElement `json:"data"`                                                                  // The posted sub-element
	Contract *Contract   `json:"contract"`                                                              // The contract after the posting
	Error    *string     `json:"error" example:"the amount must not have more than two decimal places"` // The error, if any occurred for this sub-element
}

type SubElementCreateResponse struct {
	Error *string                     `json:"error" example:"the request body must not be empty"` // The error, if any occurred
	Data  []SubElementPostingResponse `json:"data"`                                               // List of postings
}

func (a *SubElementCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, SubElementPostingResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type SubElementResponse struct {
	Data  *SubElement `json:"data"`                                                        // Data for the sub-element
	Error *string     `json:"error" example:"there is no sub-element matching your query"` // The error, if any occurred
}

type SubElementQueryFilter struct {
	ContractID uint      `form:"contract"`                      // By contract ID
	Kind       string    `form:"tipo"`                          // By kind
	Status     string    `form:"status"`                        // By status
	FromDate   time.Time `form:"fromDate" filterField:"false"`  // Sub-elements at and after this date
	UntilDate  time.Time `form:"untilDate" filterField:"false"` // Sub-elements before and at this date
	Offset     uint      `form:"offset" filterField:"false"`    // The offset of the first sub-element returned. Defaults to 0.
	Limit      int       `form:"limit" filterField:"false"`     // Maximum number of sub-elements to return. Defaults to 50.
}

func (f SubElementQueryFilter) model() models.SubElement {
	return models.SubElement{
		ContractID: f.ContractID,
		Kind:       models.SubElementKind(f.Kind),
		Status:     models.SubElementStatus(f.Status),
	}
}
