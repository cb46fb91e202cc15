package v1

import (
	"fmt"
	"time"

	"github.com/contract-ledger/backend/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ContractEditable contains the fields of a contract that can be changed
// directly. The contract value and the measured value are maintained by
// posting sub-elements.
type ContractEditable struct {
	Number             string                    `json:"numeroContrato" example:"CT-012/2024"`                             // Contract number
	ContractingParty   string                    `json:"contratante" example:"Prefeitura Municipal de Goiânia"`            // The contracting party
	ContractedParty    string                    `json:"contratada" example:"Construtora Horizonte Ltda"`                  // The contracted party
	ContractedTaxID    string                    `json:"cnpjContratada" example:"12.345.678/0001-90"`                      // CNPJ of the contracted party
	State              string                    `json:"uf" example:"GO"`                                                  // Federal state
	Year               string                    `json:"anoContrato" example:"2024"`                                       // Year the contract was signed
	SiteLocation       string                    `json:"localObra" example:"Setor Bueno"`                                  // Location of the site
	ExternalCode       string                    `json:"codUau" example:"UAU-4711"`                                        // Code in the ERP
	BidLink            string                    `json:"linkLicitacao" example:"https://example.com/licitacoes/12"`        // Link to the public bid
	Scope              string                    `json:"objeto" example:"Pavimentação asfáltica"`                          // What the contract is about
	Responsible        string                    `json:"responsavel" example:"Maria Souza"`                                // Responsible person
	ReadjustmentBase   *time.Time                `json:"dataBaseReajuste" example:"2024-01-01T00:00:00Z"`                  // Base date for readjustments
	ReadjustmentDate   *time.Time                `json:"dataReajuste" example:"2025-01-01T00:00:00Z"`                      // Date of the next readjustment
	ReadjustmentStatus models.ReadjustmentStatus `json:"statusReajuste" example:"Em dia" enums:"Em dia,Pendente,Atrasado"` // Readjustment status
	ExecutionStart     *time.Time                `json:"inicioExecucao" example:"2024-02-01T00:00:00Z"`                    // Start of execution
	ExecutionEnd       *time.Time                `json:"fimExecucao" example:"2025-01-31T00:00:00Z"`                       // Planned end of execution
	ExecutionStatus    models.ExecutionStatus    `json:"statusExecucao" example:"Em andamento" enums:"Em andamento,Concluído,Atrasado"`
	ValidityEnd        *time.Time                `json:"fimVigencia" example:"2025-06-30T00:00:00Z"` // End of validity
	Status             models.ContractStatus     `json:"status" example:"Ativo" enums:"Ativo,Vencendo,Finalizado,Suspenso"`
	ExecutionType      string                    `json:"tipoExecucao" example:"Empreitada por preço unitário"`
	ContractorNotes    string                    `json:"infoEmpreiteiro" example:"Equipe de 12 pessoas"` // Notes about the contractor
}

// model returns the database resource for the editable fields
func (editable ContractEditable) model() models.Contract {
	return models.Contract{
		Number:             editable.Number,
		ContractingParty:   editable.ContractingParty,
		ContractedParty:    editable.ContractedParty,
		ContractedTaxID:    editable.ContractedTaxID,
		State:              editable.State,
		Year:               editable.Year,
		SiteLocation:       editable.SiteLocation,
		ExternalCode:       editable.ExternalCode,
		BidLink:            editable.BidLink,
		Scope:              editable.Scope,
		Responsible:        editable.Responsible,
		ReadjustmentBase:   editable.ReadjustmentBase,
		ReadjustmentDate:   editable.ReadjustmentDate,
		ReadjustmentStatus: editable.ReadjustmentStatus,
		ExecutionStart:     editable.ExecutionStart,
		ExecutionEnd:       editable.ExecutionEnd,
		ExecutionStatus:    editable.ExecutionStatus,
		ValidityEnd:        editable.ValidityEnd,
		Status:             editable.Status,
		ExecutionType:      editable.ExecutionType,
		ContractorNotes:    editable.ContractorNotes,
	}
}

// ContractCreate is used to create contracts. The initial contract value
// can only be set here.
type ContractCreate struct {
	ContractEditable
	ContractValue decimal.Decimal `json:"valorContrato" example:"150000.00" minimum:"0" maximum:"9999999999999.99" multipleOf:"0.01"` // Initial contract value
}

func (create ContractCreate) model() models.Contract {
	m := create.ContractEditable.model()
	m.ContractValue = create.ContractValue

	return m
}

type ContractLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/contracts/42"`                    // The contract itself
	SubElements string `json:"subElements" example:"https://example.com/api/v1/sub-elements?contract=42"` // Sub-elements posted against the contract
	Alerts      string `json:"alerts" example:"https://example.com/api/v1/alerts?contract=42"`            // Alerts for the contract
	Statement   string `json:"statement" example:"https://example.com/api/v1/contracts/42/statement"`     // PDF statement of the contract
}

// Contract is the API v1 representation of a Contract.
type Contract struct {
	models.DefaultModel
	ContractEditable
	ContractValue decimal.Decimal `json:"valorContrato" example:"153000.00"` // Current contract value, including additions and suppressions
	MeasuredValue decimal.Decimal `json:"valorMedido" example:"30000.00"`    // Sum of all measurements
	Balance       decimal.Decimal `json:"saldo" example:"123000.00"`         // Contract value that has not been measured yet
	Links         ContractLinks   `json:"links"`
}

func newContract(c *gin.Context, model models.Contract) Contract {
	url := c.GetString(string(models.ContextURL))

	return Contract{
		DefaultModel: model.DefaultModel,
		ContractEditable: ContractEditable{
			Number:             model.Number,
			ContractingParty:   model.ContractingParty,
			ContractedParty:    model.ContractedParty,
			ContractedTaxID:    model.ContractedTaxID,
			State:              model.State,
			Year:               model.Year,
			SiteLocation:       model.SiteLocation,
			ExternalCode:       model.ExternalCode,
			BidLink:            model.BidLink,
			Scope:              model.Scope,
			Responsible:        model.Responsible,
			ReadjustmentBase:   model.ReadjustmentBase,
			ReadjustmentDate:   model.ReadjustmentDate,
			ReadjustmentStatus: model.ReadjustmentStatus,
			ExecutionStart:     model.ExecutionStart,
			ExecutionEnd:       model.ExecutionEnd,
			ExecutionStatus:    model.ExecutionStatus,
			ValidityEnd:        model.ValidityEnd,
			Status:             model.Status,
			ExecutionType:      model.ExecutionType,
			ContractorNotes:    model.ContractorNotes,
		},
		ContractValue: model.ContractValue,
		MeasuredValue: model.MeasuredValue,
		Balance:       model.ContractValue.Sub(model.MeasuredValue),
		Links: ContractLinks{
			Self:        fmt.Sprintf("%s/v1/contracts/%d", url, model.ID),
			SubElements: fmt.Sprintf("%s/v1/sub-elements?contract=%d", url, model.ID),
			Alerts:      fmt.Sprintf("%s/v1/alerts?contract=%d", url, model.ID),
			Statement:   fmt.Sprintf("%s/v1/contracts/%d/statement", url, model.ID),
		},
	}
}

type ContractListResponse struct {
	Data       []Contract  `json:"data"`                                                   // List of contracts
	Error      *string     `json:"error" example:"the contract status is invalid: 'Novo'"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                             // Pagination information
}

type ContractCreateResponse struct {
	Error *string            `json:"error" example:"the contract number must not be empty"` // The error, if any occurred
	Data  []ContractResponse `json:"data"`                                                  // List of created contracts
}

func (a *ContractCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, ContractResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ContractResponse struct {
	Data  *Contract `json:"data"`                                                     // Data for the contract
	Error *string   `json:"error" example:"there is no contract matching your query"` // The error, if any occurred for this contract
}

type ContractQueryFilter struct {
	Status           string `form:"status"`                          // By status
	ContractingParty string `form:"contratante" filterField:"false"` // Fuzzy filter for the contracting party
	Year             string `form:"ano"`                             // By year of the contract
	State            string `form:"uf"`                              // By federal state
	Number           string `form:"numero"`                          // By contract number
	Search           string `form:"search" filterField:"false"`      // By string in number, contracted party or scope
	Offset           uint   `form:"offset" filterField:"false"`      // The offset of the first contract returned. Defaults to 0.
	Limit            int    `form:"limit" filterField:"false"`       // Maximum number of contracts to return. Defaults to 50.
}

func (f ContractQueryFilter) model() models.Contract {
	return models.Contract{
		Status: models.ContractStatus(f.Status),
		Year:   f.Year,
		State:  f.State,
		Number: f.Number,
	}
}
