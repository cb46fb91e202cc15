package v1

import (
	"github.com/contract-ledger/backend/pkg/models"
	"github.com/shopspring/decimal"
)

// DashboardStatus contains the figures for all contracts with one status.
type DashboardStatus struct {
	Status        models.ContractStatus `json:"status" example:"Ativo"`             // Contract status
	Count         int64                 `json:"quantidade" example:"12"`            // Number of contracts
	ContractValue decimal.Decimal       `json:"valorContrato" example:"1830000.00"` // Sum of the contract values
	MeasuredValue decimal.Decimal       `json:"valorMedido" example:"912000.00"`    // Sum of the measured values
}

// Dashboard contains statistics about all contracts.
type Dashboard struct {
	TotalContracts  int64             `json:"totalContratos" example:"17"`              // Number of contracts
	ActiveContracts int64             `json:"contratosAtivos" example:"12"`             // Number of active contracts
	ContractValue   decimal.Decimal   `json:"valorTotalContratos" example:"2430000.00"` // Sum of all contract values
	MeasuredValue   decimal.Decimal   `json:"valorTotalMedido" example:"1280000.00"`    // Sum of all measured values
	Balance         decimal.Decimal   `json:"saldo" example:"1150000.00"`               // Contract value that has not been measured yet
	UnreadAlerts    int64             `json:"alertasNaoLidos" example:"3"`              // Number of unread alerts
	ByStatus        []DashboardStatus `json:"porStatus"`                                // Figures per contract status
	RecentAlerts    []Alert           `json:"alertasRecentes"`                          // The five newest alerts
}

type DashboardResponse struct {
	Data  *Dashboard `json:"data"`                                                                // Dashboard data
	Error *string    `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
}
