package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ContractStatus string

const (
	ContractStatusActive    ContractStatus = "Ativo"
	ContractStatusExpiring  ContractStatus = "Vencendo"
	ContractStatusCompleted ContractStatus = "Finalizado"
	ContractStatusSuspended ContractStatus = "Suspenso"
)

// ContractStatuses lists all contract statuses in display order.
var ContractStatuses = []ContractStatus{
	ContractStatusActive,
	ContractStatusExpiring,
	ContractStatusCompleted,
	ContractStatusSuspended,
}

type ReadjustmentStatus string

const (
	ReadjustmentOnTrack ReadjustmentStatus = "Em dia"
	ReadjustmentPending ReadjustmentStatus = "Pendente"
	ReadjustmentLate    ReadjustmentStatus = "Atrasado"
)

type ExecutionStatus string

const (
	ExecutionInProgress ExecutionStatus = "Em andamento"
	ExecutionCompleted  ExecutionStatus = "Concluído"
	ExecutionLate       ExecutionStatus = "Atrasado"
)

var (
	ErrContractNumberEmpty       = errors.New("the contract number must not be empty")
	ErrContractingPartyEmpty     = errors.New("the contracting party must not be empty")
	ErrContractedPartyEmpty      = errors.New("the contracted party must not be empty")
	ErrContractScopeEmpty        = errors.New("the contract scope (objeto) must not be empty")
	ErrContractValueNegative     = errors.New("the contract value must not be negative")
	ErrContractStatusInvalid     = errors.New("the contract status is invalid")
	ErrReadjustmentStatusInvalid = errors.New("the readjustment status is invalid")
	ErrExecutionStatusInvalid    = errors.New("the execution status is invalid")
)

// Contract is an executed agreement. ContractValue and MeasuredValue
// are maintained by the ledger and must not be written by any other path.
type Contract struct {
	DefaultModel
	Number             string             `gorm:"column:numero_contrato;not null"`
	ContractingParty   string             `gorm:"column:contratante;not null"`
	ContractedParty    string             `gorm:"column:contratada;not null"`
	ContractedTaxID    string             `gorm:"column:cnpj_contratada"`
	State              string             `gorm:"column:uf"`
	Year               string             `gorm:"column:ano_contrato"`
	SiteLocation       string             `gorm:"column:local_obra"`
	ExternalCode       string             `gorm:"column:cod_uau"`
	BidLink            string             `gorm:"column:link_licitacao"`
	Scope              string             `gorm:"column:objeto;type:text;not null"`
	ContractValue      decimal.Decimal    `gorm:"column:valor_contrato;type:DECIMAL(15,2);not null;default:0"`
	MeasuredValue      decimal.Decimal    `gorm:"column:valor_medido;type:DECIMAL(15,2);not null;default:0"`
	Responsible        string             `gorm:"column:responsavel"`
	ReadjustmentBase   *time.Time         `gorm:"column:data_base_reajuste"`
	ReadjustmentDate   *time.Time         `gorm:"column:data_reajuste"`
	ReadjustmentStatus ReadjustmentStatus `gorm:"column:status_reajuste;default:Em dia"`
	ExecutionStart     *time.Time         `gorm:"column:inicio_execucao"`
	ExecutionEnd       *time.Time         `gorm:"column:fim_execucao"`
	ExecutionStatus    ExecutionStatus    `gorm:"column:status_execucao;default:Em andamento"`
	ValidityEnd        *time.Time         `gorm:"column:fim_vigencia"`
	Status             ContractStatus     `gorm:"column:status;default:Ativo;index"`
	ExecutionType      string             `gorm:"column:tipo_execucao"`
	ContractorNotes    string             `gorm:"column:info_empreiteiro;type:text"`
	SubElements        []SubElement       `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE"`
	Alerts             []Alert            `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE"`
}

func (Contract) TableName() string {
	return "contratos"
}

func (Contract) Self() string {
	return "Contract"
}

// BeforeSave trims whitespace, sets defaults and validates the
// enumerated fields.
func (c *Contract) BeforeSave(_ *gorm.DB) error {
	c.Number = strings.TrimSpace(c.Number)
	c.ContractingParty = strings.TrimSpace(c.ContractingParty)
	c.ContractedParty = strings.TrimSpace(c.ContractedParty)
	c.Scope = strings.TrimSpace(c.Scope)

	if c.Status == "" {
		c.Status = ContractStatusActive
	}

	if c.ReadjustmentStatus == "" {
		c.ReadjustmentStatus = ReadjustmentOnTrack
	}

	if c.ExecutionStatus == "" {
		c.ExecutionStatus = ExecutionInProgress
	}

	return c.Validate()
}

// BeforeCreate forces the measured value to zero. It is only ever
// changed by posting measurements.
func (c *Contract) BeforeCreate(_ *gorm.DB) error {
	c.MeasuredValue = decimal.Zero

	if c.ContractValue.IsNegative() {
		return ErrContractValueNegative
	}

	if err := ValidateAmount(c.ContractValue); err != nil {
		return fmt.Errorf("invalid contract value: %w", err)
	}

	return nil
}

// AfterFind normalizes timestamps and rounds the monetary values to
// cents, since some drivers return them as floating point numbers.
func (c *Contract) AfterFind(tx *gorm.DB) error {
	_ = c.DefaultModel.AfterFind(tx)

	c.ContractValue = c.ContractValue.Round(2)
	c.MeasuredValue = c.MeasuredValue.Round(2)

	c.ReadjustmentBase = utc(c.ReadjustmentBase)
	c.ReadjustmentDate = utc(c.ReadjustmentDate)
	c.ExecutionStart = utc(c.ExecutionStart)
	c.ExecutionEnd = utc(c.ExecutionEnd)
	c.ValidityEnd = utc(c.ValidityEnd)

	return nil
}

// Validate checks the required and enumerated fields.
func (c Contract) Validate() error {
	if c.Number == "" {
		return ErrContractNumberEmpty
	}

	if c.ContractingParty == "" {
		return ErrContractingPartyEmpty
	}

	if c.ContractedParty == "" {
		return ErrContractedPartyEmpty
	}

	if c.Scope == "" {
		return ErrContractScopeEmpty
	}

	switch c.Status {
	case ContractStatusActive, ContractStatusExpiring, ContractStatusCompleted, ContractStatusSuspended:
	default:
		return fmt.Errorf("%w: '%s'", ErrContractStatusInvalid, c.Status)
	}

	switch c.ReadjustmentStatus {
	case ReadjustmentOnTrack, ReadjustmentPending, ReadjustmentLate:
	default:
		return fmt.Errorf("%w: '%s'", ErrReadjustmentStatusInvalid, c.ReadjustmentStatus)
	}

	switch c.ExecutionStatus {
	case ExecutionInProgress, ExecutionCompleted, ExecutionLate:
	default:
		return fmt.Errorf("%w: '%s'", ErrExecutionStatusInvalid, c.ExecutionStatus)
	}

	return nil
}
