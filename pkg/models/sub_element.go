package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SubElementKind string

const (
	KindMeasurement SubElementKind = "Medição"
	KindAddition    SubElementKind = "Aditivo"
	KindSuppression SubElementKind = "Supressão"
	KindDocument    SubElementKind = "Documento"
	KindOther       SubElementKind = "Outro"
)

// Valid reports if the kind is one of the known kinds.
func (k SubElementKind) Valid() bool {
	switch k {
	case KindMeasurement, KindAddition, KindSuppression, KindDocument, KindOther:
		return true
	}

	return false
}

type SubElementStatus string

const (
	SubElementPending  SubElementStatus = "Pendente"
	SubElementApproved SubElementStatus = "Aprovado"
	SubElementRejected SubElementStatus = "Rejeitado"
)

// Valid reports if the status is one of the known statuses.
func (s SubElementStatus) Valid() bool {
	switch s {
	case SubElementPending, SubElementApproved, SubElementRejected:
		return true
	}

	return false
}

var (
	ErrSubElementNameEmpty     = errors.New("the name must not be empty")
	ErrSubElementDateEmpty     = errors.New("the date must be set")
	ErrSubElementKindInvalid   = errors.New("the kind is invalid")
	ErrSubElementStatusInvalid = errors.New("the status is invalid")
)

// SubElement is a dated record posted against a contract.
type SubElement struct {
	DefaultModel
	ContractID        uint                `gorm:"column:contrato_id;not null;index"`
	Name              string              `gorm:"column:nome;not null"`
	Kind              SubElementKind      `gorm:"column:tipo;not null"`
	Date              time.Time           `gorm:"column:data;not null"`
	Status            SubElementStatus    `gorm:"column:status;default:Pendente"`
	Description       string              `gorm:"column:descricao;type:text"`
	Amount            decimal.NullDecimal `gorm:"column:valor;type:DECIMAL(15,2)"`
	File              string              `gorm:"column:arquivo"`
	ExecutionDeadline *int                `gorm:"column:prazo_execucao"`
	ValidityDeadline  *int                `gorm:"column:prazo_vigencia"`
}

func (SubElement) TableName() string {
	return "subelementos"
}

func (SubElement) Self() string {
	return "Sub-element"
}

// BeforeSave trims whitespace and sets the default status.
func (s *SubElement) BeforeSave(_ *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)
	s.Description = strings.TrimSpace(s.Description)
	s.Date = s.Date.In(time.UTC)

	if s.Status == "" {
		s.Status = SubElementPending
	}

	return nil
}

func (s *SubElement) AfterFind(tx *gorm.DB) error {
	_ = s.DefaultModel.AfterFind(tx)
	s.Date = s.Date.In(time.UTC)

	if s.Amount.Valid {
		s.Amount.Decimal = s.Amount.Decimal.Round(2)
	}

	return nil
}

// Validate checks the required and enumerated fields. An empty
// status is valid and defaults to pending.
func (s SubElement) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrSubElementNameEmpty
	}

	if s.Date.IsZero() {
		return ErrSubElementDateEmpty
	}

	if !s.Kind.Valid() {
		return fmt.Errorf("%w: '%s'", ErrSubElementKindInvalid, s.Kind)
	}

	if s.Status != "" && !s.Status.Valid() {
		return fmt.Errorf("%w: '%s'", ErrSubElementStatusInvalid, s.Status)
	}

	return nil
}
