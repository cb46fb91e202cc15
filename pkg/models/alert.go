package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

type AlertKind string

const (
	AlertReadjustment AlertKind = "reajuste"
	AlertExpiry       AlertKind = "vencimento"
	AlertMeasurement  AlertKind = "medicao"
)

var (
	ErrAlertKindInvalid  = errors.New("the alert kind is invalid")
	ErrAlertMessageEmpty = errors.New("the alert message must not be empty")
)

// Alert is a notification tied to a contract and optionally a user.
type Alert struct {
	DefaultModel
	ContractID uint       `gorm:"column:contrato_id;not null;index"`
	UserID     *uint      `gorm:"column:usuario_id;index"`
	Kind       AlertKind  `gorm:"column:tipo;not null"`
	Message    string     `gorm:"column:mensagem;type:text;not null"`
	Date       time.Time  `gorm:"column:data;not null"`
	Read       bool       `gorm:"column:lido;not null;default:false"`
	ReadAt     *time.Time `gorm:"column:data_leitura"`
}

func (Alert) TableName() string {
	return "alertas"
}

func (Alert) Self() string {
	return "Alert"
}

// BeforeSave validates the alert and sets the date to now if it is
// not set.
func (a *Alert) BeforeSave(_ *gorm.DB) error {
	a.Message = strings.TrimSpace(a.Message)

	if a.Date.IsZero() {
		a.Date = time.Now().In(time.UTC)
	}

	switch a.Kind {
	case AlertReadjustment, AlertExpiry, AlertMeasurement:
	default:
		return fmt.Errorf("%w: '%s'", ErrAlertKindInvalid, a.Kind)
	}

	if a.Message == "" {
		return ErrAlertMessageEmpty
	}

	return nil
}

func (a *Alert) AfterFind(tx *gorm.DB) error {
	_ = a.DefaultModel.AfterFind(tx)
	a.Date = a.Date.In(time.UTC)
	a.ReadAt = utc(a.ReadAt)

	return nil
}
