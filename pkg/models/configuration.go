package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Configuration keys used by the alert scanner.
const (
	ConfigReadjustmentAlert     = "alertaReajuste"
	ConfigReadjustmentLeadDays  = "diasAntecedenciaReajuste"
	ConfigExpiryAlert           = "alertaVencimento"
	ConfigExpiryLeadDays        = "diasAntecedenciaVencimento"
	ConfigMeasurementAlert      = "alertaMedicao"
	ConfigMeasurementDayOfMonth = "diaMedicao"
)

var (
	ErrConfigurationKeyEmpty     = errors.New("the configuration key must not be empty")
	ErrConfigurationKeyNotUnique = errors.New("a configuration with this key already exists")
)

// Configuration is a single application wide setting.
type Configuration struct {
	DefaultModel
	Key         string `gorm:"column:chave;not null;uniqueIndex"`
	Value       string `gorm:"column:valor;type:text"`
	Description string `gorm:"column:descricao"`
}

func (Configuration) TableName() string {
	return "configuracoes"
}

func (Configuration) Self() string {
	return "Configuration"
}

func (c *Configuration) BeforeSave(_ *gorm.DB) error {
	c.Key = strings.TrimSpace(c.Key)
	if c.Key == "" {
		return ErrConfigurationKeyEmpty
	}

	return nil
}

// DefaultConfigurations are created when the database is migrated.
// Existing values are never overwritten.
var DefaultConfigurations = []Configuration{
	{Key: ConfigReadjustmentAlert, Value: "true", Description: "Gerar alertas de reajuste"},
	{Key: ConfigReadjustmentLeadDays, Value: "30", Description: "Dias de antecedência para alertas de reajuste"},
	{Key: ConfigExpiryAlert, Value: "true", Description: "Gerar alertas de vencimento"},
	{Key: ConfigExpiryLeadDays, Value: "30", Description: "Dias de antecedência para alertas de vencimento"},
	{Key: ConfigMeasurementAlert, Value: "true", Description: "Gerar lembretes de medição"},
	{Key: ConfigMeasurementDayOfMonth, Value: "5", Description: "Dia do mês para lembretes de medição"},
}

// SeedConfigurations creates the default configurations that do not exist yet.
func SeedConfigurations(db *gorm.DB) error {
	for _, c := range DefaultConfigurations {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "chave"}},
			DoNothing: true,
		}).Create(&c).Error
		if err != nil {
			return fmt.Errorf("error seeding configuration '%s': %w", c.Key, err)
		}
	}

	return nil
}

// Settings is a read-only view of all configurations.
type Settings map[string]string

// LoadSettings reads all configurations.
func LoadSettings(db *gorm.DB) (Settings, error) {
	var configurations []Configuration
	err := db.Find(&configurations).Error
	if err != nil {
		return nil, err
	}

	s := make(Settings, len(configurations))
	for _, c := range configurations {
		s[c.Key] = c.Value
	}

	return s, nil
}

// Bool returns the value for the key as boolean, or the fallback if
// the key is not set or not parseable.
func (s Settings) Bool(key string, fallback bool) bool {
	v, ok := s[key]
	if !ok {
		return fallback
	}

	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}

	return b
}

// Int returns the value for the key as integer, or the fallback if
// the key is not set or not parseable.
func (s Settings) Int(key string, fallback int) int {
	v, ok := s[key]
	if !ok {
		return fallback
	}

	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}

	return i
}
