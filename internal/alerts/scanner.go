// Package alerts creates readjustment, expiry and measurement alerts for
// contracts according to the stored configuration.
package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/contract-ledger/backend/pkg/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const day = 24 * time.Hour

// Scanner checks all running contracts and creates alerts for them. Each
// alert is created at most once per contract, kind and day.
type Scanner struct {
	db       *gorm.DB
	notifier Notifier
	now      func() time.Time
	onCreate func(context.Context, []models.Alert)
}

type Option func(*Scanner)

// WithNotifier sets the notifier that is called for every created alert.
func WithNotifier(n Notifier) Option {
	return func(s *Scanner) {
		s.notifier = n
	}
}

// WithOnCreate sets a function that is called after each scan that
// created at least one alert.
func WithOnCreate(f func(context.Context, []models.Alert)) Option {
	return func(s *Scanner) {
		s.onCreate = f
	}
}

// WithClock sets the function returning the current time.
func WithClock(now func() time.Time) Option {
	return func(s *Scanner) {
		s.now = now
	}
}

func NewScanner(db *gorm.DB, opts ...Option) *Scanner {
	s := &Scanner{
		db:       db,
		notifier: LogNotifier{},
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run scans once immediately and then on every tick of the interval
// until the context is cancelled.
func (s *Scanner) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.Scan(ctx); err != nil {
			log.Error().Err(err).Msg("alert scan failed")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Scan creates all alerts that are due today and returns them.
func (s *Scanner) Scan(ctx context.Context) (created []models.Alert, err error) {
	defer func() {
		if len(created) > 0 && s.onCreate != nil {
			s.onCreate(ctx, created)
		}
	}()

	db := s.db.WithContext(ctx)

	settings, err := models.LoadSettings(db)
	if err != nil {
		scansTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	var contracts []models.Contract
	err = db.
		Where("status IN ?", []models.ContractStatus{models.ContractStatusActive, models.ContractStatusExpiring}).
		Order("id ASC").
		Find(&contracts).Error
	if err != nil {
		scansTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	today := truncate(s.now())
	created = make([]models.Alert, 0)

	for _, contract := range contracts {
		for _, alert := range s.due(contract, settings, today) {
			ok, err := s.create(ctx, today, contract, &alert)
			if err != nil {
				scansTotal.WithLabelValues("error").Inc()
				return created, err
			}

			if ok {
				created = append(created, alert)
			}
		}
	}

	scansTotal.WithLabelValues("success").Inc()
	log.Debug().Int("contracts", len(contracts)).Int("alerts", len(created)).Msg("alert scan")

	return created, nil
}

// due returns the alerts that the contract needs today.
func (s *Scanner) due(contract models.Contract, settings models.Settings, today time.Time) []models.Alert {
	var alerts []models.Alert

	if settings.Bool(models.ConfigReadjustmentAlert, true) && contract.ReadjustmentDate != nil {
		days := daysBetween(today, *contract.ReadjustmentDate)
		if days >= 0 && days <= settings.Int(models.ConfigReadjustmentLeadDays, 30) {
			alerts = append(alerts, models.Alert{
				ContractID: contract.ID,
				Kind:       models.AlertReadjustment,
				Message:    fmt.Sprintf("Reajuste do contrato %s previsto para %s (%s)", contract.Number, contract.ReadjustmentDate.Format("02/01/2006"), inDays(days)),
			})
		}
	}

	if settings.Bool(models.ConfigExpiryAlert, true) && contract.ValidityEnd != nil {
		days := daysBetween(today, *contract.ValidityEnd)
		if days >= 0 && days <= settings.Int(models.ConfigExpiryLeadDays, 30) {
			alerts = append(alerts, models.Alert{
				ContractID: contract.ID,
				Kind:       models.AlertExpiry,
				Message:    fmt.Sprintf("Vigência do contrato %s termina em %s (%s)", contract.Number, contract.ValidityEnd.Format("02/01/2006"), inDays(days)),
			})
		}
	}

	if settings.Bool(models.ConfigMeasurementAlert, true) && contract.Status == models.ContractStatusActive {
		if today.Day() == settings.Int(models.ConfigMeasurementDayOfMonth, 5) {
			alerts = append(alerts, models.Alert{
				ContractID: contract.ID,
				Kind:       models.AlertMeasurement,
				Message:    fmt.Sprintf("Medição mensal do contrato %s deve ser lançada hoje", contract.Number),
			})
		}
	}

	return alerts
}

// create stores the alert unless one of the same kind already exists for
// the contract today. It reports if the alert was created.
func (s *Scanner) create(ctx context.Context, today time.Time, contract models.Contract, alert *models.Alert) (bool, error) {
	db := s.db.WithContext(ctx)

	var count int64
	err := db.Model(&models.Alert{}).
		Where("contrato_id = ? AND tipo = ? AND data >= ? AND data < ?", alert.ContractID, alert.Kind, today, today.Add(day)).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	if count > 0 {
		return false, nil
	}

	alert.Date = s.now().In(time.UTC)
	err = db.Create(alert).Error
	if err != nil {
		return false, err
	}

	alertsCreated.WithLabelValues(string(alert.Kind)).Inc()

	if err := s.notifier.Notify(ctx, contract, *alert); err != nil {
		log.Warn().Err(err).Uint("alert", alert.ID).Msg("notification failed")
	}

	return true, nil
}

func truncate(t time.Time) time.Time {
	t = t.In(time.UTC)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(truncate(to).Sub(truncate(from)) / day)
}

func inDays(days int) string {
	switch days {
	case 0:
		return "hoje"
	case 1:
		return "amanhã"
	}

	return fmt.Sprintf("em %d dias", days)
}
