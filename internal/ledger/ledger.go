// Package ledger keeps the contract value and the measured value of
// contracts consistent with the sub-elements posted against them.
//
// PostSubElement is the only write path for both totals. Every posting
// runs in a single database transaction: the contract row is locked
// (on databases that support row locks), the delta is applied as an
// in-database arithmetic update and the sub-element is inserted. Either
// all of it is committed or nothing is.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/contract-ledger/backend/pkg/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultMaxRetries = 5
	defaultBackoff    = 10 * time.Millisecond
)

// Ledger posts sub-elements and maintains the contract totals.
type Ledger struct {
	db         *gorm.DB
	maxRetries int
	backoff    time.Duration
}

type Option func(*Ledger)

// WithMaxRetries sets how often a posting is retried on lock contention
// before ErrConcurrencyConflict is returned.
func WithMaxRetries(n int) Option {
	return func(l *Ledger) {
		l.maxRetries = n
	}
}

// WithBackoff sets the base delay between retries. The delay grows
// linearly with the attempt number.
func WithBackoff(d time.Duration) Option {
	return func(l *Ledger) {
		l.backoff = d
	}
}

func New(db *gorm.DB, opts ...Option) *Ledger {
	l := &Ledger{
		db:         db,
		maxRetries: defaultMaxRetries,
		backoff:    defaultBackoff,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// PostSubElement persists the sub-element and applies its amount to the
// contract it references:
//
//   - Measurement adds the amount to the measured value
//   - Addition adds the amount to the contract value
//   - Suppression subtracts the amount from the contract value
//
// Documents, other records and sub-elements without an amount leave both
// totals unchanged. The contract value is not floored at zero.
//
// It returns the contract as committed and the persisted sub-element.
func (l *Ledger) PostSubElement(ctx context.Context, s models.SubElement) (models.Contract, models.SubElement, error) {
	if err := validate(s); err != nil {
		postingsTotal.WithLabelValues(string(s.Kind), resultInvalid).Inc()
		return models.Contract{}, models.SubElement{}, err
	}

	// The database assigns the ID
	s.ID = 0

	for attempt := 0; ; attempt++ {
		contract, posted, err := l.post(ctx, s)
		if err == nil {
			postingsTotal.WithLabelValues(string(s.Kind), resultPosted).Inc()
			log.Debug().
				Uint("contract", contract.ID).
				Uint("subElement", posted.ID).
				Str("kind", string(posted.Kind)).
				Str("contractValue", contract.ContractValue.StringFixed(2)).
				Str("measuredValue", contract.MeasuredValue.StringFixed(2)).
				Msg("ledger posting")

			return contract, posted, nil
		}

		if errors.Is(err, models.ErrValueOutOfRange) {
			err = fmt.Errorf("%w: %w", ErrValidation, err)
		}

		if errors.Is(err, ErrValidation) {
			postingsTotal.WithLabelValues(string(s.Kind), resultInvalid).Inc()
			return models.Contract{}, models.SubElement{}, err
		}

		if errors.Is(err, models.ErrResourceNotFound) {
			postingsTotal.WithLabelValues(string(s.Kind), resultNotFound).Inc()
			return models.Contract{}, models.SubElement{}, fmt.Errorf("%w: no contract with ID %d", ErrNotFound, s.ContractID)
		}

		if !models.IsBusy(err) {
			postingsTotal.WithLabelValues(string(s.Kind), resultError).Inc()
			return models.Contract{}, models.SubElement{}, err
		}

		if attempt >= l.maxRetries {
			postingsTotal.WithLabelValues(string(s.Kind), resultConflict).Inc()
			log.Warn().Uint("contract", s.ContractID).Int("attempts", attempt+1).Err(err).Msg("ledger posting gave up")
			return models.Contract{}, models.SubElement{}, fmt.Errorf("%w: %w", ErrConcurrencyConflict, err)
		}

		retriesTotal.Inc()
		select {
		case <-ctx.Done():
			return models.Contract{}, models.SubElement{}, ctx.Err()
		case <-time.After(l.backoff * time.Duration(attempt+1)):
		}
	}
}

// post runs one posting attempt in a transaction.
func (l *Ledger) post(ctx context.Context, s models.SubElement) (contract models.Contract, posted models.SubElement, err error) {
	posted = s

	err = l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := lockContract(tx).First(&contract, s.ContractID).Error
		if err != nil {
			return err
		}

		if column, delta, ok := adjustment(s); ok {
			err = tx.Model(&models.Contract{}).
				Where("id = ?", contract.ID).
				UpdateColumns(map[string]any{
					column:       gorm.Expr(column+" + ?", delta),
					"updated_at": time.Now().In(time.UTC),
				}).Error
			if err != nil {
				return err
			}
		}

		err = tx.Create(&posted).Error
		if err != nil {
			return err
		}

		// Read back what will be committed
		err = tx.First(&contract, contract.ID).Error
		if err != nil {
			return err
		}

		return checkTotals(contract)
	})

	return contract, posted, models.TranslateError(err)
}

// checkTotals fails when a total no longer fits into DECIMAL(15,2).
// Postgres rejects the update itself, SQLite stores any value.
func checkTotals(c models.Contract) error {
	for _, total := range []decimal.Decimal{c.ContractValue, c.MeasuredValue} {
		if total.Abs().GreaterThanOrEqual(models.MaxAmount) {
			return fmt.Errorf("%w: %w, the contract total would be %s", ErrValidation, models.ErrValueOutOfRange, total)
		}
	}

	return nil
}

// lockContract adds a row lock for databases that support it. SQLite
// does not, but only allows a single writer at a time anyway.
func lockContract(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == models.DriverPostgres {
		return tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}

	return tx
}

// adjustment returns the column to update and the signed delta for the
// sub-element. ok is false when the sub-element does not change any total.
func adjustment(s models.SubElement) (column string, delta decimal.Decimal, ok bool) {
	if !s.Amount.Valid {
		return "", decimal.Zero, false
	}

	switch s.Kind {
	case models.KindMeasurement:
		return "valor_medido", s.Amount.Decimal, true
	case models.KindAddition:
		return "valor_contrato", s.Amount.Decimal, true
	case models.KindSuppression:
		return "valor_contrato", s.Amount.Decimal.Neg(), true
	}

	return "", decimal.Zero, false
}

// validate checks the sub-element before any database access.
func validate(s models.SubElement) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if !s.Amount.Valid {
		return nil
	}

	if err := models.ValidateAmount(s.Amount.Decimal); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

// Fields of a sub-element that determine its effect on the ledger.
var immutableFields = []string{"ContractID", "Kind", "Amount"}

// Fields of a sub-element that can be updated after posting.
var mutableFields = []string{"Name", "Date", "Status", "Description", "File", "ExecutionDeadline", "ValidityDeadline"}

// UpdateSubElement updates the fields of a posted sub-element that do not
// affect the contract totals. fields contains the names of the fields set
// in update. Changing the contract, the kind or the amount fails with
// ErrImmutableField, the posting must be compensated with a new entry.
//
// Field names are passed as []any since that is what gorm's Select expects.
func (l *Ledger) UpdateSubElement(ctx context.Context, id uint, fields []any, update models.SubElement) (models.SubElement, error) {
	var existing models.SubElement

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&existing, id).Error
		if err != nil {
			return err
		}

		for _, field := range immutableFields {
			if slices.Contains(fields, any(field)) && changed(field, existing, update) {
				return fmt.Errorf("%w: %w '%s'", ErrValidation, ErrImmutableField, strings.ToLower(field))
			}
		}

		var selected []any
		merged := existing
		for _, f := range fields {
			field, ok := f.(string)
			if !ok || !slices.Contains(mutableFields, field) {
				continue
			}

			selected = append(selected, field)
			switch field {
			case "Name":
				merged.Name = update.Name
			case "Date":
				merged.Date = update.Date
			case "Status":
				merged.Status = update.Status
			case "Description":
				merged.Description = update.Description
			case "File":
				merged.File = update.File
			case "ExecutionDeadline":
				merged.ExecutionDeadline = update.ExecutionDeadline
			case "ValidityDeadline":
				merged.ValidityDeadline = update.ValidityDeadline
			}
		}

		if err := merged.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}

		if len(selected) == 0 {
			return nil
		}

		err = tx.Model(&merged).Select("", selected...).Updates(&merged).Error
		if err != nil {
			return err
		}

		existing = merged
		return nil
	})
	err = models.TranslateError(err)

	if errors.Is(err, models.ErrResourceNotFound) {
		return models.SubElement{}, fmt.Errorf("%w: no sub-element with ID %d", ErrSubElementNotFound, id)
	}

	if err != nil {
		return models.SubElement{}, err
	}

	return existing, nil
}

func changed(field string, existing, update models.SubElement) bool {
	switch field {
	case "ContractID":
		return existing.ContractID != update.ContractID
	case "Kind":
		return existing.Kind != update.Kind
	case "Amount":
		if existing.Amount.Valid != update.Amount.Valid {
			return true
		}
		return existing.Amount.Valid && !existing.Amount.Decimal.Equal(update.Amount.Decimal)
	}

	return false
}
