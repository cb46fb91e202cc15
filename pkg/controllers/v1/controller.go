// Package v1 implements the v1 HTTP API.
package v1

import (
	"context"
	"reflect"

	"github.com/contract-ledger/backend/internal/alerts"
	"github.com/contract-ledger/backend/internal/cache"
	"github.com/contract-ledger/backend/internal/ledger"
	"github.com/contract-ledger/backend/pkg/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Controller holds the handles all v1 endpoints work with.
type Controller struct {
	DB      *gorm.DB
	Ledger  *ledger.Ledger
	Scanner *alerts.Scanner
	Cache   cache.Cache
}

// NewController returns a controller with a ledger and an alert scanner
// for the database and no cache.
func NewController(db *gorm.DB, opts ...ledger.Option) Controller {
	return Controller{
		DB:      db,
		Ledger:  ledger.New(db, opts...),
		Scanner: alerts.NewScanner(db),
		Cache:   cache.Noop{},
	}
}

const dashboardKey = "dashboard"

func (co Controller) cache() cache.Cache {
	if co.Cache == nil {
		return cache.Noop{}
	}

	return co.Cache
}

// InvalidateCache drops all cached responses that depend on contracts,
// sub-elements or alerts.
func (co Controller) InvalidateCache(ctx context.Context) error {
	return co.cache().Delete(ctx, dashboardKey)
}

// ScannerOptions returns the options for an alert scanner that
// invalidates the cache of this controller when it creates alerts.
func (co Controller) ScannerOptions(opts ...alerts.Option) []alerts.Option {
	return append(opts, alerts.WithOnCreate(func(ctx context.Context, created []models.Alert) {
		if err := co.InvalidateCache(ctx); err != nil {
			log.Warn().Int("alerts", len(created)).Err(err).Msg("cache invalidation failed")
		}
	}))
}

func (co Controller) invalidate(c *gin.Context) {
	err := co.InvalidateCache(c.Request.Context())
	if err != nil {
		log.Warn().Str("request-id", requestid.Get(c)).Err(err).Msg("cache invalidation failed")
	}
}

// merge copies the named fields from src to dst. dst must be a pointer to
// a struct of the same type as src.
func merge(dst, src any, fields []any) {
	d := reflect.ValueOf(dst).Elem()
	s := reflect.ValueOf(src)

	for _, f := range fields {
		name, ok := f.(string)
		if !ok {
			continue
		}

		field := d.FieldByName(name)
		if !field.IsValid() || !field.CanSet() {
			continue
		}

		field.Set(s.FieldByName(name))
	}
}
