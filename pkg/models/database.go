package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// SQLite primary result codes for lock contention.
const (
	sqliteBusy   = 5
	sqliteLocked = 6
)

type ContextKey string

const (
	ContextURL ContextKey = "contract-ledger-url"
)

// Connect opens the database with the given driver, migrates the schema
// and registers the error translation callbacks.
func Connect(driver, dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: &logger{
			Logger: log.Logger,
		},
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		TranslateError: true,
	}

	var db *gorm.DB
	var err error

	switch driver {
	case DriverPostgres:
		db, err = connectPostgres(dsn, config)
	case DriverSQLite, "":
		db, err = connectSQLite(dsn, config)
	default:
		return nil, fmt.Errorf("unsupported database driver '%s'", driver)
	}

	if err != nil {
		return nil, err
	}

	err = registerCallbacks(db)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func connectPostgres(dsn string, config *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = Migrate(db)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func connectSQLite(dsn string, config *gorm.Config) (*gorm.DB, error) {
	// Migration with foreign keys disabled since sqlite does not support
	// ALTER COLUMN: tables are copied to a temporary table, then the table
	// is dropped and recreated
	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = Migrate(db)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.Close()

	// Now, reconnect with foreign keys enabled
	dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)
	db, err = gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err = db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// A single connection serializes all writers and prevents SQLITE_BUSY
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func registerCallbacks(db *gorm.DB) error {
	// Query callbacks
	err := db.Callback().Query().After("*").Register("contract_ledger:after_query", queryCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Query().After("*").Register("contract_ledger:after_query_general", generalCallback)
	if err != nil {
		return err
	}

	// Create callbacks
	err = db.Callback().Create().After("*").Register("contract_ledger:after_create", createUpdateCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Create().After("*").Register("contract_ledger:after_create_general", generalCallback)
	if err != nil {
		return err
	}

	// Update callbacks
	err = db.Callback().Update().After("*").Register("contract_ledger:after_update", createUpdateCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Update().After("*").Register("contract_ledger:after_update_general", generalCallback)
	if err != nil {
		return err
	}

	// Delete callbacks
	err = db.Callback().Delete().After("*").Register("contract_ledger:after_delete_general", generalCallback)
	if err != nil {
		return err
	}

	return db.Callback().Raw().After("*").Register("contract_ledger:after_raw_general", generalCallback)
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as fallback
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")
		if m, ok := db.Statement.Model.(interface{ Self() string }); ok {
			name = strings.ToLower(m.Self())
		}

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if errors.Is(db.Error, gorm.ErrDuplicatedKey) {
		switch db.Statement.Table {
		case User{}.TableName():
			db.Error = ErrUserEmailNotUnique
		case Configuration{}.TableName():
			db.Error = ErrConfigurationKeyNotUnique
		}
		return
	}

	if errors.Is(db.Error, gorm.ErrForeignKeyViolated) {
		db.Error = ErrReferenceInvalid
	}
}

// generalCallback handles unspecified errors.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	db.Error = TranslateError(db.Error)
}

// TranslateError converts driver errors into the errors of this package.
// It is applied to all errors passing through gorm callbacks and must be
// called for errors that bypass them, e.g. when beginning or committing
// a transaction.
//
// Lock contention is reported as ErrDatabaseBusy so that callers can retry.
// Numeric overflows are reported as ErrValueOutOfRange.
// For all other driver errors, we cannot provide the user with a helpful
// message. Instead, the error is logged and we return a general message to users.
func TranslateError(err error) error {
	if err == nil || errors.Is(err, ErrGeneral) || errors.Is(err, ErrDatabaseBusy) || errors.Is(err, ErrValueOutOfRange) {
		return err
	}

	if IsBusy(err) {
		return fmt.Errorf("%w: %s", ErrDatabaseBusy, err.Error())
	}

	// numeric_value_out_of_range
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "22003" {
		return fmt.Errorf("%w: %s", ErrValueOutOfRange, pgErr.Message)
	}

	// "sql: database is closed" is hard-coded in the sql module, see
	// https://cs.opensource.google/go/go/+/master:src/database/sql/sql.go;l=1298;drc=0d018b49e33b1383dc0ae5cc968e800dffeeaf7d
	var sqliteErr *go_sqlite.Error
	if err.Error() == "sql: database is closed" || errors.As(err, &sqliteErr) || errors.As(err, &pgErr) {
		// A general error where we cannot provide more useful information to the end user
		// We log the error and provide a general error message so that server admins can debug
		log.Error().Msgf("%T: %v", err, err.Error())
		return ErrGeneral
	}

	return err
}

// IsBusy reports if the error is caused by lock contention or a
// serialization failure that can succeed when retried.
func IsBusy(err error) bool {
	if errors.Is(err, ErrDatabaseBusy) {
		return true
	}

	var sqliteErr *go_sqlite.Error
	if errors.As(err, &sqliteErr) {
		// Extended result codes carry the primary code in the lower byte
		code := sqliteErr.Code() & 0xff
		return code == sqliteBusy || code == sqliteLocked
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03":
			return true
		}
	}

	return false
}

// Migrate migrates all models to the schema defined in the code and
// creates the default configurations.
func Migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(User{}, Contract{}, SubElement{}, Alert{}, Configuration{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return SeedConfigurations(db)
}
