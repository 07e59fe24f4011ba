package db

import "errors"

var (
	ErrFailedToParseConfig   = errors.New("db: failed to parse database configuration")
	ErrFailedToOpenConn      = errors.New("db: failed to open database connection")
	ErrHealthcheckFailed     = errors.New("db: healthcheck failed")
	ErrSetDialect            = errors.New("db migrator: failed to set dialect")
	ErrApplyMigrations       = errors.New("db migrator: failed to apply migrations")
	ErrBuilderMissingTable   = errors.New("db builder: no table specified")
	ErrBuilderMissingValues  = errors.New("db builder: no values specified")
	ErrBuilderMissingFilters = errors.New("db builder: refusing to run without where clause")
)
