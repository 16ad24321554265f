// Package database provides database connection management.
package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"github.com/at-ishikawa/guanwo/internal/config"
)

// Open opens a connection for the configured driver.
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)
	switch cfg.Driver {
	case config.DriverMySQL:
		db, err = openMySQL(cfg)
	case config.DriverSQLite:
		db, err = openSQLite(cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}

	return db, nil
}

func openMySQL(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	mysqlCfg := mysql.NewConfig()
	mysqlCfg.User = cfg.Username
	mysqlCfg.Passwd = cfg.Password
	mysqlCfg.Net = "tcp"
	mysqlCfg.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	mysqlCfg.DBName = cfg.Database
	mysqlCfg.ParseTime = true
	mysqlCfg.Loc = time.UTC
	mysqlCfg.MultiStatements = true
	// Affected rows count matched rows so compare-and-swap updates can be checked.
	mysqlCfg.ClientFoundRows = true
	if cfg.TLS {
		mysqlCfg.TLSConfig = "true"
	}
	if len(cfg.Params) > 0 {
		mysqlCfg.Params = cfg.Params
	}

	db, err := sqlx.Open(config.DriverMySQL, mysqlCfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("open database connection: %w", err)
	}
	return db, nil
}

// openSQLite opens a file database with foreign keys on and write
// transactions taking the lock at BEGIN, so read-check-write sequences
// inside RunInTx are serialized.
func openSQLite(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	params := url.Values{}
	params.Set("_foreign_keys", "on")
	params.Set("_txlock", "immediate")
	params.Set("_journal_mode", "WAL")
	if cfg.BusyTimeoutMS > 0 {
		params.Set("_busy_timeout", strconv.Itoa(cfg.BusyTimeoutMS))
	}
	for k, v := range cfg.Params {
		params.Set(k, v)
	}

	dsn := "file:" + cfg.Path + "?" + params.Encode()
	db, err := sqlx.Open(config.DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database connection: %w", err)
	}
	return db, nil
}

// RunInTx runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back; otherwise, it is committed.
func RunInTx(ctx context.Context, db *sqlx.DB, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback transaction: %w (original error: %v)", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// IsUniqueViolation reports whether err is a duplicate key error from MySQL or SQLite.
func IsUniqueViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// LowestFreeSlot returns the smallest slot in 1..maxSlots not in used, or 0
// when every slot is taken.
func LowestFreeSlot(used []int, maxSlots int) int {
	for slot := 1; slot <= maxSlots; slot++ {
		if !slices.Contains(used, slot) {
			return slot
		}
	}
	return 0
}

// Timestamp normalizes t to the precision stored by both drivers.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// NullString converts an optional string to a nullable column value.
func NullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// MultiRowInsert builds a multi-row INSERT query.
func MultiRowInsert(table string, columns []string, rowCount int) string {
	placeholder := "(" + strings.Repeat("?, ", len(columns)-1) + "?)"
	values := strings.Repeat(placeholder+", ", rowCount-1) + placeholder
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", table, strings.Join(columns, ", "), values)
}
