// Package database opens the optional MySQL connection used by the
// placement-event consumer as an audit sink. The allocation engine
// itself keeps all state in memory; nothing here is read back into it.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// OpenFromEnv connects to MySQL using DB_USER, DB_PASS, DB_HOST,
// DB_PORT and DB_NAME. When DB_HOST is unset the audit sink is
// considered disabled and (nil, nil) is returned; callers fall back
// to file logging.
func OpenFromEnv() (*sql.DB, error) {
	host := os.Getenv("DB_HOST")
	if host == "" {
		return nil, nil
	}
	auth := os.Getenv("DB_USER")
	if pass := os.Getenv("DB_PASS"); pass != "" {
		auth = fmt.Sprintf("%s:%s", auth, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, os.Getenv("DB_PORT"), os.Getenv("DB_NAME"))

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// A single consumer goroutine writes audit rows; a small pool is enough.
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureAuditTable creates the placement_audit table when it does not
// exist yet so the consumer can insert without a migration step.
func EnsureAuditTable(ctx context.Context, db *sql.DB) error {
	const ddl = `CREATE TABLE IF NOT EXISTS placement_audit (
	    id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
	    patient_id VARCHAR(32) NOT NULL,
	    patient_name VARCHAR(255) NOT NULL,
	    bed_id VARCHAR(32) NOT NULL,
	    bed_number VARCHAR(16) NOT NULL,
	    ward VARCHAR(64) NOT NULL,
	    severity TINYINT NOT NULL,
	    waiting_hours DOUBLE NOT NULL,
	    admission_date VARCHAR(10) NOT NULL,
	    expected_discharge VARCHAR(10) NOT NULL,
	    placed_at VARCHAR(32) NOT NULL,
	    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	_, err := db.ExecContext(ctx, ddl)
	return err
}
