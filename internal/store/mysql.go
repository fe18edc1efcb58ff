// Package store applies a generated SQL artifact to the dashboard database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// ErrEmptyArtifact is returned when the artifact has no statement to run.
var ErrEmptyArtifact = errors.New("artifact contains no SQL statement")

// Options describe how to reach the dashboard's MySQL server.
type Options struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	Timeout  time.Duration
}

// DSN builds a go-sql-driver DSN from o.
func (o Options) DSN() string {
	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", o.Host, o.Port)
	cfg.User = o.User
	cfg.Passwd = o.Password
	cfg.DBName = o.Database
	cfg.ParseTime = true
	if o.Timeout > 0 {
		cfg.Timeout = o.Timeout
	}
	return cfg.FormatDSN()
}

// Open connects to MySQL and verifies the connection with a ping.
func Open(ctx context.Context, o Options) (*sql.DB, error) {
	db, err := sql.Open("mysql", o.DSN())
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql %s:%d: %w", o.Host, o.Port, err)
	}
	return db, nil
}

// Execer is satisfied by *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// StatementFromArtifact strips "--" comment lines and surrounding blanks so
// the remaining text is the single INSERT statement.
func StatementFromArtifact(content string) (string, error) {
	var b strings.Builder
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	stmt := strings.TrimSpace(b.String())
	if stmt == "" || stmt == ";" {
		return "", ErrEmptyArtifact
	}
	return stmt, nil
}

// LoadFile executes the statement in the artifact at path and returns the
// number of rows inserted.
func LoadFile(ctx context.Context, db Execer, path string) (int64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read artifact: %w", err)
	}
	stmt, err := StatementFromArtifact(string(raw))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	res, err := db.ExecContext(ctx, stmt)
	if err != nil {
		return 0, fmt.Errorf("execute %s: %w", path, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
