package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"dashboard-seeder/internal/data"
	"dashboard-seeder/internal/logging"
	"dashboard-seeder/internal/sqlfile"
	"dashboard-seeder/internal/store"
)

func main() {
	path := data.DefaultConfig().OutputPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	port, err := strconv.Atoi(getenv("DB_PORT", "3306"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid DB_PORT: %v\n", err)
		os.Exit(1)
	}
	opts := store.Options{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     port,
		User:     getenv("DB_USER", "root"),
		Password: os.Getenv("DB_PASSWORD"),
		Database: getenv("DB_NAME", "dashboard"),
		Timeout:  10 * time.Second,
	}

	log := logging.NewFromEnv()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx, log = logging.WithRunLogger(ctx, log)

	db, err := store.Open(ctx, opts)
	if err != nil {
		log.Error(ctx, "connect", logging.Err(err))
		os.Exit(1)
	}
	defer db.Close()

	rows, err := store.LoadFile(ctx, db, path)
	if err != nil {
		log.Error(ctx, "load artifact", logging.String("path", path), logging.Err(err))
		os.Exit(1)
	}
	fmt.Printf("Loaded %s into %s.%s (%d rows)\n", path, opts.Database, sqlfile.Table, rows)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
