package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"dashboard-seeder/internal/data"
	"dashboard-seeder/internal/logging"
	"dashboard-seeder/internal/seeder"
)

func main() {
	cfg := data.DefaultConfig()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	// stdout carries only the confirmation line; diagnostics go to stderr.
	logger := logging.New(logging.Config{Level: "warn"})

	res, err := seeder.Run(context.Background(), cfg, rng, seeder.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "seeder: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(res.Confirmation())
}
