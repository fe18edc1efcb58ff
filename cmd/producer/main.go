package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"dashboard-seeder/internal/data"
	kclient "dashboard-seeder/internal/kafka"
	"dashboard-seeder/internal/logging"
)

const batchSize = 500

func main() {
	start := time.Now()
	brokers := getenv("KAFKA_BROKERS", "kafka:9092")
	topic := getenv("SPEED_TEST_TOPIC", "speed_tests")

	log := logging.NewFromEnv()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, log = logging.WithRunLogger(ctx, log)

	cfg := data.DefaultConfig()
	if v := os.Getenv("RECORD_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid RECORD_COUNT %q: %v\n", v, err)
			os.Exit(1)
		}
		cfg.Count = n
	}

	synth, err := data.NewSynthesizer(cfg, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	records, err := synth.Generate(cfg.Count)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate error: %v\n", err)
		os.Exit(1)
	}

	writer := kclient.NewWriter([]string{brokers}, topic)
	defer writer.Close()

	log.Info(ctx, "publishing records",
		logging.String("brokers", brokers),
		logging.String("topic", topic),
		logging.Int("count", len(records)))

	sent, err := kclient.Publish(ctx, writer, records, batchSize)
	if err != nil {
		log.Error(ctx, "publish failed", logging.Int("sent", sent), logging.Err(err))
		os.Exit(1)
	}
	fmt.Printf("Published %d records to %s in %s\n", sent, topic, time.Since(start))
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
