package seeder

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"dashboard-seeder/internal/data"
	"dashboard-seeder/internal/logging"
	"dashboard-seeder/internal/observability"
	"dashboard-seeder/internal/sqlfile"
)

func runConfig(t *testing.T, count int) data.Config {
	t.Helper()
	cfg := data.DefaultConfig()
	cfg.Count = count
	cfg.OutputPath = filepath.Join(t.TempDir(), "insert_fake_data.sql")
	cfg.Now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return cfg
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(raw)
}

func TestRunThreeRecordsFixedSeed(t *testing.T) {
	cfg := runConfig(t, 3)
	res, err := Run(context.Background(), cfg, rand.New(rand.NewSource(2024)))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Records != 3 || res.Path != cfg.OutputPath {
		t.Fatalf("unexpected result %+v", res)
	}

	out := readFile(t, cfg.OutputPath)
	if res.Bytes != len(out) {
		t.Fatalf("Bytes = %d, file has %d", res.Bytes, len(out))
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "-- ") {
		t.Fatalf("missing header comment: %q", lines[0])
	}
	if lines[1] != sqlfile.Preamble() {
		t.Fatalf("preamble = %q", lines[1])
	}
	for i, l := range lines[2:] {
		if !strings.HasPrefix(l, "('") {
			t.Fatalf("tuple %d does not start a literal: %q", i, l)
		}
	}
	if !strings.HasSuffix(lines[2], "),") || !strings.HasSuffix(lines[3], "),") {
		t.Fatalf("tuples not comma separated:\n%s", out)
	}
	if !strings.HasSuffix(out, ");\n") {
		t.Fatalf("statement not terminated by a semicolon:\n%s", out)
	}

	again := runConfig(t, 3)
	again.OutputPath = filepath.Join(t.TempDir(), "again.sql")
	if _, err := Run(context.Background(), again, rand.New(rand.NewSource(2024))); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if readFile(t, again.OutputPath) != out {
		t.Fatalf("same seed and clock produced different artifacts")
	}
}

func TestRunCountsTuples(t *testing.T) {
	cfg := runConfig(t, 250)
	res, err := Run(context.Background(), cfg, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	out := readFile(t, cfg.OutputPath)
	if got := strings.Count(out, "),\n(") + 1; got != 250 {
		t.Fatalf("counted %d tuples, want 250", got)
	}
	total := 0
	for _, n := range res.ByTechnology {
		total += n
	}
	if total != 250 {
		t.Fatalf("ByTechnology sums to %d", total)
	}
	if !strings.Contains(res.Confirmation(), cfg.OutputPath) || !strings.Contains(res.Confirmation(), "250 records") {
		t.Fatalf("confirmation = %q", res.Confirmation())
	}
}

func TestRunOverwritesPreviousArtifact(t *testing.T) {
	cfg := runConfig(t, 50)
	if _, err := Run(context.Background(), cfg, rand.New(rand.NewSource(1))); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	first := readFile(t, cfg.OutputPath)
	firstTuple := strings.Split(first, "\n")[2]

	cfg.Count = 2
	if _, err := Run(context.Background(), cfg, rand.New(rand.NewSource(2))); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	second := readFile(t, cfg.OutputPath)
	if strings.Contains(second, strings.TrimSuffix(firstTuple, ",")) {
		t.Fatalf("second artifact still contains first run's tuples")
	}
	if len(second) >= len(first) {
		t.Fatalf("second artifact (%d bytes) not shorter than first (%d)", len(second), len(first))
	}
}

func TestRunRejectsZeroCountWithoutWriting(t *testing.T) {
	cfg := runConfig(t, 0)
	_, err := Run(context.Background(), cfg, rand.New(rand.NewSource(1)))
	if !errors.Is(err, data.ErrInvalidCount) {
		t.Fatalf("err = %v, want ErrInvalidCount", err)
	}
	if _, statErr := os.Stat(cfg.OutputPath); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("artifact written for invalid count: %v", statErr)
	}
}

func TestRunSurfacesWriteFailure(t *testing.T) {
	cfg := runConfig(t, 1)
	cfg.OutputPath = filepath.Join(t.TempDir(), "no", "such", "dir", "out.sql")

	var logs bytes.Buffer
	logger := logging.New(logging.Config{Format: "json", Output: &logs})
	_, err := Run(context.Background(), cfg, rand.New(rand.NewSource(1)), WithLogger(logger))
	if !errors.Is(err, sqlfile.ErrArtifactWrite) {
		t.Fatalf("err = %v, want ErrArtifactWrite", err)
	}
	if !strings.Contains(logs.String(), `"msg":"write artifact"`) {
		t.Fatalf("write failure not logged: %s", logs.String())
	}
}

func TestRunRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := observability.NewSeederCollector(reg)
	if err != nil {
		t.Fatalf("NewSeederCollector: %v", err)
	}
	cfg := runConfig(t, 40)
	res, err := Run(context.Background(), cfg, rand.New(rand.NewSource(8)), WithMetrics(collector))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for name, n := range res.ByTechnology {
		if got := testutil.ToFloat64(collector.RecordsGenerated.WithLabelValues(name)); got != float64(n) {
			t.Fatalf("%s counter = %v, want %d", name, got, n)
		}
	}
	if got := testutil.ToFloat64(collector.ArtifactBytes); got != float64(res.Bytes) {
		t.Fatalf("artifact bytes = %v, want %d", got, res.Bytes)
	}
}

func TestRunWritesMetricsTextfile(t *testing.T) {
	cfg := runConfig(t, 5)
	cfg.MetricsTextfile = filepath.Join(t.TempDir(), "seeder.prom")
	if _, err := Run(context.Background(), cfg, rand.New(rand.NewSource(3))); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(readFile(t, cfg.MetricsTextfile), "seeder_artifact_bytes") {
		t.Fatalf("textfile missing seeder metrics")
	}
}
