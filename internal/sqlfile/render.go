package sqlfile

import (
	"errors"
	"strconv"
	"strings"

	"dashboard-seeder/internal/data"
)

// Table is the dashboard table the statement targets.
const Table = "speed_tests"

// Columns is the fixed column order of every tuple. The dashboard schema
// depends on these names.
var Columns = []string{
	"test_id",
	"timestamp",
	"operator",
	"network_type",
	"download_mbps",
	"upload_mbps",
	"latency_ms",
	"signal_strength_dbm",
	"device_type",
	"wilaya",
	"commune",
	"latitude",
	"longitude",
}

// ErrNoRecords is returned when asked to render a statement without rows.
var ErrNoRecords = errors.New("no records to render")

// Preamble returns the INSERT header line without a trailing newline.
func Preamble() string {
	return "INSERT INTO " + Table + " (" + strings.Join(Columns, ", ") + ") VALUES"
}

// Tuple renders r as a parenthesized literal in Columns order.
func Tuple(r data.Record) string {
	var b strings.Builder
	b.Grow(192)
	b.WriteByte('(')
	writeString(&b, r.TestID)
	b.WriteString(", ")
	writeString(&b, r.FormattedTimestamp())
	b.WriteString(", ")
	writeString(&b, r.Operator)
	b.WriteString(", ")
	writeString(&b, r.NetworkType)
	b.WriteString(", ")
	b.WriteString(strconv.FormatFloat(r.DownloadMbps, 'f', 2, 64))
	b.WriteString(", ")
	b.WriteString(strconv.FormatFloat(r.UploadMbps, 'f', 2, 64))
	b.WriteString(", ")
	b.WriteString(strconv.FormatFloat(r.LatencyMs, 'f', 2, 64))
	b.WriteString(", ")
	b.WriteString(strconv.Itoa(r.SignalStrengthDBm))
	b.WriteString(", ")
	writeString(&b, r.DeviceType)
	b.WriteString(", ")
	writeString(&b, r.Wilaya)
	b.WriteString(", ")
	writeString(&b, r.Commune)
	b.WriteString(", ")
	b.WriteString(strconv.FormatFloat(r.Latitude, 'f', 6, 64))
	b.WriteString(", ")
	b.WriteString(strconv.FormatFloat(r.Longitude, 'f', 6, 64))
	b.WriteByte(')')
	return b.String()
}

// Statement renders the full artifact: a comment line, the preamble, one
// tuple per record joined by ",\n", and a terminating semicolon.
func Statement(comment string, records []data.Record) (string, error) {
	if len(records) == 0 {
		return "", ErrNoRecords
	}
	var b strings.Builder
	b.Grow(256 + len(records)*200)
	if comment != "" {
		b.WriteString("-- ")
		b.WriteString(strings.ReplaceAll(comment, "\n", " "))
		b.WriteByte('\n')
	}
	b.WriteString(Preamble())
	b.WriteByte('\n')
	for i, r := range records {
		if i > 0 {
			b.WriteString(",\n")
		}
		b.WriteString(Tuple(r))
	}
	b.WriteString(";\n")
	return b.String(), nil
}

// Quote returns s as a single-quoted SQL string literal. Quotes are doubled
// and backslashes escaped so the literal is safe under MySQL's default
// sql_mode.
func Quote(s string) string {
	var b strings.Builder
	writeString(&b, s)
	return b.String()
}

func writeString(b *strings.Builder, s string) {
	b.WriteByte('\'')
	if strings.ContainsAny(s, `'\`) {
		for i := 0; i < len(s); i++ {
			switch c := s[i]; c {
			case '\'':
				b.WriteString("''")
			case '\\':
				b.WriteString(`\\`)
			default:
				b.WriteByte(c)
			}
		}
	} else {
		b.WriteString(s)
	}
	b.WriteByte('\'')
}
