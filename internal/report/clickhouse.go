package report

import (
	"FlowTagger/internal/config"
	"FlowTagger/internal/factory"
	"FlowTagger/internal/model"
	"context"
	"fmt"
	"log"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

const defaultTable = "flow_tag_counts"

const createTableStatement = `
CREATE TABLE IF NOT EXISTS %s (
    Timestamp DateTime,
    Section   LowCardinality(String),
    Position  UInt32,
    Tag       Nullable(String),
    DstPort   Nullable(String),
    Protocol  Nullable(String),
    Count     UInt64
) ENGINE = MergeTree()
PARTITION BY toYYYYMM(Timestamp)
ORDER BY (Timestamp, Section, Position);
`

// Sections of a report row.
const (
	SectionTag          = "tag"
	SectionPortProtocol = "port_protocol"
)

func init() {
	factory.RegisterWriter("clickhouse", func(ctx context.Context, def config.WriterDef) (model.Writer, error) {
		return NewClickHouseWriter(ctx, def.ClickHouse)
	})
}

// reportRow is one line of either report section as stored in ClickHouse.
type reportRow struct {
	Section  string
	Position uint32
	Tag      *string
	DstPort  *string
	Protocol *string
	Count    uint64
}

// ClickHouseWriter implements the model.Writer interface for ClickHouse.
type ClickHouseWriter struct {
	conn  driver.Conn
	table string
}

// NewClickHouseWriter connects to ClickHouse and ensures the report table exists.
func NewClickHouseWriter(ctx context.Context, cfg config.ClickHouseConfig) (model.Writer, error) {
	conn, err := connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to clickhouse: %w", err)
	}

	table := cfg.Table
	if table == "" {
		table = defaultTable
	}

	if err := conn.Exec(ctx, fmt.Sprintf(createTableStatement, table)); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	log.Printf("Connected to ClickHouse and ensured table '%s' exists.", table)

	return &ClickHouseWriter{conn: conn, table: table}, nil
}

func connect(ctx context.Context, cfg config.ClickHouseConfig) (driver.Conn, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}

	return conn, nil
}

func (w *ClickHouseWriter) Name() string {
	return "clickhouse"
}

// Write inserts one row per tag and one per port/protocol combination.
func (w *ClickHouseWriter) Write(ctx context.Context, report *model.Report) error {
	rows := buildRows(report.Counts)
	if len(rows) == 0 {
		return nil
	}

	batch, err := w.conn.PrepareBatch(ctx, "INSERT INTO "+w.table)
	if err != nil {
		return fmt.Errorf("failed to prepare batch: %w", err)
	}

	ts := report.GeneratedAt.UTC()
	for _, row := range rows {
		err = batch.Append(ts, row.Section, row.Position, row.Tag, row.DstPort, row.Protocol, row.Count)
		if err != nil {
			return fmt.Errorf("failed to append row to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}

	log.Printf("Wrote %d report rows to ClickHouse table '%s'", len(rows), w.table)
	return nil
}

func (w *ClickHouseWriter) Close() error {
	return w.conn.Close()
}

// buildRows flattens both sections, keeping report order in Position.
func buildRows(counts *model.Counts) []reportRow {
	rows := make([]reportRow, 0, counts.Tags.Len()+counts.PortProtocols.Len())

	var pos uint32
	for tag, n := range counts.Tags.All() {
		rows = append(rows, reportRow{Section: SectionTag, Position: pos, Tag: &tag, Count: uint64(n)})
		pos++
	}

	pos = 0
	for key, n := range counts.PortProtocols.All() {
		rows = append(rows, reportRow{
			Section:  SectionPortProtocol,
			Position: pos,
			DstPort:  &key.DstPort,
			Protocol: &key.Protocol,
			Count:    uint64(n),
		})
		pos++
	}

	return rows
}
