package report

import (
	"FlowTagger/internal/config"
	"FlowTagger/internal/factory"
	"FlowTagger/internal/model"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const flushTimeout = 5 * time.Second

func init() {
	factory.RegisterWriter("nats", func(ctx context.Context, def config.WriterDef) (model.Writer, error) {
		return NewNATSWriter(ctx, def.NATS)
	})
}

// NATSWriter publishes the report as a protobuf message to a NATS subject.
type NATSWriter struct {
	nc      *nats.Conn
	subject string
}

// NewNATSWriter creates a new NATS writer. The connect attempt is bounded by
// ctx's deadline when it has one.
func NewNATSWriter(ctx context.Context, cfg config.NATSConfig) (model.Writer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts := []nats.Option{nats.Name("flow-tagger")}
	if deadline, ok := ctx.Deadline(); ok {
		opts = append(opts, nats.Timeout(time.Until(deadline)))
	}
	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, err
	}
	log.Printf("Connected to NATS server at %s", cfg.URL)
	return &NATSWriter{nc: nc, subject: cfg.Subject}, nil
}

func (w *NATSWriter) Name() string {
	return "nats"
}

// Write publishes the report and waits for the server to acknowledge the flush.
func (w *NATSWriter) Write(ctx context.Context, report *model.Report) error {
	data, err := encodeReport(report)
	if err != nil {
		return err
	}

	if err := w.nc.Publish(w.subject, data); err != nil {
		return fmt.Errorf("failed to publish report: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, flushTimeout)
	defer cancel()
	if err := w.nc.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}

	log.Printf("Published report (%d bytes) to '%s'", len(data), w.subject)
	return nil
}

// Close drains and closes the NATS connection.
func (w *NATSWriter) Close() error {
	return w.nc.Drain()
}

// encodeReport serializes the report to a structpb.Struct in binary form.
func encodeReport(report *model.Report) ([]byte, error) {
	counts := report.Counts

	tags := make([]any, 0, counts.Tags.Len())
	for tag, n := range counts.Tags.All() {
		tags = append(tags, map[string]any{"tag": tag, "count": n})
	}

	ports := make([]any, 0, counts.PortProtocols.Len())
	for key, n := range counts.PortProtocols.All() {
		ports = append(ports, map[string]any{"port": key.DstPort, "protocol": key.Protocol, "count": n})
	}

	msg, err := structpb.NewStruct(map[string]any{
		"generated_at":         report.GeneratedAt.UTC().Format(time.RFC3339),
		"records":              counts.Records,
		"counted":              counts.Counted,
		"tag_counts":           tags,
		"port_protocol_counts": ports,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build report message: %w", err)
	}

	data, err := proto.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report message: %w", err)
	}
	return data, nil
}
