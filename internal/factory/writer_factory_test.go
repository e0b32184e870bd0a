package factory

import (
	"FlowTagger/internal/config"
	"FlowTagger/internal/model"
	"context"
	"errors"
	"strings"
	"testing"
)

type stubWriter struct {
	name   string
	closed bool
}

func (w *stubWriter) Name() string { return w.name }

func (w *stubWriter) Write(context.Context, *model.Report) error { return nil }

func (w *stubWriter) Close() error {
	w.closed = true
	return nil
}

var created []*stubWriter

type writerNameKey struct{}

func init() {
	RegisterWriter("stub", func(_ context.Context, def config.WriterDef) (model.Writer, error) {
		w := &stubWriter{name: def.NATS.Subject}
		created = append(created, w)
		return w, nil
	})
	RegisterWriter("broken", func(context.Context, config.WriterDef) (model.Writer, error) {
		return nil, errors.New("connection refused")
	})
	RegisterWriter("dialing", func(ctx context.Context, def config.WriterDef) (model.Writer, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name, _ := ctx.Value(writerNameKey{}).(string)
		return &stubWriter{name: name}, nil
	})
}

func TestCreate_SkipsDisabled(t *testing.T) {
	created = nil
	writers, err := Create(context.Background(), []config.WriterDef{
		{Type: "stub", Enabled: true, NATS: config.NATSConfig{Subject: "a"}},
		{Type: "stub", Enabled: false, NATS: config.NATSConfig{Subject: "b"}},
		{Type: "does-not-exist", Enabled: false},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(writers) != 1 || writers[0].Name() != "a" {
		t.Fatalf("Expected only writer 'a' to be created, got %d writers", len(writers))
	}
}

func TestCreate_UnknownType(t *testing.T) {
	created = nil
	_, err := Create(context.Background(), []config.WriterDef{
		{Type: "stub", Enabled: true},
		{Type: "does-not-exist", Enabled: true},
	})
	if err == nil || !strings.Contains(err.Error(), "unknown writer type") {
		t.Fatalf("Expected unknown writer type error, got %v", err)
	}
	if len(created) != 1 || !created[0].closed {
		t.Error("Expected the writer created before the failure to be closed")
	}
}

func TestCreate_FactoryError(t *testing.T) {
	created = nil
	_, err := Create(context.Background(), []config.WriterDef{
		{Type: "stub", Enabled: true},
		{Type: "broken", Enabled: true},
	})
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("Expected factory error to be returned, got %v", err)
	}
	if len(created) != 1 || !created[0].closed {
		t.Error("Expected the writer created before the failure to be closed")
	}
}

func TestCreate_PassesContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), writerNameKey{}, "from-context")
	writers, err := Create(ctx, []config.WriterDef{{Type: "dialing", Enabled: true}})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(writers) != 1 || writers[0].Name() != "from-context" {
		t.Fatalf("Expected the factory to receive the caller's context, got %d writers", len(writers))
	}
}

func TestCreate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Create(ctx, []config.WriterDef{{Type: "dialing", Enabled: true}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
}

func TestRegisterWriter_DuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected duplicate registration to panic")
		}
	}()
	RegisterWriter("stub", nil)
}
