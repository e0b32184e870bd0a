package manager

import (
	"FlowTagger/internal/config"
	"FlowTagger/internal/engine/aggregator"
	"FlowTagger/internal/factory"
	"FlowTagger/internal/loader"
	"FlowTagger/internal/model"
	"FlowTagger/internal/report"
	"context"
	"fmt"
	"log"
	"time"
)

// Manager runs one tagging job: load inputs, aggregate, hand the report to
// every writer.
type Manager struct {
	cfg        *config.Config
	aggregator *aggregator.TagAggregator
	writers    []model.Writer
}

// NewManager creates a Manager with the text writer and every enabled extra
// writer. ctx bounds the writers' connection setup.
func NewManager(ctx context.Context, cfg *config.Config) (*Manager, error) {
	extra, err := factory.Create(ctx, cfg.Writers)
	if err != nil {
		return nil, err
	}

	writers := append([]model.Writer{report.NewTextWriter(cfg.Output.Path)}, extra...)

	return &Manager{
		cfg:        cfg,
		aggregator: aggregator.New(cfg.Fields),
		writers:    writers,
	}, nil
}

// Run executes the job. Nothing is written unless every input loads and the
// aggregation succeeds.
func (m *Manager) Run(ctx context.Context) (*model.Report, error) {
	protocols, err := m.loadProtocols()
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %d protocol numbers.", len(protocols))

	records, err := loader.ReadFlowLog(m.cfg.Inputs.FlowLogFile)
	if err != nil {
		return nil, err
	}
	log.Printf("Read %d flow records from '%s'.", len(records), m.cfg.Inputs.FlowLogFile)

	lookup, err := loader.LoadLookupTable(m.cfg.Inputs.LookupTableFile)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %d lookup entries.", len(lookup))

	counts, err := m.aggregator.Aggregate(records, lookup, protocols)
	if err != nil {
		return nil, err
	}
	untagged, _ := counts.Tags.Get(model.UntaggedTag)
	log.Printf("Counted %d of %d records: %d tagged, %d untagged.",
		counts.Counted, counts.Records, counts.Tags.Total()-untagged, untagged)

	rep := &model.Report{GeneratedAt: time.Now(), Counts: counts}
	for _, w := range m.writers {
		if err := w.Write(ctx, rep); err != nil {
			return nil, fmt.Errorf("writer '%s' failed: %w", w.Name(), err)
		}
	}

	return rep, nil
}

func (m *Manager) loadProtocols() (model.ProtocolTable, error) {
	if m.cfg.Inputs.ProtocolFile == "" {
		log.Println("No protocol file configured, using the built-in protocol registry.")
		return loader.BuiltinProtocolTable(), nil
	}
	return loader.LoadProtocolTable(m.cfg.Inputs.ProtocolFile)
}

// Close closes every writer.
func (m *Manager) Close() {
	for _, w := range m.writers {
		if err := w.Close(); err != nil {
			log.Printf("Error closing writer '%s': %v", w.Name(), err)
		}
	}
}
