package factory

import (
	"FlowTagger/internal/config"
	"FlowTagger/internal/model"
	"context"
	"fmt"
	"log"
)

// WriterFactory defines a function that creates a writer from its config
// definition. ctx bounds any connection the writer opens.
type WriterFactory func(ctx context.Context, def config.WriterDef) (model.Writer, error)

// registry holds the mapping of writer types to their factory functions.
var registry = make(map[string]WriterFactory)

// RegisterWriter registers a new writer type with its factory function.
func RegisterWriter(name string, factory WriterFactory) {
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("writer type '%s' already registered", name))
	}
	registry[name] = factory
}

// Create builds a writer for every enabled definition. If any writer fails,
// the ones already created are closed.
func Create(ctx context.Context, defs []config.WriterDef) ([]model.Writer, error) {
	var writers []model.Writer

	for _, def := range defs {
		if !def.Enabled {
			continue
		}
		log.Printf("Creating writer of type '%s'\n", def.Type)

		factory, ok := registry[def.Type]
		if !ok {
			closeAll(writers)
			return nil, fmt.Errorf("unknown writer type: '%s'", def.Type)
		}

		w, err := factory(ctx, def)
		if err != nil {
			closeAll(writers)
			return nil, fmt.Errorf("error creating writer type '%s': %w", def.Type, err)
		}

		writers = append(writers, w)
	}

	return writers, nil
}

func closeAll(writers []model.Writer) {
	for _, w := range writers {
		if err := w.Close(); err != nil {
			log.Printf("Error closing writer '%s': %v", w.Name(), err)
		}
	}
}
