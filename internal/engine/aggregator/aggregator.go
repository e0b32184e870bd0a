package aggregator

import (
	"FlowTagger/internal/config"
	"FlowTagger/internal/model"
	"fmt"
)

// TagAggregator joins flow records against the lookup table and counts them
// per tag and per port/protocol combination.
type TagAggregator struct {
	dstPortIndex  int
	protocolIndex int
	minFields     int
}

// New creates an aggregator for the given record layout.
func New(fields config.FieldsConfig) *TagAggregator {
	return &TagAggregator{
		dstPortIndex:  fields.DstPortIndex,
		protocolIndex: fields.ProtocolIndex,
		minFields:     fields.MinFields,
	}
}

// Aggregate counts every record with enough fields. Records that are too
// short are ignored. A protocol number missing from the protocol table aborts
// the whole pass with model.ErrLookup.
func (a *TagAggregator) Aggregate(records []model.FlowRecord, lookup model.LookupTable, protocols model.ProtocolTable) (*model.Counts, error) {
	counts := model.NewCounts()
	counts.Records = len(records)

	for i, record := range records {
		if len(record) < a.minFields {
			continue
		}

		key, err := a.generateKey(record, protocols)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}

		if tag, ok := lookup[key]; ok {
			counts.Tags.Inc(tag)
		} else {
			counts.Tags.Inc(model.UntaggedTag)
		}
		counts.PortProtocols.Inc(key)
		counts.Counted++
	}

	return counts, nil
}

// generateKey resolves the record's protocol number and builds its lookup key.
func (a *TagAggregator) generateKey(record model.FlowRecord, protocols model.ProtocolTable) (model.LookupKey, error) {
	number := record[a.protocolIndex]
	keyword, ok := protocols[number]
	if !ok {
		return model.LookupKey{}, fmt.Errorf("%w: unknown protocol number '%s'", model.ErrLookup, number)
	}
	return model.LookupKey{DstPort: record[a.dstPortIndex], Protocol: keyword}, nil
}
