package loader

import (
	"FlowTagger/internal/model"
	"strings"
)

var lookupColumns = []string{"dstport", "protocol", "tag"}

// LoadLookupTable builds the port/protocol to tag mapping. The protocol is
// lowercased, the port and tag are kept as written. Later rows win.
func LoadLookupTable(path string) (model.LookupTable, error) {
	table := make(model.LookupTable)
	err := readColumns(path, lookupColumns, func(values []string) {
		key := model.LookupKey{DstPort: values[0], Protocol: strings.ToLower(values[1])}
		table[key] = values[2]
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}
