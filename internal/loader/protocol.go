package loader

import (
	"FlowTagger/internal/model"
	"strconv"
	"strings"

	"github.com/google/gopacket/layers"
)

var protocolColumns = []string{"decimal", "keyword"}

// LoadProtocolTable builds the protocol number to keyword mapping from a
// comma-separated reference file such as IANA's protocol-numbers-1.csv.
// Later rows overwrite earlier ones with the same decimal value.
func LoadProtocolTable(path string) (model.ProtocolTable, error) {
	table := make(model.ProtocolTable)
	err := readColumns(path, protocolColumns, func(values []string) {
		table[values[0]] = strings.ToLower(values[1])
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

// BuiltinProtocolTable builds a protocol table from the IP protocol registry
// compiled into gopacket. Numbers gopacket has no name for are left out.
func BuiltinProtocolTable() model.ProtocolTable {
	table := make(model.ProtocolTable)
	for i := 0; i < 256; i++ {
		name := layers.IPProtocol(i).String()
		if name == "" || strings.HasPrefix(name, "Unknown") {
			continue
		}
		table[strconv.Itoa(i)] = strings.ToLower(name)
	}
	return table
}
