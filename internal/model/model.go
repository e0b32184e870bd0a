package model

import "time"

// UntaggedTag is the tag counted for records whose port/protocol pair has no
// entry in the lookup table.
const UntaggedTag = "Untagged"

// FlowRecord is one non-empty line of the flow log split into its
// whitespace-separated fields.
type FlowRecord []string

// LookupKey identifies a destination port and protocol keyword combination.
// Protocol is always lowercase.
type LookupKey struct {
	DstPort  string
	Protocol string
}

// ProtocolTable maps a protocol number, in its textual form, to its
// lowercase keyword (e.g. "6" -> "tcp").
type ProtocolTable map[string]string

// LookupTable maps a port/protocol combination to the tag assigned to it.
type LookupTable map[LookupKey]string

// Counts holds the result of one aggregation pass.
type Counts struct {
	Tags          *Counter[string]
	PortProtocols *Counter[LookupKey]
	// Records is the number of records read, Counted the number that had
	// enough fields to be aggregated.
	Records int
	Counted int
}

// NewCounts returns empty counts ready for a pass.
func NewCounts() *Counts {
	return &Counts{
		Tags:          NewCounter[string](),
		PortProtocols: NewCounter[LookupKey](),
	}
}

// Report is the payload handed to every writer at the end of a run.
type Report struct {
	GeneratedAt time.Time
	Counts      *Counts
}
