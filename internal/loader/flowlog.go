package loader

import (
	"FlowTagger/internal/model"
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
)

// maxLineSize bounds a single flow log line.
const maxLineSize = 1 << 20

// ReadFlowLog reads every non-empty line of the flow log as a record, in file
// order. Field counts are not checked here.
func ReadFlowLog(path string) ([]model.FlowRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open '%s': %w", model.ErrFile, path, err)
	}
	defer file.Close()

	var records []model.FlowRecord
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	scanner.Split(scanLines)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		records = append(records, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read '%s': %w", model.ErrFile, path, err)
	}

	return records, nil
}

// scanLines is a bufio.SplitFunc that ends a line at "\n", "\r\n" or a lone "\r".
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// Need the next byte to tell "\r\n" from a lone "\r".
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
