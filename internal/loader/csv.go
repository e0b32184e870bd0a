package loader

import (
	"FlowTagger/internal/model"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// readColumns reads a comma-separated file whose first row is a header and
// calls fn with the values of the requested columns for every data row.
// Header names are matched case-insensitively after trimming whitespace.
func readColumns(path string, columns []string, fn func(values []string)) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: failed to open '%s': %w", model.ErrFile, path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Reference files carry trailing columns that vary per row.
	reader.FieldsPerRecord = -1
	// A stray quote inside an unquoted field is kept as literal text.
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return fmt.Errorf("%w: '%s' has no header row", model.ErrSchema, path)
	}
	if err != nil {
		return readError(path, err)
	}

	positions := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		positions[strings.ToLower(strings.TrimSpace(name))] = i
	}

	index := make([]int, len(columns))
	for i, col := range columns {
		pos, ok := positions[col]
		if !ok {
			return fmt.Errorf("%w: '%s' is missing column '%s'", model.ErrSchema, path, col)
		}
		index[i] = pos
	}

	values := make([]string, len(columns))
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return readError(path, err)
		}

		for i, pos := range index {
			if pos >= len(row) {
				line, _ := reader.FieldPos(0)
				return fmt.Errorf("%w: '%s' line %d has no value for column '%s'", model.ErrSchema, path, line, columns[i])
			}
			values[i] = row[pos]
		}
		fn(values)
	}
}

func readError(path string, err error) error {
	return fmt.Errorf("%w: failed to read '%s': %w", model.ErrFile, path, err)
}
