package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes one collection with a header row.
func WriteCSV(w io.Writer, table Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(table.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
