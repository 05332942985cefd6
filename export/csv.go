// Package export writes experiment results to CSV files and SQLite
// databases for downstream plotting and analysis.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"reflect"

	"github.com/fatih/structs"
)

// WriteCSV writes a slice of flat row structs to a CSV file at path. Column
// names come from the rows' structs tags, in field-declaration order. An
// empty slice still produces the header.
func WriteCSV(path string, rows any) error {
	v := reflect.ValueOf(rows)
	if v.Kind() != reflect.Slice {
		return fmt.Errorf("export: rows must be a slice, got %T", rows)
	}

	sample := reflect.Zero(v.Type().Elem()).Interface()
	header := structs.Names(sample)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, len(header))
	for i := 0; i < v.Len(); i++ {
		values := structs.Values(v.Index(i).Interface())
		for j, value := range values {
			record[j] = fmt.Sprint(value)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}
