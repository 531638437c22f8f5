package parquetio

import (
	"fmt"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// requiredColumns must be present for a file to be read as problem rows.
var requiredColumns = []string{"sheet", "column", "row", "raw_value"}

// ValidateSchema checks that the Parquet schema contains every column a
// problem-row file needs.
func ValidateSchema(schema *parquet.Schema) error {
	columns := make(map[string]bool)
	for _, field := range schema.Fields() {
		columns[strings.ToLower(field.Name())] = true
	}

	var missing []string
	for _, col := range requiredColumns {
		if !columns[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("not a problem-row file; missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
