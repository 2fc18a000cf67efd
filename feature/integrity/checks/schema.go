package checks

import (
	"fmt"

	"bucket-manager/core/catalog"
	"bucket-manager/core/database"

	"gorm.io/gorm"
)

// SchemaReport strictly types the result of a catalog schema check.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckCatalogSchema verifies the catalog table has every column the catalog
// reads and writes.
func CheckCatalogSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	table := catalog.Record{}.TableName()
	report := &SchemaReport{
		Matched: true,
		Tables:  make(map[string]TableReport),
	}

	missing, err := database.MissingColumns(db, table, catalog.Columns)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
		report.Matched = false
		return report, nil
	}

	tbl := TableReport{MissingColumns: []string{}, Status: "ok"}
	if len(missing) > 0 {
		tbl.MissingColumns = missing
		tbl.Status = "error"
		report.Matched = false
	}
	report.Tables[table] = tbl

	return report, nil
}
