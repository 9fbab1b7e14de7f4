package checks

import (
	"fmt"

	"rotor-viewer/core/database"
	"rotor-viewer/feature/rotor/models"

	"gorm.io/gorm"
)

// SchemaReport strictly types the result of a schema check.
type SchemaReport struct {
	Table          string   `json:"table"`
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
	Errors         []string `json:"errors"`
}

// CheckSchema verifies the load history table against the ModelLoad model.
func CheckSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	model := models.ModelLoad{}
	report := &SchemaReport{
		Table:          model.TableName(),
		MissingColumns: []string{},
		Status:         "ok",
		Errors:         []string{},
	}

	missing, err := database.MissingColumns(db, model.TableName(), model.Columns())
	if err != nil {
		report.Status = "error"
		report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", model.TableName(), err))
		return report, nil
	}
	if len(missing) > 0 {
		report.Status = "error"
		report.MissingColumns = missing
	}
	return report, nil
}

// FixSchema creates or migrates the load history table.
func FixSchema(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	return models.Migrate(db)
}
