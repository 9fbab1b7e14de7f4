package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// ModelLoad is one configuration run of the rotor model.
type ModelLoad struct {
	ID           uint      `gorm:"column:id;primaryKey" json:"id"`
	RayID        string    `gorm:"column:ray_id;size:64" json:"ray_id"`
	Source       string    `gorm:"column:source;size:255" json:"source"`
	Scale        float64   `gorm:"column:scale" json:"scale"`
	PartsFound   string    `gorm:"column:parts_found;size:255" json:"parts_found"`
	PartsMissing string    `gorm:"column:parts_missing;size:255" json:"parts_missing"`
	LoadedAt     time.Time `gorm:"column:loaded_at;index" json:"loaded_at"`
}

// TableName overrides the table name.
func (ModelLoad) TableName() string {
	return "model_loads"
}

// Columns lists the columns the table must have.
func (ModelLoad) Columns() []string {
	return []string{"id", "ray_id", "source", "scale", "parts_found", "parts_missing", "loaded_at"}
}

// JoinParts stores a part list in a single column.
func JoinParts(parts []string) string {
	return strings.Join(parts, ",")
}

// SplitParts reverses JoinParts.
func SplitParts(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

// Migrate creates or updates the load history table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&ModelLoad{})
}
