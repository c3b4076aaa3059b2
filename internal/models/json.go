package models

import (
	"database/sql/driver"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// JSON wraps gorm.io/datatypes.JSON so the column type can be mapped per
// database driver. Used for free-form blobs like User.Settings.
type JSON struct {
	datatypes.JSON
}

func (j JSON) Value() (driver.Value, error) {
	return j.JSON.Value()
}

func (j *JSON) Scan(value interface{}) error {
	return j.JSON.Scan(value)
}

// GormDBDataType picks the JSON column type for each supported driver.
// MSSQL has no native json type.
func (JSON) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	}
	return "JSON"
}
