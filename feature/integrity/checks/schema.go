package checks

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"adherence-sync/core/database"

	"gorm.io/gorm"
)

// SchemaReport is the result of comparing the reporting tables to their models.
type SchemaReport struct {
	Dialect string                 `json:"dialect"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "error"
}

// typeAliases maps a declared column type to the names stores report it under.
var typeAliases = map[string][]string{
	"varchar": {"varchar", "character varying", "text"},
	"date":    {"date"},
}

var typeSize = regexp.MustCompile(`\(.*\)$`)

// CheckSchema verifies the database schema using the gorm models as the source of truth.
// Only columns declaring an explicit type are type checked.
func CheckSchema(db *gorm.DB, models ...any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Dialect: db.Dialector.Name(),
		Tables:  make(map[string]TableReport),
		Matched: true,
		Errors:  []string{},
	}

	for _, model := range models {
		typ := reflect.TypeOf(model)
		if typ.Kind() == reflect.Ptr {
			typ = typ.Elem()
		}

		tabler, ok := reflect.New(typ).Interface().(interface{ TableName() string })
		if !ok {
			return nil, fmt.Errorf("model %s does not implement TableName", typ.Name())
		}
		tableName := tabler.TableName()

		actualCols, err := database.GetTableColumns(db, tableName)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", tableName, err))
			report.Matched = false
			continue
		}

		tblReport := checkTable(typ, actualCols)
		if tblReport.Status != "ok" {
			report.Matched = false
		}
		report.Tables[tableName] = tblReport
	}

	return report, nil
}

func checkTable(typ reflect.Type, actualCols []database.ColumnInfo) TableReport {
	tblReport := TableReport{
		MissingColumns: []string{},
		TypeMismatches: []string{},
		Status:         "ok",
	}

	// A table that does not exist reports no columns at all.
	actualMap := make(map[string]database.ColumnInfo)
	for _, col := range actualCols {
		actualMap[col.Field] = col
	}

	for i := 0; i < typ.NumField(); i++ {
		gormTag := typ.Field(i).Tag.Get("gorm")

		colName := parseGormColumn(gormTag)
		if colName == "" {
			continue
		}

		actCol, exists := actualMap[colName]
		if !exists {
			tblReport.MissingColumns = append(tblReport.MissingColumns, colName)
			tblReport.Status = "error"
			continue
		}

		expType := strings.ToLower(parseGormType(gormTag))
		if expType == "" || typeMatches(expType, actCol.Type) {
			continue
		}
		tblReport.TypeMismatches = append(tblReport.TypeMismatches,
			fmt.Sprintf("%s: expected %s, got %s", colName, expType, actCol.Type))
		tblReport.Status = "error"
	}

	return tblReport
}

func typeMatches(expected, actual string) bool {
	if strings.Contains(actual, expected) {
		return true
	}
	base := typeSize.ReplaceAllString(expected, "")
	for _, alias := range typeAliases[base] {
		if strings.HasPrefix(actual, alias) {
			return true
		}
	}
	return false
}

// Helpers to parse simple gorm tags
func parseGormColumn(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}

func parseGormType(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "type:") {
			return strings.TrimPrefix(p, "type:")
		}
	}
	return ""
}
