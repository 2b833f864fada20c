package schema

import (
	"fmt"
	"time"

	"adherence-sync/core/utils"
	"adherence-sync/feature/flights/models"
)

// Row is one typed vendor record, before it is tagged with the source identity.
type Row struct {
	FlightNumber        string
	Date                time.Time
	Departure           string
	Arrival             string
	FlightDataAvailable bool
	Adherence           bool
	PotentialSaving     *int
	EffectiveSaving     int
}

// Field maps one wire key to a Row field.
type Field struct {
	// Key is the vendor's key name.
	Key string
	// Name is the internal column name.
	Name string
	// Type drives the coercion of the wire value.
	Type models.FieldType
	// Required fields must be present and non-null.
	Required bool

	assign func(r *Row, v any)
}

// Fields is the fixed mapping of vendor keys. It is the union of every field set the
// vendor has been observed to send; only potentialSaving may be absent.
var Fields = []Field{
	{Key: "flightNumber", Name: "flight_number", Type: models.FieldString, Required: true,
		assign: func(r *Row, v any) { r.FlightNumber = v.(string) }},
	{Key: "date", Name: "date", Type: models.FieldDate, Required: true,
		assign: func(r *Row, v any) { r.Date = v.(time.Time) }},
	{Key: "departure", Name: "departure", Type: models.FieldString, Required: true,
		assign: func(r *Row, v any) { r.Departure = v.(string) }},
	{Key: "arrival", Name: "arrival", Type: models.FieldString, Required: true,
		assign: func(r *Row, v any) { r.Arrival = v.(string) }},
	{Key: "flightDataAvailable", Name: "flight_data_available", Type: models.FieldBool, Required: true,
		assign: func(r *Row, v any) { r.FlightDataAvailable = v.(bool) }},
	{Key: "adherence", Name: "adherence", Type: models.FieldBool, Required: true,
		assign: func(r *Row, v any) { r.Adherence = v.(bool) }},
	{Key: "potentialSaving", Name: "potential_saving", Type: models.FieldInt, Required: false,
		assign: func(r *Row, v any) { n := v.(int); r.PotentialSaving = &n }},
	{Key: "effectiveSaving", Name: "effective_saving", Type: models.FieldInt, Required: true,
		assign: func(r *Row, v any) { r.EffectiveSaving = v.(int) }},
}

// Validate coerces every raw record into a Row. It stops at the first invalid record
// and returns a *ValidationError naming its index and field. Unknown keys are ignored.
func Validate(raw []map[string]any) ([]Row, error) {
	rows := make([]Row, 0, len(raw))
	for i, record := range raw {
		row, err := validateRecord(i, record)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func validateRecord(index int, record map[string]any) (Row, error) {
	var row Row
	for _, f := range Fields {
		raw, present := record[f.Key]
		if !present || raw == nil {
			if f.Required {
				return Row{}, &ValidationError{Index: index, Field: f.Key, Expected: string(f.Type), Err: ErrMissingField}
			}
			continue
		}

		value, err := coerce(f.Type, raw)
		if err != nil {
			return Row{}, &ValidationError{
				Index:    index,
				Field:    f.Key,
				Expected: string(f.Type),
				Err:      fmt.Errorf("%w: %v", ErrInvalidType, err),
			}
		}
		if f.Required && f.Type == models.FieldString && value.(string) == "" {
			return Row{}, &ValidationError{Index: index, Field: f.Key, Expected: string(f.Type), Err: ErrMissingField}
		}
		f.assign(&row, value)
	}
	return row, nil
}

func coerce(t models.FieldType, v any) (any, error) {
	switch t {
	case models.FieldString:
		return utils.ToString(v)
	case models.FieldDate:
		return utils.ToDate(v)
	case models.FieldBool:
		return utils.ToBool(v)
	case models.FieldInt:
		return utils.ToInt(v)
	default:
		return nil, fmt.Errorf("unsupported field type %s", t)
	}
}
