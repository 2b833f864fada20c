package models

// FieldType is the logical type of a record field.
type FieldType string

const (
	FieldString FieldType = "string"
	FieldDate   FieldType = "date"
	FieldBool   FieldType = "bool"
	FieldInt    FieldType = "int"
)

// FieldInfo declares one filterable field of a record type.
type FieldInfo struct {
	Name  string    `json:"name"`
	Type  FieldType `json:"type"`
	Label string    `json:"label"`
}

// FlightRecordFields lists the user-facing fields of FlightRecord, in display order.
// Condition builders offer exactly these fields; surrogate keys are not listed.
var FlightRecordFields = []FieldInfo{
	{Name: "airline", Type: FieldString, Label: "Airline"},
	{Name: "flight_number", Type: FieldString, Label: "Flight Number"},
	{Name: "date", Type: FieldDate, Label: "Date"},
	{Name: "departure", Type: FieldString, Label: "Departure"},
	{Name: "arrival", Type: FieldString, Label: "Arrival"},
	{Name: "flight_data_available", Type: FieldBool, Label: "Flight Data Available?"},
	{Name: "adherence", Type: FieldBool, Label: "Adherence?"},
	{Name: "potential_saving", Type: FieldInt, Label: "Potential Saving"},
	{Name: "effective_saving", Type: FieldInt, Label: "Effective Saving"},
}
