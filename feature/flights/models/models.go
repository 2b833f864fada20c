package models

import "time"

// Table names of the reporting schema.
const (
	TableAirlines      = "airlines"
	TableAirports      = "airports"
	TableStaging       = "flight_record_staging"
	TableFlightRecords = "flight_records"
)

// Airline is a carrier referenced by flight records. Code is unique.
type Airline struct {
	ID   uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Code string `gorm:"column:code;type:varchar(16);not null;uniqueIndex:idx_airlines_code" json:"code"`
}

// TableName overrides the table name.
func (Airline) TableName() string {
	return TableAirlines
}

// Airport is referenced twice by a flight record, as departure and as arrival. Code is unique.
type Airport struct {
	ID   uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Code string `gorm:"column:code;type:varchar(16);not null;uniqueIndex:idx_airports_code" json:"code"`
}

// TableName overrides the table name.
func (Airport) TableName() string {
	return TableAirports
}

// FlightRecordStaging mirrors one vendor record of the current load.
// Airline holds the source identity of the load, not yet resolved to an Airline row.
type FlightRecordStaging struct {
	ID                  uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Airline             string    `gorm:"column:airline;type:varchar(16);not null"`
	FlightNumber        string    `gorm:"column:flight_number;type:varchar(16);not null"`
	Date                time.Time `gorm:"column:date;type:date;not null"`
	Departure           string    `gorm:"column:departure;type:varchar(16);not null"`
	Arrival             string    `gorm:"column:arrival;type:varchar(16);not null"`
	FlightDataAvailable bool      `gorm:"column:flight_data_available;not null"`
	Adherence           bool      `gorm:"column:adherence;not null"`
	PotentialSaving     *int      `gorm:"column:potential_saving"`
	EffectiveSaving     int       `gorm:"column:effective_saving;not null"`
}

// TableName overrides the table name.
func (FlightRecordStaging) TableName() string {
	return TableStaging
}

// FlightRecord is the normalized, append-only adherence record.
// (airline, date, flight number) is its natural key.
type FlightRecord struct {
	ID                  uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AirlineID           uint      `gorm:"column:airline_id;not null;uniqueIndex:idx_flight_records_natural_key,priority:1" json:"airline_id"`
	Airline             *Airline  `gorm:"foreignKey:AirlineID" json:"airline,omitempty"`
	FlightNumber        string    `gorm:"column:flight_number;type:varchar(16);not null;uniqueIndex:idx_flight_records_natural_key,priority:3;index:idx_flight_records_flight_number" json:"flight_number"`
	Date                time.Time `gorm:"column:date;type:date;not null;uniqueIndex:idx_flight_records_natural_key,priority:2" json:"date"`
	DepartureAirportID  uint      `gorm:"column:departure_airport_id;not null" json:"departure_airport_id"`
	DepartureAirport    *Airport  `gorm:"foreignKey:DepartureAirportID" json:"departure_airport,omitempty"`
	ArrivalAirportID    uint      `gorm:"column:arrival_airport_id;not null" json:"arrival_airport_id"`
	ArrivalAirport      *Airport  `gorm:"foreignKey:ArrivalAirportID" json:"arrival_airport,omitempty"`
	FlightDataAvailable bool      `gorm:"column:flight_data_available;not null" json:"flight_data_available"`
	Adherence           bool      `gorm:"column:adherence;not null" json:"adherence"`
	PotentialSaving     *int      `gorm:"column:potential_saving" json:"potential_saving"`
	EffectiveSaving     int       `gorm:"column:effective_saving;not null" json:"effective_saving"`
}

// TableName overrides the table name.
func (FlightRecord) TableName() string {
	return TableFlightRecords
}

// All returns every model of the reporting schema in migration order.
func All() []any {
	return []any{&Airline{}, &Airport{}, &FlightRecordStaging{}, &FlightRecord{}}
}
