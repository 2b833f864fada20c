// Package schema validates raw vendor records and coerces them into typed rows.
//
// The mapping from vendor keys (flightNumber, flightDataAvailable, ...) to internal
// names is declared once in Fields. Dates are ISO-8601 strings, booleans and integers
// are coerced from their wire representation. The transform is pure: nothing is written.
package schema
