// Package models declares the reporting schema: airlines, airports, the staging table
// for one vendor load, and normalized flight records.
//
// Airport is referenced twice by FlightRecord through two explicit foreign key columns,
// DepartureAirportID and ArrivalAirportID.
package models
