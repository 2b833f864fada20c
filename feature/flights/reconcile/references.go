package reconcile

import (
	"context"
	"fmt"

	"adherence-sync/core/reconcile"
	"adherence-sync/feature/flights/models"

	"gorm.io/gorm"
)

// AirportRole names one of the two relationships between a flight record and an airport.
type AirportRole string

const (
	RoleDeparture AirportRole = "departure"
	RoleArrival   AirportRole = "arrival"
)

// AirportRoles lists the roles in the order they are reconciled.
var AirportRoles = []AirportRole{RoleArrival, RoleDeparture}

// InvalidRoleError is returned when asked to reconcile an unknown airport role.
type InvalidRoleError struct {
	Role AirportRole
}

func (e *InvalidRoleError) Error() string {
	return fmt.Sprintf("invalid airport role %q", string(e.Role))
}

// stagingColumn returns the staging column holding the airport code for role.
func (r AirportRole) stagingColumn() (string, error) {
	switch r {
	case RoleDeparture:
		return "departure", nil
	case RoleArrival:
		return "arrival", nil
	default:
		return "", &InvalidRoleError{Role: r}
	}
}

var airlineSpec = reconcile.LookupSpec{
	Table:         models.TableAirlines,
	KeyColumn:     "code",
	StagingTable:  models.TableStaging,
	StagingColumn: "airline",
}

func airportSpec(role AirportRole) (reconcile.LookupSpec, error) {
	col, err := role.stagingColumn()
	if err != nil {
		return reconcile.LookupSpec{}, err
	}
	return reconcile.LookupSpec{
		Table:         models.TableAirports,
		KeyColumn:     "code",
		StagingTable:  models.TableStaging,
		StagingColumn: col,
	}, nil
}

// Airlines inserts every staged airline code missing from the airlines table and
// returns the inserted codes.
func Airlines(ctx context.Context, tx *gorm.DB) ([]string, error) {
	return reconcile.InsertMissing(ctx, tx, airlineSpec, func(code string) models.Airline {
		return models.Airline{Code: code}
	})
}

// Airports inserts every staged airport code of the given role missing from the
// airports table and returns the inserted codes.
func Airports(ctx context.Context, tx *gorm.DB, role AirportRole) ([]string, error) {
	spec, err := airportSpec(role)
	if err != nil {
		return nil, err
	}
	return reconcile.InsertMissing(ctx, tx, spec, func(code string) models.Airport {
		return models.Airport{Code: code}
	})
}

// References reconciles airlines, then airports for every role, one pass after the
// other. A code staged as both arrival and departure is inserted by the first pass
// and skipped by the second.
func References(ctx context.Context, tx *gorm.DB) (airlines, airports []string, err error) {
	airlines, err = Airlines(ctx, tx)
	if err != nil {
		return nil, nil, err
	}

	for _, role := range AirportRoles {
		added, err := Airports(ctx, tx, role)
		if err != nil {
			return nil, nil, err
		}
		airports = append(airports, added...)
	}
	return airlines, airports, nil
}
