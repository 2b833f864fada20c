package reconcile

import (
	"context"

	"adherence-sync/core/reconcile"
	"adherence-sync/feature/flights/models"

	"gorm.io/gorm"
)

// insertNewRecords copies staged rows into flight_records, resolving codes to surrogate
// ids. Staging rows whose codes do not resolve are dropped by the inner joins. A row is
// kept only if no flight record exists for its (airline code, date, flight number);
// within the load, the first staged row of each natural key wins.
var insertNewRecords = `INSERT INTO ` + models.TableFlightRecords + ` (airline_id, departure_airport_id, arrival_airport_id, flight_number, date, flight_data_available, adherence, potential_saving, effective_saving)
SELECT al.id, dep.id, arr.id, s.flight_number, s.date, s.flight_data_available, s.adherence, s.potential_saving, s.effective_saving
FROM ` + models.TableStaging + ` s
INNER JOIN ` + models.TableAirlines + ` al ON al.code = s.airline
INNER JOIN ` + models.TableAirports + ` dep ON dep.code = s.departure
INNER JOIN ` + models.TableAirports + ` arr ON arr.code = s.arrival
WHERE s.id IN (
	SELECT MIN(f.id) FROM ` + models.TableStaging + ` f GROUP BY f.airline, f.date, f.flight_number
)
AND NOT EXISTS (
	SELECT 1 FROM ` + models.TableFlightRecords + ` r
	INNER JOIN ` + models.TableAirlines + ` ra ON ra.id = r.airline_id
	WHERE ra.code = s.airline AND r.date = s.date AND r.flight_number = s.flight_number
)
ORDER BY s.id`

// Records inserts the staged flight records that have no normalized counterpart and
// returns how many were inserted. References must have been reconciled first.
func Records(ctx context.Context, tx *gorm.DB) (int64, error) {
	return reconcile.InsertSelect(ctx, tx, models.TableFlightRecords, insertNewRecords)
}
