package staging

import (
	"context"
	"fmt"

	"adherence-sync/feature/flights/models"
	"adherence-sync/feature/flights/schema"

	"gorm.io/gorm"
)

// batchSize bounds the number of rows per INSERT statement.
const batchSize = 500

// Truncate removes every staging row and resets the id sequence where the store
// allows it inside a transaction.
//
// MySQL commits implicitly on TRUNCATE and ALTER TABLE, so there the rows are deleted
// and the auto increment counter is left as is.
func Truncate(ctx context.Context, tx *gorm.DB) error {
	db := tx.WithContext(ctx)

	var statements []string
	switch db.Dialector.Name() {
	case "postgres":
		statements = []string{"TRUNCATE TABLE " + models.TableStaging + " RESTART IDENTITY"}
	case "sqlite":
		statements = []string{
			"DELETE FROM " + models.TableStaging,
			"DELETE FROM sqlite_sequence WHERE name = '" + models.TableStaging + "'",
		}
	default:
		statements = []string{"DELETE FROM " + models.TableStaging}
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to truncate staging: %w", err)
		}
	}
	return nil
}

// BulkInsert writes one staging row per typed row, tagged with the source airline code.
// Input order is kept. Duplicates are accepted.
func BulkInsert(ctx context.Context, tx *gorm.DB, rows []schema.Row, airline string) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	staged := make([]models.FlightRecordStaging, 0, len(rows))
	for _, row := range rows {
		staged = append(staged, models.FlightRecordStaging{
			Airline:             airline,
			FlightNumber:        row.FlightNumber,
			Date:                row.Date,
			Departure:           row.Departure,
			Arrival:             row.Arrival,
			FlightDataAvailable: row.FlightDataAvailable,
			Adherence:           row.Adherence,
			PotentialSaving:     row.PotentialSaving,
			EffectiveSaving:     row.EffectiveSaving,
		})
	}

	if err := tx.WithContext(ctx).CreateInBatches(&staged, batchSize).Error; err != nil {
		return 0, fmt.Errorf("failed to insert staging rows: %w", err)
	}
	return len(staged), nil
}

// Count returns the number of rows currently staged.
func Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	if err := db.WithContext(ctx).Model(&models.FlightRecordStaging{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count staging rows: %w", err)
	}
	return n, nil
}
