package flights

import (
	"context"
	"errors"
	"net"
	"regexp"
	"testing"
	"time"

	"adherence-sync/core/database"
	"adherence-sync/core/reconcile"
	"adherence-sync/feature/flights/models"
	"adherence-sync/feature/flights/schema"
	"adherence-sync/feature/flights/staging"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	dialector := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})
	db, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func expectStagingLock(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT GET_LOCK(?, ?)")).
		WithArgs(staging.LockName, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"acquired"}).AddRow(1))
}

func expectStagingUnlock(mock sqlmock.Sqlmock) {
	mock.ExpectExec(regexp.QuoteMeta("SELECT RELEASE_LOCK(?)")).
		WithArgs(staging.LockName).
		WillReturnResult(sqlmock.NewResult(0, 0))
}

func record(flight, date, dep, arr string) map[string]any {
	return map[string]any{
		"flightNumber":        flight,
		"date":                date,
		"departure":           dep,
		"arrival":             arr,
		"flightDataAvailable": true,
		"adherence":           false,
		"potentialSaving":     float64(50),
		"effectiveSaving":     float64(0),
	}
}

type tableCounts struct {
	airlines, airports, records int64
}

func counts(t *testing.T, db *gorm.DB) tableCounts {
	var c tableCounts
	require.NoError(t, db.Model(&models.Airline{}).Count(&c.airlines).Error)
	require.NoError(t, db.Model(&models.Airport{}).Count(&c.airports).Error)
	require.NoError(t, db.Model(&models.FlightRecord{}).Count(&c.records).Error)
	return c
}

func TestLoad_SingleRecordIntoEmptyTables(t *testing.T) {
	db := setupTestDB(t)
	loader := NewLoader(db, zap.NewNop())

	summary, err := loader.Load(context.Background(), []map[string]any{record("101", "2024-01-01", "JFK", "LHR")}, "ZZ")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Staged)
	assert.Equal(t, []string{"ZZ"}, summary.AirlinesAdded)
	assert.ElementsMatch(t, []string{"JFK", "LHR"}, summary.AirportsAdded)
	assert.Equal(t, int64(1), summary.RecordsAdded)

	var airlines []models.Airline
	require.NoError(t, db.Find(&airlines).Error)
	require.Len(t, airlines, 1)
	assert.Equal(t, "ZZ", airlines[0].Code)

	var airports []models.Airport
	require.NoError(t, db.Order("code").Find(&airports).Error)
	require.Len(t, airports, 2)
	assert.Equal(t, "JFK", airports[0].Code)
	assert.Equal(t, "LHR", airports[1].Code)

	var records []models.FlightRecord
	require.NoError(t, db.Preload("Airline").Preload("DepartureAirport").Preload("ArrivalAirport").Find(&records).Error)
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "ZZ", rec.Airline.Code)
	assert.Equal(t, "JFK", rec.DepartureAirport.Code)
	assert.Equal(t, "LHR", rec.ArrivalAirport.Code)
	assert.Equal(t, "101", rec.FlightNumber)
	assert.Equal(t, "2024-01-01", rec.Date.UTC().Format("2006-01-02"))
	assert.True(t, rec.FlightDataAvailable)
	assert.False(t, rec.Adherence)
	require.NotNil(t, rec.PotentialSaving)
	assert.Equal(t, 50, *rec.PotentialSaving)
	assert.Equal(t, 0, rec.EffectiveSaving)
}

func TestLoad_SameBatchTwiceAddsNothing(t *testing.T) {
	db := setupTestDB(t)
	loader := NewLoader(db, zap.NewNop())
	batch := []map[string]any{
		record("101", "2024-01-01", "JFK", "LHR"),
		record("102", "2024-01-01", "LHR", "JFK"),
	}

	_, err := loader.Load(context.Background(), batch, "ZZ")
	require.NoError(t, err)
	before := counts(t, db)

	summary, err := loader.Load(context.Background(), batch, "ZZ")
	require.NoError(t, err)
	assert.Empty(t, summary.AirlinesAdded)
	assert.Empty(t, summary.AirportsAdded)
	assert.Zero(t, summary.RecordsAdded)
	assert.Equal(t, before, counts(t, db))
	assert.Equal(t, tableCounts{airlines: 1, airports: 2, records: 2}, before)
}

func TestLoad_RepeatedCodesInsertedOnce(t *testing.T) {
	db := setupTestDB(t)
	loader := NewLoader(db, zap.NewNop())

	// CDG appears as arrival and departure, JFK three times.
	batch := []map[string]any{
		record("1", "2024-01-01", "JFK", "CDG"),
		record("2", "2024-01-01", "CDG", "JFK"),
		record("3", "2024-01-02", "JFK", "AMS"),
	}

	summary, err := loader.Load(context.Background(), batch, "ZZ")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"AMS", "CDG", "JFK"}, summary.AirportsAdded)

	var codes []string
	require.NoError(t, db.Model(&models.Airport{}).Order("code").Pluck("code", &codes).Error)
	assert.Equal(t, []string{"AMS", "CDG", "JFK"}, codes)
}

func TestLoad_OnlyNewNaturalKeysInserted(t *testing.T) {
	db := setupTestDB(t)
	loader := NewLoader(db, zap.NewNop())
	ctx := context.Background()

	_, err := loader.Load(ctx, []map[string]any{record("101", "2024-01-01", "JFK", "LHR")}, "ZZ")
	require.NoError(t, err)

	// Same triple with different values, a new date, and a new flight of another airline.
	changed := record("101", "2024-01-01", "JFK", "LHR")
	changed["adherence"] = true
	summary, err := loader.Load(ctx, []map[string]any{
		changed,
		record("101", "2024-01-02", "JFK", "LHR"),
	}, "ZZ")
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.RecordsAdded)

	summary, err = loader.Load(ctx, []map[string]any{record("101", "2024-01-01", "JFK", "LHR")}, "YY")
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.RecordsAdded)
	assert.Equal(t, []string{"YY"}, summary.AirlinesAdded)

	var records []models.FlightRecord
	require.NoError(t, db.Preload("Airline").Order("id").Find(&records).Error)
	require.Len(t, records, 3)
	original := records[0]
	assert.Equal(t, "ZZ", original.Airline.Code)
	assert.True(t, original.Date.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, original.Adherence, "existing records are never updated")
}

func TestLoad_DuplicateNaturalKeyWithinBatch(t *testing.T) {
	db := setupTestDB(t)
	loader := NewLoader(db, zap.NewNop())

	first := record("101", "2024-01-01", "JFK", "LHR")
	second := record("101", "2024-01-01", "JFK", "LHR")
	second["effectiveSaving"] = float64(7)

	summary, err := loader.Load(context.Background(), []map[string]any{first, second}, "ZZ")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Staged)
	assert.Equal(t, int64(1), summary.RecordsAdded)

	var rec models.FlightRecord
	require.NoError(t, db.First(&rec).Error)
	assert.Equal(t, 0, rec.EffectiveSaving)
}

func TestLoad_StagingHoldsOnlyLatestLoad(t *testing.T) {
	db := setupTestDB(t)
	loader := NewLoader(db, zap.NewNop())
	ctx := context.Background()

	_, err := loader.Load(ctx, []map[string]any{
		record("1", "2024-01-01", "JFK", "LHR"),
		record("2", "2024-01-01", "JFK", "LHR"),
	}, "ZZ")
	require.NoError(t, err)

	_, err = loader.Load(ctx, []map[string]any{record("3", "2024-01-01", "JFK", "LHR")}, "ZZ")
	require.NoError(t, err)

	var staged []models.FlightRecordStaging
	require.NoError(t, db.Find(&staged).Error)
	require.Len(t, staged, 1)
	assert.Equal(t, "3", staged[0].FlightNumber)
	assert.Equal(t, uint(1), staged[0].ID)
}

func TestLoad_ValidationErrorWritesNothing(t *testing.T) {
	db := setupTestDB(t)
	loader := NewLoader(db, zap.NewNop())

	bad := record("102", "2024-01-01", "JFK", "LHR")
	delete(bad, "date")

	summary, err := loader.Load(context.Background(), []map[string]any{record("101", "2024-01-01", "JFK", "LHR"), bad}, "ZZ")
	require.Error(t, err)
	assert.Nil(t, summary)

	var verr *schema.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 1, verr.Index)
	assert.Equal(t, "date", verr.Field)

	assert.Equal(t, tableCounts{}, counts(t, db))
	var staged int64
	require.NoError(t, db.Model(&models.FlightRecordStaging{}).Count(&staged).Error)
	assert.Zero(t, staged)
}

func TestLoad_MissingSource(t *testing.T) {
	loader := NewLoader(nil, zap.NewNop())
	_, err := loader.Load(context.Background(), nil, "  ")
	assert.ErrorIs(t, err, ErrMissingSource)
}

func TestLoad_UniquenessViolationRollsBack(t *testing.T) {
	db, mock := setupMockDB(t)
	loader := NewLoader(db, zap.NewNop())

	mock.ExpectBegin()
	expectStagingLock(mock)
	mock.ExpectExec("DELETE FROM flight_record_staging").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO `flight_record_staging`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT DISTINCT s.airline AS lookup_key FROM flight_record_staging s").
		WillReturnRows(sqlmock.NewRows([]string{"lookup_key"}).AddRow("ZZ"))
	mock.ExpectExec("INSERT INTO `airlines`").WillReturnError(gorm.ErrDuplicatedKey)
	expectStagingUnlock(mock)
	mock.ExpectRollback()

	_, err := loader.Load(context.Background(), []map[string]any{record("101", "2024-01-01", "JFK", "LHR")}, "ZZ")
	require.Error(t, err)

	var violation *reconcile.UniquenessViolation
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, "airlines", violation.Table)
	assert.Equal(t, []string{"ZZ"}, violation.Codes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoad_RecordInsertFailureRollsBack(t *testing.T) {
	db, mock := setupMockDB(t)
	loader := NewLoader(db, zap.NewNop())

	mock.ExpectBegin()
	expectStagingLock(mock)
	mock.ExpectExec("DELETE FROM flight_record_staging").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO `flight_record_staging`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT DISTINCT s.airline AS lookup_key").
		WillReturnRows(sqlmock.NewRows([]string{"lookup_key"}))
	mock.ExpectQuery("SELECT DISTINCT s.arrival AS lookup_key").
		WillReturnRows(sqlmock.NewRows([]string{"lookup_key"}))
	mock.ExpectQuery("SELECT DISTINCT s.departure AS lookup_key").
		WillReturnRows(sqlmock.NewRows([]string{"lookup_key"}))
	mock.ExpectExec("INSERT INTO flight_records").WillReturnError(errors.New("deadlock found"))
	expectStagingUnlock(mock)
	mock.ExpectRollback()

	_, err := loader.Load(context.Background(), []map[string]any{record("101", "2024-01-01", "JFK", "LHR")}, "ZZ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deadlock found")
	assert.NotErrorIs(t, err, database.ErrUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoad_StoreUnreachable(t *testing.T) {
	db, mock := setupMockDB(t)
	loader := NewLoader(db, zap.NewNop())

	mock.ExpectBegin().WillReturnError(&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")})

	_, err := loader.Load(context.Background(), []map[string]any{record("101", "2024-01-01", "JFK", "LHR")}, "ZZ")
	require.Error(t, err)
	assert.ErrorIs(t, err, database.ErrUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoad_CancelledContextRollsBack(t *testing.T) {
	db := setupTestDB(t)
	loader := NewLoader(db, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.Load(ctx, []map[string]any{record("101", "2024-01-01", "JFK", "LHR")}, "ZZ")
	require.Error(t, err)
	assert.Equal(t, tableCounts{}, counts(t, db))
}

func TestLoad_StagingLockTimeout(t *testing.T) {
	db, mock := setupMockDB(t)
	loader := NewLoader(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT GET_LOCK(?, ?)")).
		WillReturnRows(sqlmock.NewRows([]string{"acquired"}).AddRow(0))
	mock.ExpectRollback()

	_, err := loader.Load(context.Background(), []map[string]any{record("101", "2024-01-01", "JFK", "LHR")}, "ZZ")
	assert.ErrorIs(t, err, staging.ErrLockTimeout)
	assert.NoError(t, mock.ExpectationsWereMet())
}
