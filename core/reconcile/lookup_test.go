package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testCarrier struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"`
	Code string `gorm:"size:16;not null;uniqueIndex"`
}

func (testCarrier) TableName() string { return "carriers" }

type testStage struct {
	ID      uint `gorm:"primaryKey;autoIncrement"`
	Carrier *string
}

func (testStage) TableName() string { return "stage" }

var carrierSpec = LookupSpec{
	Table:         "carriers",
	KeyColumn:     "code",
	StagingTable:  "stage",
	StagingColumn: "carrier",
}

func newCarrier(code string) testCarrier { return testCarrier{Code: code} }

func setupSQLite(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&testCarrier{}, &testStage{}))
	return db
}

func stage(t *testing.T, db *gorm.DB, codes ...string) {
	for _, code := range codes {
		c := code
		require.NoError(t, db.Create(&testStage{Carrier: &c}).Error)
	}
}

func TestInsertMissing_InsertsEachKeyOnce(t *testing.T) {
	db := setupSQLite(t)
	stage(t, db, "ZZ", "AA", "ZZ", "ZZ")
	require.NoError(t, db.Create(&testStage{}).Error) // NULL carrier is ignored

	added, err := InsertMissing(context.Background(), db, carrierSpec, newCarrier)
	require.NoError(t, err)
	assert.Equal(t, []string{"AA", "ZZ"}, added)

	var carriers []testCarrier
	require.NoError(t, db.Order("code").Find(&carriers).Error)
	require.Len(t, carriers, 2)
	assert.Equal(t, "AA", carriers[0].Code)
	assert.Equal(t, "ZZ", carriers[1].Code)
}

func TestInsertMissing_SkipsExisting(t *testing.T) {
	db := setupSQLite(t)
	require.NoError(t, db.Create(&testCarrier{Code: "ZZ"}).Error)
	stage(t, db, "ZZ", "BB")

	added, err := InsertMissing(context.Background(), db, carrierSpec, newCarrier)
	require.NoError(t, err)
	assert.Equal(t, []string{"BB"}, added)

	// A second pass over the same staging finds nothing left to add.
	added, err = InsertMissing(context.Background(), db, carrierSpec, newCarrier)
	require.NoError(t, err)
	assert.Empty(t, added)

	var count int64
	require.NoError(t, db.Model(&testCarrier{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	dialector := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})
	db, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func TestInsertMissing_DuplicateIsUniquenessViolation(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT DISTINCT s.carrier AS lookup_key FROM stage s WHERE .* NOT EXISTS \\(SELECT 1 FROM carriers l WHERE l.code = s.carrier\\)").
		WillReturnRows(sqlmock.NewRows([]string{"lookup_key"}).AddRow("ZZ"))
	mock.ExpectExec("INSERT INTO `carriers`").
		WillReturnError(gorm.ErrDuplicatedKey)

	_, err := InsertMissing(context.Background(), db, carrierSpec, newCarrier)
	require.Error(t, err)

	var violation *UniquenessViolation
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, "carriers", violation.Table)
	assert.Equal(t, []string{"ZZ"}, violation.Codes)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertMissing_NothingMissingSkipsInsert(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT DISTINCT s.carrier AS lookup_key").
		WillReturnRows(sqlmock.NewRows([]string{"lookup_key"}))

	added, err := InsertMissing(context.Background(), db, carrierSpec, newCarrier)
	require.NoError(t, err)
	assert.Empty(t, added)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertSelect(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectExec("INSERT INTO carriers \\(code\\) SELECT").WillReturnResult(sqlmock.NewResult(3, 3))
	n, err := InsertSelect(context.Background(), db, "carriers", "INSERT INTO carriers (code) SELECT carrier FROM stage")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	mock.ExpectExec("INSERT INTO carriers").WillReturnError(gorm.ErrDuplicatedKey)
	_, err = InsertSelect(context.Background(), db, "carriers", "INSERT INTO carriers (code) SELECT carrier FROM stage")
	var violation *UniquenessViolation
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, "carriers", violation.Table)

	assert.NoError(t, mock.ExpectationsWereMet())
}
