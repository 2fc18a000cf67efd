package checks

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"bucket-manager/core/backend"
	"bucket-manager/core/backend/backendtest"
	"bucket-manager/core/catalog"
	"bucket-manager/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestCheckIndexPool(t *testing.T) {
	mem := backendtest.NewMemory()
	ctx := context.Background()

	ok, err := CheckIndexPool(ctx, mem, ".rgw.buckets")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, FixIndexPool(ctx, mem, ".rgw.buckets", "", zap.NewNop()))
	ok, err = CheckIndexPool(ctx, mem, ".rgw.buckets")
	require.NoError(t, err)
	assert.True(t, ok)

	// A second fix is harmless.
	assert.NoError(t, FixIndexPool(ctx, mem, ".rgw.buckets", "", zap.NewNop()))
}

func TestCheckRegistry(t *testing.T) {
	mem := backendtest.NewMemory()
	ctx := context.Background()
	ref := backend.ObjectRef{Pool: ".rgw.buckets", Key: ".pools.avail"}

	report, err := CheckRegistry(ctx, mem, ref)
	require.NoError(t, err)
	assert.Equal(t, RegistryReport{}, *report)

	mem.AddPools(ref.Pool)
	require.NoError(t, mem.DocSet(ctx, ref, map[string][]byte{"pa": nil, "pb": nil, "": nil}))

	report, err = CheckRegistry(ctx, mem, ref)
	require.NoError(t, err)
	assert.Equal(t, RegistryReport{Present: true, Available: 2, Blank: 1}, *report)
}

func TestCheckRegistry_Error(t *testing.T) {
	mem := backendtest.NewMemory()
	mem.DocGetErr = errors.New("timeout")

	_, err := CheckRegistry(context.Background(), mem, backend.ObjectRef{Pool: ".rgw.buckets", Key: ".pools.avail"})
	assert.Error(t, err)
}

func TestCheckCatalogSchema_NilDB(t *testing.T) {
	report, err := CheckCatalogSchema(nil)
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckCatalogSchema_Migrated(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, catalog.New(db).Migrate(context.Background()))

	report, err := CheckCatalogSchema(db)
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Equal(t, "ok", report.Tables["buckets"].Status)
	assert.Empty(t, report.Tables["buckets"].MissingColumns)
}

func TestCheckCatalogSchema_MissingColumns(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("id", "bigint unsigned", "NO", "PRI", nil, "auto_increment").
		AddRow("name", "varchar(255)", "NO", "UNI", nil, "").
		AddRow("pool", "varchar(255)", "NO", "MUL", nil, "")
	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `buckets`")).WillReturnRows(rows)

	report, err := CheckCatalogSchema(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)

	tbl := report.Tables["buckets"]
	assert.Equal(t, "error", tbl.Status)
	assert.Equal(t, []string{"owner", "system", "auid", "attrs", "created_at", "deleted_at"}, tbl.MissingColumns)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckCatalogSchema_InspectError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `buckets`")).WillReturnError(errors.New("no such table"))

	report, err := CheckCatalogSchema(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Len(t, report.Errors, 1)
}
