package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	sqlitedriver "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/knownasnaffy/saldo/pkg/sqlite"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db, err := gorm.Open(sqlitedriver.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&ConfigurationEntity{}, &TransactionEntity{})
	require.NoError(t, err)

	return sqlite.NewWithConn(db)
}
