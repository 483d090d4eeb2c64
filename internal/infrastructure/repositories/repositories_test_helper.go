package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createVerificationRecordTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE verification_records (
		id TEXT PRIMARY KEY,
		principal_id TEXT NOT NULL,
		document_type TEXT NOT NULL,
		document_url TEXT NOT NULL,
		file_name TEXT NOT NULL,
		file_size_bytes INTEGER NOT NULL,
		status TEXT NOT NULL,
		uploaded_at DATETIME NOT NULL,
		decided_at DATETIME,
		archived_at DATETIME,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE UNIQUE INDEX idx_verification_live
		ON verification_records (principal_id) WHERE archived_at IS NULL;`)
}

func createWalletTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE wallets (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL,
		network TEXT NOT NULL,
		address TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createWalletChangeRequestTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE wallet_change_requests (
		id TEXT PRIMARY KEY,
		wallet_id TEXT NOT NULL,
		requested_new_name TEXT NOT NULL,
		requested_new_network TEXT NOT NULL,
		requested_new_address TEXT NOT NULL,
		reason TEXT,
		status TEXT NOT NULL,
		requested_at DATETIME NOT NULL,
		decided_at DATETIME
	);`)
}
